package vmath

// AABB is an axis-aligned box in world space, Min bottom-left, Max top-right
type AABB struct {
	Min, Max Vec2
}

// BoxAround returns a square box of side size centered on c
func BoxAround(c Vec2, size float64) AABB {
	h := size / 2
	return AABB{
		Min: Vec2{c.X - h, c.Y - h},
		Max: Vec2{c.X + h, c.Y + h},
	}
}

// CircleBounds returns the bounding box of a circle
func CircleBounds(c Vec2, r float64) AABB {
	return AABB{
		Min: Vec2{c.X - r, c.Y - r},
		Max: Vec2{c.X + r, c.Y + r},
	}
}

func (b AABB) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

func (b AABB) Width() float64 {
	return b.Max.X - b.Min.X
}

func (b AABB) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Overlaps reports strict interior overlap; touching edges do not overlap
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y
}

// Contains reports whether p lies inside the box, edges inclusive
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ClosestPoint returns the point of the box nearest to p
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, b.Min.X, b.Max.X),
		Y: Clamp(p.Y, b.Min.Y, b.Max.Y),
	}
}

// CircleIntersects reports whether the circle (c, r) penetrates the box.
// Contact at exactly distance r does not count.
func (b AABB) CircleIntersects(c Vec2, r float64) bool {
	return b.ClosestPoint(c).Sub(c).MagSq() < r*r
}

// CirclesOverlap reports whether two circles penetrate each other
func CirclesOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	sum := ra + rb
	return a.Sub(b).MagSq() < sum*sum
}
