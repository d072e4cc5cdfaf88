package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector in world space (Y up)
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) MagSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

// Normalize returns the unit vector, or zero for a zero vector
func (v Vec2) Normalize() Vec2 {
	mag := v.Mag()
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Dist returns the Euclidean distance between two points
func Dist(a, b Vec2) float64 {
	return a.Sub(b).Mag()
}

// WithinSquare reports whether b lies strictly inside the axis-aligned square
// window of half-size r centered on a (|dx| < r and |dy| < r)
func WithinSquare(a, b Vec2, r float64) bool {
	return math.Abs(a.X-b.X) < r && math.Abs(a.Y-b.Y) < r
}

// MoveToward steps from toward target by at most maxStep, landing exactly on target when close enough
func MoveToward(from, target Vec2, maxStep float64) Vec2 {
	d := target.Sub(from)
	dist := d.Mag()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return from.Add(d.Scale(maxStep / dist))
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
