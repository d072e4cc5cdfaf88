// Package physics resolves circular actor movement against the tile grid and
// solid entities.
package physics

import (
	"math"

	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/vmath"
)

// MoveResult reports which axis movement was refused
type MoveResult struct {
	BlockedX bool
	BlockedY bool
}

// Blocked reports whether any axis was refused
func (r MoveResult) Blocked() bool {
	return r.BlockedX || r.BlockedY
}

// TryMove moves a circle of radius r at pos by delta, one axis at a time: X first,
// then Y from the updated X, so diagonal contact slides along walls. Deltas longer
// than r are split into substeps so thin walls cannot be skipped. An axis that
// collides during a substep stays at its last clear position for the rest of the move.
func TryMove(pos vmath.Vec2, r float64, delta vmath.Vec2, g *grid.Grid, blockers []vmath.AABB) (vmath.Vec2, MoveResult) {
	var res MoveResult
	if delta.IsZero() {
		return pos, res
	}

	steps := 1
	if r > 0 {
		longest := math.Max(math.Abs(delta.X), math.Abs(delta.Y))
		steps = int(math.Ceil(longest / r))
		if steps < 1 {
			steps = 1
		}
	}
	step := delta.Scale(1 / float64(steps))

	for i := 0; i < steps; i++ {
		if !res.BlockedX && step.X != 0 {
			candidate := vmath.Vec2{X: pos.X + step.X, Y: pos.Y}
			if Collides(candidate, r, g, blockers) {
				res.BlockedX = true
			} else {
				pos = candidate
			}
		}
		if !res.BlockedY && step.Y != 0 {
			candidate := vmath.Vec2{X: pos.X, Y: pos.Y + step.Y}
			if Collides(candidate, r, g, blockers) {
				res.BlockedY = true
			} else {
				pos = candidate
			}
		}
	}
	return pos, res
}

// Collides reports whether a circle at c overlaps a wall, the outside of the grid, or a blocker
func Collides(c vmath.Vec2, r float64, g *grid.Grid, blockers []vmath.AABB) bool {
	return CollidesGrid(c, r, g) || CollidesBlockers(c, r, blockers)
}

// CollidesGrid tests every tile under the circle's bounds. Out-of-bounds tiles always
// collide; wall tiles collide only on true circle-vs-box penetration.
func CollidesGrid(c vmath.Vec2, r float64, g *grid.Grid) bool {
	lo, hi := g.CoveredTiles(vmath.CircleBounds(c, r))
	for ty := lo.Y; ty <= hi.Y; ty++ {
		for tx := lo.X; tx <= hi.X; tx++ {
			t := grid.Tile{X: tx, Y: ty}
			if !g.InBounds(t) {
				return true
			}
			if g.IsWall(tx, ty) && g.TileBounds(t).CircleIntersects(c, r) {
				return true
			}
		}
	}
	return false
}

// CollidesBlockers tests the circle's bounding box against solid entity boxes
func CollidesBlockers(c vmath.Vec2, r float64, blockers []vmath.AABB) bool {
	bounds := vmath.CircleBounds(c, r)
	for _, b := range blockers {
		if bounds.Overlaps(b) {
			return true
		}
	}
	return false
}
