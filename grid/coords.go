package grid

import (
	"math"

	"github.com/lixenwraith/lastlight/vmath"
)

// Tile is a tile index in world orientation: X grows right, Y grows up,
// (0,0) is the bottom-left tile
type Tile struct {
	X, Y int
}

// Dirs4 are the orthogonal unit steps in fixed order: up, down, left, right
var Dirs4 = [4]Tile{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}

// Dirs8 adds the diagonals to Dirs4
var Dirs8 = [8]Tile{{0, 1}, {0, -1}, {-1, 0}, {1, 0}, {-1, 1}, {1, 1}, {-1, -1}, {1, -1}}

func (t Tile) Add(o Tile) Tile {
	return Tile{t.X + o.X, t.Y + o.Y}
}

// RowOf flips a world tile Y into a storage row
func (g *Grid) RowOf(ty int) int {
	return g.height - 1 - ty
}

// TileAt converts storage coordinates into a world tile
func (g *Grid) TileAt(row, col int) Tile {
	return Tile{X: col, Y: g.height - 1 - row}
}

// RowCol converts a world tile into storage coordinates
func (g *Grid) RowCol(t Tile) (row, col int) {
	return g.RowOf(t.Y), t.X
}

// WorldToTile maps a world position to the tile containing it.
// Positions on a shared edge belong to the upper/right tile.
func (g *Grid) WorldToTile(p vmath.Vec2) Tile {
	return Tile{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// TileOrigin returns the bottom-left world corner of t
func (g *Grid) TileOrigin(t Tile) vmath.Vec2 {
	return vmath.Vec2{X: float64(t.X) * g.cellSize, Y: float64(t.Y) * g.cellSize}
}

// TileCenter returns the world center of t
func (g *Grid) TileCenter(t Tile) vmath.Vec2 {
	half := g.cellSize / 2
	return g.TileOrigin(t).Add(vmath.Vec2{X: half, Y: half})
}

// TileBounds returns the world box covered by t
func (g *Grid) TileBounds(t Tile) vmath.AABB {
	o := g.TileOrigin(t)
	return vmath.AABB{Min: o, Max: vmath.Vec2{X: o.X + g.cellSize, Y: o.Y + g.cellSize}}
}

// CoveredTiles returns the inclusive tile range overlapped by box.
// A max edge lying exactly on a tile boundary does not pull in the next tile.
func (g *Grid) CoveredTiles(box vmath.AABB) (lo, hi Tile) {
	lo = g.WorldToTile(box.Min)
	hi = Tile{
		X: int(math.Ceil(box.Max.X/g.cellSize)) - 1,
		Y: int(math.Ceil(box.Max.Y/g.cellSize)) - 1,
	}
	if hi.X < lo.X {
		hi.X = lo.X
	}
	if hi.Y < lo.Y {
		hi.Y = lo.Y
	}
	return lo, hi
}

// WorldSize returns the world extent of the whole grid
func (g *Grid) WorldSize() vmath.Vec2 {
	return vmath.Vec2{X: float64(g.width) * g.cellSize, Y: float64(g.height) * g.cellSize}
}
