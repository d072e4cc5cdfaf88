// Package grid holds the static tile layout of a facility.
//
// Storage is row-major top-to-bottom while world Y grows upward. Every
// conversion between the two goes through the helpers in coords.go.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Cell is the kind of a single tile
type Cell uint8

const (
	Wall Cell = iota
	Floor
)

// ErrBadLayout is returned when a textual layout is empty or ragged
var ErrBadLayout = errors.New("grid: malformed layout")

// Grid is the tile layout. It is only mutated by the facility generator and
// is shared read-only once a session owns it.
type Grid struct {
	cells    [][]Cell // [row][col], row 0 is the top of the map
	width    int
	height   int
	cellSize float64
}

// New creates an all-wall grid
func New(width, height int, cellSize float64) *Grid {
	cells := make([][]Cell, height)
	for r := range cells {
		cells[r] = make([]Cell, width) // Wall is the zero value
	}
	return &Grid{
		cells:    cells,
		width:    width,
		height:   height,
		cellSize: cellSize,
	}
}

// Parse builds a grid from text rows, top row first. '#' is wall, anything else is floor.
func Parse(rows []string, cellSize float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadLayout
	}
	width := len(rows[0])
	g := New(width, len(rows), cellSize)
	for r, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrBadLayout, r, len(line), width)
		}
		for c := 0; c < width; c++ {
			if line[c] != '#' {
				g.cells[r][c] = Floor
			}
		}
	}
	return g, nil
}

// MustParse is Parse for fixtures known to be valid
func MustParse(rows []string, cellSize float64) *Grid {
	g, err := Parse(rows, cellSize)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int        { return g.width }
func (g *Grid) Height() int       { return g.height }
func (g *Grid) CellSize() float64 { return g.cellSize }

// InBounds reports whether t is a valid tile
func (g *Grid) InBounds(t Tile) bool {
	return t.X >= 0 && t.X < g.width && t.Y >= 0 && t.Y < g.height
}

// At returns the cell kind of t; out-of-bounds tiles read as Wall
func (g *Grid) At(t Tile) Cell {
	if !g.InBounds(t) {
		return Wall
	}
	return g.cells[g.RowOf(t.Y)][t.X]
}

// IsWall reports whether the tile blocks movement; true for out-of-bounds
func (g *Grid) IsWall(tx, ty int) bool {
	return g.At(Tile{tx, ty}) == Wall
}

// IsFloor is the negation of IsWall
func (g *Grid) IsFloor(t Tile) bool {
	return g.At(t) == Floor
}

// Set changes a tile; out-of-bounds writes are ignored
func (g *Grid) Set(t Tile, c Cell) {
	if !g.InBounds(t) {
		return
	}
	g.cells[g.RowOf(t.Y)][t.X] = c
}

// CellAt reads by storage coordinates, row 0 at the top
func (g *Grid) CellAt(row, col int) Cell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return Wall
	}
	return g.cells[row][col]
}

// Neighbors4 returns the in-bounds orthogonal neighbors of t
func (g *Grid) Neighbors4(t Tile) []Tile {
	out := make([]Tile, 0, 4)
	for _, d := range Dirs4 {
		n := t.Add(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// FloorNeighbors4 returns the orthogonal neighbors of t that are Floor
func (g *Grid) FloorNeighbors4(t Tile) []Tile {
	out := make([]Tile, 0, 4)
	for _, d := range Dirs4 {
		n := t.Add(d)
		if g.IsFloor(n) {
			out = append(out, n)
		}
	}
	return out
}

// FloodFill returns every Floor tile 4-connected to start. Empty if start is a wall.
func (g *Grid) FloodFill(start Tile) mapset.Set[Tile] {
	visited := mapset.New[Tile]()
	if !g.IsFloor(start) {
		return visited
	}

	queue := []Tile{start}
	visited.Put(start)
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, n := range g.FloorNeighbors4(curr) {
			if !visited.Has(n) {
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// FloorCount returns the number of Floor tiles
func (g *Grid) FloorCount() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == Floor {
				n++
			}
		}
	}
	return n
}

// FloorTiles lists Floor tiles in raster order (top row first, left to right)
func (g *Grid) FloorTiles() []Tile {
	out := make([]Tile, 0, g.width*g.height/2)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if g.cells[r][c] == Floor {
				out = append(out, g.TileAt(r, c))
			}
		}
	}
	return out
}

// Clone returns an independent copy
func (g *Grid) Clone() *Grid {
	cp := New(g.width, g.height, g.cellSize)
	for r := range g.cells {
		copy(cp.cells[r], g.cells[r])
	}
	return cp
}

// String renders the grid with '#' for walls and '.' for floor, top row first
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			if g.cells[r][c] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
