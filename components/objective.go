package components

import (
	"time"

	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/vmath"
)

// Generator is a repair objective. It blocks movement until repaired.
type Generator struct {
	Tile     grid.Tile
	Bounds   vmath.AABB // Full tile footprint
	Progress Progress
}

func NewGenerator(t grid.Tile, bounds vmath.AABB, d time.Duration) Generator {
	return Generator{Tile: t, Bounds: bounds, Progress: NewProgress(d)}
}

func (g *Generator) Complete() bool {
	return g.Progress.Complete()
}

// Blocking reports whether the generator is solid for movement
func (g *Generator) Blocking() bool {
	return !g.Complete()
}

// Advance progresses repair; returns true on the completing call
func (g *Generator) Advance(dt time.Duration) bool {
	return g.Progress.Advance(dt)
}

// Door is an exit. It accumulates progress only while Openable and becomes
// permanently open once progress completes.
type Door struct {
	Tile     grid.Tile
	Bounds   vmath.AABB
	Progress Progress

	// Openable is driven by the gating recomputation (all generators complete)
	Openable bool
}

func NewDoor(t grid.Tile, bounds vmath.AABB, d time.Duration) Door {
	return Door{Tile: t, Bounds: bounds, Progress: NewProgress(d)}
}

func (d *Door) Open() bool {
	return d.Progress.Complete()
}

func (d *Door) Blocking() bool {
	return !d.Open()
}

// Advance progresses opening; a no-op while not openable or already open
func (d *Door) Advance(dt time.Duration) bool {
	if !d.Openable {
		return false
	}
	return d.Progress.Advance(dt)
}
