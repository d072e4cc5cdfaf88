// Package facility generates the tile layout and entity placements of a level.
package facility

import (
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/logger"
)

// ErrNoFloor means carving produced no floor at all; the facility cannot host a session
var ErrNoFloor = errors.New("facility: no floor cells")

type Config struct {
	Width, Height int

	// CorridorWidth is the thickness of carved corridors in tiles (>= 1)
	CorridorWidth int

	// Margin is the solid wall band kept around the layout (>= 1)
	Margin int

	CellSize float64

	Generators int
	Items      int
	Hazards    int

	// MaxAttempts bounds each rejection-sampling placement (0 = default)
	MaxAttempts int

	Seed int64 // Optional (0 = Random)
}

// DefaultConfig returns the stock facility dimensions and counts
func DefaultConfig() Config {
	return Config{
		Width:         constants.DefaultFacilityWidth,
		Height:        constants.DefaultFacilityHeight,
		CorridorWidth: constants.DefaultCorridorWidth,
		Margin:        constants.DefaultMargin,
		CellSize:      constants.CellSize,
		Generators:    constants.DefaultGenerators,
		Items:         constants.DefaultItems,
		Hazards:       constants.DefaultHazards,
		MaxAttempts:   constants.MaxPlacementAttempts,
	}
}

type Result struct {
	Grid *grid.Grid
	Seed int64

	PlayerSpawn grid.Tile
	ThreatSpawn grid.Tile

	// Exits holds zero to two door tiles: top row first, then bottom row
	Exits      []grid.Tile
	Generators []grid.Tile
	Items      []grid.Tile
	Hazards    []grid.Tile
}

// node is a lattice point in storage coordinates (row 0 at the top)
type node struct {
	row, col int
}

// Generate carves a connected facility and places its markers.
// Only ErrNoFloor is returned; placement shortfalls are logged and tolerated.
func Generate(cfg Config) (*Result, error) {
	cfg = normalize(cfg)

	// 1. RNG Setup
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 2. Topology: round DOWN so the lattice fills the grid exactly
	step := 2 * cfg.CorridorWidth
	rows := fitLattice(cfg.Height, cfg.Margin, cfg.CorridorWidth, step)
	cols := fitLattice(cfg.Width, cfg.Margin, cfg.CorridorWidth, step)

	// 3. All walls, then carve
	g := grid.New(cols, rows, cfg.CellSize)
	carve(g, cfg, step, rng)

	floors := g.FloorTiles()
	if len(floors) == 0 {
		return nil, ErrNoFloor
	}

	res := &Result{Grid: g, Seed: seed}
	occupied := mapset.New[grid.Tile]()
	log := logger.Log.WithFields(logrus.Fields{"seed": seed, "width": cols, "height": rows})

	// 4. Exits on the first and last inner rows
	for _, row := range []int{cfg.Margin, rows - 1 - cfg.Margin} {
		exit, ok := pickExit(g, row, rng)
		if !ok {
			log.WithField("row", row).Warn("no exit candidate, skipping")
			continue
		}
		if occupied.Has(exit) {
			continue
		}
		occupied.Put(exit)
		res.Exits = append(res.Exits, exit)
	}

	// 5. Spawns: raster order for the player, reverse for the threat
	res.PlayerSpawn = firstFree(floors, occupied, false)
	res.ThreatSpawn = firstFree(floors, occupied, true)
	occupied.Put(res.PlayerSpawn)
	occupied.Put(res.ThreatSpawn)

	// 6. Markers
	p := placer{g: g, floors: floors, occupied: occupied, rng: rng, attempts: cfg.MaxAttempts}

	res.Generators = p.place(cfg.Generators, func(t grid.Tile) bool {
		return len(g.FloorNeighbors4(t)) > 0
	})
	res.Items = p.place(cfg.Items, nil)

	// Accepted tiles join the hazard set so later samples see them
	hazards := mapset.New[grid.Tile]()
	res.Hazards = p.place(cfg.Hazards, func(t grid.Tile) bool {
		for _, d := range grid.Dirs8 {
			if hazards.Has(t.Add(d)) {
				return false
			}
		}
		hazards.Put(t)
		return true
	})

	report := []struct {
		kind      string
		want, got int
	}{
		{"generators", cfg.Generators, len(res.Generators)},
		{"items", cfg.Items, len(res.Items)},
		{"hazards", cfg.Hazards, len(res.Hazards)},
	}
	for _, r := range report {
		if r.got < r.want {
			log.WithFields(logrus.Fields{"kind": r.kind, "wanted": r.want, "placed": r.got}).
				Warn("placement exhausted")
		}
	}

	log.WithFields(logrus.Fields{
		"floors":     len(floors),
		"exits":      len(res.Exits),
		"generators": len(res.Generators),
	}).Debug("facility generated")

	return res, nil
}

// --- Core Algorithm ---

// carve runs a randomized-frontier spanning carve over the corridor lattice.
// Frontier pops are uniform random so corridors carry no directional bias.
func carve(g *grid.Grid, cfg Config, step int, rng *rand.Rand) {
	rows, cols := g.Height(), g.Width()
	cw, m := cfg.CorridorWidth, cfg.Margin

	inBounds := func(n node) bool {
		return n.row >= m && n.col >= m && n.row+cw <= rows-m && n.col+cw <= cols-m
	}

	if rows < 2*m+cw || cols < 2*m+cw {
		return
	}

	latticeCols := (cols-2*m-cw)/step + 1
	seed := node{row: m, col: m + rng.Intn(latticeCols)*step}

	carveBlock(g, seed, seed, cw)
	frontier := []node{seed}

	dirs := []node{{-step, 0}, {step, 0}, {0, -step}, {0, step}}

	for len(frontier) > 0 {
		// Random pop (swap-remove)
		i := rng.Intn(len(frontier))
		curr := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		for _, d := range dirs {
			probe := node{curr.row + d.row, curr.col + d.col}
			if !inBounds(probe) {
				continue
			}
			if g.CellAt(probe.row, probe.col) != grid.Wall {
				continue
			}
			carveBlock(g, curr, probe, cw)
			frontier = append(frontier, probe)
		}
	}
}

// carveBlock opens the cw-thick rectangle spanning nodes a and b
func carveBlock(g *grid.Grid, a, b node, cw int) {
	r0, r1 := min(a.row, b.row), max(a.row, b.row)+cw
	c0, c1 := min(a.col, b.col), max(a.col, b.col)+cw
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			g.Set(g.TileAt(r, c), grid.Floor)
		}
	}
}

// --- Placement ---

type placer struct {
	g        *grid.Grid
	floors   []grid.Tile
	occupied mapset.Set[grid.Tile]
	rng      *rand.Rand
	attempts int
}

// place rejection-samples count free floor tiles satisfying accept (nil = any).
// Each marker gets its own attempt budget; an exhausted budget stops placement early.
func (p *placer) place(count int, accept func(grid.Tile) bool) []grid.Tile {
	out := make([]grid.Tile, 0, count)
	for len(out) < count {
		t, ok := p.sample(accept)
		if !ok {
			break
		}
		p.occupied.Put(t)
		out = append(out, t)
	}
	return out
}

func (p *placer) sample(accept func(grid.Tile) bool) (grid.Tile, bool) {
	for i := 0; i < p.attempts; i++ {
		t := p.floors[p.rng.Intn(len(p.floors))]
		if p.occupied.Has(t) {
			continue
		}
		if accept != nil && !accept(t) {
			continue
		}
		return t, true
	}
	return grid.Tile{}, false
}

// --- Helpers ---

// pickExit chooses a random floor cell in storage row; false if the row has none
func pickExit(g *grid.Grid, row int, rng *rand.Rand) (grid.Tile, bool) {
	candidates := make([]int, 0, g.Width())
	for c := 0; c < g.Width(); c++ {
		if g.CellAt(row, c) == grid.Floor {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return grid.Tile{}, false
	}
	return g.TileAt(row, candidates[rng.Intn(len(candidates))]), true
}

// firstFree scans floors (raster order) forward or backward for the first unoccupied tile.
// Falls back to the first/last floor when every tile is taken.
func firstFree(floors []grid.Tile, occupied mapset.Set[grid.Tile], reverse bool) grid.Tile {
	n := len(floors)
	for i := 0; i < n; i++ {
		idx := i
		if reverse {
			idx = n - 1 - i
		}
		if !occupied.Has(floors[idx]) {
			return floors[idx]
		}
	}
	if reverse {
		return floors[n-1]
	}
	return floors[0]
}

// fitLattice rounds n down to margin*2 + cw + k*step so lattice nodes reach both
// inner edges. Sizes too small for a single node are returned unchanged.
func fitLattice(n, margin, cw, step int) int {
	base := 2*margin + cw
	if n < base {
		return n
	}
	return base + (n-base)/step*step
}

func normalize(cfg Config) Config {
	if cfg.CorridorWidth < 1 {
		cfg.CorridorWidth = 1
	}
	if cfg.Margin < 1 {
		cfg.Margin = 1
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = constants.CellSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = constants.MaxPlacementAttempts
	}
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	return cfg
}
