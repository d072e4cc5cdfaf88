package engine

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/facility"
	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/logger"
	"github.com/lixenwraith/lastlight/vmath"
)

// Config is the tunable behavior of a session
type Config struct {
	Facility facility.Config

	DroneMode  components.DroneMode
	DroneSpeed float64

	// TrapCap is the per-drone trap limit; 0 disables trap laying
	TrapCap         int
	TrapIntervalMin time.Duration
	TrapIntervalMax time.Duration

	GeneratorDuration time.Duration
	DoorDuration      time.Duration
}

// DefaultConfig returns stock gameplay values
func DefaultConfig() Config {
	return Config{
		Facility:          facility.DefaultConfig(),
		DroneMode:         components.DroneWaypoint,
		DroneSpeed:        constants.DroneSpeed,
		TrapCap:           constants.TrapCap,
		TrapIntervalMin:   constants.TrapIntervalMin,
		TrapIntervalMax:   constants.TrapIntervalMax,
		GeneratorDuration: constants.GeneratorDuration,
		DoorDuration:      constants.DoorDuration,
	}
}

// Session owns one playthrough: the layout, every entity, and the step pipeline.
// It is single-threaded; only the goroutine driving Step may touch it.
type Session struct {
	ID     uuid.UUID
	Config Config
	Layout *facility.Result
	Grid   *grid.Grid

	Player     components.Player
	Generators []components.Generator
	Doors      []components.Door
	Drones     []components.Drone
	Traps      []components.Trap
	Items      []components.Item

	Phase    Phase
	Tick     int64
	Elapsed  time.Duration
	Attempt  int // Incremented by Reset
	Unlocked bool
	Contact  Contact

	Events *EventQueue

	pending Outcome
	systems []System
}

// NewSession generates a facility and builds a fresh session on it.
// Only a facility that cannot host a session is an error.
func NewSession(cfg Config) (*Session, error) {
	layout, err := facility.Generate(cfg.Facility)
	if err != nil {
		return nil, fmt.Errorf("session setup: %w", err)
	}
	return NewSessionFromLayout(cfg, layout), nil
}

// NewSessionFromLayout builds a session on an existing layout
func NewSessionFromLayout(cfg Config, layout *facility.Result) *Session {
	s := &Session{
		ID:     uuid.New(),
		Config: cfg,
		Layout: layout,
		Grid:   layout.Grid,
		Events: NewEventQueue(),
	}
	s.build()

	logger.Log.WithFields(logrus.Fields{
		"session":    s.ID.String(),
		"seed":       layout.Seed,
		"generators": len(s.Generators),
		"doors":      len(s.Doors),
		"drone_mode": cfg.DroneMode.String(),
	}).Info("session created")

	return s
}

// AddSystem installs a pipeline stage, keeping the pipeline sorted by priority
func (s *Session) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
	slices.SortStableFunc(s.systems, func(a, b System) int {
		return cmp.Compare(a.Priority(), b.Priority())
	})
}

// Systems returns the installed pipeline in execution order
func (s *Session) Systems() []System {
	return s.systems
}

// Step advances the simulation by dt and returns the step's outcome.
// A finished session ignores further steps until Reset.
func (s *Session) Step(dt time.Duration, in Input) Outcome {
	if s.Phase.Terminal() {
		return Outcome{}
	}
	if dt < 0 {
		dt = 0
	}

	s.Tick++
	s.Elapsed += dt
	s.pending = Outcome{}

	for _, sys := range s.systems {
		sys.Update(s, in, dt)
	}
	return s.pending
}

// Raise records an outcome for the current step, keeping the highest-priority one.
// Won and Lost also end the session; Lost overrides Won within a step.
func (s *Session) Raise(o Outcome) {
	if o.Kind > s.pending.Kind {
		s.pending = o
	}
	switch o.Kind {
	case OutcomeLost:
		s.Phase = PhaseLost
	case OutcomeWon:
		if s.Phase == PhasePlaying {
			s.Phase = PhaseWon
		}
	}
}

// Emit pushes an event stamped with the current tick
func (s *Session) Emit(t EventType, payload any) {
	s.Events.Push(GameEvent{Type: t, Payload: payload, Tick: s.Tick})
}

// Reset rebuilds every entity from the pristine layout: timers, sticky flags,
// lock, inventory, laid traps, phase and contact memory. Pending events are dropped.
func (s *Session) Reset() {
	s.Events.Clear()
	s.build()
	s.Attempt++
	s.Emit(EventSessionReset, s.Attempt)

	logger.Log.WithFields(logrus.Fields{
		"session": s.ID.String(),
		"attempt": s.Attempt,
	}).Info("session reset")
}

// Blockers returns the footprints of entities that are solid for movement:
// unrepaired generators and unopened doors
func (s *Session) Blockers() []vmath.AABB {
	out := make([]vmath.AABB, 0, len(s.Generators)+len(s.Doors))
	for i := range s.Generators {
		if s.Generators[i].Blocking() {
			out = append(out, s.Generators[i].Bounds)
		}
	}
	for i := range s.Doors {
		if s.Doors[i].Blocking() {
			out = append(out, s.Doors[i].Bounds)
		}
	}
	return out
}

// GeneratorsComplete counts repaired generators
func (s *Session) GeneratorsComplete() int {
	n := 0
	for i := range s.Generators {
		if s.Generators[i].Complete() {
			n++
		}
	}
	return n
}

func (s *Session) build() {
	cfg := s.Config
	g := s.Grid
	cell := g.CellSize()
	layout := s.Layout

	s.Phase = PhasePlaying
	s.Tick = 0
	s.Elapsed = 0
	s.Unlocked = false
	s.Contact = Contact{}
	s.pending = Outcome{}

	s.Player = components.NewPlayer(g.TileCenter(layout.PlayerSpawn), cell)

	s.Generators = make([]components.Generator, 0, len(layout.Generators))
	for _, t := range layout.Generators {
		s.Generators = append(s.Generators, components.NewGenerator(t, g.TileBounds(t), cfg.GeneratorDuration))
	}

	s.Doors = make([]components.Door, 0, len(layout.Exits))
	for _, t := range layout.Exits {
		s.Doors = append(s.Doors, components.NewDoor(t, g.TileBounds(t), cfg.DoorDuration))
	}

	s.Items = make([]components.Item, 0, len(layout.Items))
	for i, t := range layout.Items {
		s.Items = append(s.Items, components.Item{
			Type:   components.ItemKinds[i%len(components.ItemKinds)],
			Tile:   t,
			Bounds: vmath.BoxAround(g.TileCenter(t), cell*constants.ItemFootprint),
		})
	}

	s.Traps = make([]components.Trap, 0, len(layout.Hazards))
	for _, t := range layout.Hazards {
		s.Traps = append(s.Traps, s.NewTrap(t, components.TrapSourceFacility))
	}

	// Same seed on every reset so a restart replays identical drone behavior
	rng := rand.New(rand.NewSource(layout.Seed + 1))
	drone := components.Drone{
		Pos:      g.TileCenter(layout.ThreatSpawn),
		Radius:   cell * constants.DroneFootprint / 2,
		Speed:    cfg.DroneSpeed,
		Mode:     cfg.DroneMode,
		Redirect: constants.DroneRedirectInterval,
		TrapCap:  cfg.TrapCap,
		TrapMin:  cfg.TrapIntervalMin,
		TrapMax:  cfg.TrapIntervalMax,
		Rng:      rng,
	}
	drone.RollHeading()
	drone.RollTrapTimer()
	s.Drones = []components.Drone{drone}
}

// NewTrap builds a trap footprint centered on tile t
func (s *Session) NewTrap(t grid.Tile, source int) components.Trap {
	return components.Trap{
		Tile:   t,
		Bounds: vmath.BoxAround(s.Grid.TileCenter(t), s.Grid.CellSize()*constants.TrapFootprint),
		Source: source,
	}
}
