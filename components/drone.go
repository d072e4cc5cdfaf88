package components

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/vmath"
)

// DroneMode selects the patrol state machine
type DroneMode uint8

const (
	// DroneWaypoint walks tile to tile, picking a random walkable neighbor on arrival
	DroneWaypoint DroneMode = iota

	// DroneBounce travels in a straight heading and reflects off walls
	DroneBounce
)

func (m DroneMode) String() string {
	if m == DroneBounce {
		return "bounce"
	}
	return "waypoint"
}

// ParseDroneMode accepts "waypoint" or "bounce" (case-insensitive)
func ParseDroneMode(s string) (DroneMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "waypoint":
		return DroneWaypoint, nil
	case "bounce":
		return DroneBounce, nil
	default:
		return DroneWaypoint, fmt.Errorf("unknown drone mode %q", s)
	}
}

// Drone is a roaming threat. Contact with an unshielded player is fatal.
type Drone struct {
	Pos    vmath.Vec2
	Radius float64
	Speed  float64
	Mode   DroneMode

	// Bounce mode
	Dir      vmath.Vec2    // Unit heading
	Redirect time.Duration // Until the next random heading

	// Waypoint mode
	Target    grid.Tile
	HasTarget bool

	// Trap laying (disabled when TrapCap is 0)
	TrapTimer time.Duration
	TrapsLaid int
	TrapCap   int
	TrapMin   time.Duration
	TrapMax   time.Duration

	Rng *rand.Rand
}

// RollTrapTimer draws the next trap countdown uniformly from [TrapMin, TrapMax]
func (d *Drone) RollTrapTimer() {
	span := d.TrapMax - d.TrapMin
	if span <= 0 {
		d.TrapTimer = d.TrapMin
		return
	}
	d.TrapTimer = d.TrapMin + time.Duration(d.Rng.Int63n(int64(span)+1))
}

// RollHeading picks one of the eight compass headings at random
func (d *Drone) RollHeading() {
	h := grid.Dirs8[d.Rng.Intn(len(grid.Dirs8))]
	d.Dir = vmath.Vec2{X: float64(h.X), Y: float64(h.Y)}.Normalize()
}

// CanLay reports whether the trap cap still allows another trap
func (d *Drone) CanLay() bool {
	return d.TrapsLaid < d.TrapCap
}
