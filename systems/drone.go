package systems

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/logger"
	"github.com/lixenwraith/lastlight/physics"
	"github.com/lixenwraith/lastlight/vmath"
)

// DroneSystem drives threat patrols and trap laying. All movement goes through
// the collision resolver, so drones never cross walls, never leave the grid and
// treat unrepaired generators and closed doors as solid.
// Priority: 20 (after player interaction/movement, before outcome checks)
type DroneSystem struct{}

// NewDroneSystem creates a new drone system
func NewDroneSystem() *DroneSystem {
	return &DroneSystem{}
}

// Priority returns the system's priority
func (s *DroneSystem) Priority() int {
	return constants.PriorityDrone
}

// Update moves every drone by its mode, then runs its trap countdown
func (s *DroneSystem) Update(sess *engine.Session, in engine.Input, dt time.Duration) {
	if dt <= 0 {
		return
	}
	blockers := sess.Blockers()

	for i := range sess.Drones {
		d := &sess.Drones[i]
		switch d.Mode {
		case components.DroneBounce:
			s.bounce(sess, d, blockers, dt)
		default:
			s.walk(sess, d, blockers, dt)
		}
		s.layTrap(sess, i, dt)
	}
}

// bounce travels along the heading and reflects the blocked axis component.
// The heading is also re-rolled on a fixed interval.
func (s *DroneSystem) bounce(sess *engine.Session, d *components.Drone, blockers []vmath.AABB, dt time.Duration) {
	d.Redirect -= dt
	if d.Redirect <= 0 {
		d.RollHeading()
		d.Redirect = constants.DroneRedirectInterval
	}

	delta := d.Dir.Scale(d.Speed * dt.Seconds())
	var res physics.MoveResult
	d.Pos, res = physics.TryMove(d.Pos, d.Radius, delta, sess.Grid, blockers)
	if res.BlockedX {
		d.Dir.X = -d.Dir.X
	}
	if res.BlockedY {
		d.Dir.Y = -d.Dir.Y
	}
}

// walk heads for the target tile center and picks a new random neighbor on arrival
func (s *DroneSystem) walk(sess *engine.Session, d *components.Drone, blockers []vmath.AABB, dt time.Duration) {
	g := sess.Grid
	if !d.HasTarget {
		s.pickTarget(g, d, blockers)
		if !d.HasTarget {
			return
		}
	}

	center := g.TileCenter(d.Target)
	next := vmath.MoveToward(d.Pos, center, d.Speed*dt.Seconds())

	var res physics.MoveResult
	d.Pos, res = physics.TryMove(d.Pos, d.Radius, next.Sub(d.Pos), g, blockers)
	if res.Blocked() {
		// Path obstructed since the target was chosen; choose again next step
		d.HasTarget = false
		return
	}

	if vmath.Dist(d.Pos, center) <= constants.DroneArrivalEpsilon {
		d.Pos = center
		s.pickTarget(g, d, blockers)
	}
}

// pickTarget shuffles the four directions and takes the first walkable,
// unobstructed neighbor of the drone's tile. None leaves the drone in place.
func (s *DroneSystem) pickTarget(g *grid.Grid, d *components.Drone, blockers []vmath.AABB) {
	here := g.WorldToTile(d.Pos)
	dirs := grid.Dirs4
	d.Rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

	d.HasTarget = false
	for _, dir := range dirs {
		n := here.Add(dir)
		if !g.IsFloor(n) {
			continue
		}
		if physics.CollidesBlockers(g.TileCenter(n), d.Radius, blockers) {
			continue
		}
		d.Target, d.HasTarget = n, true
		return
	}
}

// layTrap counts down and drops a trap on the drone's tile while under the cap.
// A tile that already holds a trap is skipped; the countdown re-rolls either way.
func (s *DroneSystem) layTrap(sess *engine.Session, idx int, dt time.Duration) {
	d := &sess.Drones[idx]
	if d.TrapCap <= 0 || !d.CanLay() {
		return
	}

	d.TrapTimer -= dt
	if d.TrapTimer > 0 {
		return
	}
	d.RollTrapTimer()

	tile := sess.Grid.WorldToTile(d.Pos)
	for i := range sess.Traps {
		if sess.Traps[i].Tile == tile {
			return
		}
	}

	sess.Traps = append(sess.Traps, sess.NewTrap(tile, idx))
	d.TrapsLaid++
	sess.Emit(engine.EventTrapLaid, tile)

	logger.Log.WithFields(logrus.Fields{
		"session": sess.ID.String(),
		"drone":   idx,
		"tile":    tile,
		"laid":    d.TrapsLaid,
	}).Debug("trap laid")
}
