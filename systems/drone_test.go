package systems

import (
	"testing"
	"time"

	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/physics"
	"github.com/lixenwraith/lastlight/vmath"
)

const corridorLayout = "" +
	"#######\n" +
	"#P...T#\n" +
	"#######\n"

func TestDroneNeverEntersWalls(t *testing.T) {
	modes := []struct {
		name string
		mode components.DroneMode
	}{
		{"waypoint", components.DroneWaypoint},
		{"bounce", components.DroneBounce},
	}

	for _, tc := range modes {
		t.Run(tc.name, func(t *testing.T) {
			cfg := engine.DefaultConfig()
			cfg.Facility.Seed = 99
			cfg.DroneMode = tc.mode
			sess, err := engine.NewSession(cfg)
			if err != nil {
				t.Fatalf("Expected session, got %v", err)
			}

			sys := NewDroneSystem()
			d := &sess.Drones[0]
			start := d.Pos
			world := sess.Grid.WorldSize()
			for i := 0; i < 3000; i++ {
				sys.Update(sess, engine.Input{}, 16*time.Millisecond)
				if d.Pos.X < d.Radius || d.Pos.Y < d.Radius || d.Pos.X > world.X-d.Radius || d.Pos.Y > world.Y-d.Radius {
					t.Fatalf("step %d: drone left the grid at %+v", i, d.Pos)
				}
				if physics.CollidesGrid(d.Pos, d.Radius, sess.Grid) {
					t.Fatalf("step %d: drone inside wall at %+v", i, d.Pos)
				}
				if physics.CollidesBlockers(d.Pos, d.Radius, sess.Blockers()) {
					t.Fatalf("step %d: drone inside blocker at %+v", i, d.Pos)
				}
			}
			if d.Pos == start {
				t.Error("Expected drone to move")
			}
		})
	}
}

func TestDroneBounceReflects(t *testing.T) {
	sess := newTestSession(t, corridorLayout, func(c *engine.Config) {
		c.DroneMode = components.DroneBounce
		c.DroneSpeed = 60
	})
	d := &sess.Drones[0]
	d.Pos = vmath.Vec2{X: 355, Y: 96}
	d.Dir = vmath.Vec2{X: 1}
	d.Redirect = time.Hour

	NewDroneSystem().Update(sess, engine.Input{}, 100*time.Millisecond)

	if d.Dir.X >= 0 {
		t.Errorf("Expected reflected heading, got %+v", d.Dir)
	}
	if d.Pos.X+d.Radius > 384 {
		t.Errorf("Expected drone short of the wall, got x=%v", d.Pos.X)
	}
}

func TestDroneWaypointFollowsCorridor(t *testing.T) {
	sess := newTestSession(t, corridorLayout, func(c *engine.Config) {
		c.DroneSpeed = 60
	})
	d := &sess.Drones[0]
	sys := NewDroneSystem()

	for i := 0; i < 500; i++ {
		sys.Update(sess, engine.Input{}, 16*time.Millisecond)
		if d.Pos.Y != 96 {
			t.Fatalf("step %d: Expected drone on the corridor row, got y=%v", i, d.Pos.Y)
		}
	}
	if d.HasTarget && !sess.Grid.IsFloor(d.Target) {
		t.Errorf("Expected floor target, got %+v", d.Target)
	}
}

func TestDroneLaysTrapsUpToCap(t *testing.T) {
	sess := newTestSession(t, corridorLayout, func(c *engine.Config) {
		c.TrapCap = 2
		c.TrapIntervalMin = time.Second
		c.TrapIntervalMax = time.Second
	})
	d := &sess.Drones[0]
	sys := NewDroneSystem()

	sys.Update(sess, engine.Input{}, time.Second)
	if len(sess.Traps) != 1 || sess.Traps[0].Source != 0 {
		t.Fatalf("Expected one drone trap, got %+v", sess.Traps)
	}

	// Same tile again: skipped, not counted
	sys.Update(sess, engine.Input{}, time.Second)
	if len(sess.Traps) != 1 || d.TrapsLaid != 1 {
		t.Errorf("Expected duplicate tile skipped, got %d traps", len(sess.Traps))
	}

	d.Pos = vmath.Vec2{X: 288, Y: 96}
	sys.Update(sess, engine.Input{}, time.Second)
	d.Pos = vmath.Vec2{X: 224, Y: 96}
	sys.Update(sess, engine.Input{}, time.Second)

	if len(sess.Traps) != 2 || d.TrapsLaid != 2 {
		t.Errorf("Expected cap of 2 traps, got %d", len(sess.Traps))
	}
	if n := countEvents(sess.Events.Consume(), engine.EventTrapLaid); n != 2 {
		t.Errorf("Expected 2 TrapLaid events, got %d", n)
	}
}

func TestDroneTrapsDisabledAtZeroCap(t *testing.T) {
	sess := newTestSession(t, corridorLayout, nil)
	sys := NewDroneSystem()
	for i := 0; i < 60; i++ {
		sys.Update(sess, engine.Input{}, time.Second)
	}
	if len(sess.Traps) != 0 {
		t.Errorf("Expected no traps, got %d", len(sess.Traps))
	}
}
