package systems

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/logger"
	"github.com/lixenwraith/lastlight/physics"
	"github.com/lixenwraith/lastlight/vmath"
)

// InteractionSystem arbitrates the player's interaction lock and movement.
// While the lock holds a target the player does not move; while idle the
// player moves and nothing progresses.
// Priority: 10 (first in the step)
type InteractionSystem struct{}

// NewInteractionSystem creates a new interaction system
func NewInteractionSystem() *InteractionSystem {
	return &InteractionSystem{}
}

// Priority returns the system's priority
func (s *InteractionSystem) Priority() int {
	return constants.PriorityInteraction
}

// Update applies inventory triggers, then either interaction or movement
func (s *InteractionSystem) Update(sess *engine.Session, in engine.Input, dt time.Duration) {
	p := &sess.Player

	for i, use := range in.UseSlot {
		if !use {
			continue
		}
		if used := p.UseSlot(i); used != components.ItemNone {
			sess.Emit(engine.EventItemUsed, used)
		}
	}

	if !in.Interact {
		p.Lock.Release()
		s.move(sess, in, dt)
		return
	}

	if p.Lock.Idle() {
		s.acquire(sess)
	}
	if !p.Lock.Idle() {
		s.advance(sess, dt)
		return
	}
	s.move(sess, in, dt)
}

// acquire scans generators before doors and locks onto the first eligible target
// inside the square proximity window
func (s *InteractionSystem) acquire(sess *engine.Session) {
	p := &sess.Player
	reach := sess.Grid.CellSize()

	for i := range sess.Generators {
		g := &sess.Generators[i]
		if !g.Complete() && vmath.WithinSquare(p.Pos, g.Bounds.Center(), reach) {
			p.Lock.AcquireGenerator(i)
			return
		}
	}
	for i := range sess.Doors {
		d := &sess.Doors[i]
		if d.Openable && !d.Open() && vmath.WithinSquare(p.Pos, d.Bounds.Center(), reach) {
			p.Lock.AcquireDoor(i)
			return
		}
	}
}

// advance progresses the locked target. An ineligible target is a silent no-op.
func (s *InteractionSystem) advance(sess *engine.Session, dt time.Duration) {
	lock := sess.Player.Lock

	switch lock.State {
	case components.LockGenerator:
		if lock.Target >= len(sess.Generators) {
			return
		}
		if sess.Generators[lock.Target].Advance(dt) {
			sess.Emit(engine.EventGeneratorCompleted, lock.Target)
			logger.Log.WithFields(logrus.Fields{
				"session":   sess.ID.String(),
				"generator": lock.Target,
				"done":      sess.GeneratorsComplete(),
			}).Debug("generator repaired")
		}
	case components.LockDoor:
		if lock.Target >= len(sess.Doors) {
			return
		}
		if sess.Doors[lock.Target].Advance(dt) {
			sess.Emit(engine.EventDoorOpened, lock.Target)
			logger.Log.WithFields(logrus.Fields{
				"session": sess.ID.String(),
				"door":    lock.Target,
			}).Debug("door opened")
		}
	}
}

// move resolves the intent vector through the collision resolver
func (s *InteractionSystem) move(sess *engine.Session, in engine.Input, dt time.Duration) {
	dir := in.Move.Normalize()
	if dir.IsZero() || dt <= 0 {
		return
	}
	p := &sess.Player
	delta := dir.Scale(p.Speed(in.Sprint) * dt.Seconds())
	p.Pos, _ = physics.TryMove(p.Pos, p.Radius, delta, sess.Grid, sess.Blockers())
}
