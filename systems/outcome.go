package systems

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/logger"
	"github.com/lixenwraith/lastlight/vmath"
)

// Contact causes carried in event payloads
const (
	CauseTrap  = "trap"
	CauseDrone = "drone"
)

// OutcomeSystem checks the player against traps, drones, open doors and items.
// Lethal contact is edge-triggered: it fires on the step an unshielded overlap
// begins, not on every step it persists.
// Priority: 30 (after all movement)
type OutcomeSystem struct{}

// NewOutcomeSystem creates a new outcome system
func NewOutcomeSystem() *OutcomeSystem {
	return &OutcomeSystem{}
}

// Priority returns the system's priority
func (s *OutcomeSystem) Priority() int {
	return constants.PriorityOutcome
}

// Update raises at most one outcome for the step
func (s *OutcomeSystem) Update(sess *engine.Session, in engine.Input, dt time.Duration) {
	p := &sess.Player
	shielded := p.Shielded()
	prev := sess.Contact

	trapHit := s.touchingTrap(sess)
	droneHit := s.touchingDrone(sess)

	sess.Contact = engine.Contact{
		Trap:          trapHit && !shielded,
		Drone:         droneHit && !shielded,
		TrapAbsorbed:  trapHit && shielded,
		DroneAbsorbed: droneHit && shielded,
	}

	if sess.Contact.TrapAbsorbed && !prev.TrapAbsorbed {
		sess.Emit(engine.EventShieldAbsorbed, CauseTrap)
	}
	if sess.Contact.DroneAbsorbed && !prev.DroneAbsorbed {
		sess.Emit(engine.EventShieldAbsorbed, CauseDrone)
	}

	cause := ""
	switch {
	case sess.Contact.Drone && !prev.Drone:
		cause = CauseDrone
	case sess.Contact.Trap && !prev.Trap:
		cause = CauseTrap
	}
	if cause != "" {
		sess.Raise(engine.Outcome{Kind: engine.OutcomeLost})
		sess.Emit(engine.EventPlayerCaught, cause)
		logger.Log.WithFields(logrus.Fields{
			"session": sess.ID.String(),
			"cause":   cause,
			"tick":    sess.Tick,
		}).Info("player caught")
		return
	}

	for i := range sess.Doors {
		d := &sess.Doors[i]
		if d.Open() && d.Bounds.Contains(p.Pos) {
			sess.Raise(engine.Outcome{Kind: engine.OutcomeWon})
			sess.Emit(engine.EventPlayerEscaped, i)
			logger.Log.WithFields(logrus.Fields{
				"session": sess.ID.String(),
				"door":    i,
				"elapsed": sess.Elapsed.String(),
			}).Info("player escaped")
			return
		}
	}

	s.collect(sess)
}

func (s *OutcomeSystem) touchingTrap(sess *engine.Session) bool {
	bounds := sess.Player.Bounds()
	for i := range sess.Traps {
		if bounds.Overlaps(sess.Traps[i].Bounds) {
			return true
		}
	}
	return false
}

func (s *OutcomeSystem) touchingDrone(sess *engine.Session) bool {
	p := &sess.Player
	for i := range sess.Drones {
		d := &sess.Drones[i]
		if vmath.CirclesOverlap(p.Pos, p.Radius, d.Pos, d.Radius) {
			return true
		}
	}
	return false
}

// collect picks up the first overlapping item that fits in the inventory.
// One pickup per step keeps events and outcomes one-to-one.
func (s *OutcomeSystem) collect(sess *engine.Session) {
	p := &sess.Player
	bounds := p.Bounds()
	for i := range sess.Items {
		it := sess.Items[i]
		if !bounds.Overlaps(it.Bounds) {
			continue
		}
		if !p.AddItem(it.Type) {
			return
		}
		sess.Items = append(sess.Items[:i], sess.Items[i+1:]...)
		sess.Raise(engine.Outcome{Kind: engine.OutcomeItemCollected, Item: it.Type})
		sess.Emit(engine.EventItemCollected, it.Type)
		return
	}
}
