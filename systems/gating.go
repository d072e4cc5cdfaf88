package systems

import (
	"time"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
)

// GatingSystem recomputes door openability: every door is openable once every
// generator is repaired. A door unlocked this step becomes interactable on the
// next step's lock scan.
// Priority: 40
type GatingSystem struct{}

// NewGatingSystem creates a new gating system
func NewGatingSystem() *GatingSystem {
	return &GatingSystem{}
}

// Priority returns the system's priority
func (s *GatingSystem) Priority() int {
	return constants.PriorityGating
}

// Update sets Openable on every door
func (s *GatingSystem) Update(sess *engine.Session, in engine.Input, dt time.Duration) {
	all := sess.GeneratorsComplete() == len(sess.Generators)
	for i := range sess.Doors {
		sess.Doors[i].Openable = all
	}

	if all && !sess.Unlocked {
		sess.Unlocked = true
		sess.Emit(engine.EventDoorsUnlocked, len(sess.Doors))
	}
}
