package modes

import (
	"time"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/vmath"
)

// Controller turns discrete key presses into the held per-step engine.Input.
// Movement and hold actions latch until their window lapses; item slots fire
// once on the next Input call.
type Controller struct {
	up, down, left, right time.Time
	interact              time.Time
	flashlight            time.Time
	sprint                time.Time
	slots                 [constants.InventorySlots]bool
}

// Press records an action at now
func (c *Controller) Press(a Action, sprint bool, now time.Time) {
	switch a {
	case ActionUp:
		c.up = now
	case ActionDown:
		c.down = now
	case ActionLeft:
		c.left = now
	case ActionRight:
		c.right = now
	case ActionInteract:
		c.interact = now
	case ActionFlashlight:
		c.flashlight = now
	case ActionSlot1:
		c.slots[0] = true
	case ActionSlot2:
		c.slots[1] = true
	case ActionSlot3:
		c.slots[2] = true
	}
	if sprint {
		c.sprint = now
	}
}

// Input builds the step input at now and clears one-shot triggers
func (c *Controller) Input(now time.Time) engine.Input {
	held := func(at time.Time, window time.Duration) bool {
		return !at.IsZero() && now.Sub(at) < window
	}

	var move vmath.Vec2
	if held(c.up, constants.MoveWindow) {
		move.Y++
	}
	if held(c.down, constants.MoveWindow) {
		move.Y--
	}
	if held(c.left, constants.MoveWindow) {
		move.X--
	}
	if held(c.right, constants.MoveWindow) {
		move.X++
	}

	in := engine.Input{
		Move:       move,
		Interact:   held(c.interact, constants.HoldWindow),
		Flashlight: held(c.flashlight, constants.HoldWindow),
		Sprint:     held(c.sprint, constants.MoveWindow),
		UseSlot:    c.slots,
	}
	c.slots = [constants.InventorySlots]bool{}
	return in
}

// Release drops every latched action, used when play is suspended
func (c *Controller) Release() {
	*c = Controller{}
}
