package systems

import (
	"time"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/vmath"
)

// ResourceSystem ticks the flashlight battery and the timed item effects
// Priority: 50 (last in the step)
type ResourceSystem struct{}

// NewResourceSystem creates a new resource system
func NewResourceSystem() *ResourceSystem {
	return &ResourceSystem{}
}

// Priority returns the system's priority
func (s *ResourceSystem) Priority() int {
	return constants.PriorityResource
}

// Update drains or recharges the battery and counts effects down
func (s *ResourceSystem) Update(sess *engine.Session, in engine.Input, dt time.Duration) {
	p := &sess.Player
	secs := dt.Seconds()

	p.ShieldRemaining = countdown(p.ShieldRemaining, dt)
	p.SpeedRemaining = countdown(p.SpeedRemaining, dt)

	// A step that ends the lockout still does not recharge
	locked := p.Light.Lockout > 0
	p.Light.Lockout = countdown(p.Light.Lockout, dt)

	p.Light.On = in.Flashlight && p.Light.Lockout == 0 && p.Battery > 0
	if p.Light.On {
		p.Battery -= constants.BatteryDrainPerSecond * secs
		p.Light.Radius += constants.LightRadiusRate * secs
		if p.Battery <= 0 {
			p.Battery = 0
			p.Light.On = false
			p.Light.Lockout = constants.FlashlightLockout
			sess.Emit(engine.EventFlashlightDepleted, nil)
		}
	} else {
		if !locked {
			p.Battery += constants.BatteryRechargePerSecond * secs
		}
		p.Light.Radius -= constants.LightRadiusRate * secs
	}

	p.Battery = vmath.Clamp(p.Battery, 0, constants.BatteryMax)
	p.Light.Radius = vmath.Clamp(p.Light.Radius, constants.LightRadiusMin, constants.LightRadiusMax)
}

func countdown(d, dt time.Duration) time.Duration {
	d -= dt
	if d < 0 {
		return 0
	}
	return d
}
