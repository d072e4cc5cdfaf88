package components

import (
	"time"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/vmath"
)

// Flashlight is the player's light cone, driven by the battery
type Flashlight struct {
	Radius  float64       // Current light radius in world units
	On      bool          // Widening this tick
	Lockout time.Duration // Remaining forced-off time after the battery ran dry
}

// Player is the controlled actor
type Player struct {
	Pos    vmath.Vec2
	Radius float64

	Battery float64 // 0..BatteryMax
	Light   Flashlight
	Lock    InteractionLock

	ShieldRemaining time.Duration
	SpeedRemaining  time.Duration

	Inventory [constants.InventorySlots]ItemType
}

// NewPlayer creates a player at pos with a full battery
func NewPlayer(pos vmath.Vec2, cellSize float64) Player {
	return Player{
		Pos:     pos,
		Radius:  cellSize * constants.PlayerFootprint / 2,
		Battery: constants.BatteryMax,
		Light:   Flashlight{Radius: constants.LightRadiusMin},
	}
}

func (p *Player) Shielded() bool {
	return p.ShieldRemaining > 0
}

func (p *Player) Boosted() bool {
	return p.SpeedRemaining > 0
}

// Speed returns the movement speed in world units per second
func (p *Player) Speed(sprint bool) float64 {
	speed := constants.PlayerWalkSpeed
	if sprint {
		speed = constants.PlayerSprintSpeed
	}
	if p.Boosted() {
		speed *= constants.SpeedBoostMultiplier
	}
	return speed
}

// Bounds returns the player's footprint box
func (p *Player) Bounds() vmath.AABB {
	return vmath.CircleBounds(p.Pos, p.Radius)
}

// AddItem stores t in the first empty slot; false when the inventory is full
func (p *Player) AddItem(t ItemType) bool {
	for i, slot := range p.Inventory {
		if slot == ItemNone {
			p.Inventory[i] = t
			return true
		}
	}
	return false
}

// UseSlot applies and clears slot i, returning the consumed type.
// Empty or invalid slots return ItemNone. Effects do not stack; re-use restarts the window.
func (p *Player) UseSlot(i int) ItemType {
	if i < 0 || i >= len(p.Inventory) {
		return ItemNone
	}
	t := p.Inventory[i]
	switch t {
	case ItemShield:
		p.ShieldRemaining = constants.ShieldDuration
	case ItemSpeedBoost:
		p.SpeedRemaining = constants.SpeedBoostDuration
	case ItemBatteryRefill:
		p.Battery = constants.BatteryMax
		p.Light.Lockout = 0
	default:
		return ItemNone
	}
	p.Inventory[i] = ItemNone
	return t
}
