package components

import (
	"github.com/lixenwraith/lastlight/grid"
	"github.com/lixenwraith/lastlight/vmath"
)

// TrapSourceFacility marks traps placed by the generator rather than a drone
const TrapSourceFacility = -1

// Trap is a static lethal hazard
type Trap struct {
	Tile   grid.Tile
	Bounds vmath.AABB
	Source int // Index of the laying drone, or TrapSourceFacility
}

// ItemType identifies a pickup and the effect it grants when used
type ItemType uint8

const (
	// ItemNone marks an empty inventory slot
	ItemNone ItemType = iota

	// ItemShield grants a window of invulnerability
	ItemShield

	// ItemSpeedBoost multiplies movement speed for a window
	ItemSpeedBoost

	// ItemBatteryRefill restores the flashlight battery instantly
	ItemBatteryRefill
)

// ItemKinds lists the real pickups in placement rotation order
var ItemKinds = [3]ItemType{ItemShield, ItemSpeedBoost, ItemBatteryRefill}

func (t ItemType) String() string {
	switch t {
	case ItemShield:
		return "shield"
	case ItemSpeedBoost:
		return "speed"
	case ItemBatteryRefill:
		return "battery"
	default:
		return "none"
	}
}

// Item is a pickup lying in the world
type Item struct {
	Type   ItemType
	Tile   grid.Tile
	Bounds vmath.AABB
}
