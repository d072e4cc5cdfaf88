package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(10, 10, 14)
	RgbWall       = tcell.NewRGBColor(90, 90, 110)
	RgbFloor      = tcell.NewRGBColor(45, 45, 55)
	RgbFloorLit   = tcell.NewRGBColor(70, 70, 60) // Inside the widened flashlight

	RgbPlayer         = tcell.NewRGBColor(255, 255, 255)
	RgbPlayerShielded = tcell.NewRGBColor(100, 200, 255)
	RgbDrone          = tcell.NewRGBColor(255, 60, 60)
	RgbTrap           = tcell.NewRGBColor(255, 140, 0)

	RgbGeneratorIdle = tcell.NewRGBColor(200, 200, 0)
	RgbGeneratorDone = tcell.NewRGBColor(50, 255, 50)
	RgbDoorLocked    = tcell.NewRGBColor(150, 50, 50)
	RgbDoorOpenable  = tcell.NewRGBColor(255, 200, 80)
	RgbDoorOpen      = tcell.NewRGBColor(50, 255, 50)

	RgbItemShield  = tcell.NewRGBColor(100, 200, 255)
	RgbItemSpeed   = tcell.NewRGBColor(255, 192, 203)
	RgbItemBattery = tcell.NewRGBColor(255, 255, 0)

	RgbStatusText  = tcell.NewRGBColor(0, 0, 0)
	RgbStatusBar   = tcell.NewRGBColor(220, 220, 220)
	RgbBatteryHigh = tcell.NewRGBColor(50, 200, 50)
	RgbBatteryLow  = tcell.NewRGBColor(200, 50, 50)
	RgbBarEmpty    = tcell.NewRGBColor(40, 40, 40)
	RgbMenuText    = tcell.NewRGBColor(255, 255, 255)
	RgbMenuSelect  = tcell.NewRGBColor(255, 165, 0)
)

// BatteryColor blends from low to high by level in [0,1]
func BatteryColor(level float64) tcell.Color {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	lr, lg, lb := RgbBatteryLow.RGB()
	hr, hg, hb := RgbBatteryHigh.RGB()
	mix := func(a, b int32) int32 {
		return a + int32(float64(b-a)*level)
	}
	return tcell.NewRGBColor(mix(lr, hr), mix(lg, hg), mix(lb, hb))
}

// ItemColor returns the glyph color for an item name as carried in snapshots
func ItemColor(item string) tcell.Color {
	switch item {
	case "shield":
		return RgbItemShield
	case "speed":
		return RgbItemSpeed
	case "battery":
		return RgbItemBattery
	default:
		return RgbStatusBar
	}
}
