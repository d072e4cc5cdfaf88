package constants

import "time"

// Glyphs used by the terminal renderer
const (
	GlyphWall      = '█'
	GlyphFloor     = '·'
	GlyphPlayer    = '@'
	GlyphDrone     = 'D'
	GlyphTrap      = '^'
	GlyphGenerator = 'G'
	GlyphDoor      = '+'
	GlyphDoorOpen  = '/'
	GlyphShield    = 's'
	GlyphSpeed     = '»'
	GlyphBattery   = 'b'
	GlyphDark      = ' '
)

// HUD layout
const (
	// HUDHeight is the number of rows reserved for the status bar
	HUDHeight = 2

	// ProgressBarWidth is the cell width of objective progress bars
	ProgressBarWidth = 10
)

// Menu text
const (
	TitleText    = "LAST LIGHT"
	WinText      = "YOU ESCAPED"
	GameOverText = "YOU WERE CAUGHT"
	PausedText   = "PAUSED"
)

// Terminal input. Terminals report presses and auto-repeats but no releases,
// so held actions stay active for a window after the last press.
const (
	// HoldWindow keeps interact, flashlight and sprint active between key repeats.
	// It covers the typical initial auto-repeat delay.
	HoldWindow = 550 * time.Millisecond

	// MoveWindow keeps a movement direction active between key repeats
	MoveWindow = 150 * time.Millisecond
)
