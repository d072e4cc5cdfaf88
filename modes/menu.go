package modes

import (
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/render"
)

// Command is a menu selection
type Command uint8

const (
	CommandNone Command = iota
	CommandStartGame
	CommandResume
	CommandRestart
	CommandReturnToMenu
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandStartGame:
		return "start"
	case CommandResume:
		return "resume"
	case CommandRestart:
		return "restart"
	case CommandReturnToMenu:
		return "menu"
	case CommandQuit:
		return "quit"
	default:
		return "none"
	}
}

// Screen is the menu currently shown; ScreenNone means gameplay
type Screen uint8

const (
	ScreenNone Screen = iota
	ScreenMain
	ScreenPause
	ScreenWon
	ScreenLost
)

// Option is one selectable menu line
type Option struct {
	Label   string
	Command Command
}

var menus = map[Screen][]Option{
	ScreenMain: {
		{"Start", CommandStartGame},
		{"Quit", CommandQuit},
	},
	ScreenPause: {
		{"Resume", CommandResume},
		{"Restart", CommandRestart},
		{"Main Menu", CommandReturnToMenu},
		{"Quit", CommandQuit},
	},
	ScreenWon: {
		{"New Game", CommandStartGame},
		{"Main Menu", CommandReturnToMenu},
		{"Quit", CommandQuit},
	},
	ScreenLost: {
		{"Try Again", CommandRestart},
		{"New Game", CommandStartGame},
		{"Main Menu", CommandReturnToMenu},
		{"Quit", CommandQuit},
	},
}

var titles = map[Screen]string{
	ScreenMain:  constants.TitleText,
	ScreenPause: constants.PausedText,
	ScreenWon:   constants.WinText,
	ScreenLost:  constants.GameOverText,
}

// Menu tracks the visible screen and cursor
type Menu struct {
	Screen   Screen
	Selected int
}

// Open switches to a screen with the cursor on its first option
func (m *Menu) Open(s Screen) {
	m.Screen = s
	m.Selected = 0
}

// Close returns to gameplay
func (m *Menu) Close() {
	m.Open(ScreenNone)
}

// Active reports whether a menu is shown
func (m *Menu) Active() bool {
	return m.Screen != ScreenNone
}

// Options returns the current screen's lines
func (m *Menu) Options() []Option {
	return menus[m.Screen]
}

// Move steps the cursor, wrapping at either end
func (m *Menu) Move(delta int) {
	n := len(m.Options())
	if n == 0 {
		return
	}
	m.Selected = ((m.Selected+delta)%n + n) % n
}

// Select returns the highlighted command
func (m *Menu) Select() Command {
	opts := m.Options()
	if m.Selected < 0 || m.Selected >= len(opts) {
		return CommandNone
	}
	return opts[m.Selected].Command
}

// Overlay builds the render panel; nil during gameplay
func (m *Menu) Overlay(footer string) *render.Overlay {
	if !m.Active() {
		return nil
	}
	opts := m.Options()
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	return &render.Overlay{
		Title:    titles[m.Screen],
		Options:  labels,
		Selected: m.Selected,
		Footer:   footer,
	}
}
