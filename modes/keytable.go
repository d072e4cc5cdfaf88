package modes

import "github.com/gdamore/tcell/v2"

// Action is a semantic key binding
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionInteract
	ActionSprint
	ActionFlashlight
	ActionSlot1
	ActionSlot2
	ActionSlot3
	ActionPause
	ActionSelect
	ActionQuit
	ActionToggleMute
)

// KeyTable maps terminal keys to actions
type KeyTable struct {
	SpecialKeys map[tcell.Key]Action
	Runes       map[rune]Action
}

// DefaultKeyTable returns the default bindings: WASD or arrows to move, E to
// interact, F for the flashlight, Shift+direction to sprint, 1-3 for items
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{
			tcell.KeyUp:     ActionUp,
			tcell.KeyDown:   ActionDown,
			tcell.KeyLeft:   ActionLeft,
			tcell.KeyRight:  ActionRight,
			tcell.KeyEnter:  ActionSelect,
			tcell.KeyEscape: ActionPause,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyCtrlQ:  ActionQuit,
			tcell.KeyCtrlS:  ActionToggleMute,
		},
		Runes: map[rune]Action{
			'w': ActionUp,
			'a': ActionLeft,
			's': ActionDown,
			'd': ActionRight,
			'e': ActionInteract,
			' ': ActionInteract,
			'f': ActionFlashlight,
			'1': ActionSlot1,
			'2': ActionSlot2,
			'3': ActionSlot3,
			'p': ActionPause,
		},
	}
}

// Lookup resolves a key event. Upper-case movement letters sprint.
func (kt *KeyTable) Lookup(key tcell.Key, r rune) (action Action, sprint bool) {
	if key != tcell.KeyRune {
		return kt.SpecialKeys[key], false
	}
	if a, ok := kt.Runes[r]; ok {
		return a, false
	}
	if r >= 'A' && r <= 'Z' {
		a := kt.Runes[r-'A'+'a']
		switch a {
		case ActionUp, ActionDown, ActionLeft, ActionRight:
			return a, true
		}
		return a, false
	}
	return ActionNone, false
}
