package engine

import (
	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/vmath"
)

// Input is everything presentation supplies for one step
type Input struct {
	Move       vmath.Vec2 // Cardinal or combined direction; normalized by the movement step
	Interact   bool       // Action held
	Sprint     bool
	Flashlight bool
	UseSlot    [constants.InventorySlots]bool // Discrete triggers, one step each
}

// Phase is the session lifecycle
type Phase uint8

const (
	PhasePlaying Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "playing"
	}
}

// Terminal reports whether the session has ended
func (p Phase) Terminal() bool {
	return p != PhasePlaying
}

// OutcomeKind is the discrete result of a step
type OutcomeKind uint8

const (
	OutcomeNone OutcomeKind = iota
	OutcomeItemCollected
	OutcomeWon
	OutcomeLost
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeItemCollected:
		return "item"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// Outcome is raised at most once per step. When several conditions hold in the
// same step the highest kind wins: Lost > Won > ItemCollected.
type Outcome struct {
	Kind OutcomeKind
	Item components.ItemType // Set for OutcomeItemCollected
}

// Contact remembers the overlaps active on the previous step so Lost and
// ShieldAbsorbed fire only on the onset of an overlap. Lethal flags hold while
// overlapping unshielded; a shield expiring mid-overlap starts a lethal onset.
type Contact struct {
	Trap  bool
	Drone bool

	TrapAbsorbed  bool
	DroneAbsorbed bool
}
