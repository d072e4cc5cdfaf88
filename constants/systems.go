package constants

// System priorities. Lower runs first; the order is part of the step contract.
const (
	// PriorityInteraction resolves the interaction lock, then movement
	PriorityInteraction = 10

	// PriorityDrone moves threats and lays traps
	PriorityDrone = 20

	// PriorityOutcome checks trap, drone, exit and pickup contact
	PriorityOutcome = 30

	// PriorityGating recomputes door openability
	PriorityGating = 40

	// PriorityResource ticks battery, flashlight and effect timers
	PriorityResource = 50
)
