package constants

import "time"

// World Scale
const (
	// CellSize is the side length of one tile in world units
	CellSize = 64.0

	// FrameInterval is the target simulation/render cadence (~60 fps)
	FrameInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single simulation step after stalls or pauses
	MaxFrameDelta = 100 * time.Millisecond
)

// Player Movement
const (
	// PlayerFootprint is the player's diameter as a fraction of a tile
	PlayerFootprint = 0.4

	// PlayerWalkSpeed is the base movement speed in world units per second
	PlayerWalkSpeed = 80.0

	// PlayerSprintSpeed replaces the walk speed while sprint is held
	PlayerSprintSpeed = 120.0

	// SpeedBoostMultiplier scales movement while the speed effect is active
	SpeedBoostMultiplier = 2.0

	// InventorySlots is the number of item slots the player carries
	InventorySlots = 3
)

// Effects
const (
	// ShieldDuration is the invulnerability window granted by a Shield item
	ShieldDuration = 5 * time.Second

	// SpeedBoostDuration is the movement boost window granted by a SpeedBoost item
	SpeedBoostDuration = 10 * time.Second
)

// Flashlight / Battery
const (
	// BatteryMax is the full battery level
	BatteryMax = 100.0

	// BatteryDrainPerSecond is consumed while the flashlight is held
	BatteryDrainPerSecond = 10.0

	// BatteryRechargePerSecond is restored while the flashlight is released
	BatteryRechargePerSecond = 20.0

	// FlashlightLockout disables the flashlight after the battery runs dry
	FlashlightLockout = 2 * time.Second

	// LightRadiusMin is the ambient light radius around the player
	LightRadiusMin = 128.0

	// LightRadiusMax is the fully widened flashlight radius
	LightRadiusMax = 512.0

	// LightRadiusRate is the widen/narrow speed in world units per second
	LightRadiusRate = 64.0
)

// Objectives
const (
	// GeneratorDuration is the hold time to repair one generator
	GeneratorDuration = 5 * time.Second

	// DoorDuration is the hold time to open an unlocked exit door
	DoorDuration = 2 * time.Second
)

// Drone Behavior
const (
	// DroneFootprint is the drone's diameter as a fraction of a tile
	DroneFootprint = 0.8

	// DroneSpeed is the drone's movement speed in world units per second
	DroneSpeed = 60.0

	// DroneRedirectInterval re-rolls the heading of a bouncing drone
	DroneRedirectInterval = 1 * time.Second

	// DroneArrivalEpsilon is the distance at which a waypoint counts as reached
	DroneArrivalEpsilon = 1.0

	// TrapIntervalMin and TrapIntervalMax bound the randomized trap countdown
	TrapIntervalMin = 10 * time.Second
	TrapIntervalMax = 20 * time.Second

	// TrapCap is the maximum number of traps a single drone lays per session
	TrapCap = 5
)

// Static Footprints
const (
	// ItemFootprint is the pickup's side length as a fraction of a tile
	ItemFootprint = 0.6

	// TrapFootprint is the trap's side length as a fraction of a tile
	TrapFootprint = 0.6
)

// Facility Generation
const (
	DefaultFacilityWidth  = 41
	DefaultFacilityHeight = 41
	DefaultCorridorWidth  = 2
	DefaultMargin         = 1
	DefaultGenerators     = 3
	DefaultItems          = 6
	DefaultHazards        = 4

	// MaxPlacementAttempts bounds each rejection-sampling placement
	MaxPlacementAttempts = 10000
)
