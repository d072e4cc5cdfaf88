package constants

import "time"

// Audio
const (
	// AudioSampleRate is the output rate for the speaker and every synthesized cue
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer size
	AudioBufferDuration = 50 * time.Millisecond

	// DefaultVolume is the master gain applied to cues
	DefaultVolume = 0.6

	// CueQueueSize bounds cues waiting for the mixer
	CueQueueSize = 16
)

// Cue durations
const (
	CompleteCueDuration = 400 * time.Millisecond
	UnlockCueDuration   = 700 * time.Millisecond
	PickupCueDuration   = 120 * time.Millisecond
	CaughtCueDuration   = 900 * time.Millisecond
	EscapeCueDuration   = 1200 * time.Millisecond
	TrapCueDuration     = 200 * time.Millisecond

	// CueAttack is the fade-in applied to every cue
	CueAttack = 5 * time.Millisecond
)
