package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
)

// Cue identifies a synthesized sound
type Cue int

const (
	CueNone Cue = iota
	CueGeneratorComplete
	CueDoorsUnlocked
	CueDoorOpened
	CuePickup
	CueItemUsed
	CueShieldHit
	CueTrapLaid
	CueCaught
	CueEscaped
	CueDepleted
)

// CueForEvent maps a game event to its cue; CueNone for silent events
func CueForEvent(t engine.EventType) Cue {
	switch t {
	case engine.EventGeneratorCompleted:
		return CueGeneratorComplete
	case engine.EventDoorsUnlocked:
		return CueDoorsUnlocked
	case engine.EventDoorOpened:
		return CueDoorOpened
	case engine.EventItemCollected:
		return CuePickup
	case engine.EventItemUsed:
		return CueItemUsed
	case engine.EventShieldAbsorbed:
		return CueShieldHit
	case engine.EventTrapLaid:
		return CueTrapLaid
	case engine.EventPlayerCaught:
		return CueCaught
	case engine.EventPlayerEscaped:
		return CueEscaped
	case engine.EventFlashlightDepleted:
		return CueDepleted
	default:
		return CueNone
	}
}

// Build synthesizes a cue at the given linear gain. CueNone returns nil.
func Build(c Cue, gain float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueGeneratorComplete:
		// Rising power-up hum
		s = shaped(NewSweep(110, 330, constants.CompleteCueDuration, WaveSaw, rate), constants.CompleteCueDuration, rate)
	case CueDoorsUnlocked:
		// Three-note major arpeggio
		step := constants.UnlockCueDuration / 3
		s = beep.Seq(
			shaped(NewTone(523.25, step, WaveSquare, rate), step, rate),
			shaped(NewTone(659.25, step, WaveSquare, rate), step, rate),
			shaped(NewTone(783.99, step, WaveSquare, rate), step, rate),
		)
	case CueDoorOpened:
		s = shaped(NewTone(0, constants.UnlockCueDuration, WaveNoise, rate), constants.UnlockCueDuration, rate)
	case CuePickup:
		s = shaped(NewTone(1318.51, constants.PickupCueDuration, WaveSine, rate), constants.PickupCueDuration, rate)
	case CueItemUsed:
		s = shaped(NewSweep(440, 880, constants.PickupCueDuration, WaveSine, rate), constants.PickupCueDuration, rate)
	case CueShieldHit:
		s = beep.Take(rate.N(constants.TrapCueDuration), beep.Mix(
			withVolume(shaped(NewTone(220, constants.TrapCueDuration, WaveSine, rate), constants.TrapCueDuration, rate), 0.7),
			withVolume(shaped(NewTone(0, constants.TrapCueDuration, WaveNoise, rate), constants.TrapCueDuration, rate), 0.3),
		))
	case CueTrapLaid:
		s = shaped(NewTone(90, constants.TrapCueDuration, WaveSquare, rate), constants.TrapCueDuration, rate)
	case CueCaught:
		s = shaped(NewSweep(440, 55, constants.CaughtCueDuration, WaveSaw, rate), constants.CaughtCueDuration, rate)
	case CueEscaped:
		s = shaped(NewSweep(261.63, 1046.5, constants.EscapeCueDuration, WaveSine, rate), constants.EscapeCueDuration, rate)
	case CueDepleted:
		s = shaped(NewSweep(330, 110, constants.TrapCueDuration, WaveSquare, rate), constants.TrapCueDuration, rate)
	default:
		return nil
	}
	return withVolume(s, gain)
}

// Duration returns the cue's playback length
func (c Cue) Duration() time.Duration {
	switch c {
	case CueGeneratorComplete:
		return constants.CompleteCueDuration
	case CueDoorsUnlocked:
		return constants.UnlockCueDuration / 3 * 3
	case CueDoorOpened:
		return constants.UnlockCueDuration
	case CuePickup, CueItemUsed:
		return constants.PickupCueDuration
	case CueShieldHit, CueTrapLaid, CueDepleted:
		return constants.TrapCueDuration
	case CueCaught:
		return constants.CaughtCueDuration
	case CueEscaped:
		return constants.EscapeCueDuration
	default:
		return 0
	}
}

func shaped(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(s, d, constants.CueAttack, d/4, rate)
}
