package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/logger"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// SoundManager plays event cues through a single mixer. Every method is safe to
// call before Initialize or after Cleanup; the game runs fine without a device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	gain        float64
	muted       bool
	initialized bool
	played      int
}

// NewSoundManager creates a manager at the given linear gain
func NewSoundManager(gain float64, muted bool) *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		gain:  gain,
		muted: muted,
	}
}

// Initialize opens the speaker. Muted managers never touch the device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything; the speaker itself stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles playback without closing the device
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Play mixes a cue in. Returns false when nothing was queued.
func (sm *SoundManager) Play(c Cue) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return false
	}
	s := Build(c, sm.gain, sampleRate)
	if s == nil {
		return false
	}

	speaker.Lock()
	if sm.mixer.Len() >= constants.CueQueueSize {
		speaker.Unlock()
		logger.Log.WithField("cue", int(c)).Debug("cue dropped, mixer full")
		return false
	}
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
	return true
}

// Played counts cues handed to the mixer
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// HandleEvent implements engine.EventHandler
func (sm *SoundManager) HandleEvent(ev engine.GameEvent) {
	if c := CueForEvent(ev.Type); c != CueNone {
		sm.Play(c)
	}
}

// EventTypes implements engine.EventHandler
func (sm *SoundManager) EventTypes() []engine.EventType {
	return []engine.EventType{
		engine.EventGeneratorCompleted,
		engine.EventDoorsUnlocked,
		engine.EventDoorOpened,
		engine.EventItemCollected,
		engine.EventItemUsed,
		engine.EventShieldAbsorbed,
		engine.EventTrapLaid,
		engine.EventPlayerCaught,
		engine.EventPlayerEscaped,
		engine.EventFlashlightDepleted,
	}
}

// LogInitError records a failed device open without failing the game
func LogInitError(err error) {
	logger.Log.WithFields(logrus.Fields{
		"error": err.Error(),
	}).Warn("audio disabled")
}
