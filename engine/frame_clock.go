package engine

import (
	"sync"
	"time"
)

// FrameClock turns wall-clock readings into per-frame simulation deltas.
// Time spent paused never reaches the simulation, and a single delta is capped
// so a stalled frame cannot teleport actors through the world.
type FrameClock struct {
	mu sync.Mutex

	provider TimeProvider
	last     time.Time
	maxDelta time.Duration

	paused      bool
	simulated   time.Duration // Total delta handed out
	pausedSince time.Time
	totalPaused time.Duration
}

// NewFrameClock creates a clock starting now. maxDelta <= 0 disables the cap.
func NewFrameClock(provider TimeProvider, maxDelta time.Duration) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameClock{
		provider: provider,
		last:     provider.Now(),
		maxDelta: maxDelta,
	}
}

// Tick returns the simulation delta since the previous Tick (0 while paused)
func (fc *FrameClock) Tick() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	now := fc.provider.Now()
	if fc.paused {
		return 0
	}

	dt := now.Sub(fc.last)
	fc.last = now
	if dt < 0 {
		dt = 0
	}
	if fc.maxDelta > 0 && dt > fc.maxDelta {
		dt = fc.maxDelta
	}
	fc.simulated += dt
	return dt
}

// Pause stops delta accumulation
func (fc *FrameClock) Pause() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.paused {
		return
	}
	fc.paused = true
	fc.pausedSince = fc.provider.Now()
}

// Resume restarts delta accumulation from the current instant
func (fc *FrameClock) Resume() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if !fc.paused {
		return
	}
	now := fc.provider.Now()
	fc.totalPaused += now.Sub(fc.pausedSince)
	fc.paused = false
	fc.last = now
}

// IsPaused returns current pause state
func (fc *FrameClock) IsPaused() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.paused
}

// Simulated returns the total delta handed to the simulation
func (fc *FrameClock) Simulated() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.simulated
}

// TotalPaused returns cumulative pause time, including a pause in progress
func (fc *FrameClock) TotalPaused() time.Duration {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	total := fc.totalPaused
	if fc.paused {
		total += fc.provider.Now().Sub(fc.pausedSince)
	}
	return total
}
