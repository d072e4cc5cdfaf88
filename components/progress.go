package components

import "time"

// Progress is the accumulator behind every timed objective.
// Elapsed only grows and is clamped to Duration; once equal it stays complete
// until Reset.
type Progress struct {
	Elapsed  time.Duration
	Duration time.Duration
}

// NewProgress creates an empty accumulator for the given duration
func NewProgress(d time.Duration) Progress {
	return Progress{Duration: d}
}

// Advance adds dt and returns true only on the call that reaches completion.
// Negative deltas and calls after completion are ignored.
func (p *Progress) Advance(dt time.Duration) bool {
	if dt <= 0 || p.Complete() {
		return false
	}
	p.Elapsed += dt
	if p.Elapsed >= p.Duration {
		p.Elapsed = p.Duration
		return true
	}
	return false
}

// Complete reports whether the accumulator reached its duration
func (p Progress) Complete() bool {
	return p.Elapsed >= p.Duration
}

// Ratio returns completion in [0,1]
func (p Progress) Ratio() float64 {
	if p.Duration <= 0 {
		return 1
	}
	return float64(p.Elapsed) / float64(p.Duration)
}

// Reset clears accumulated time; only a session reset calls this
func (p *Progress) Reset() {
	p.Elapsed = 0
}
