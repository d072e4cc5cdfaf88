package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave defines oscillator shapes
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator with an optional linear pitch sweep
type tone struct {
	from, to float64 // Hz at start and end
	wave     Wave
	rate     beep.SampleRate
	phase    float64
	pos      int
	length   int
	rng      *rand.Rand
}

// NewTone creates a streamer of exactly d at freq Hz
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep glides linearly from one frequency to another over d
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		from:   from,
		to:     to,
		wave:   wave,
		rate:   rate,
		length: rate.N(d),
		rng:    rand.New(rand.NewSource(int64(from*1000 + to))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.length {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.length {
			return i, true
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		progress := float64(t.pos) / float64(t.length)
		freq := t.from + (t.to-t.from)*progress
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a streamer in over attack and out over the final release
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	length  int
}

// NewEnvelope shapes s, which is expected to last d
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		length:  rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.length - e.pos; e.release > 0 && left < e.release {
			gain = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// withVolume scales linear gain; zero or less is silent.
// effects.Volume works in log space, so log2(0) is avoided.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
