package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a feedback sound
type Cue int

const (
	CueNone Cue = iota
	// Accepted, or a piece swapped into its home slot
	CueChime
	// Wrong drop
	CueBuzz
	// Snap back without judgement
	CueRattle
	// Completed successfully
	CueFanfare
	// Completed after too many wrong drops
	CueGiveUp
)

var cueNames = [...]string{"none", "chime", "buzz", "rattle", "fanfare", "give_up"}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// tone is a single enveloped partial set
type tone struct {
	freqs   []float64
	weights []float64
	attack  time.Duration
	decay   float64 // Exponential decay rate per second, 0 = flat
	noise   float64 // Noise mix 0..1
}

// toneStreamer renders a tone for a fixed number of samples
type toneStreamer struct {
	t    tone
	pos  int
	n    int
	seed uint32
}

func newToneStreamer(t tone, d time.Duration) *toneStreamer {
	return &toneStreamer{t: t, n: sampleRate.N(d), seed: 0x9e3779b9}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.n {
		return 0, false
	}
	attack := sampleRate.N(s.t.attack)
	for i := range samples {
		if s.pos >= s.n {
			return i, true
		}
		sec := float64(s.pos) / float64(sampleRate)

		v := 0.0
		for k, f := range s.t.freqs {
			v += s.t.weights[k] * math.Sin(2*math.Pi*f*sec)
		}
		if s.t.noise > 0 {
			s.seed ^= s.seed << 13
			s.seed ^= s.seed >> 17
			s.seed ^= s.seed << 5
			nz := float64(s.seed)/float64(math.MaxUint32)*2 - 1
			v = v*(1-s.t.noise) + nz*s.t.noise
		}

		env := 1.0
		if attack > 0 && s.pos < attack {
			env = float64(s.pos) / float64(attack)
		}
		if s.t.decay > 0 {
			env *= math.Exp(-sec * s.t.decay)
		}
		// Fade the last 5ms to avoid a click
		if tail := s.n - s.pos; tail < sampleRate.N(5*time.Millisecond) {
			env *= float64(tail) / float64(sampleRate.N(5*time.Millisecond))
		}

		v *= env
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error {
	return nil
}

func note(freq float64, d time.Duration) beep.Streamer {
	return newToneStreamer(tone{
		freqs:   []float64{freq, freq * 2},
		weights: []float64{0.35, 0.1},
		attack:  4 * time.Millisecond,
		decay:   6,
	}, d)
}

// Streamer builds a fresh finite streamer for the cue; nil for CueNone
func (c Cue) Streamer() beep.Streamer {
	switch c {
	case CueChime:
		// A5 with overtone
		return note(880, 220*time.Millisecond)
	case CueBuzz:
		return newToneStreamer(tone{
			freqs:   []float64{110, 220, 330},
			weights: []float64{0.25, 0.12, 0.06},
			attack:  10 * time.Millisecond,
		}, 160*time.Millisecond)
	case CueRattle:
		return newToneStreamer(tone{
			freqs:   []float64{80},
			weights: []float64{0.2},
			decay:   12,
			noise:   0.4,
		}, 120*time.Millisecond)
	case CueFanfare:
		// C5 E5 G5 C6
		return beep.Seq(
			note(523.25, 120*time.Millisecond),
			note(659.25, 120*time.Millisecond),
			note(783.99, 120*time.Millisecond),
			note(1046.5, 360*time.Millisecond),
		)
	case CueGiveUp:
		// Gentle descending pair, not a penalty sound
		return beep.Seq(
			note(659.25, 180*time.Millisecond),
			note(523.25, 320*time.Millisecond),
		)
	default:
		return nil
	}
}
