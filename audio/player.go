// Package audio plays short synthesized feedback cues for placement events.
// Audio is optional: every method is a no-op until Initialize succeeds.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/event"
)

// maxVoices caps concurrently mixed cues
const maxVoices = 8

// output abstracts the speaker so the mixer can be driven without a device
type output interface {
	init(beep.SampleRate, int) error
	play(beep.Streamer)
	lock()
	unlock()
	close()
}

type speakerOutput struct{}

func (speakerOutput) init(sr beep.SampleRate, buf int) error { return speaker.Init(sr, buf) }
func (speakerOutput) play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) lock() { speaker.Lock() }
func (speakerOutput) unlock() { speaker.Unlock() }
func (speakerOutput) close() { speaker.Clear() }

// Player mixes feedback cues onto the speaker; implements event.Sink
type Player struct {
	mu          sync.Mutex
	out         output
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *zap.Logger
}

// NewPlayer creates a player with volume in 0..1
func NewPlayer(volume float64, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{
		out:    speakerOutput{},
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    log,
	}
}

// Initialize opens the speaker; safe to call more than once
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := p.out.init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	p.out.play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences and detaches the mixer
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.out.lock()
	p.mixer.Clear()
	p.out.unlock()
	p.out.close()
	p.initialized = false
}

// Play mixes a cue; dropped when uninitialized or the mixer is saturated
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := c.Streamer()
	if s == nil {
		return
	}

	p.out.lock()
	defer p.out.unlock()
	if p.mixer.Len() >= maxVoices {
		p.log.Debug("cue dropped", zap.Stringer("cue", c))
		return
	}
	p.mixer.Add(&effects.Gain{Streamer: s, Gain: p.volume - 1})
}

// Emit implements event.Sink
func (p *Player) Emit(ev event.Event) {
	p.Play(CueFor(ev))
}

// CueFor maps a feedback event to its sound
// Placement events carry no sound of their own; the haptic pair does
func CueFor(ev event.Event) Cue {
	switch ev.Type {
	case event.EventHapticSuccess:
		return CueChime
	case event.EventHapticError:
		return CueBuzz
	case event.EventSnapBack:
		return CueRattle
	case event.EventComplete:
		if ev.Success {
			return CueFanfare
		}
		return CueGiveUp
	default:
		return CueNone
	}
}
