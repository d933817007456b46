package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dropzone/event"
)

// fakeOutput records speaker calls without a device
type fakeOutput struct {
	initErr error
	inits   int
	played  []beep.Streamer
	closed  int
}

func (f *fakeOutput) init(beep.SampleRate, int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) play(s beep.Streamer) { f.played = append(f.played, s) }
func (f *fakeOutput) lock() {}
func (f *fakeOutput) unlock() {}
func (f *fakeOutput) close() { f.closed++ }

func newTestPlayer(out *fakeOutput) *Player {
	p := NewPlayer(0.5, nil)
	p.out = out
	return p
}

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			require.False(t, math.IsNaN(smp[0]))
			require.LessOrEqual(t, math.Abs(smp[0]), 1.0)
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer did not terminate")
	return total
}

func TestCuesAreFiniteAndBounded(t *testing.T) {
	for _, c := range []Cue{CueChime, CueBuzz, CueRattle, CueFanfare, CueGiveUp} {
		t.Run(c.String(), func(t *testing.T) {
			s := c.Streamer()
			require.NotNil(t, s)
			assert.Greater(t, drain(t, s), 0)
		})
	}
	assert.Nil(t, CueNone.Streamer())
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		ev   event.Event
		want Cue
	}{
		{event.Event{Type: event.EventHapticSuccess}, CueChime},
		{event.Event{Type: event.EventHapticError}, CueBuzz},
		{event.Event{Type: event.EventSnapBack}, CueRattle},
		{event.Event{Type: event.EventComplete, Success: true}, CueFanfare},
		{event.Event{Type: event.EventComplete}, CueGiveUp},
		{event.Event{Type: event.EventAccepted}, CueNone},
		{event.Event{Type: event.EventSwapped}, CueNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CueFor(tt.ev), tt.ev.Type.String())
	}
}

func TestPlayerGracefulWithoutInit(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(out)

	p.Emit(event.Event{Type: event.EventHapticSuccess})
	p.Play(CueFanfare)
	p.Cleanup()

	assert.Equal(t, 0, p.mixer.Len())
	assert.Zero(t, out.closed)
}

func TestPlayerInitFailureStaysSilent(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	p := newTestPlayer(out)

	require.Error(t, p.Initialize())
	p.Play(CueChime)
	assert.Equal(t, 0, p.mixer.Len())
}

func TestPlayerMixesAndCaps(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(out)

	require.NoError(t, p.Initialize())
	require.NoError(t, p.Initialize())
	assert.Equal(t, 1, out.inits)
	require.Len(t, out.played, 1)

	p.Emit(event.Event{Type: event.EventAccepted})
	assert.Equal(t, 0, p.mixer.Len())

	for i := 0; i < maxVoices+3; i++ {
		p.Play(CueChime)
	}
	assert.Equal(t, maxVoices, p.mixer.Len())

	p.Cleanup()
	assert.Equal(t, 0, p.mixer.Len())
	assert.Equal(t, 1, out.closed)
}
