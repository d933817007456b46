package gesture

import (
	"math"
	"time"

	"github.com/lixenwraith/dropzone/vmath"
)

// Tween interpolates a visual offset toward a decided resting value
// Advisory only: nothing logical ever reads a Tween
type Tween struct {
	from, to vmath.Point
	start    time.Time
	duration time.Duration

	shakeAmp   float64 // Horizontal shake amplitude, 0 = none
	shakeCycle float64 // Oscillations over the tween
}

// NewTween creates an ease-out tween; zero duration jumps to the target
func NewTween(from, to vmath.Point, start time.Time, duration time.Duration) *Tween {
	return &Tween{from: from, to: to, start: start, duration: duration}
}

// WithShake overlays a decaying horizontal oscillation
func (tw *Tween) WithShake(amplitude float64, cycles float64) *Tween {
	tw.shakeAmp = amplitude
	tw.shakeCycle = cycles
	return tw
}

// progress returns normalized time in [0,1]
func (tw *Tween) progress(now time.Time) float64 {
	if tw.duration <= 0 {
		return 1
	}
	return vmath.Clamp(float64(now.Sub(tw.start))/float64(tw.duration), 0, 1)
}

// At samples the tween
func (tw *Tween) At(now time.Time) vmath.Point {
	t := tw.progress(now)
	p := vmath.Lerp(tw.from, tw.to, vmath.EaseOutCubic(t))
	if tw.shakeAmp > 0 && t < 1 {
		p.X += tw.shakeAmp * (1 - t) * math.Sin(2*math.Pi*tw.shakeCycle*t)
	}
	return p
}

// Done reports whether the tween reached its target
func (tw *Tween) Done(now time.Time) bool {
	return tw.progress(now) >= 1
}

// Target returns the resting value
func (tw *Tween) Target() vmath.Point {
	return tw.to
}
