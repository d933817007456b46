// Package gesture tracks one draggable item through a continuous pan gesture.
//
// Phases: Idle -> Dragging -> Snapping -> Idle. The live offset during a drag
// is the captured origin plus the cumulative pointer translation, unclamped.
// The tracker never mutates placement: it reports a release and then settles
// wherever the caller decided. Visual output (tween, scale, z-raise) is
// advisory and kept apart from the committed resting offset.
package gesture

import (
	"time"

	"github.com/lixenwraith/dropzone/engine/fsm"
	"github.com/lixenwraith/dropzone/vmath"
)

// Phase of a tracker
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseSnapping
)

func (p Phase) String() string {
	switch p {
	case PhaseDragging:
		return "Dragging"
	case PhaseSnapping:
		return "Snapping"
	default:
		return "Idle"
	}
}

type signal int

const (
	sigBegin signal = iota
	sigEnd
	sigSettle
	sigCancel
)

type effect int

const (
	fxLift effect = iota
	fxLower
)

var phaseTable = func() *fsm.Table[Phase, signal, effect] {
	t := fsm.NewTable[Phase, signal, effect]()
	t.AddState(PhaseIdle, "Idle")
	t.AddState(PhaseDragging, "Dragging")
	t.AddState(PhaseSnapping, "Snapping")
	t.MustAddTransition(PhaseIdle, sigBegin, PhaseDragging, fxLift)
	t.MustAddTransition(PhaseDragging, sigEnd, PhaseSnapping)
	t.MustAddTransition(PhaseSnapping, sigSettle, PhaseIdle, fxLower)
	t.MustAddTransition(PhaseDragging, sigCancel, PhaseIdle, fxLower)
	t.MustAddTransition(PhaseSnapping, sigCancel, PhaseIdle, fxLower)
	return t
}()

// Options tune the visual side of a tracker
type Options struct {
	DragScale      float64       // Scale while lifted, e.g. 1.1
	SettleDuration time.Duration // Settle animation length
	ShakeAmplitude float64       // Rejection shake, 0 disables
}

// DefaultOptions returns the design defaults
func DefaultOptions() Options {
	return Options{
		DragScale:      1.1,
		SettleDuration: 180 * time.Millisecond,
		ShakeAmplitude: 2,
	}
}

// Release is what the tracker reports at gesture end
type Release struct {
	Offset vmath.Point // Top-left of the item at release
	Anchor vmath.Point // Item center at release; the hit-test point
}

// Visual is the advisory render state
type Visual struct {
	Offset vmath.Point
	Scale  float64
	Raised bool
}

// Tracker is the per-item gesture state machine
type Tracker struct {
	machine *fsm.Machine[Phase, signal, effect]
	opts    Options

	width, height float64

	rest        vmath.Point // Committed resting offset
	origin      vmath.Point // Captured at Begin
	translation vmath.Point // Cumulative pointer translation
	release     vmath.Point

	enabled bool
	scale   float64
	raised  bool
	tween   *Tween
}

// NewTracker creates an idle tracker resting at offset for an item of the given size
func NewTracker(rest vmath.Point, width, height float64, opts Options) *Tracker {
	tr := &Tracker{
		opts:    opts,
		width:   width,
		height:  height,
		rest:    rest,
		enabled: true,
		scale:   1,
	}
	tr.machine = fsm.NewMachine(phaseTable, PhaseIdle, tr.apply)
	return tr
}

func (tr *Tracker) apply(fx effect) {
	switch fx {
	case fxLift:
		tr.scale = tr.opts.DragScale
		if tr.scale <= 0 {
			tr.scale = 1
		}
		tr.raised = true
	case fxLower:
		tr.scale = 1
		tr.raised = false
	}
}

// Phase returns the current phase
func (tr *Tracker) Phase() Phase {
	return tr.machine.State()
}

// Enabled reports whether the item accepts new gestures
func (tr *Tracker) Enabled() bool {
	return tr.enabled
}

// SetEnabled toggles draggability; an in-flight gesture still resolves
func (tr *Tracker) SetEnabled(enabled bool) {
	tr.enabled = enabled
}

// Begin starts a gesture, capturing the current rendered offset as origin
// Returns false if disabled or not idle
func (tr *Tracker) Begin(now time.Time) bool {
	if !tr.enabled || tr.Phase() != PhaseIdle {
		return false
	}
	tr.origin = tr.visualOffset(now)
	tr.translation = vmath.Point{}
	tr.tween = nil
	return tr.machine.Fire(sigBegin)
}

// Move sets the cumulative pointer translation since Begin
func (tr *Tracker) Move(translation vmath.Point) {
	if tr.Phase() != PhaseDragging {
		return
	}
	tr.translation = translation
}

// Offset returns the live offset while dragging, otherwise the resting offset
func (tr *Tracker) Offset() vmath.Point {
	if tr.Phase() == PhaseDragging {
		return tr.origin.Add(tr.translation)
	}
	return tr.rest
}

// Center returns the item center for a top-left offset
func (tr *Tracker) Center(offset vmath.Point) vmath.Point {
	return vmath.Point{X: offset.X + tr.width/2, Y: offset.Y + tr.height/2}
}

// End finishes the drag and reports the release; ok is false if not dragging
func (tr *Tracker) End() (Release, bool) {
	if tr.Phase() != PhaseDragging {
		return Release{}, false
	}
	off := tr.Offset()
	tr.release = off
	tr.machine.Fire(sigEnd)
	return Release{Offset: off, Anchor: tr.Center(off)}, true
}

// Settle commits the decided resting offset and animates toward it
func (tr *Tracker) Settle(final vmath.Point, now time.Time) {
	tr.settle(final, now, false)
}

// SettleRejected settles with a shake overlay
func (tr *Tracker) SettleRejected(final vmath.Point, now time.Time) {
	tr.settle(final, now, true)
}

func (tr *Tracker) settle(final vmath.Point, now time.Time, shake bool) {
	if tr.Phase() != PhaseSnapping {
		return
	}
	tr.tween = NewTween(tr.release, final, now, tr.opts.SettleDuration)
	if shake && tr.opts.ShakeAmplitude > 0 {
		tr.tween.WithShake(tr.opts.ShakeAmplitude, 3)
	}
	tr.rest = final
	tr.machine.Fire(sigSettle)
}

// Cancel abandons any gesture; the item returns to its resting offset and no
// release is reported. Safe in any phase
func (tr *Tracker) Cancel() {
	tr.tween = nil
	tr.translation = vmath.Point{}
	tr.machine.Fire(sigCancel)
}

// MoveRest relocates an idle item, e.g. a puzzle piece displaced by a swap
func (tr *Tracker) MoveRest(rest vmath.Point, now time.Time) {
	if tr.Phase() == PhaseIdle && rest != tr.rest {
		tr.tween = NewTween(tr.visualOffset(now), rest, now, tr.opts.SettleDuration)
	}
	tr.rest = rest
}

// Place jumps to rest without animation, e.g. after a resize relayout
// An in-flight gesture keeps its live offset
func (tr *Tracker) Place(rest vmath.Point) {
	tr.rest = rest
	if tr.Phase() == PhaseIdle {
		tr.tween = nil
	}
}

// Rest returns the committed resting offset
func (tr *Tracker) Rest() vmath.Point {
	return tr.rest
}

// Visual samples the advisory render state
func (tr *Tracker) Visual(now time.Time) Visual {
	return Visual{
		Offset: tr.visualOffset(now),
		Scale:  tr.scale,
		Raised: tr.raised,
	}
}

func (tr *Tracker) visualOffset(now time.Time) vmath.Point {
	switch tr.Phase() {
	case PhaseDragging:
		return tr.origin.Add(tr.translation)
	case PhaseSnapping:
		return tr.release
	}
	if tr.tween != nil {
		if tr.tween.Done(now) {
			tr.tween = nil
			return tr.rest
		}
		return tr.tween.At(now)
	}
	return tr.rest
}
