// Package placement is the drag-and-drop rule engine.
//
// A session is one exercise instance: it owns a fresh placement, a fresh
// shuffle, the wrong-attempt counter and the completion latch. Hosts feed it
// target geometry through OnLayout and gesture releases through OnDragEnd;
// it answers with an Outcome and emits feedback events. Sessions are
// single-threaded and must be driven from one event loop.
package placement

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/vmath"
)

var (
	// ErrVariantMismatch is returned when Begin* receives the other variant
	ErrVariantMismatch = errors.New("exercise variant mismatch")
)

// Session is the host-facing contract shared by both variants
type Session interface {
	ID() string
	Identity() exercise.Identity
	Variant() exercise.Variant
	OnLayout(target layout.TargetID, rect vmath.Rect)
	OnDragEnd(itemID string, point vmath.Point) Outcome
	Enabled(itemID string) bool
	Phase() Phase
	Completed() bool
	Snapshot() Snapshot
}

// Snapshot summarizes instance progress
type Snapshot struct {
	Instance      string
	Identity      exercise.Identity
	Variant       exercise.Variant
	Phase         Phase
	Items         int
	Placed        int // Sort: correctly placed; puzzle: pieces in their own slot
	WrongAttempts int
	Swaps         int
	Completed     bool
	Success       bool
}

// Option configures a session
type Option func(*base)

// WithLogger sets the session logger
func WithLogger(l *zap.Logger) Option {
	return func(b *base) {
		if l != nil {
			b.log = l
		}
	}
}

// WithSink routes feedback events
func WithSink(s event.Sink) Option {
	return func(b *base) {
		if s != nil {
			b.sink = s
		}
	}
}

// WithOnComplete sets the completion callback; fires at most once
func WithOnComplete(fn func(success bool)) Option {
	return func(b *base) {
		b.onComplete = fn
	}
}

// Rand is the shuffle source; *vmath.FastRand satisfies it
type Rand interface {
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

// WithRand injects the shuffle source, overriding Config.Seed
func WithRand(r Rand) Option {
	return func(b *base) {
		if r != nil {
			b.rng = r
		}
	}
}

// base carries the state common to both variants
type base struct {
	id       string
	ex       *exercise.Exercise
	cfg      Config
	registry *layout.Registry
	latch    *latch

	log        *zap.Logger
	sink       event.Sink
	onComplete func(success bool)
	rng        Rand
	seq        int64
}

func newBase(ex *exercise.Exercise, want exercise.Variant, cfg Config, opts []Option) (*base, error) {
	if ex == nil {
		return nil, fmt.Errorf("%w: nil exercise", exercise.ErrInvalidExercise)
	}
	if ex.Variant != want {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrVariantMismatch, want, ex.Variant)
	}
	if err := ex.Validate(); err != nil {
		return nil, err
	}

	b := &base{
		id:       uuid.NewString(),
		ex:       ex.Clone(),
		cfg:      cfg,
		registry: layout.NewRegistry(),
		log:      zap.NewNop(),
		sink:     event.Discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		b.rng = vmath.NewFastRand(seed)
	}
	b.log = b.log.With(
		zap.String("instance", b.id),
		zap.Stringer("exercise", ex.Identity()),
		zap.String("variant", string(want)),
	)
	b.latch = newLatch(b.complete)
	return b, nil
}

func (b *base) ID() string { return b.id }
func (b *base) Identity() exercise.Identity { return b.ex.Identity() }
func (b *base) Variant() exercise.Variant { return b.ex.Variant }
func (b *base) Phase() Phase { return b.latch.phase() }
func (b *base) Completed() bool { return b.latch.done() }

// Registry exposes target geometry, read-only by convention
func (b *base) Registry() *layout.Registry {
	return b.registry
}

// Exercise returns the instance's private copy of the exercise data
func (b *base) Exercise() *exercise.Exercise {
	return b.ex
}

func (b *base) emit(ev event.Event) {
	b.seq++
	ev.Instance = b.id
	ev.Seq = b.seq
	b.sink.Emit(ev)
}

// complete runs inside the latch effect, exactly once per instance
func (b *base) complete(success bool) {
	b.log.Info("exercise completed", zap.Bool("success", success))
	b.emit(event.Event{Type: event.EventComplete, Success: success})
	if b.onComplete != nil {
		b.onComplete(success)
	}
}

func (b *base) start(variant exercise.Variant) {
	b.latch.ready()
	b.log.Debug("instance started")
	b.emit(event.Event{Type: event.EventInstanceStart, Target: string(variant)})
}
