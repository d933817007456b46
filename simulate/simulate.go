// Package simulate replays a drop script against an exercise without a
// terminal, using the same arrangement the board would compute.
package simulate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/placement"
	"github.com/lixenwraith/dropzone/vmath"
)

// DefaultArea is the synthetic screen, sized like a standard terminal
var DefaultArea = vmath.Rect{X: 0, Y: 2, Width: 80, Height: 20}

// Step is the result of one scripted drop
type Step struct {
	Drop     Drop
	Point    vmath.Point
	Outcome  placement.Outcome
	Snapshot placement.Snapshot
}

// Result is a full replay
type Result struct {
	Identity    exercise.Identity
	Variant     exercise.Variant
	Title       string
	Steps       []Step
	Events      []event.Event
	Completed   bool
	Success     bool
	Signals     int // Completion callbacks observed; never more than one
	Final       placement.Snapshot
	Arrangement layout.Arrangement
}

// Options configures a replay
type Options struct {
	Area vmath.Rect
	Log  *zap.Logger
	Sink event.Sink // Receives events in addition to Result.Events
}

// Run begins a fresh instance of ex and applies every drop in order
func Run(ex *exercise.Exercise, cfg placement.Config, script Script, opts Options) (*Result, error) {
	if opts.Area.Empty() {
		opts.Area = DefaultArea
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	res := &Result{}
	record := event.SinkFunc(func(ev event.Event) { res.Events = append(res.Events, ev) })
	sink := event.Sink(record)
	if opts.Sink != nil {
		sink = event.Fanout{record, opts.Sink}
	}

	session, err := placement.Begin(ex, cfg,
		placement.WithLogger(opts.Log),
		placement.WithSink(sink),
		placement.WithOnComplete(func(success bool) {
			res.Signals++
			res.Completed = true
			res.Success = success
		}),
	)
	if err != nil {
		return nil, err
	}

	res.Identity = session.Identity()
	res.Variant = session.Variant()
	res.Title = ex.Title
	res.Arrangement = placement.Arrange(session, cfg.ItemWidth, cfg.ItemHeight, opts.Area)
	res.Arrangement.Apply(session.OnLayout)

	for i, d := range script {
		p, err := point(d, res.Arrangement)
		if err != nil {
			return res, fmt.Errorf("drop %d: %w", i, err)
		}
		out := session.OnDragEnd(d.Item, p)
		opts.Log.Debug("simulated drop",
			zap.Int("step", i),
			zap.String("item", d.Item),
			zap.Stringer("outcome", out.Kind),
		)
		res.Steps = append(res.Steps, Step{Drop: d, Point: p, Outcome: out, Snapshot: session.Snapshot()})
	}
	res.Final = session.Snapshot()
	return res, nil
}

func point(d Drop, a layout.Arrangement) (vmath.Point, error) {
	if d.Target == "" {
		if d.X == nil || d.Y == nil {
			return vmath.Point{}, fmt.Errorf("%w: drop of %q needs a target or x and y", ErrInvalidScript, d.Item)
		}
		return vmath.Point{X: *d.X, Y: *d.Y}, nil
	}
	r, ok := a.Target(layout.TargetID(d.Target))
	if !ok {
		return vmath.Point{}, fmt.Errorf("%w: unknown target %q", ErrInvalidScript, d.Target)
	}
	return r.Center(), nil
}
