package placement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/vmath"
)

var (
	inA   = vmath.Point{X: 40, Y: 40}
	inB   = vmath.Point{X: 40, Y: 240}
	miss  = vmath.Point{X: 40, Y: 180}
	rectA = vmath.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	rectB = vmath.Rect{X: 0, Y: 200, Width: 100, Height: 100}
)

func fourItems() *exercise.Exercise {
	return &exercise.Exercise{
		Stage:      1,
		Order:      1,
		Variant:    exercise.VariantSort,
		Categories: []exercise.Category{{ID: "A"}, {ID: "B"}},
		Items: []exercise.Item{
			{ID: "1", Word: "cat", Category: "A"},
			{ID: "2", Word: "dog", Category: "A"},
			{ID: "3", Word: "apple", Category: "B"},
			{ID: "4", Word: "bread", Category: "B"},
		},
	}
}

type recorder struct {
	completions []bool
	events      []event.Event
}

func (r *recorder) opts() []Option {
	return []Option{
		WithOnComplete(func(ok bool) { r.completions = append(r.completions, ok) }),
		WithSink(event.SinkFunc(func(ev event.Event) { r.events = append(r.events, ev) })),
		WithRand(vmath.NewFastRand(7)),
	}
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func exampleConfig() Config {
	cfg := DefaultConfig(0, 0)
	cfg.Threshold = 50
	return cfg
}

func beginExample(t *testing.T, rec *recorder) *SortSession {
	t.Helper()
	s, err := BeginSort(fourItems(), exampleConfig(), rec.opts()...)
	require.NoError(t, err)
	s.OnLayout("A", rectA)
	s.OnLayout("B", rectB)
	return s
}

func TestSortWorkedExample(t *testing.T) {
	rec := &recorder{}
	s := beginExample(t, rec)
	require.Equal(t, PhaseActive, s.Phase())

	out := s.OnDragEnd("1", inA)
	assert.Equal(t, Accepted, out.Kind)
	assert.Equal(t, layout.TargetID("A"), out.Target)

	out = s.OnDragEnd("2", miss)
	assert.Equal(t, Rejected, out.Kind)
	assert.Equal(t, ReasonNoTarget, out.Reason)
	assert.True(t, out.Counted)
	assert.Equal(t, 1, s.WrongAttempts())

	for i := 0; i < 4; i++ {
		s.OnDragEnd("3", miss)
	}
	assert.Empty(t, rec.completions)
	assert.Equal(t, 5, s.WrongAttempts())

	s.OnDragEnd("4", inA) // Wrong category, sixth wrong drop
	require.Equal(t, []bool{false}, rec.completions)
	assert.True(t, s.Completed())
	assert.Equal(t, 1, rec.count(event.EventComplete))

	snap := s.Snapshot()
	assert.Equal(t, 6, snap.WrongAttempts)
	assert.False(t, snap.Success)
	assert.Equal(t, 1, snap.Placed)
}

func TestSortCompletionFiresOnce(t *testing.T) {
	rec := &recorder{}
	s := beginExample(t, rec)

	for _, id := range []string{"1", "2"} {
		require.Equal(t, Accepted, s.OnDragEnd(id, inA).Kind)
	}
	require.Equal(t, Accepted, s.OnDragEnd("3", inB).Kind)
	assert.Empty(t, rec.completions)
	require.Equal(t, Accepted, s.OnDragEnd("4", inB).Kind)

	// Further drops after completion are no-ops
	for i := 0; i < 10; i++ {
		out := s.OnDragEnd("4", inA)
		assert.Equal(t, Rejected, out.Kind)
		assert.Equal(t, ReasonCompleted, out.Reason)
	}
	assert.Equal(t, []bool{true}, rec.completions)
	assert.Equal(t, 1, rec.count(event.EventComplete))
	assert.True(t, s.Snapshot().Success)
	assert.Empty(t, s.Pool())
	assert.ElementsMatch(t, []string{"1", "2"}, s.PlacedIn("A"))
}

func TestSortPlacedItemIsFrozen(t *testing.T) {
	rec := &recorder{}
	s := beginExample(t, rec)

	require.True(t, s.Enabled("1"))
	require.Equal(t, Accepted, s.OnDragEnd("1", inA).Kind)
	assert.False(t, s.Enabled("1"))

	out := s.OnDragEnd("1", inB)
	assert.Equal(t, Rejected, out.Kind)
	assert.Equal(t, ReasonDisabled, out.Reason)
	assert.False(t, out.Counted)
	assert.Zero(t, s.WrongAttempts())

	target, ok := s.Placement("1")
	require.True(t, ok)
	assert.Equal(t, layout.TargetID("A"), target)
}

func TestSortWrongDropNeverMutatesPlacement(t *testing.T) {
	rec := &recorder{}
	s := beginExample(t, rec)

	out := s.OnDragEnd("3", inA)
	assert.Equal(t, Rejected, out.Kind)
	assert.Equal(t, ReasonWrongTarget, out.Reason)
	assert.Equal(t, layout.TargetID("A"), out.Target)
	_, placed := s.Placement("3")
	assert.False(t, placed)
	assert.True(t, s.Enabled("3"))
	assert.Equal(t, 1, rec.count(event.EventHapticError))
	assert.Equal(t, 1, rec.count(event.EventRejected))
}

func TestSortMissesNotCounted(t *testing.T) {
	cfg := exampleConfig()
	cfg.CountMisses = false
	rec := &recorder{}
	s, err := BeginSort(fourItems(), cfg, rec.opts()...)
	require.NoError(t, err)
	s.OnLayout("A", rectA)

	for i := 0; i < 10; i++ {
		out := s.OnDragEnd("1", miss)
		assert.Equal(t, ReasonNoTarget, out.Reason)
		assert.False(t, out.Counted)
	}
	assert.Zero(t, s.WrongAttempts())
	assert.Empty(t, rec.completions)
	assert.Equal(t, 10, rec.count(event.EventSnapBack))
}

func TestSortUnmeasuredTargetIsNotCandidate(t *testing.T) {
	rec := &recorder{}
	s, err := BeginSort(fourItems(), exampleConfig(), rec.opts()...)
	require.NoError(t, err)

	out := s.OnDragEnd("1", inA)
	assert.Equal(t, ReasonNoTarget, out.Reason)

	s.OnLayout("A", rectA)
	s.OnLayout("Z", rectB) // Not a category
	assert.Equal(t, 1, s.Registry().Len())
	assert.Equal(t, Accepted, s.OnDragEnd("1", inA).Kind)
}

func TestSortUnknownItem(t *testing.T) {
	s := beginExample(t, &recorder{})
	out := s.OnDragEnd("nope", inA)
	assert.Equal(t, ReasonUnknownItem, out.Reason)
	assert.False(t, s.Enabled("nope"))
	_, ok := s.Item("nope")
	assert.False(t, ok)
}

func TestSortCeilingDisabled(t *testing.T) {
	cfg := exampleConfig()
	cfg.WrongCeiling = 0
	rec := &recorder{}
	s, err := BeginSort(fourItems(), cfg, rec.opts()...)
	require.NoError(t, err)
	s.OnLayout("A", rectA)
	for i := 0; i < 20; i++ {
		s.OnDragEnd("3", inA)
	}
	assert.Empty(t, rec.completions)
	assert.False(t, s.Completed())
}

func TestSortReentrantCallback(t *testing.T) {
	var s *SortSession
	calls := 0
	var err error
	s, err = BeginSort(fourItems(), exampleConfig(),
		WithRand(vmath.NewFastRand(3)),
		WithOnComplete(func(bool) {
			calls++
			// A host re-render re-running the drop must not re-fire completion
			s.OnDragEnd("3", inA)
			s.OnDragEnd("4", inB)
		}),
	)
	require.NoError(t, err)
	s.OnLayout("A", rectA)
	s.OnLayout("B", rectB)

	for i := 0; i < 6; i++ {
		s.OnDragEnd("3", inA)
	}
	assert.Equal(t, 1, calls)
}

func TestSortShuffleDeterministic(t *testing.T) {
	a, err := BeginSort(fourItems(), exampleConfig(), WithRand(vmath.NewFastRand(11)))
	require.NoError(t, err)
	b, err := BeginSort(fourItems(), exampleConfig(), WithRand(vmath.NewFastRand(11)))
	require.NoError(t, err)
	assert.Equal(t, a.Pool(), b.Pool())
	assert.ElementsMatch(t, []string{"1", "2", "3", "4"}, a.Pool())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestBeginSortValidation(t *testing.T) {
	ex := fourItems()
	ex.Categories = ex.Categories[:1]
	_, err := BeginSort(ex, exampleConfig())
	require.ErrorIs(t, err, exercise.ErrInvalidExercise)
	var verr *exercise.ValidationError
	assert.True(t, errors.As(err, &verr))

	ex = fourItems()
	ex.Variant = exercise.VariantPuzzle
	_, err = BeginSort(ex, exampleConfig())
	assert.ErrorIs(t, err, ErrVariantMismatch)

	_, err = BeginSort(nil, exampleConfig())
	assert.ErrorIs(t, err, exercise.ErrInvalidExercise)
}

func TestSortSessionOwnsItsData(t *testing.T) {
	ex := fourItems()
	s, err := BeginSort(ex, exampleConfig())
	require.NoError(t, err)
	ex.Items[0].Category = "B"

	it, ok := s.Item("1")
	require.True(t, ok)
	assert.Equal(t, "A", it.Category)
}

func TestDropThreshold(t *testing.T) {
	cfg := DefaultConfig(100, 100)
	assert.InDelta(t, 70, cfg.DropThreshold(), 1e-9)
	cfg.Threshold = 12
	assert.Equal(t, 12.0, cfg.DropThreshold())
}

func TestEventsCarryInstanceAndSequence(t *testing.T) {
	rec := &recorder{}
	s := beginExample(t, rec)
	s.OnDragEnd("1", inA)

	require.NotEmpty(t, rec.events)
	assert.Equal(t, event.EventInstanceStart, rec.events[0].Type)
	for i, ev := range rec.events {
		assert.Equal(t, s.ID(), ev.Instance)
		assert.Equal(t, int64(i+1), ev.Seq)
	}
}
