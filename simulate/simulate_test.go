package simulate

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dropzone/asset"
	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/placement"
)

func starter(t *testing.T, id exercise.Identity) *exercise.Exercise {
	t.Helper()
	deck, err := exercise.ParseDeck([]byte(asset.DefaultDeck))
	require.NoError(t, err)
	ex, ok := deck.Find(id)
	require.True(t, ok)
	return ex
}

func testConfig() placement.Config {
	cfg := placement.DefaultConfig(12, 3)
	cfg.Seed = 7
	return cfg
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`
- { item: cat, target: animals }
- { item: dog, x: 10, y: 4.5 }
`))
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, "animals", s[0].Target)
	require.NotNil(t, s[1].X)
	assert.Equal(t, 4.5, *s[1].Y)

	bad := []string{
		`- { target: animals }`,
		`- { item: cat }`,
		`- { item: cat, target: animals, x: 1, y: 2 }`,
		`- { item: cat, x: 1 }`,
		`- { item: cat, colour: red }`,
	}
	for _, b := range bad {
		_, err := ParseScript([]byte(b))
		assert.ErrorIs(t, err, ErrInvalidScript, b)
	}
}

func TestRunSortSolves(t *testing.T) {
	ex := starter(t, exercise.Identity{Stage: 1, Order: 1})
	script, err := ParseScript([]byte(`
- { item: cat, target: food }
- { item: cat, target: animals }
- { item: dog, target: animals }
- { item: apple, target: food }
- { item: bread, target: food }
- { item: bread, target: food }
`))
	require.NoError(t, err)

	var forwarded int
	res, err := Run(ex, testConfig(), script, Options{Sink: event.SinkFunc(func(event.Event) { forwarded++ })})
	require.NoError(t, err)

	require.Len(t, res.Steps, 6)
	assert.Equal(t, placement.Rejected, res.Steps[0].Outcome.Kind)
	assert.Equal(t, placement.ReasonWrongTarget, res.Steps[0].Outcome.Reason)
	assert.Equal(t, placement.Accepted, res.Steps[1].Outcome.Kind)
	assert.Equal(t, placement.ReasonCompleted, res.Steps[5].Outcome.Reason)

	assert.True(t, res.Completed)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Signals)
	assert.Equal(t, 1, res.Final.WrongAttempts)
	assert.Equal(t, 4, res.Final.Placed)
	assert.Equal(t, len(res.Events), forwarded)
}

func TestRunSortGivesUp(t *testing.T) {
	ex := starter(t, exercise.Identity{Stage: 1, Order: 1})
	var script Script
	for i := 0; i < placement.DefaultWrongCeiling+2; i++ {
		script = append(script, Drop{Item: "cat", Target: "food"})
	}

	res, err := Run(ex, testConfig(), script, Options{})
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Signals)
	assert.Equal(t, placement.DefaultWrongCeiling, res.Final.WrongAttempts)
	assert.Equal(t, 0, res.Final.Placed)
}

func TestRunPuzzleSolves(t *testing.T) {
	ex := starter(t, exercise.Identity{Stage: 2, Order: 1})
	items := append([]exercise.Item(nil), ex.Items...)
	sort.Slice(items, func(i, j int) bool { return items[i].Slot < items[j].Slot })

	var script Script
	for _, it := range items {
		script = append(script, Drop{Item: it.ID, Target: string(placement.SlotTarget(it.Slot))})
	}

	res, err := Run(ex, testConfig(), script, Options{})
	require.NoError(t, err)

	assert.True(t, res.Completed)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Signals)
	assert.Equal(t, len(items), res.Final.Placed)
	assert.Len(t, res.Arrangement.Targets, len(items))
	// The instance never starts solved
	assert.False(t, res.Steps[0].Outcome.Kind == placement.Rejected && res.Steps[0].Outcome.Reason == placement.ReasonCompleted)
}

func TestRunUnknownTarget(t *testing.T) {
	ex := starter(t, exercise.Identity{Stage: 1, Order: 1})
	res, err := Run(ex, testConfig(), Script{{Item: "cat", Target: "nowhere"}}, Options{})
	assert.ErrorIs(t, err, ErrInvalidScript)
	require.NotNil(t, res)
	assert.Empty(t, res.Steps)
}

func TestRunInvalidExercise(t *testing.T) {
	ex := starter(t, exercise.Identity{Stage: 1, Order: 1})
	ex.Items = ex.Items[:1]
	_, err := Run(ex, testConfig(), nil, Options{})
	assert.ErrorIs(t, err, exercise.ErrInvalidExercise)
}

func TestRunPointDropMisses(t *testing.T) {
	ex := starter(t, exercise.Identity{Stage: 1, Order: 1})
	x, y := -100.0, -100.0
	res, err := Run(ex, testConfig(), Script{{Item: "cat", X: &x, Y: &y}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, placement.ReasonNoTarget, res.Steps[0].Outcome.Reason)
	assert.True(t, res.Steps[0].Outcome.Counted)
}

func TestRunDropWithoutPosition(t *testing.T) {
	ex := starter(t, exercise.Identity{Stage: 1, Order: 1})
	x := 3.0
	for _, d := range []Drop{{Item: "cat"}, {Item: "cat", X: &x}} {
		res, err := Run(ex, testConfig(), Script{d}, Options{})
		assert.ErrorIs(t, err, ErrInvalidScript)
		require.NotNil(t, res)
		assert.Empty(t, res.Steps)
	}
}
