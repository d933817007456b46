package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/dropzone/exercise"
)

const stageTwo = `
name: two
exercises:
- stage: 2
  order: 5
  variant: puzzle
  items:
    - { id: a, word: a, slot: 0 }
    - { id: b, word: b, slot: 1 }
    - { id: c, word: c, slot: 2 }
    - { id: d, word: d, slot: 3 }
`

const stageOne = `
name: one
exercises:
- stage: 1
  order: 3
  variant: sort
  categories:
    - { id: p, label: P }
    - { id: q, label: Q }
  items:
    - { id: x, word: x, category: p }
    - { id: y, word: y, category: q }
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", stageOne)
	writeFile(t, dir, "a.yml", stageTwo)
	writeFile(t, dir, ".hidden.yaml", stageOne)
	writeFile(t, dir, "notes.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	files, err := Discover(dir, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, files)

	files, err = Discover(filepath.Join(dir, "missing"), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestOpenBuiltIn(t *testing.T) {
	deck, err := Open("", nil)
	require.NoError(t, err)
	assert.Equal(t, "starter", deck.Name)
	assert.NotEmpty(t, deck.Exercises)
}

func TestOpenDirectoryMerges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yaml", stageOne)
	writeFile(t, dir, "two.yaml", stageTwo)

	deck, err := Open(dir, nil)
	require.NoError(t, err)
	require.Len(t, deck.Exercises, 2)
	assert.Equal(t, filepath.Base(dir), deck.Name)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir, nil)
	assert.ErrorIs(t, err, exercise.ErrNotFound)

	_, err = Open(filepath.Join(dir, "nope.yaml"), nil)
	assert.Error(t, err)

	// Same identity in two files
	writeFile(t, dir, "one.yaml", stageOne)
	writeFile(t, dir, "dup.yaml", stageOne)
	_, err = Open(dir, nil)
	assert.ErrorIs(t, err, exercise.ErrInvalidExercise)
}

const mixed = `
name: mixed
exercises:
- stage: 1
  order: 1
  variant: sort
  categories:
    - { id: p, label: P }
    - { id: q, label: Q }
  items:
    - { id: x, word: x, category: p }
    - { id: y, word: y, category: q }
- stage: 1
  order: 2
  variant: sort
  categories:
    - { id: p, label: P }
  items:
    - { id: x, word: x, category: p }
`

func TestOpenKeepsInvalidExercises(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.yaml")
	writeFile(t, filepath.Dir(path), "mixed.yaml", mixed)

	strict, err := Read(path, nil)
	require.NoError(t, err)
	require.ErrorIs(t, strict.Validate(), exercise.ErrInvalidExercise)

	core, logs := observer.New(zap.WarnLevel)
	deck, err := Open(path, zap.New(core))
	require.NoError(t, err)
	assert.Len(t, deck.Exercises, 2)

	warned := logs.FilterMessage("exercise invalid, fallback will be shown").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "1.2", warned[0].ContextMap()["exercise"])
}

func TestPlayableRejectsEmptyDeck(t *testing.T) {
	err := Playable(&exercise.Deck{Name: "empty"}, nil)
	assert.ErrorIs(t, err, exercise.ErrInvalidExercise)
}

func TestCatalogWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "two.yaml", stageTwo)
	writeFile(t, dir, "one.yaml", stageOne)
	deck, err := Open(dir, nil)
	require.NoError(t, err)

	c := NewCatalog(deck)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []exercise.Identity{{Stage: 1, Order: 3}, {Stage: 2, Order: 5}}, c.Identities())

	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, exercise.Identity{Stage: 1, Order: 3}, first.Identity())

	next, ok := c.Next(first.Identity())
	require.True(t, ok)
	assert.Equal(t, exercise.Identity{Stage: 2, Order: 5}, next.Identity())

	wrapped, _ := c.Next(next.Identity())
	assert.Equal(t, first.Identity(), wrapped.Identity())

	prev, _ := c.Prev(first.Identity())
	assert.Equal(t, next.Identity(), prev.Identity())

	unknown, ok := c.Next(exercise.Identity{Stage: 9, Order: 9})
	require.True(t, ok)
	assert.Equal(t, first.Identity(), unknown.Identity())
}
