package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/dropzone/exercise"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DROPZONE_DECK", "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dropzone dev\n", out)
}

func TestValidateBuiltIn(t *testing.T) {
	out, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "starter")
}

func TestValidateReportsProblems(t *testing.T) {
	path := writeTemp(t, "bad.yaml", `
name: bad
exercises:
- stage: 1
  order: 1
  variant: puzzle
  items:
    - { id: a, slot: 0 }
    - { id: b, slot: 0 }
    - { id: c, slot: 2 }
`)
	out, err := execute(t, "validate", path)
	assert.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "FAIL")
}

func TestSimulate(t *testing.T) {
	script := writeTemp(t, "drops.yaml", `
- { item: cat, target: food }
- { item: cat, target: animals }
- { item: dog, target: animals }
- { item: apple, target: food }
- { item: bread, target: food }
`)
	out, err := execute(t, "simulate", "--seed", "5", "-e", "1.1", script)
	require.NoError(t, err)
	assert.Contains(t, out, "rejected wrong-target")
	assert.Contains(t, out, "completed")
}

func TestSimulateUnknownExercise(t *testing.T) {
	script := writeTemp(t, "drops.yaml", "- { item: cat, target: food }\n")
	_, err := execute(t, "simulate", "-e", "9.9", script)
	assert.ErrorIs(t, err, exercise.ErrNotFound)

	_, err = execute(t, "simulate", "-e", "nine", script)
	assert.Error(t, err)
}

func TestInvalidConfigFails(t *testing.T) {
	path := writeTemp(t, "cfg.yaml", "engine:\n  item_width: -1\n")
	_, err := execute(t, "--config", path, "validate")
	assert.Error(t, err)
}
