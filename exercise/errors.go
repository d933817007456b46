package exercise

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidExercise wraps every validation failure
	ErrInvalidExercise = errors.New("invalid exercise")
	// ErrUnknownVariant is returned for a variant outside sort/puzzle
	ErrUnknownVariant = errors.New("unknown exercise variant")
	// ErrNotFound is returned when a deck has no exercise with the identity
	ErrNotFound = errors.New("exercise not found")
)

// ValidationError lists every problem found in one exercise
// The host renders a fallback instead of mounting the engine
type ValidationError struct {
	Identity Identity
	Problems []string
}

func (e *ValidationError) Error() string {
	return "exercise " + e.Identity.String() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidExercise
}
