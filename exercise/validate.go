package exercise

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs structural tag checks and the variant's semantic rules
// Returns *ValidationError (wrapping ErrInvalidExercise) or nil
func (e *Exercise) Validate() error {
	var problems []string

	if err := validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	seen := make(map[string]struct{}, len(e.Items))
	for _, it := range e.Items {
		if _, dup := seen[it.ID]; dup && it.ID != "" {
			problems = append(problems, fmt.Sprintf("duplicate item id %q", it.ID))
		}
		seen[it.ID] = struct{}{}
	}

	switch e.Variant {
	case VariantSort:
		problems = append(problems, e.sortProblems()...)
	case VariantPuzzle:
		problems = append(problems, e.puzzleProblems()...)
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Identity: e.Identity(), Problems: problems}
}

func (e *Exercise) sortProblems() []string {
	var problems []string

	if n := len(e.Categories); n < MinCategories || n > MaxCategories {
		problems = append(problems, fmt.Sprintf("sort needs %d-%d categories, got %d", MinCategories, MaxCategories, n))
	}
	if n := len(e.Items); n < MinSortItems || n > MaxSortItems {
		problems = append(problems, fmt.Sprintf("sort needs %d-%d items, got %d", MinSortItems, MaxSortItems, n))
	}

	counts := make(map[string]int, len(e.Categories))
	for _, c := range e.Categories {
		if _, dup := counts[c.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate category id %q", c.ID))
		}
		counts[c.ID] = 0
	}
	for _, it := range e.Items {
		if _, ok := counts[it.Category]; !ok {
			problems = append(problems, fmt.Sprintf("item %q references unknown category %q", it.ID, it.Category))
			continue
		}
		counts[it.Category]++
	}
	for _, c := range e.Categories {
		n := counts[c.ID]
		if n == 0 {
			problems = append(problems, fmt.Sprintf("category %q has no items", c.ID))
		} else if c.Expected > 0 && c.Expected != n {
			problems = append(problems, fmt.Sprintf("category %q expects %d items, has %d", c.ID, c.Expected, n))
		}
	}
	return problems
}

func (e *Exercise) puzzleProblems() []string {
	var problems []string

	n := len(e.Items)
	if GridColumns(n) == 0 {
		problems = append(problems, fmt.Sprintf("puzzle needs %v pieces, got %d", PuzzleSizes, n))
		return problems
	}
	used := make([]bool, n)
	for _, it := range e.Items {
		if it.Slot < 0 || it.Slot >= n {
			problems = append(problems, fmt.Sprintf("piece %q slot %d out of range", it.ID, it.Slot))
			continue
		}
		if used[it.Slot] {
			problems = append(problems, fmt.Sprintf("slot %d assigned twice", it.Slot))
		}
		used[it.Slot] = true
	}
	return problems
}

// Validate checks the deck structure and every exercise, joining all errors
func (d *Deck) Validate() error {
	var errs []error
	if len(d.Exercises) == 0 {
		errs = append(errs, fmt.Errorf("%w: deck %q has no exercises", ErrInvalidExercise, d.Name))
	}
	ids := make(map[Identity]struct{}, len(d.Exercises))
	for i := range d.Exercises {
		ex := &d.Exercises[i]
		if _, dup := ids[ex.Identity()]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate identity %s", ErrInvalidExercise, ex.Identity()))
		}
		ids[ex.Identity()] = struct{}{}
		if err := ex.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
