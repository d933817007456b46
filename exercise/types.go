// Package exercise defines exercise decks: the immutable item and category
// data a placement session is built from, plus loading and validation.
package exercise

import (
	"fmt"
	"strconv"
	"strings"
)

// Variant selects the placement rule set
type Variant string

const (
	VariantSort   Variant = "sort"
	VariantPuzzle Variant = "puzzle"
)

// Supported ranges
const (
	MinCategories = 2
	MaxCategories = 4
	MinSortItems  = 2
	MaxSortItems  = 16
)

// PuzzleSizes are the supported square grids (2x2, 3x3, 4x4)
var PuzzleSizes = []int{4, 9, 16}

// Identity keys an exercise within a deck; a change of identity resets the
// live instance
type Identity struct {
	Stage int `yaml:"stage"`
	Order int `yaml:"order"`
}

func (id Identity) String() string {
	return fmt.Sprintf("%d.%d", id.Stage, id.Order)
}

// ParseIdentity parses the "stage.order" form produced by String
func ParseIdentity(s string) (Identity, error) {
	stage, order, ok := strings.Cut(s, ".")
	if !ok {
		return Identity{}, fmt.Errorf("identity %q: want stage.order", s)
	}
	st, err := strconv.Atoi(stage)
	if err != nil {
		return Identity{}, fmt.Errorf("identity %q: %w", s, err)
	}
	or, err := strconv.Atoi(order)
	if err != nil {
		return Identity{}, fmt.Errorf("identity %q: %w", s, err)
	}
	return Identity{Stage: st, Order: or}, nil
}

// Category is a sort-variant drop target
type Category struct {
	ID       string `yaml:"id" validate:"required"`
	Label    string `yaml:"label"`
	Expected int    `yaml:"expected" validate:"gte=0"` // Display hint; 0 = derive from items
}

// Item is one draggable unit; Word and Image are opaque to placement logic
type Item struct {
	ID       string `yaml:"id" validate:"required"`
	Word     string `yaml:"word"`
	Image    string `yaml:"image"`
	Category string `yaml:"category"` // Sort: correct category id
	Slot     int    `yaml:"slot"`     // Puzzle: correct grid index
}

// Exercise is one mountable exercise definition
type Exercise struct {
	Stage      int        `yaml:"stage" validate:"gte=0"`
	Order      int        `yaml:"order" validate:"gte=0"`
	Variant    Variant    `yaml:"variant" validate:"required,oneof=sort puzzle"`
	Title      string     `yaml:"title"`
	Categories []Category `yaml:"categories" validate:"dive"`
	Items      []Item     `yaml:"items" validate:"required,dive"`
}

// Identity returns the exercise key
func (e *Exercise) Identity() Identity {
	return Identity{Stage: e.Stage, Order: e.Order}
}

// Columns returns the puzzle grid width, 0 for non-square counts
func (e *Exercise) Columns() int {
	return GridColumns(len(e.Items))
}

// ExpectedCount returns the display count for a category, derived from items
// when not given explicitly
func (e *Exercise) ExpectedCount(categoryID string) int {
	for _, c := range e.Categories {
		if c.ID == categoryID && c.Expected > 0 {
			return c.Expected
		}
	}
	n := 0
	for _, it := range e.Items {
		if it.Category == categoryID {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so a session owns its data outright
func (e *Exercise) Clone() *Exercise {
	out := *e
	out.Categories = append([]Category(nil), e.Categories...)
	out.Items = append([]Item(nil), e.Items...)
	return &out
}

// GridColumns returns sqrt(n) for supported puzzle sizes, 0 otherwise
func GridColumns(n int) int {
	for _, size := range PuzzleSizes {
		if size == n {
			c := 1
			for c*c < n {
				c++
			}
			return c
		}
	}
	return 0
}

// Deck is an ordered set of exercises, typically one YAML file
type Deck struct {
	Name      string     `yaml:"name"`
	Exercises []Exercise `yaml:"exercises" validate:"required,min=1,dive"`
}

// Find returns the exercise with the given identity
func (d *Deck) Find(id Identity) (*Exercise, bool) {
	for i := range d.Exercises {
		if d.Exercises[i].Identity() == id {
			return &d.Exercises[i], true
		}
	}
	return nil, false
}
