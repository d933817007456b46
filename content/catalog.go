// Package content resolves where exercises come from and walks them in order.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/asset"
	"github.com/lixenwraith/dropzone/exercise"
)

// DeckExtensions lists the file suffixes recognized as decks
var DeckExtensions = []string{".yaml", ".yml"}

// Discover returns deck files in dir, skipping hidden files and subdirectories
// A missing directory yields no files and no error
func Discover(dir string, log *zap.Logger) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Debug("deck directory missing", zap.String("dir", dir))
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read deck directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		for _, ext := range DeckExtensions {
			if strings.HasSuffix(name, ext) {
				files = append(files, filepath.Join(dir, name))
				break
			}
		}
	}
	sort.Strings(files)
	log.Debug("discovered decks", zap.Int("count", len(files)))
	return files, nil
}

// Open reads a deck for play. Deck-level problems fail; an invalid exercise
// is only logged, the board shows its fallback screen when it comes up
func Open(source string, log *zap.Logger) (*exercise.Deck, error) {
	deck, err := Read(source, log)
	if err != nil {
		return nil, err
	}
	if err := Playable(deck, log); err != nil {
		return nil, err
	}
	return deck, nil
}

// Playable checks what navigation depends on: at least one exercise and
// unique identities. Per-exercise validation errors are logged, not returned
func Playable(deck *exercise.Deck, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if len(deck.Exercises) == 0 {
		return fmt.Errorf("%w: deck %q has no exercises", exercise.ErrInvalidExercise, deck.Name)
	}
	ids := make(map[exercise.Identity]struct{}, len(deck.Exercises))
	for i := range deck.Exercises {
		ex := &deck.Exercises[i]
		if _, dup := ids[ex.Identity()]; dup {
			return fmt.Errorf("%w: duplicate identity %s", exercise.ErrInvalidExercise, ex.Identity())
		}
		ids[ex.Identity()] = struct{}{}
		if err := ex.Validate(); err != nil {
			log.Warn("exercise invalid, fallback will be shown",
				zap.Stringer("exercise", ex.Identity()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Read resolves a deck source without validating it: empty = built-in,
// directory = merge of every deck file in it, otherwise a single file
func Read(source string, log *zap.Logger) (*exercise.Deck, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var deck *exercise.Deck
	switch info, err := os.Stat(source); {
	case source == "":
		deck, err = exercise.ParseDeck([]byte(asset.DefaultDeck))
		if err != nil {
			return nil, fmt.Errorf("built-in deck: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("deck source: %w", err)
	case info.IsDir():
		deck, err = loadDir(source, log)
		if err != nil {
			return nil, err
		}
	default:
		deck, err = exercise.LoadDeck(source)
		if err != nil {
			return nil, err
		}
	}
	return deck, nil
}

func loadDir(dir string, log *zap.Logger) (*exercise.Deck, error) {
	files, err := Discover(dir, log)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no deck files in %s", exercise.ErrNotFound, dir)
	}

	merged := &exercise.Deck{Name: filepath.Base(dir)}
	for _, f := range files {
		d, err := exercise.LoadDeck(f)
		if err != nil {
			return nil, err
		}
		merged.Exercises = append(merged.Exercises, d.Exercises...)
	}
	return merged, nil
}

// Catalog walks a deck in (stage, order) sequence
type Catalog struct {
	deck  *exercise.Deck
	order []exercise.Identity
}

// NewCatalog indexes the deck; the deck must not be mutated afterwards
func NewCatalog(deck *exercise.Deck) *Catalog {
	order := make([]exercise.Identity, len(deck.Exercises))
	for i := range deck.Exercises {
		order[i] = deck.Exercises[i].Identity()
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Stage != order[j].Stage {
			return order[i].Stage < order[j].Stage
		}
		return order[i].Order < order[j].Order
	})
	return &Catalog{deck: deck, order: order}
}

// Deck returns the indexed deck
func (c *Catalog) Deck() *exercise.Deck {
	return c.deck
}

// Len returns the exercise count
func (c *Catalog) Len() int {
	return len(c.order)
}

// First returns the earliest exercise
func (c *Catalog) First() (*exercise.Exercise, bool) {
	if len(c.order) == 0 {
		return nil, false
	}
	return c.deck.Find(c.order[0])
}

// Get returns the exercise with the given identity
func (c *Catalog) Get(id exercise.Identity) (*exercise.Exercise, bool) {
	return c.deck.Find(id)
}

// Next returns the exercise after id, wrapping to the first
func (c *Catalog) Next(id exercise.Identity) (*exercise.Exercise, bool) {
	return c.step(id, 1)
}

// Prev returns the exercise before id, wrapping to the last
func (c *Catalog) Prev(id exercise.Identity) (*exercise.Exercise, bool) {
	return c.step(id, -1)
}

func (c *Catalog) step(id exercise.Identity, dir int) (*exercise.Exercise, bool) {
	n := len(c.order)
	for i, cur := range c.order {
		if cur == id {
			return c.deck.Find(c.order[(i+dir+n)%n])
		}
	}
	return c.First()
}

// Identities returns the walk order
func (c *Catalog) Identities() []exercise.Identity {
	return append([]exercise.Identity(nil), c.order...)
}
