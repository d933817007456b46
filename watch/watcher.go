// Package watch reloads an exercise deck when its file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/exercise"
)

// DefaultDebounce coalesces the burst of events a single editor save produces
const DefaultDebounce = 250 * time.Millisecond

// ReloadFunc receives each successfully parsed deck
type ReloadFunc func(*exercise.Deck)

// Stats tracks watcher activity
type Stats struct {
	Events  int
	Reloads int
	Errors  int
}

// DeckWatcher watches one deck file
// The parent directory is watched so atomic-rename saves are seen
type DeckWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	debounce time.Duration
	onReload ReloadFunc
	log      *zap.Logger
	stats    Stats
}

// New creates a watcher for path; call Run to start
func New(path string, onReload ReloadFunc, log *zap.Logger) (*DeckWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DeckWatcher{
		watcher:  w,
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: DefaultDebounce,
		onReload: onReload,
		log:      log,
	}, nil
}

// SetDebounce changes the quiet period before a reload; call before Run
func (dw *DeckWatcher) SetDebounce(d time.Duration) {
	dw.debounce = d
}

// Stats returns a copy of the counters
func (dw *DeckWatcher) Stats() Stats {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.stats
}

// Run blocks until ctx is cancelled, reloading the deck after each settled change
func (dw *DeckWatcher) Run(ctx context.Context) error {
	defer dw.watcher.Close()

	if err := dw.watcher.Add(dw.dir); err != nil {
		return err
	}
	dw.log.Info("watching deck", zap.String("path", dw.path))

	timer := time.NewTimer(dw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return nil
			}
			if !dw.relevant(ev) {
				continue
			}
			dw.mu.Lock()
			dw.stats.Events++
			dw.mu.Unlock()
			dw.log.Debug("deck event", zap.String("op", ev.Op.String()))
			timer.Reset(dw.debounce)

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return nil
			}
			dw.log.Warn("watcher error", zap.Error(err))
			dw.mu.Lock()
			dw.stats.Errors++
			dw.mu.Unlock()

		case <-timer.C:
			dw.reload()
		}
	}
}

func (dw *DeckWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != dw.path {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0
}

func (dw *DeckWatcher) reload() {
	deck, err := exercise.LoadDeck(dw.path)
	if err != nil {
		// Keep the current deck; a half-written file will settle on the next save
		dw.log.Warn("deck reload failed", zap.Error(err))
		dw.mu.Lock()
		dw.stats.Errors++
		dw.mu.Unlock()
		return
	}
	dw.mu.Lock()
	dw.stats.Reloads++
	dw.mu.Unlock()
	dw.log.Info("deck reloaded", zap.String("name", deck.Name), zap.Int("exercises", len(deck.Exercises)))
	if dw.onReload != nil {
		dw.onReload(deck)
	}
}
