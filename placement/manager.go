package placement

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/exercise"
)

// Manager owns the live instance for a host screen
// Mounting the same identity keeps the instance; a different identity
// discards it and begins a fresh one. Nothing survives across instances
type Manager struct {
	cfg     Config
	opts    []Option
	log     *zap.Logger
	current Session
}

// NewManager creates a manager; opts apply to every instance it begins
func NewManager(cfg Config, log *zap.Logger, opts ...Option) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cfg:  cfg,
		opts: append([]Option{WithLogger(log)}, opts...),
		log:  log,
	}
}

// Begin starts a fresh instance for ex regardless of the current one
func (m *Manager) Begin(ex *exercise.Exercise) (Session, error) {
	s, err := Begin(ex, m.cfg, m.opts...)
	if err != nil {
		return nil, err
	}
	m.current = s
	return s, nil
}

// Mount returns the live instance for ex, beginning a new one when the
// identity changed; fresh reports whether a new instance was created
// On validation failure the previous instance is unmounted
func (m *Manager) Mount(ex *exercise.Exercise) (s Session, fresh bool, err error) {
	if m.current != nil && ex != nil && m.current.Identity() == ex.Identity() && m.current.Variant() == ex.Variant {
		return m.current, false, nil
	}
	m.Unmount()
	s, err = m.Begin(ex)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Unmount discards the live instance
func (m *Manager) Unmount() {
	if m.current == nil {
		return
	}
	m.log.Debug("instance unmounted", zap.String("instance", m.current.ID()))
	m.current = nil
}

// Current returns the live instance, nil when none is mounted
func (m *Manager) Current() Session {
	return m.current
}

// Begin dispatches on the exercise variant
func Begin(ex *exercise.Exercise, cfg Config, opts ...Option) (Session, error) {
	if ex == nil {
		return nil, fmt.Errorf("%w: nil exercise", exercise.ErrInvalidExercise)
	}
	switch ex.Variant {
	case exercise.VariantSort:
		s, err := BeginSort(ex, cfg, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case exercise.VariantPuzzle:
		p, err := BeginPuzzle(ex, cfg, opts...)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", exercise.ErrUnknownVariant, ex.Variant)
	}
}
