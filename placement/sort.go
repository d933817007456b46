package placement

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/hittest"
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/vmath"
)

// SortSession is the classify variant: many items, few category targets
// An item is unplaced until dropped on its correct category, after which it is
// permanently placed and no longer draggable. Wrong drops never touch the
// placement; they only count toward the give-up ceiling
type SortSession struct {
	*base

	items     map[string]exercise.Item
	pool      []string // Shuffled display order
	placement map[string]layout.TargetID
	wrong     int
}

var _ Session = (*SortSession)(nil)

// BeginSort validates ex and starts a fresh sort instance
func BeginSort(ex *exercise.Exercise, cfg Config, opts ...Option) (*SortSession, error) {
	b, err := newBase(ex, exercise.VariantSort, cfg, opts)
	if err != nil {
		return nil, err
	}

	s := &SortSession{
		base:      b,
		items:     make(map[string]exercise.Item, len(b.ex.Items)),
		pool:      make([]string, 0, len(b.ex.Items)),
		placement: make(map[string]layout.TargetID, len(b.ex.Items)),
	}
	for _, it := range b.ex.Items {
		s.items[it.ID] = it
		s.pool = append(s.pool, it.ID)
	}
	b.rng.Shuffle(len(s.pool), func(i, j int) { s.pool[i], s.pool[j] = s.pool[j], s.pool[i] })

	s.start(exercise.VariantSort)
	return s, nil
}

// OnLayout records a category zone rect; ids that are not categories are ignored
func (s *SortSession) OnLayout(target layout.TargetID, rect vmath.Rect) {
	if !s.isCategory(target) {
		s.log.Warn("layout for unknown category ignored", zap.String("target", string(target)))
		return
	}
	s.registry.Register(target, rect)
}

func (s *SortSession) isCategory(target layout.TargetID) bool {
	for _, c := range s.ex.Categories {
		if layout.TargetID(c.ID) == target {
			return true
		}
	}
	return false
}

// Enabled reports whether the item can still be dragged
func (s *SortSession) Enabled(itemID string) bool {
	if _, ok := s.items[itemID]; !ok {
		return false
	}
	_, placed := s.placement[itemID]
	return !placed && !s.Completed()
}

// OnDragEnd applies the classify rule to a release at point
func (s *SortSession) OnDragEnd(itemID string, point vmath.Point) Outcome {
	item, ok := s.items[itemID]
	if !ok {
		return s.snapBack(itemID, ReasonUnknownItem)
	}
	if s.Completed() {
		return s.snapBack(itemID, ReasonCompleted)
	}
	if _, placed := s.placement[itemID]; placed {
		return s.snapBack(itemID, ReasonDisabled)
	}

	res := hittest.Resolve(point, s.registry, s.cfg.DropThreshold())
	switch {
	case !res.Found:
		if !s.cfg.CountMisses {
			return s.snapBack(itemID, ReasonNoTarget)
		}
		return s.reject(itemID, "", ReasonNoTarget)

	case res.Target == layout.TargetID(item.Category):
		return s.accept(itemID, res.Target)

	default:
		return s.reject(itemID, res.Target, ReasonWrongTarget)
	}
}

func (s *SortSession) accept(itemID string, target layout.TargetID) Outcome {
	s.placement[itemID] = target
	s.log.Debug("drop accepted", zap.String("item", itemID), zap.String("target", string(target)))
	s.emit(event.Event{Type: event.EventAccepted, Item: itemID, Target: string(target)})
	s.emit(event.Event{Type: event.EventHapticSuccess, Item: itemID})

	if len(s.placement) == len(s.items) {
		s.latch.solved()
	}
	return accepted(itemID, target)
}

func (s *SortSession) reject(itemID string, target layout.TargetID, reason Reason) Outcome {
	s.wrong++
	s.log.Debug("drop rejected",
		zap.String("item", itemID),
		zap.String("target", string(target)),
		zap.Stringer("reason", reason),
		zap.Int("wrong", s.wrong),
	)
	s.emit(event.Event{Type: event.EventRejected, Item: itemID, Target: string(target)})
	s.emit(event.Event{Type: event.EventHapticError, Item: itemID})

	if s.cfg.WrongCeiling > 0 && s.wrong >= s.cfg.WrongCeiling && !s.latch.done() {
		s.log.Info("wrong-attempt ceiling reached", zap.Int("wrong", s.wrong))
		s.latch.giveUp()
	}

	out := rejected(itemID, reason)
	out.Target = target
	out.Counted = true
	return out
}

// snapBack returns the item to origin without penalty
func (s *SortSession) snapBack(itemID string, reason Reason) Outcome {
	s.emit(event.Event{Type: event.EventSnapBack, Item: itemID})
	return rejected(itemID, reason)
}

// Placement returns the committed target of an item
func (s *SortSession) Placement(itemID string) (layout.TargetID, bool) {
	t, ok := s.placement[itemID]
	return t, ok
}

// Pool returns unplaced items in shuffled display order
func (s *SortSession) Pool() []string {
	out := make([]string, 0, len(s.pool)-len(s.placement))
	for _, id := range s.pool {
		if _, placed := s.placement[id]; !placed {
			out = append(out, id)
		}
	}
	return out
}

// PlacedIn returns items committed to a category, in pool order
func (s *SortSession) PlacedIn(target layout.TargetID) []string {
	var out []string
	for _, id := range s.pool {
		if t, placed := s.placement[id]; placed && t == target {
			out = append(out, id)
		}
	}
	return out
}

// Item returns the item data
func (s *SortSession) Item(itemID string) (exercise.Item, bool) {
	it, ok := s.items[itemID]
	return it, ok
}

// WrongAttempts returns the rejection counter
func (s *SortSession) WrongAttempts() int {
	return s.wrong
}

// Snapshot summarizes progress
func (s *SortSession) Snapshot() Snapshot {
	return Snapshot{
		Instance:      s.id,
		Identity:      s.Identity(),
		Variant:       exercise.VariantSort,
		Phase:         s.Phase(),
		Items:         len(s.items),
		Placed:        len(s.placement),
		WrongAttempts: s.wrong,
		Completed:     s.Completed(),
		Success:       s.Completed() && s.latch.result(),
	}
}
