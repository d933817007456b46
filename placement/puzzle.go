package placement

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/hittest"
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/vmath"
)

const slotPrefix = "slot-"

// SlotTarget returns the layout target id of a grid slot
func SlotTarget(slot int) layout.TargetID {
	return layout.TargetID(slotPrefix + strconv.Itoa(slot))
}

// ParseSlot is the inverse of SlotTarget; only the canonical form parses,
// so "slot-01" never aliases slot 1
func ParseSlot(target layout.TargetID) (int, bool) {
	s, ok := strings.CutPrefix(string(target), slotPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || SlotTarget(n) != target {
		return 0, false
	}
	return n, true
}

// PuzzleSession is the grid-swap variant
// Pieces are indexed by their correct slot. slotOf[p] is the slot piece p
// occupies and pieceAt is its inverse; together they always form a bijection
// over [0, n). Solved is slotOf[p] == p for every p
type PuzzleSession struct {
	*base

	ids     []string       // Piece index -> item id
	index   map[string]int // Item id -> piece index
	slotOf  []int
	pieceAt []int
	columns int
	swaps   int
	rerolls int
}

var _ Session = (*PuzzleSession)(nil)

// BeginPuzzle validates ex and starts a fresh puzzle with a non-solved shuffle
func BeginPuzzle(ex *exercise.Exercise, cfg Config, opts ...Option) (*PuzzleSession, error) {
	b, err := newBase(ex, exercise.VariantPuzzle, cfg, opts)
	if err != nil {
		return nil, err
	}

	n := len(b.ex.Items)
	p := &PuzzleSession{
		base:    b,
		ids:     make([]string, n),
		index:   make(map[string]int, n),
		columns: exercise.GridColumns(n),
	}
	for _, it := range b.ex.Items {
		p.ids[it.Slot] = it.ID
		p.index[it.ID] = it.Slot
	}

	// Initializing: latch rejects solved signals until ready
	p.setPermutation(p.shuffle(n))
	p.start(exercise.VariantPuzzle)
	return p, nil
}

// shuffle draws a non-identity permutation, re-rolling a bounded number of
// times and falling back to swapping the first two entries
func (p *PuzzleSession) shuffle(n int) []int {
	retries := p.cfg.ShuffleRetries
	if retries <= 0 {
		retries = DefaultShuffleRetries
	}
	var perm []int
	for attempt := 0; attempt < retries; attempt++ {
		perm = p.rng.Perm(n)
		if !isIdentity(perm) {
			return perm
		}
		p.rerolls++
	}
	p.log.Debug("shuffle fallback", zap.Int("rerolls", p.rerolls))
	// Every draw was the identity; validation guarantees n >= 2
	perm[0], perm[1] = perm[1], perm[0]
	return perm
}

func (p *PuzzleSession) setPermutation(slotOf []int) {
	p.slotOf = slotOf
	p.pieceAt = make([]int, len(slotOf))
	for piece, slot := range slotOf {
		p.pieceAt[slot] = piece
	}
}

func isIdentity(perm []int) bool {
	for i, v := range perm {
		if i != v {
			return false
		}
	}
	return true
}

// OnLayout records a grid slot rect; non-slot ids are ignored
func (p *PuzzleSession) OnLayout(target layout.TargetID, rect vmath.Rect) {
	slot, ok := ParseSlot(target)
	if !ok || slot >= len(p.slotOf) {
		p.log.Warn("layout for unknown slot ignored", zap.String("target", string(target)))
		return
	}
	p.registry.Register(target, rect)
}

// Enabled reports whether a piece can be dragged; every piece is draggable
// until the puzzle completes
func (p *PuzzleSession) Enabled(itemID string) bool {
	_, ok := p.index[itemID]
	return ok && !p.Completed()
}

// OnDragEnd resolves the release to a slot and swaps with its occupant
// Inside the board bounds a drop always lands on some slot (nearest center
// fallback); outside with no candidate the piece snaps back
func (p *PuzzleSession) OnDragEnd(itemID string, point vmath.Point) Outcome {
	piece, ok := p.index[itemID]
	if !ok {
		return p.snapBack(itemID, ReasonUnknownItem)
	}
	if p.Completed() {
		return p.snapBack(itemID, ReasonCompleted)
	}

	res := hittest.Resolve(point, p.registry, p.cfg.DropThreshold())
	if !res.Found {
		if bounds, ok := p.registry.Bounds(); ok && bounds.Contains(point) {
			res = hittest.ResolveNearest(point, p.registry)
		}
	}
	if !res.Found {
		return p.snapBack(itemID, ReasonNoTarget)
	}

	to, _ := ParseSlot(res.Target)
	from := p.slotOf[piece]
	if to == from {
		return p.snapBack(itemID, ReasonSameSlot)
	}

	other := p.pieceAt[to]
	p.slotOf[piece], p.slotOf[other] = to, from
	p.pieceAt[to], p.pieceAt[from] = piece, other
	p.swaps++

	fromID, toID := SlotTarget(from), SlotTarget(to)
	p.log.Debug("pieces swapped",
		zap.String("item", itemID),
		zap.String("displaced", p.ids[other]),
		zap.Int("from", from),
		zap.Int("to", to),
	)
	p.emit(event.Event{Type: event.EventSwapped, Item: itemID, Target: string(toID), From: string(fromID)})
	if to == piece {
		p.emit(event.Event{Type: event.EventHapticSuccess, Item: itemID})
	}

	if isIdentity(p.slotOf) {
		p.latch.solved()
	}
	return swapped(itemID, p.ids[other], fromID, toID)
}

func (p *PuzzleSession) snapBack(itemID string, reason Reason) Outcome {
	p.emit(event.Event{Type: event.EventSnapBack, Item: itemID})
	return rejected(itemID, reason)
}

// Permutation returns a copy of piece -> slot
func (p *PuzzleSession) Permutation() []int {
	return append([]int(nil), p.slotOf...)
}

// SlotOf returns the slot currently holding the item
func (p *PuzzleSession) SlotOf(itemID string) (int, bool) {
	piece, ok := p.index[itemID]
	if !ok {
		return 0, false
	}
	return p.slotOf[piece], true
}

// Occupant returns the item id in a slot
func (p *PuzzleSession) Occupant(slot int) (string, bool) {
	if slot < 0 || slot >= len(p.pieceAt) {
		return "", false
	}
	return p.ids[p.pieceAt[slot]], true
}

// Item returns the item data of a piece
func (p *PuzzleSession) Item(itemID string) (exercise.Item, bool) {
	piece, ok := p.index[itemID]
	if !ok {
		return exercise.Item{}, false
	}
	for _, it := range p.ex.Items {
		if it.Slot == piece {
			return it, true
		}
	}
	return exercise.Item{}, false
}

// Columns returns the grid width
func (p *PuzzleSession) Columns() int {
	return p.columns
}

// Size returns the number of pieces
func (p *PuzzleSession) Size() int {
	return len(p.slotOf)
}

// Rerolls returns how many identity shuffles were discarded at start
func (p *PuzzleSession) Rerolls() int {
	return p.rerolls
}

// Snapshot summarizes progress
func (p *PuzzleSession) Snapshot() Snapshot {
	inPlace := 0
	for piece, slot := range p.slotOf {
		if piece == slot {
			inPlace++
		}
	}
	return Snapshot{
		Instance:  p.id,
		Identity:  p.Identity(),
		Variant:   exercise.VariantPuzzle,
		Phase:     p.Phase(),
		Items:     len(p.slotOf),
		Placed:    inPlace,
		Swaps:     p.swaps,
		Completed: p.Completed(),
		Success:   p.Completed() && p.latch.result(),
	}
}
