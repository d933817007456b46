// Package board is the terminal front-end: it lays out an exercise on a tcell
// screen, turns mouse drags into gestures and hands releases to the placement
// engine. All board state is owned by the goroutine running Run.
package board

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/dropzone/content"
	"github.com/lixenwraith/dropzone/event"
	"github.com/lixenwraith/dropzone/exercise"
	"github.com/lixenwraith/dropzone/gesture"
	"github.com/lixenwraith/dropzone/layout"
	"github.com/lixenwraith/dropzone/placement"
	"github.com/lixenwraith/dropzone/vmath"
)

// FrameInterval is the render tick, ~60 FPS
const FrameInterval = 16 * time.Millisecond

// Options configures a board
type Options struct {
	Engine  placement.Config
	Gesture gesture.Options
	Sink    event.Sink // Audio, metrics; receives every drained event
	Log     *zap.Logger
	Now     func() time.Time
}

// piece is one draggable item on screen
type piece struct {
	id      string
	word    string
	tracker *gesture.Tracker
	placed  bool // Sort: committed, drawn compact inside its zone
}

// deckEvent carries a reloaded deck into the event loop
type deckEvent struct {
	tcell.EventTime
	deck *exercise.Deck
}

// Board hosts one live exercise instance on a screen
type Board struct {
	screen  tcell.Screen
	catalog *content.Catalog
	manager *placement.Manager
	queue   *event.Queue
	sink    event.Sink
	log     *zap.Logger
	cfg     placement.Config
	gopts   gesture.Options
	now     func() time.Time

	session     placement.Session
	arrangement layout.Arrangement
	pieces      map[string]*piece
	order       []string // Draw order, bottom to top
	active      *piece
	press       vmath.Point
	pointer     pointer

	fallback string             // Shown instead of the engine when an exercise is invalid
	failed   *exercise.Identity // Exercise behind the fallback; navigation continues from it
	banner   string
	lost     uint64 // Overwritten feedback already logged
	width    int
	height   int
}

// New creates a board over an initialized screen
func New(screen tcell.Screen, catalog *content.Catalog, opts Options) *Board {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Sink == nil {
		opts.Sink = event.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	q := event.NewQueue()
	b := &Board{
		screen:  screen,
		catalog: catalog,
		queue:   q,
		sink:    opts.Sink,
		log:     opts.Log,
		cfg:     opts.Engine,
		gopts:   opts.Gesture,
		now:     opts.Now,
		pieces:  make(map[string]*piece),
	}
	b.manager = placement.NewManager(opts.Engine, opts.Log, placement.WithSink(q))
	return b
}

// Session returns the live instance, nil when showing a fallback
func (b *Board) Session() placement.Session {
	return b.session
}

// Mount shows ex, keeping the live instance when the identity is unchanged
func (b *Board) Mount(ex *exercise.Exercise) {
	s, fresh, err := b.manager.Mount(ex)
	b.show(ex, s, fresh, err)
}

// Restart discards the live instance and begins ex afresh
func (b *Board) Restart(ex *exercise.Exercise) {
	b.manager.Unmount()
	s, err := b.manager.Begin(ex)
	b.show(ex, s, true, err)
}

func (b *Board) show(ex *exercise.Exercise, s placement.Session, fresh bool, err error) {
	b.failed = nil
	if err != nil {
		b.log.Warn("exercise unavailable", zap.Error(err))
		if ex != nil {
			id := ex.Identity()
			b.failed = &id
		}
		b.session = nil
		b.fallback = err.Error()
		b.pieces = make(map[string]*piece)
		b.order = nil
		b.active = nil
		return
	}
	b.fallback = ""
	b.session = s
	if fresh {
		b.banner = ""
		b.active = nil
		b.pieces = make(map[string]*piece)
		b.order = nil
	}
	b.relayout()
}

// Reload posts a new deck into the event loop; safe from any goroutine
func (b *Board) Reload(deck *exercise.Deck) {
	ev := &deckEvent{deck: deck}
	ev.SetEventNow()
	if err := b.screen.PostEvent(ev); err != nil {
		b.log.Warn("deck reload dropped", zap.Error(err))
	}
}

// reload swaps the catalog; a changed deck always begins a fresh instance
func (b *Board) reload(deck *exercise.Deck) {
	b.catalog = content.NewCatalog(deck)
	var ex *exercise.Exercise
	var ok bool
	if id, shown := b.shown(); shown {
		ex, ok = b.catalog.Get(id)
	}
	if !ok {
		ex, ok = b.catalog.First()
	}
	if !ok {
		b.show(nil, nil, false, exercise.ErrNotFound)
		return
	}
	b.Restart(ex)
}

// relayout computes geometry for the current screen size and registers it
func (b *Board) relayout() {
	b.width, b.height = b.screen.Size()
	if b.session == nil {
		return
	}
	area := vmath.Rect{X: 1, Y: 2, Width: float64(b.width - 2), Height: float64(b.height - 4)}
	b.arrangement = placement.Arrange(b.session, b.cfg.ItemWidth, b.cfg.ItemHeight, area)
	b.arrangement.Apply(b.session.OnLayout)

	switch s := b.session.(type) {
	case *placement.SortSession:
		for i, id := range s.Pool() {
			b.place(id, s, b.arrangement.Rests[i].Origin())
		}
		for _, c := range s.Exercise().Categories {
			for _, id := range s.PlacedIn(layout.TargetID(c.ID)) {
				p := b.place(id, s, b.zoneSlot(layout.TargetID(c.ID), id))
				p.placed = true
				p.tracker.SetEnabled(false)
			}
		}
	case *placement.PuzzleSession:
		for _, it := range s.Exercise().Items {
			slot, _ := s.SlotOf(it.ID)
			b.place(it.ID, s, b.arrangement.Targets[slot].Rect.Origin())
		}
	}
	if b.session.Completed() {
		b.lock()
	}
}

// itemSource looks up item payloads; both session variants provide it
type itemSource interface {
	Item(id string) (exercise.Item, bool)
}

// place creates the piece for an item or jumps an existing one to rest
func (b *Board) place(id string, s itemSource, rest vmath.Point) *piece {
	if p, ok := b.pieces[id]; ok {
		p.tracker.Place(rest)
		return p
	}
	it, _ := s.Item(id)
	p := &piece{
		id:      id,
		word:    it.Word,
		tracker: gesture.NewTracker(rest, b.cfg.ItemWidth, b.cfg.ItemHeight, b.gopts),
	}
	b.pieces[id] = p
	b.order = append(b.order, id)
	return p
}

// zoneSlot is where a placed item sits: stacked one row each inside its zone
func (b *Board) zoneSlot(target layout.TargetID, id string) vmath.Point {
	zone, _ := b.arrangement.Target(target)
	idx := 0
	if s, ok := b.session.(*placement.SortSession); ok {
		for i, placed := range s.PlacedIn(target) {
			if placed == id {
				idx = i
			}
		}
	}
	return vmath.Point{X: zone.X + 1, Y: zone.Y + 1 + float64(idx)}
}

// restack keeps the other items of a zone in display order after a new one lands
func (b *Board) restack(target layout.TargetID, except string, now time.Time) {
	s, ok := b.session.(*placement.SortSession)
	if !ok {
		return
	}
	for _, id := range s.PlacedIn(target) {
		if p, ok := b.pieces[id]; ok && id != except {
			p.tracker.MoveRest(b.zoneSlot(target, id), now)
		}
	}
}

// slotOrigin is the top-left of a puzzle slot
func (b *Board) slotOrigin(target layout.TargetID) vmath.Point {
	r, _ := b.arrangement.Target(target)
	return r.Origin()
}

// lock disables every piece once the instance completes
func (b *Board) lock() {
	for _, p := range b.pieces {
		p.tracker.SetEnabled(false)
	}
}

// pieceAt returns the topmost draggable piece under pt
func (b *Board) pieceAt(pt vmath.Point, now time.Time) *piece {
	for i := len(b.order) - 1; i >= 0; i-- {
		p := b.pieces[b.order[i]]
		if p.placed || !p.tracker.Enabled() || !b.session.Enabled(p.id) {
			continue
		}
		off := p.tracker.Visual(now).Offset
		r := vmath.Rect{X: off.X, Y: off.Y, Width: b.cfg.ItemWidth - 1, Height: b.cfg.ItemHeight - 1}
		if r.Contains(pt) {
			return p
		}
	}
	return nil
}

// raise moves a piece to the top of the draw order
func (b *Board) raise(p *piece) {
	for i, id := range b.order {
		if id == p.id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.order = append(b.order, p.id)
}

// HandleEvent processes one screen event; returns true to quit
func (b *Board) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return b.handleKey(ev)
	case *tcell.EventMouse:
		b.handleMouse(ev)
	case *tcell.EventResize:
		b.cancelDrag()
		b.relayout()
		b.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			b.cancelDrag()
		}
	case *deckEvent:
		b.cancelDrag()
		b.reload(ev.deck)
	}
	return false
}

func (b *Board) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		if b.active != nil {
			b.cancelDrag()
			return false
		}
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'n':
		b.step(b.catalog.Next)
	case 'p':
		b.step(b.catalog.Prev)
	case 'r':
		if ex, ok := b.current(); ok {
			b.Restart(ex)
		}
	}
	return false
}

// shown is the identity on screen, live or behind the fallback
func (b *Board) shown() (exercise.Identity, bool) {
	switch {
	case b.session != nil:
		return b.session.Identity(), true
	case b.failed != nil:
		return *b.failed, true
	default:
		return exercise.Identity{}, false
	}
}

func (b *Board) current() (*exercise.Exercise, bool) {
	id, ok := b.shown()
	if !ok {
		return b.catalog.First()
	}
	if ex, ok := b.catalog.Get(id); ok {
		return ex, true
	}
	return b.catalog.First()
}

func (b *Board) step(next func(exercise.Identity) (*exercise.Exercise, bool)) {
	b.cancelDrag()
	id, _ := b.shown()
	if ex, ok := next(id); ok {
		b.Mount(ex)
	}
}

func (b *Board) handleMouse(ev *tcell.EventMouse) {
	action, pt := b.pointer.decode(ev)
	if b.session == nil {
		return
	}
	now := b.now()

	switch action {
	case MouseActionPress:
		p := b.pieceAt(pt, now)
		if p == nil || !p.tracker.Begin(now) {
			return
		}
		b.active = p
		b.press = pt
		b.raise(p)
		b.queue.Push(event.Event{Type: event.EventDragStart, Instance: b.session.ID(), Item: p.id})

	case MouseActionDrag:
		if b.active != nil {
			b.active.tracker.Move(pt.Sub(b.press))
		}

	case MouseActionRelease:
		if b.active == nil {
			return
		}
		p := b.active
		b.active = nil
		p.tracker.Move(pt.Sub(b.press))
		rel, ok := p.tracker.End()
		if !ok {
			return
		}
		b.apply(p, b.session.OnDragEnd(p.id, rel.Anchor), now)
	}
}

// apply settles pieces wherever the engine decided
func (b *Board) apply(p *piece, out placement.Outcome, now time.Time) {
	b.log.Debug("drop",
		zap.String("item", p.id),
		zap.Stringer("outcome", out.Kind),
		zap.Stringer("reason", out.Reason),
	)

	switch out.Kind {
	case placement.Accepted:
		p.placed = true
		p.tracker.SetEnabled(false)
		p.tracker.Settle(b.zoneSlot(out.Target, p.id), now)
		b.restack(out.Target, p.id, now)

	case placement.Swapped:
		p.tracker.Settle(b.slotOrigin(out.Target), now)
		if d, ok := b.pieces[out.Displaced]; ok {
			d.tracker.MoveRest(b.slotOrigin(out.From), now)
		}

	default:
		if out.Counted || out.Reason == placement.ReasonWrongTarget {
			p.tracker.SettleRejected(p.tracker.Rest(), now)
		} else {
			p.tracker.Settle(p.tracker.Rest(), now)
		}
	}

	if b.session.Completed() {
		b.lock()
	}
}

// cancelDrag abandons an in-flight gesture without reporting a drop
func (b *Board) cancelDrag() {
	b.pointer.reset()
	if b.active != nil {
		b.active.tracker.Cancel()
		b.active = nil
	}
}

// Tick drains feedback to the sinks and redraws
func (b *Board) Tick(now time.Time) {
	b.queue.Drain(event.SinkFunc(func(ev event.Event) {
		if ev.Type == event.EventComplete && b.session != nil && ev.Instance == b.session.ID() {
			if ev.Success {
				b.banner = "Well done!"
			} else {
				b.banner = "Good try! Press n for the next one"
			}
		}
		b.sink.Emit(ev)
	}))
	if lost := b.queue.Overwritten(); lost > b.lost {
		b.log.Debug("feedback overwritten before playback", zap.Uint64("total", lost))
		b.lost = lost
	}
	b.draw(now)
}

// Run polls input and renders until ctx is cancelled or the user quits
// The caller owns the screen and must Fini it afterwards, which also ends
// the polling goroutine
func (b *Board) Run(ctx context.Context, crash func(r any)) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)

	Go(crash, func() {
		for {
			ev := b.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	})

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if b.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			b.Tick(b.now())
		}
	}
}
