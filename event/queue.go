package event

import (
	"sync/atomic"
)

const (
	// QueueSize is the feedback backlog kept between two frames; power of two
	QueueSize = 256
	slotMask  = QueueSize - 1
)

// Queue buffers feedback between the placement engine and the frame that
// plays it back. Sessions emit into it while handling a drop; the host drains
// it once per frame into audio, metrics and the renderer.
//
// Any goroutine may emit; only the frame loop drains. Feedback is
// fire-and-forget: when a frame falls behind, the oldest cues are overwritten
// and counted in Overwritten rather than blocking the engine.
type Queue struct {
	slots   [QueueSize]Event
	ready   [QueueSize]atomic.Bool // Slot written and not yet drained
	next    atomic.Uint64          // Next slot to drain
	claimed atomic.Uint64          // Slots handed to producers
	lost    atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Emit makes Queue a Sink
func (q *Queue) Emit(ev Event) {
	q.Push(ev)
}

// Push records one cue, claiming its slot with a CAS on the write index
func (q *Queue) Push(ev Event) {
	for {
		seq := q.claimed.Load()
		if !q.claimed.CompareAndSwap(seq, seq+1) {
			continue
		}
		i := seq & slotMask
		q.slots[i] = ev
		q.ready[i].Store(true) // After the write

		// Behind by a full ring: the oldest cue is gone
		if next := q.next.Load(); seq+1-next > QueueSize {
			if q.next.CompareAndSwap(next, seq+1-QueueSize) {
				q.lost.Add(seq + 1 - QueueSize - next)
			}
		}
		return
	}
}

// Drain hands every pending cue to sink in emission order and returns how
// many were delivered; a slot still being written ends the pass early
func (q *Queue) Drain(sink Sink) int {
	pending := q.Consume()
	for _, ev := range pending {
		sink.Emit(ev)
	}
	return len(pending)
}

// Consume removes and returns the pending cues, nil when there are none
func (q *Queue) Consume() []Event {
	for {
		head := q.next.Load()
		upto := q.claimed.Load()
		if upto == head {
			return nil
		}
		from := head
		if upto-from > QueueSize {
			from = upto - QueueSize
		}

		out := make([]Event, 0, upto-from)
		for seq := from; seq < upto; seq++ {
			i := seq & slotMask
			if !q.ready[i].Load() {
				break
			}
			out = append(out, q.slots[i])
			q.ready[i].Store(false)
		}

		if q.next.CompareAndSwap(head, from+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len approximates the cues waiting for the next frame
func (q *Queue) Len() int {
	from, upto := q.next.Load(), q.claimed.Load()
	if upto <= from {
		return 0
	}
	return int(min(upto-from, QueueSize))
}

// Overwritten counts cues lost because a frame drained too late
func (q *Queue) Overwritten() uint64 {
	return q.lost.Load()
}

// Sink receives feedback synchronously: the queue itself, audio, metrics
type Sink interface {
	Emit(ev Event)
}

// Fanout delivers each event to every sink in order
type Fanout []Sink

func (f Fanout) Emit(ev Event) {
	for _, s := range f {
		if s != nil {
			s.Emit(ev)
		}
	}
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ev Event)

func (fn SinkFunc) Emit(ev Event) { fn(ev) }

// Discard drops every event
var Discard Sink = SinkFunc(func(Event) {})
