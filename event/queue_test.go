package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	assert.Nil(t, q.Consume())

	q.Push(Event{Type: EventDragStart, Seq: 1})
	q.Emit(Event{Type: EventAccepted, Seq: 2})
	assert.Equal(t, 2, q.Len())

	got := q.Consume()
	require.Len(t, got, 2)
	assert.Equal(t, EventDragStart, got[0].Type)
	assert.Equal(t, EventAccepted, got[1].Type)
	assert.Zero(t, q.Len())
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	for i := 0; i < QueueSize+10; i++ {
		q.Push(Event{Seq: int64(i)})
	}
	assert.Equal(t, QueueSize, q.Len())

	got := q.Consume()
	require.Len(t, got, QueueSize)
	assert.Equal(t, int64(10), got[0].Seq)
	assert.Equal(t, int64(QueueSize+9), got[len(got)-1].Seq)
	assert.Equal(t, uint64(10), q.Overwritten())
}

func TestQueueDrainIntoSink(t *testing.T) {
	q := NewQueue()
	assert.Zero(t, q.Drain(Discard))

	q.Push(Event{Type: EventHapticError, Seq: 1})
	q.Push(Event{Type: EventRejected, Seq: 2})

	var got []EventType
	n := q.Drain(SinkFunc(func(ev Event) { got = append(got, ev.Type) }))
	assert.Equal(t, 2, n)
	assert.Equal(t, []EventType{EventHapticError, EventRejected}, got)
	assert.Zero(t, q.Len())
	assert.Zero(t, q.Overwritten())
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 32; i++ {
				q.Push(Event{Type: EventHapticError})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Consume(), 128)
}

func TestFanoutAndNames(t *testing.T) {
	var a, b []EventType
	f := Fanout{
		SinkFunc(func(ev Event) { a = append(a, ev.Type) }),
		nil,
		SinkFunc(func(ev Event) { b = append(b, ev.Type) }),
	}
	f.Emit(Event{Type: EventComplete})
	Discard.Emit(Event{Type: EventComplete})

	assert.Equal(t, []EventType{EventComplete}, a)
	assert.Equal(t, a, b)
	assert.Equal(t, "Complete", EventComplete.String())
	assert.Equal(t, "Unknown", EventType(999).String())
}
