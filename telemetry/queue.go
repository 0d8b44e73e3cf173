// @focus: #telemetry { queue }
package telemetry

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/ledgewalker/parameter"
)

// Queue buffers telemetry between the tick that produced it and the transport
// Any goroutine may Emit; only the tick loop drains, strictly after a tick.
// When the transport falls behind by a full ring, the oldest events are lost and counted
type Queue struct {
	events [parameter.TelemetryQueueSize]Event
	ready  [parameter.TelemetryQueueSize]atomic.Bool // Slot holds a complete event
	head   atomic.Uint64                             // Sequence of the oldest undelivered event
	tail   atomic.Uint64                             // Sequence the next Emit claims
	lost   atomic.Uint64

	session uuid.UUID
}

// NewQueue creates a queue stamping events with session
func NewQueue(session uuid.UUID) *Queue {
	return &Queue{session: session}
}

// Session returns the id stamped on queued events
func (q *Queue) Session() uuid.UUID { return q.session }

func slot(seq uint64) uint64 { return seq & parameter.TelemetryBufferMask }

// pending bounds the deliverable range to one ring, returning the first sequence and count
func pending(head, tail uint64) (uint64, uint64) {
	if tail <= head {
		return head, 0
	}
	n := tail - head
	if n > parameter.TelemetryQueueSize {
		return tail - parameter.TelemetryQueueSize, parameter.TelemetryQueueSize
	}
	return head, n
}

// Emit claims the next sequence, stores the event and marks its slot ready
func (q *Queue) Emit(e Event) {
	if e.Session == uuid.Nil {
		e.Session = q.session
	}

	seq := q.tail.Load()
	for !q.tail.CompareAndSwap(seq, seq+1) {
		seq = q.tail.Load()
	}
	q.events[slot(seq)] = e
	q.ready[slot(seq)].Store(true)

	// A full ring pushes the oldest undelivered event out
	next := seq + 1
	head := q.head.Load()
	if head < next && next-head > parameter.TelemetryQueueSize {
		oldest := next - parameter.TelemetryQueueSize
		if q.head.CompareAndSwap(head, oldest) {
			q.lost.Add(oldest - head)
		}
	}
}

// Consume takes every ready event in emission order
// Stops at the first slot still being written; the rest is picked up next drain
func (q *Queue) Consume() []Event {
	for {
		seen := q.head.Load()
		head, n := pending(seen, q.tail.Load())
		if n == 0 {
			return nil
		}

		out := make([]Event, 0, n)
		for seq := head; seq < head+n; seq++ {
			if !q.ready[slot(seq)].Load() {
				break
			}
			out = append(out, q.events[slot(seq)])
			q.ready[slot(seq)].Store(false)
		}

		if q.head.CompareAndSwap(seen, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Drain hands pending events to the transport and returns how many were delivered
func (q *Queue) Drain(transport Sink) int {
	events := q.Consume()
	for _, e := range events {
		transport.Emit(e)
	}
	return len(events)
}

// Len returns the approximate number of undelivered events
func (q *Queue) Len() int {
	_, n := pending(q.head.Load(), q.tail.Load())
	return int(n)
}

// Dropped returns how many events were overwritten before being drained
func (q *Queue) Dropped() uint64 { return q.lost.Load() }
