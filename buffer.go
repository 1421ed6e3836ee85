package quicklog

import (
	"sync"
)

// dualBuffer is a pair of bounded record queues with an active selector.
// Producers append to the active queue; the flush loop swaps the selector and
// detaches the inactive queue for writing outside the lock.
type dualBuffer struct {
	mu       sync.Mutex
	queues   [2][]Record
	parked   [2][]Record
	active   int
	capacity int
	overflow uint64 // since last reset
	dropped  uint64 // lifetime total
	closed   bool   // set before the final drain; later pushes are discarded
}

func newDualBuffer(capacity int) *dualBuffer {
	b := &dualBuffer{capacity: capacity}
	for i := range b.queues {
		b.queues[i] = make([]Record, 0, capacity)
	}
	return b
}

// push appends to the active queue or drops and counts the record when full.
// Reports whether the record was accepted.
// Records pushed after close are discarded without counting as overflow.
func (b *dualBuffer) push(r Record) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false
	}
	q := &b.queues[b.active]
	if len(*q) >= b.capacity {
		b.overflow++
		b.dropped++
		b.mu.Unlock()
		return false
	}
	*q = append(*q, r)
	b.mu.Unlock()
	return true
}

// close stops accepting records. Everything accepted before close stays
// queued for the final drain.
func (b *dualBuffer) close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// setActive selects the queue producers append to
func (b *dualBuffer) setActive(i int) {
	b.mu.Lock()
	b.active = i
	b.mu.Unlock()
}

// take detaches queue i and leaves an empty queue in its place.
// The caller owns the returned records and should hand the slice back via recycle.
func (b *dualBuffer) take(i int) []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.queues[i]
	if len(q) == 0 {
		return nil
	}
	b.queues[i] = b.spare(i)
	return q
}

// spare returns an empty slice for queue i, reusing the detached backing array
// when one is parked. Caller holds the lock.
func (b *dualBuffer) spare(i int) []Record {
	if s := b.parked[i]; s != nil {
		b.parked[i] = nil
		return s
	}
	return make([]Record, 0, b.capacity)
}

// recycle parks a drained slice for reuse by queue i
func (b *dualBuffer) recycle(i int, records []Record) {
	if records == nil {
		return
	}
	clear(records)
	b.mu.Lock()
	if cap(records) >= b.capacity {
		b.parked[i] = records[:0]
	}
	b.mu.Unlock()
}

// takeOverflow returns the overflow count since the last reset and resets it
func (b *dualBuffer) takeOverflow() uint64 {
	b.mu.Lock()
	n := b.overflow
	b.overflow = 0
	b.mu.Unlock()
	return n
}

func (b *dualBuffer) overflowCount() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.overflow
}

func (b *dualBuffer) totalDropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// pending returns the number of queued records across both queues
func (b *dualBuffer) pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queues[0]) + len(b.queues[1])
}

// setCapacity changes the per-queue bound. Records already queued beyond a
// reduced bound are kept and drained normally.
func (b *dualBuffer) setCapacity(capacity int) {
	b.mu.Lock()
	b.capacity = capacity
	b.parked = [2][]Record{}
	b.mu.Unlock()
}

func (b *dualBuffer) getCapacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}
