// Package input turns host key edges into the game's two-axis steering signal
// and its start/pause/quit commands.
package input

import (
	"runtime"
	"sync/atomic"
)

// DefaultInboxSlots is the inbox capacity used by the router.
const DefaultInboxSlots = 64

type inboxSlot[T any] struct {
	seq atomic.Uint32
	val T
}

// Inbox is a fixed-capacity lock-free queue between key producers and the
// tick that drains it. Producers reserve a slot by CAS on head and publish it
// through the slot sequence, so a consumer never observes a half-written
// value. It never allocates after construction.
type Inbox[T any] struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	mask  uint32
	slots []inboxSlot[T]
}

// NewInbox returns an inbox holding at least capacity values. The capacity is
// rounded up to a power of two.
func NewInbox[T any](capacity int) *Inbox[T] {
	n := uint32(2)
	for int(n) < capacity {
		n <<= 1
	}
	ib := &Inbox[T]{mask: n - 1, slots: make([]inboxSlot[T], n)}
	for i := range ib.slots {
		ib.slots[i].seq.Store(uint32(i))
	}
	return ib
}

// Cap returns the number of slots.
func (ib *Inbox[T]) Cap() int { return len(ib.slots) }

// Len returns an instantaneous count of queued values.
func (ib *Inbox[T]) Len() int {
	return int(ib.head.Load() - ib.tail.Load())
}

// TrySend attempts to enqueue v, returning false if the inbox is full.
func (ib *Inbox[T]) TrySend(v T) bool {
	for {
		head := ib.head.Load()
		slot := &ib.slots[head&ib.mask]
		seq := slot.seq.Load()
		switch diff := int32(seq - head); {
		case diff == 0:
			// Reserve a slot.
			if ib.head.CompareAndSwap(head, head+1) {
				slot.val = v
				slot.seq.Store(head + 1)
				return true
			}
		case diff < 0:
			return false
		}
		runtime.Gosched()
	}
}

// Send enqueues v, blocking until it succeeds.
func (ib *Inbox[T]) Send(v T) {
	for !ib.TrySend(v) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one value, returning false if empty.
// Only one goroutine may receive.
func (ib *Inbox[T]) TryRecv() (T, bool) {
	var zero T
	tail := ib.tail.Load()
	slot := &ib.slots[tail&ib.mask]
	if slot.seq.Load() != tail+1 {
		return zero, false
	}
	v := slot.val
	slot.val = zero
	slot.seq.Store(tail + ib.mask + 1)
	ib.tail.Store(tail + 1)
	return v, true
}

// Drain hands every queued value to fn in arrival order and returns how many
// were delivered. Values sent while draining may or may not be included.
func (ib *Inbox[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := ib.TryRecv()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}
