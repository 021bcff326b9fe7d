package core

import (
	"sync"

	"github.com/trickstertwo/xclock"
)

// DefaultBufferCapacity is the ring size used by NewBuffer callers that do
// not pick one.
const DefaultBufferCapacity = 1

// Buffer recycles a fixed ring of events so steady-state emission does not
// allocate. Once the ring is full, Get re-initializes the record at the
// cursor in place; any listener still holding that record sees it change.
type Buffer struct {
	mu       sync.Mutex
	items    []*Event
	cursor   int
	capacity int
	create   EventCreator
}

// NewBuffer creates a buffer holding up to capacity records. Negative
// capacities are treated as 0, which disables recycling.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		capacity: max(0, capacity),
		create:   NewEvent,
	}
}

// Capacity returns the ring size.
func (b *Buffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}

// SetCapacity resizes the ring. Negative values become 0. Shrinking below
// the number of cached records drops the excess.
func (b *Buffer) SetCapacity(n int) {
	n = max(0, n)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.capacity = n
	if len(b.items) > n {
		clear(b.items[n:])
		b.items = b.items[:n]
		if n == 0 {
			b.cursor = 0
		} else {
			b.cursor %= n
		}
	}
}

// SetCreator replaces the event factory. Nil restores NewEvent.
func (b *Buffer) SetCreator(fn EventCreator) {
	if fn == nil {
		fn = NewEvent
	}
	b.mu.Lock()
	b.create = fn
	b.mu.Unlock()
}

// Creator returns the event factory in use.
func (b *Buffer) Creator() EventCreator {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.create
}

// Get returns an event carrying the given values, recycling the oldest
// record when the ring is full.
func (b *Buffer) Get(level Level, tag, message string, params []any) *Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.capacity == 0 {
		return b.build(b.create, level, tag, message, params)
	}
	if len(b.items) < b.capacity {
		ev := b.build(b.create, level, tag, message, params)
		b.items = append(b.items, ev)
		return ev
	}
	ev := b.items[b.cursor]
	ev.Initialize(level, tag, message, params, xclock.Now().UnixMilli())
	b.cursor = (b.cursor + 1) % len(b.items)
	return ev
}

// New returns a fresh event that is never cached or recycled.
func (b *Buffer) New(level Level, tag, message string, params []any) *Event {
	b.mu.Lock()
	create := b.create
	b.mu.Unlock()
	return b.build(create, level, tag, message, params)
}

func (b *Buffer) build(create EventCreator, level Level, tag, message string, params []any) *Event {
	if ev := create(level, tag, message, params); ev != nil {
		return ev
	}
	return NewEvent(level, tag, message, params)
}

// Len returns the number of cached records.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Clear drops every cached record and resets the cursor.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.items = nil
	b.cursor = 0
	b.mu.Unlock()
}
