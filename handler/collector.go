package handler

import (
	"sync"

	"github.com/philipp01105/logfan/core"
)

// Collector keeps clones of the events it receives in memory. With a limit,
// the oldest events are discarded once it is reached.
type Collector struct {
	mu     sync.Mutex
	events []*core.Event
	limit  int
}

// NewCollector creates a collector holding at most limit events; limit <= 0
// means unbounded.
func NewCollector(limit int) *Collector {
	return &Collector{limit: limit}
}

// OnEvent implements core.Listener.
func (c *Collector) OnEvent(ev *core.Event) error {
	clone := ev.Clone()
	c.mu.Lock()
	c.events = append(c.events, clone)
	if c.limit > 0 && len(c.events) > c.limit {
		n := len(c.events) - c.limit
		clear(c.events[:n])
		c.events = c.events[n:]
	}
	c.mu.Unlock()
	return nil
}

// Events returns the collected events, oldest first.
func (c *Collector) Events() []*core.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*core.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Messages returns the message of every collected event, oldest first.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.events))
	for i, ev := range c.events {
		out[i] = ev.Message
	}
	return out
}

// Len returns the number of collected events.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

// Reset discards every collected event.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.events = nil
	c.mu.Unlock()
}
