package handler

import (
	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/formatter"
)

// Serializer renders an event to the message passed to a console.
type Serializer func(*core.Event) string

// Broadcaster mirrors events to a ConsoleLike. The event is serialized
// without its params, which are handed to the console as trailing arguments.
// A FullConsole target gets the method matching the event level.
type Broadcaster struct {
	target    ConsoleLike
	serialize Serializer
	stats     *Stats
}

// NewBroadcaster creates a console mirror. A nil target writes to stdout,
// a nil serialize uses formatter.StringifyBase.
func NewBroadcaster(target ConsoleLike, serialize Serializer) *Broadcaster {
	if target == nil {
		target = NewConsoleHandler(ConsoleConfig{})
	}
	if serialize == nil {
		serialize = formatter.StringifyBase
	}
	return &Broadcaster{
		target:    target,
		serialize: serialize,
		stats:     NewStats(),
	}
}

// OnEvent implements core.Listener.
func (b *Broadcaster) OnEvent(ev *core.Event) error {
	CallConsoleLevel(b.target, ev.Level, b.serialize(ev), ev.Params)
	b.stats.IncrementProcessed()
	return nil
}

// Target returns the console events are mirrored to.
func (b *Broadcaster) Target() ConsoleLike {
	return b.target
}

// Stats returns a snapshot of the current statistics
func (b *Broadcaster) Stats() Snapshot {
	return b.stats.GetSnapshot()
}
