// Package handler provides listeners and console adapters that sit at the
// edges of the routing graph.
//
// A listener is anything implementing core.Listener[*core.Event]; a
// transport hands every accepted event to its listeners in registration
// order. The listeners in this package turn events into output:
//
//   - Broadcaster serializes the event's base line and calls the level
//     matching method of its target: the exact level method of a
//     FullConsole, otherwise Log, Warn or Error of a ConsoleLike.
//   - ConsoleHandler writes formatted events to an io.Writer, sending WARN
//     and above to a separate error writer. It is also a FullConsole, so
//     it can be the target of a Broadcaster.
//   - Collector keeps clones of events in memory, mostly for tests.
//   - RateLimited drops events that exceed per-category rates before they
//     reach the listener it wraps.
//   - ZapListener, ZerologListener, LogrusListener and SlogListener hand
//     events to an existing logger of that library.
//
// SlogHandler goes the other way: it implements slog.Handler on top of an
// Emitter so records logged through log/slog enter a transport.
//
// Listeners that count their work expose a Stats snapshot.
package handler
