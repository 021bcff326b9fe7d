// Package transport implements the aggregation node of the routing graph.
//
// A Transport turns (level, tag, message, params) emissions into events,
// decides whether to accept them and broadcasts accepted events to its
// listeners:
//
//	t := transport.New(transport.Config{Name: "app"})
//	t.SetLevel(core.InfoLevel)
//	t.AddListener(handler.NewConsoleHandler(handler.ConsoleConfig{}))
//	_ = t.Emit(core.WarnLevel, "db", "slow query", nil)
//
// An event is accepted when the transport is enabled, its guard accepts
// the event and the event level is at or above the active level.
//
// # Piping
//
// PipeTo links one transport into another, forming a directed graph. The
// downstream transport filters events again with its own guard and range.
// Piping a transport to itself is ignored; longer cycles are not detected
// and recurse until the stack overflows, so keeping the graph acyclic is
// up to the caller.
//
// # Recycling
//
// Events come from a recycling ring (core.Buffer). Listeners must not keep
// an event past the call that delivered it; use Event.Clone to keep a copy.
//
// # Default broadcast
//
// Every transport owns a console mirror listener that prints events through
// a handler.ConsoleLike. It is off by default, except on Primary, the
// process-wide transport.
package transport
