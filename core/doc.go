// Package core defines the building blocks of the logfan routing graph.
//
// Level is a plain integer severity on a sparse scale (VerboseLevel 100 up
// to FatalLevel 1000). Display names come from a LevelNameMap; levels
// without a name render as "L-<n>".
//
// Event is the unit that travels through the graph. Events handed out by a
// Buffer are recycled: the ring re-initializes its oldest record in place
// once it is full, so a listener that keeps an event past the call must
// Clone it first. A capacity of 0 turns recycling off.
//
// Emitter is a generic multicast listener registry. Registration is
// idempotent and compares listeners by identity; wrap plain functions with
// ListenerFunc to get a handle that can be removed later. Broadcast walks a
// copy-on-write snapshot, isolates every listener (errors and panics are
// collected with go.uber.org/multierr) and never stops early.
//
// Guard and LevelRange hold the filtering state of a node. A Guard is a
// mode (GuardDefault, GuardAcceptAll, GuardBlockAll) plus a predicate that
// is only consulted in GuardDefault. A LevelRange keeps an active level
// clamped between a min and max bound; it accepts any event whose level is
// at or above the active level. RangeConfig round-trips the range and
// ignores malformed values instead of failing.
//
// Field is a typed key-value pair that can be passed as an event param. It
// encodes itself as {"key":value} JSON using the jsonenc package.
package core
