package core

import "sync"

// Filter is a predicate over events.
type Filter func(*Event) bool

// AcceptEverything is the tautology filter.
func AcceptEverything(*Event) bool { return true }

// GuardMode selects how a Guard decides.
type GuardMode int

const (
	// GuardDefault consults the guard's filter.
	GuardDefault GuardMode = iota
	// GuardAcceptAll accepts every event.
	GuardAcceptAll
	// GuardBlockAll rejects every event.
	GuardBlockAll
)

// String returns the string representation of the mode
func (m GuardMode) String() string {
	switch m {
	case GuardDefault:
		return "Default"
	case GuardAcceptAll:
		return "AcceptAll"
	case GuardBlockAll:
		return "BlockAll"
	default:
		return "Unknown"
	}
}

// Guard is a mode plus a filter predicate. Changing the mode never discards
// the filter. The zero value is in GuardDefault mode with a tautology filter.
type Guard struct {
	mu     sync.RWMutex
	mode   GuardMode
	filter Filter
}

// SetFilter replaces the filter. Nil resets it to AcceptEverything.
func (g *Guard) SetFilter(f Filter) {
	g.mu.Lock()
	g.filter = f
	g.mu.Unlock()
}

// Filter returns the current filter.
func (g *Guard) Filter() Filter {
	g.mu.RLock()
	f := g.filter
	g.mu.RUnlock()
	if f == nil {
		return AcceptEverything
	}
	return f
}

// SetMode switches the guard mode.
func (g *Guard) SetMode(m GuardMode) {
	g.mu.Lock()
	g.mode = m
	g.mu.Unlock()
}

// Mode returns the current guard mode.
func (g *Guard) Mode() GuardMode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

// Accepts applies the mode, consulting the filter only in GuardDefault.
func (g *Guard) Accepts(ev *Event) bool {
	g.mu.RLock()
	mode, f := g.mode, g.filter
	g.mu.RUnlock()
	switch mode {
	case GuardAcceptAll:
		return true
	case GuardBlockAll:
		return false
	}
	return f == nil || f(ev)
}

// FilterAccepts returns the raw filter result, ignoring the mode.
func (g *Guard) FilterAccepts(ev *Event) bool {
	return g.Filter()(ev)
}
