package handler

import (
	"time"

	catrate "github.com/joeycumines/go-catrate"
	"github.com/philipp01105/logfan/core"
	"github.com/pkg/errors"
)

// RateLimitConfig holds configuration for a rate-limited listener
type RateLimitConfig struct {
	// Rates maps a window to the number of events allowed per category
	// within it, e.g. {time.Second: 10, time.Minute: 100}. Empty disables
	// limiting.
	Rates map[time.Duration]int
	// Category groups events for limiting (default: the event tag)
	Category func(*core.Event) any
}

// RateLimited drops events that exceed per-category rates before they reach
// the wrapped listener.
type RateLimited struct {
	next     EventListener
	limiter  *catrate.Limiter
	category func(*core.Event) any
	stats    *Stats
}

// NewRateLimited wraps next. It fails when the rates are not positive or
// not monotonic.
func NewRateLimited(next EventListener, cfg RateLimitConfig) (r *RateLimited, err error) {
	if next == nil {
		return nil, errors.New("rate limit: listener is required")
	}
	if cfg.Category == nil {
		cfg.Category = tagCategory
	}
	r = &RateLimited{
		next:     next,
		category: cfg.Category,
		stats:    NewStats(),
	}
	if len(cfg.Rates) == 0 {
		return r, nil
	}
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, errors.Errorf("rate limit: %v", p)
		}
	}()
	r.limiter = catrate.NewLimiter(cfg.Rates)
	return r, nil
}

func tagCategory(ev *core.Event) any {
	return ev.Tag
}

// OnEvent forwards ev unless its category is over the limit.
func (r *RateLimited) OnEvent(ev *core.Event) error {
	if _, ok := r.limiter.Allow(r.category(ev)); !ok {
		r.stats.IncrementLimited()
		return nil
	}
	if err := r.next.OnEvent(ev); err != nil {
		r.stats.IncrementFailed()
		return err
	}
	r.stats.IncrementProcessed()
	return nil
}

// Stats returns a snapshot of the current statistics
func (r *RateLimited) Stats() Snapshot {
	return r.stats.GetSnapshot()
}
