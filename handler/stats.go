package handler

import (
	"sync/atomic"
)

// Stats tracks delivery statistics
type Stats struct {
	// ProcessedTotal counts events delivered
	ProcessedTotal uint64
	// SuppressedTotal counts events rejected by a guard or level check
	SuppressedTotal uint64
	// FailedTotal counts deliveries where a listener reported an error
	FailedTotal uint64
	// LimitedTotal counts events dropped by a rate limit
	LimitedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.ProcessedTotal, 1)
}

// IncrementSuppressed atomically increments the suppressed counter
func (s *Stats) IncrementSuppressed() {
	atomic.AddUint64(&s.SuppressedTotal, 1)
}

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() {
	atomic.AddUint64(&s.FailedTotal, 1)
}

// IncrementLimited atomically increments the rate-limited counter
func (s *Stats) IncrementLimited() {
	atomic.AddUint64(&s.LimitedTotal, 1)
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return atomic.LoadUint64(&s.ProcessedTotal)
}

// GetSuppressed returns the suppressed count
func (s *Stats) GetSuppressed() uint64 {
	return atomic.LoadUint64(&s.SuppressedTotal)
}

// GetFailed returns the failed count
func (s *Stats) GetFailed() uint64 {
	return atomic.LoadUint64(&s.FailedTotal)
}

// GetLimited returns the rate-limited count
func (s *Stats) GetLimited() uint64 {
	return atomic.LoadUint64(&s.LimitedTotal)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.ProcessedTotal, 0)
	atomic.StoreUint64(&s.SuppressedTotal, 0)
	atomic.StoreUint64(&s.FailedTotal, 0)
	atomic.StoreUint64(&s.LimitedTotal, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	ProcessedTotal  uint64
	SuppressedTotal uint64
	FailedTotal     uint64
	LimitedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		ProcessedTotal:  s.GetProcessed(),
		SuppressedTotal: s.GetSuppressed(),
		FailedTotal:     s.GetFailed(),
		LimitedTotal:    s.GetLimited(),
	}
}
