package testutil

import (
	"sync"
	"time"
)

// Epoch is the default FixedClock time: Wednesday 2026-01-07 09:00 UTC.
var Epoch = time.Date(2026, time.January, 7, 9, 0, 0, 0, time.UTC)

// FixedClock is a settable clock for tests. It satisfies dispatch.Clock.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock stopped at t. A zero t means Epoch.
func NewFixedClock(t time.Time) *FixedClock {
	if t.IsZero() {
		t = Epoch
	}
	return &FixedClock{now: t}
}

// Now returns the current fixed time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// AdvanceDays moves the clock forward by n days.
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}
