// Package clock supplies "now" to booking, queue and payout logic.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// System is wall time in UTC, truncated to the microsecond precision of
// PostgreSQL timestamptz so stored and in-memory instants compare equal.
type System struct{}

func NewRealClock() Clock {
	return System{}
}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// MockClock only moves when told to. Safe for concurrent use.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t.UTC()}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
