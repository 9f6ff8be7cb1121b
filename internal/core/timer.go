package core

import "time"

// DeltaClock measures the wall time between consecutive marks. It backs the
// per-generation duration reported to status displays.
type DeltaClock struct {
	now  func() time.Time
	last time.Time
}

// NewDeltaClock constructs a clock. A nil now uses time.Now.
func NewDeltaClock(now func() time.Time) *DeltaClock {
	if now == nil {
		now = time.Now
	}
	return &DeltaClock{now: now}
}

// Reset makes the next Mark measure from the current instant.
func (c *DeltaClock) Reset() {
	c.last = c.now()
}

// Mark returns the time elapsed since the previous Mark or Reset. The result
// is never zero so it can be used as a divisor.
func (c *DeltaClock) Mark() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta <= 0 {
		delta = time.Millisecond
	}
	return delta
}

// PerSecond converts a per-generation duration to a rate.
func PerSecond(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(time.Second) / float64(d)
}
