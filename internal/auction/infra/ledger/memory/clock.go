package memory

import "sync/atomic"

// ManualClock is a settable Clock for tests and simulations.
type ManualClock struct {
	now atomic.Int64
}

func NewManualClock(start int64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

func (c *ManualClock) Now() int64 {
	return c.now.Load()
}

func (c *ManualClock) Set(t int64) {
	c.now.Store(t)
}

func (c *ManualClock) Advance(seconds int64) {
	c.now.Add(seconds)
}
