package registry

import (
	"sync/atomic"
	"time"
)

// Clock provides the registry's logical block height. Heights only increase.
type Clock interface {
	Height() uint64
}

// IntervalClock maps wall-clock time onto block heights: one height per
// interval elapsed since genesis.
type IntervalClock struct {
	Genesis  time.Time
	Interval time.Duration
}

func (c IntervalClock) Height() uint64 {
	elapsed := time.Since(c.Genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.Interval)
}

// ManualClock is a hand-advanced clock for tests.
type ManualClock struct {
	height atomic.Uint64
}

func NewManualClock(height uint64) *ManualClock {
	c := &ManualClock{}
	c.height.Store(height)
	return c
}

func (c *ManualClock) Height() uint64 {
	return c.height.Load()
}

func (c *ManualClock) Advance(blocks uint64) {
	c.height.Add(blocks)
}

func (c *ManualClock) Set(height uint64) {
	c.height.Store(height)
}
