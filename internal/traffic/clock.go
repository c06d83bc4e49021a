// internal/traffic/clock.go

package traffic

import (
	"sync/atomic"
	"time"
)

// CycleLength is the number of millisecond ticks in one full light cycle.
const CycleLength uint32 = 8000

// CycleClock is a millisecond counter that wraps at CycleLength.
// Advance is the only writer; Count may be called from any goroutine.
type CycleClock struct {
	Ch    chan struct{} // signalled after every Advance, never blocks the writer
	count atomic.Uint32
	stop  chan struct{}
}

// NewCycleClock creates a clock at tick 0. The clock does not run until Start.
func NewCycleClock(buffer int) *CycleClock {
	return &CycleClock{
		Ch:   make(chan struct{}, buffer),
		stop: make(chan struct{}),
	}
}

// Advance moves the clock forward by one tick and wraps to 0 at CycleLength.
func (c *CycleClock) Advance() {
	next := c.count.Load() + 1
	if next >= CycleLength {
		next = 0
	}
	c.count.Store(next)

	select {
	case c.Ch <- struct{}{}:
	default:
	}
}

// Count returns the current tick in [0, CycleLength).
func (c *CycleClock) Count() uint32 {
	return c.count.Load()
}

// Start runs the tick source: Advance is called once per interval until Stop.
func (c *CycleClock) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Advance()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop signals the tick source to stop advancing the clock.
func (c *CycleClock) Stop() {
	close(c.stop)
}
