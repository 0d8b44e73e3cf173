package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/ledgewalker/parameter"
)

// SimClock accumulates simulated seconds with pause support
// Thread-Safety:
//   - Pause/Resume/Toggle may be called from the input goroutine
//   - Advance and Now belong to the tick loop
type SimClock struct {
	now   float64
	ticks uint64

	paused atomic.Bool
}

func NewSimClock() *SimClock {
	return &SimClock{}
}

// Advance moves time by dt capped at MaxTickDt, returning the applied step
// Returns false without advancing while paused or for non-positive dt
func (c *SimClock) Advance(dt float64) (float64, bool) {
	if c.paused.Load() || dt <= 0 {
		return 0, false
	}
	dt = min(dt, parameter.MaxTickDt)
	c.now += dt
	c.ticks++
	return dt, true
}

// Now returns simulated seconds since start
func (c *SimClock) Now() float64 { return c.now }

// Ticks returns the number of applied steps
func (c *SimClock) Ticks() uint64 { return c.ticks }

func (c *SimClock) Pause()       { c.paused.Store(true) }
func (c *SimClock) Resume()      { c.paused.Store(false) }
func (c *SimClock) Paused() bool { return c.paused.Load() }

// Toggle flips the pause state and returns the new state
func (c *SimClock) Toggle() bool {
	for {
		p := c.paused.Load()
		if c.paused.CompareAndSwap(p, !p) {
			return !p
		}
	}
}
