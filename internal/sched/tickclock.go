// internal/sched/tickclock.go

package sched

import "fmt"

// TickClock is the virtual clock owned by one simulation run.
// It only moves forward.
type TickClock struct {
	now int64
}

// Now returns the current tick.
func (c *TickClock) Now() int64 { return c.now }

// Advance moves the clock forward by d ticks.
func (c *TickClock) Advance(d int64) {
	if d <= 0 {
		panic(fmt.Sprintf("sched: clock advance must be positive, got %d", d))
	}
	c.now += d
}

// AdvanceTo jumps the clock to tick t and returns the ticks skipped.
// A target at or behind the current tick is a no-op.
func (c *TickClock) AdvanceTo(t int64) int64 {
	if t <= c.now {
		return 0
	}
	gap := t - c.now
	c.now = t
	return gap
}
