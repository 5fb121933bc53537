// Package combat provides the real-time scheduling primitives for battles:
// per-actor progress clocks, the actor state machine, and the ready queue that
// serializes action execution.
package combat

import "time"

// Clock is a pausable progress timer advanced by elapsed frame time.
// The zero value is a paused clock with no target, which reports as expired.
type Clock struct {
	target  time.Duration
	elapsed time.Duration
	running bool
}

// NewClock returns a paused clock armed with the given target.
func NewClock(target time.Duration) Clock {
	c := Clock{}
	c.Reset(target)
	return c
}

// Run resumes advancement. Accumulated time is kept.
func (c *Clock) Run() { c.running = true }

// Pause stops advancement without dropping accumulated time.
func (c *Clock) Pause() { c.running = false }

// IsRunning reports whether Advance currently has any effect.
func (c *Clock) IsRunning() bool { return c.running }

// Advance adds dt to the elapsed time while running.
// Negative deltas are treated as zero; elapsed never passes the target.
func (c *Clock) Advance(dt time.Duration) {
	if !c.running || dt <= 0 {
		return
	}
	c.elapsed += dt
	if c.elapsed > c.target {
		c.elapsed = c.target
	}
}

// IsExpired returns true once elapsed time has reached the target.
func (c *Clock) IsExpired() bool {
	return c.elapsed >= c.target
}

// FractionComplete returns elapsed/target clamped to [0,1].
// A clock with no target is complete.
func (c *Clock) FractionComplete() float64 {
	if c.target <= 0 {
		return 1
	}
	f := float64(c.elapsed) / float64(c.target)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// Reset rearms the clock with a new target and zero elapsed time.
// The running flag is preserved.
func (c *Clock) Reset(target time.Duration) {
	if target < 0 {
		target = 0
	}
	c.target = target
	c.elapsed = 0
}

// Target returns the armed duration.
func (c *Clock) Target() time.Duration { return c.target }

// Elapsed returns the accumulated time.
func (c *Clock) Elapsed() time.Duration { return c.elapsed }

// Remaining returns the time left until expiry.
func (c *Clock) Remaining() time.Duration {
	return c.target - c.elapsed
}
