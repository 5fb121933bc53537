package finish

import "time"

// Tier sets the increment applied while the remaining balance is above a
// threshold.
type Tier struct {
	Above int
	Step  int
}

// CounterConfig parameterizes staged counting.
type CounterConfig struct {
	// Period is the time between two increments.
	Period time.Duration
	// Tiers are checked in order; the first with Above < remaining wins.
	Tiers []Tier
	// MinStep is used when no tier matches.
	MinStep int
}

// DefaultCounterConfig counts in steps of 1000, 100, 10 and 1 every 50ms.
func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		Period: 50 * time.Millisecond,
		Tiers: []Tier{
			{Above: 10000, Step: 1000},
			{Above: 1000, Step: 100},
			{Above: 100, Step: 10},
		},
		MinStep: 1,
	}
}

// Signal is what a confirm press did to a counter.
type Signal int

const (
	// SignalStarted - counting began.
	SignalStarted Signal = iota
	// SignalFlushed - the whole remaining balance was applied at once.
	SignalFlushed
	// SignalDone - nothing was left; the caller should move on.
	SignalDone
)

// Counter hands out a balance in timed increments so the value can be shown
// ticking up. It never applies more than the remaining balance.
type Counter struct {
	cfg       CounterConfig
	remaining int
	applied   int
	started   bool
	carry     time.Duration
}

// NewCounter returns an idle counter holding the balance. Negative balances
// are treated as zero.
func NewCounter(cfg CounterConfig, balance int) *Counter {
	if balance < 0 {
		balance = 0
	}
	return &Counter{cfg: cfg, remaining: balance}
}

// Remaining returns the balance not yet applied.
func (c *Counter) Remaining() int { return c.remaining }

// Applied returns the total applied so far.
func (c *Counter) Applied() int { return c.applied }

// Started reports whether counting has begun.
func (c *Counter) Started() bool { return c.started }

// Done reports whether the balance is exhausted.
func (c *Counter) Done() bool { return c.remaining == 0 }

// Step returns the increment the next period would apply.
func (c *Counter) Step() int {
	step := c.cfg.MinStep
	for _, t := range c.cfg.Tiers {
		if c.remaining > t.Above {
			step = t.Step
			break
		}
	}
	if step < 1 {
		step = 1
	}
	if step > c.remaining {
		step = c.remaining
	}
	return step
}

// Confirm reacts to the player's confirm press.
func (c *Counter) Confirm() (Signal, int) {
	switch {
	case c.remaining == 0:
		return SignalDone, 0
	case !c.started:
		c.started = true
		return SignalStarted, 0
	default:
		return SignalFlushed, c.Flush()
	}
}

// Flush applies everything that is left and returns that amount.
func (c *Counter) Flush() int {
	n := c.remaining
	c.applied += n
	c.remaining = 0
	c.started = true
	c.carry = 0
	return n
}

// Update accumulates elapsed time and applies one increment per full period.
// It returns the amount applied during this call.
func (c *Counter) Update(dt time.Duration) int {
	if !c.started || c.remaining == 0 || dt <= 0 {
		return 0
	}
	if c.cfg.Period <= 0 {
		return c.Flush()
	}

	c.carry += dt
	total := 0
	for c.carry >= c.cfg.Period && c.remaining > 0 {
		c.carry -= c.cfg.Period
		step := c.Step()
		c.remaining -= step
		c.applied += step
		total += step
	}
	if c.remaining == 0 {
		c.carry = 0
	}
	return total
}
