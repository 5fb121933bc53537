package battle

import (
	"time"

	"github.com/samdwyer/bandbattle/internal/finish"
)

// Config holds the timing rules of a session.
type Config struct {
	Pacing Pacing
	// BaseIdleTime is the idle duration of the fastest actor. Slower actors
	// idle proportionally longer.
	BaseIdleTime time.Duration
	// DyingTime is how long the death sequence plays.
	DyingTime time.Duration
	IntroTime time.Duration
	OutroTime time.Duration
	Finish    finish.Config
	// Seed drives the initial clock stagger and item drops. Zero picks a
	// random seed.
	Seed int64
}

// DefaultConfig returns active pacing with a three second base idle time.
func DefaultConfig() Config {
	return Config{
		Pacing:       PacingActive,
		BaseIdleTime: 3 * time.Second,
		DyingTime:    800 * time.Millisecond,
		IntroTime:    1500 * time.Millisecond,
		OutroTime:    1500 * time.Millisecond,
		Finish:       finish.DefaultConfig(),
	}
}

// IdleTime returns the idle duration for an actor given the fastest
// agility in the session.
func (c Config) IdleTime(agility, fastest int) time.Duration {
	if agility <= 0 {
		agility = 1
	}
	if fastest < agility {
		fastest = agility
	}
	return time.Duration(float64(c.BaseIdleTime) * float64(fastest) / float64(agility))
}
