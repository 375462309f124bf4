package engine

import "time"

// RoundClock tracks the time left in a round. now is always passed in.
type RoundClock struct {
	duration time.Duration
	start    time.Time
	started  bool
}

func NewRoundClock(d time.Duration) RoundClock {
	return RoundClock{duration: d}
}

func (c *RoundClock) Start(now time.Time) {
	c.start = now
	c.started = true
}

func (c RoundClock) Started() bool { return c.started }

func (c RoundClock) Duration() time.Duration { return c.duration }

// Remaining is the full duration before Start and is clamped to [0, duration].
func (c RoundClock) Remaining(now time.Time) time.Duration {
	if !c.started {
		return c.duration
	}
	left := c.duration - now.Sub(c.start)
	switch {
	case left < 0:
		return 0
	case left > c.duration:
		return c.duration
	}
	return left
}

func (c RoundClock) HasExpired(now time.Time) bool {
	return c.Remaining(now) <= 0
}
