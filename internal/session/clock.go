package session

import "time"

// Clock is the per-question countdown.
type Clock struct {
	started time.Time
	limit   time.Duration
}

// Start restarts the countdown at now.
func (c *Clock) Start(limit time.Duration, now time.Time) {
	c.started = now
	c.limit = limit
}

// Elapsed is the time since Start, capped at the limit.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	e := now.Sub(c.started)
	switch {
	case e < 0:
		return 0
	case e > c.limit:
		return c.limit
	}
	return e
}

// Remaining is the whole seconds left, floored at 0.
func (c *Clock) Remaining(now time.Time) int {
	return int((c.limit - c.Elapsed(now)) / time.Second)
}

// Expired reports whether the limit has been reached.
func (c *Clock) Expired(now time.Time) bool {
	return now.Sub(c.started) >= c.limit
}

func (c *Clock) Limit() time.Duration { return c.limit }
