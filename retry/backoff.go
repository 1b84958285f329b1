package retry

import (
	"time"
)

// RetryStrategy computes the delay to wait after a failed attempt.
type RetryStrategy interface {
	// NextBackoff returns the delay after the given attempt.
	// The attempt counter starts from 0.
	NextBackoff(attempt int) time.Duration
}

type fixedBackoff time.Duration

// FixedBackoff waits the same duration after every attempt.
func FixedBackoff(d time.Duration) fixedBackoff {
	return fixedBackoff(d)
}

func (f fixedBackoff) NextBackoff(attempt int) time.Duration {
	return time.Duration(f)
}

type linearBackoff time.Duration

// LinearBackoff waits d after the first attempt, 2*d after the second,
// and so on.
func LinearBackoff(d time.Duration) linearBackoff {
	return linearBackoff(d)
}

func (l linearBackoff) NextBackoff(attempt int) time.Duration {
	return time.Duration(l) * time.Duration(attempt+1)
}

type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

// ExponentialBackoff doubles the delay after each attempt, starting at base
// and never exceeding max.
func ExponentialBackoff(base time.Duration, max time.Duration) *exponentialBackoff {
	return &exponentialBackoff{
		base: base,
		max:  max,
	}
}

func (e *exponentialBackoff) NextBackoff(attempt int) time.Duration {
	d := e.base * time.Duration(1<<attempt)
	if d > e.max {
		return e.max
	}
	return d
}
