package engine

import "time"

// Throttle gates native frame callbacks down to a fixed logical rate
// Elapsed time accumulates across callbacks and the remainder after a draw is carried,
// so the long-run rate does not drift with the native refresh
type Throttle struct {
	interval time.Duration
	acc      time.Duration
	last     time.Time
	primed   bool
}

// NewThrottle creates a throttle for the given logical interval
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Tick reports whether the callback at now should draw
// The first tick always draws
func (t *Throttle) Tick(now time.Time) bool {
	if !t.primed {
		t.primed = true
		t.last = now
		t.acc = 0
		return true
	}

	elapsed := now.Sub(t.last)
	t.last = now
	if elapsed > 0 {
		t.acc += elapsed
	}
	if t.acc < t.interval {
		return false
	}

	t.acc -= t.interval
	// Fold a stall backlog to its remainder instead of replaying it as a burst
	if t.acc > 2*t.interval {
		t.acc %= t.interval
	}
	return true
}

// Pending returns the carried remainder
func (t *Throttle) Pending() time.Duration {
	return t.acc
}

// Reset forgets timing so the next tick draws
func (t *Throttle) Reset() {
	t.primed = false
	t.acc = 0
	t.last = time.Time{}
}
