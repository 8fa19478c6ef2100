package geometry

import (
	"time"

	"github.com/lixenwraith/dotgrid/host"
)

// Policy bounds a retry sequence
// Attempt n (0-based, n > 0) waits Delay + (n-1)*Step after the previous failure
type Policy struct {
	Attempts int
	Delay    time.Duration
	Step     time.Duration

	// OnRetry is called before each scheduled retry with the failed attempt number
	OnRetry func(attempt int, err error)
}

// wait returns the delay before attempt n
func (p Policy) wait(n int) time.Duration {
	return p.Delay + time.Duration(n-1)*p.Step
}

// Retry runs op until it succeeds or the policy is exhausted, then calls done once
// The first attempt runs synchronously; later ones are scheduled on s
// op receives final=true on the last permitted attempt
// The returned handle cancels any pending retry; done is not called after Cancel
func Retry[T any](s host.Scheduler, p Policy, op func(final bool) (T, error), done func(T, int, error)) host.Handle {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	r := &retry[T]{sched: s, policy: p, op: op, done: done}
	r.run(0)
	return r
}

type retry[T any] struct {
	sched     host.Scheduler
	policy    Policy
	op        func(bool) (T, error)
	done      func(T, int, error)
	pending   host.Handle
	cancelled bool
}

func (r *retry[T]) run(attempt int) {
	if r.cancelled {
		return
	}
	final := attempt == r.policy.Attempts-1
	v, err := r.op(final)
	if err == nil || final {
		r.done(v, attempt+1, err)
		return
	}

	if r.policy.OnRetry != nil {
		r.policy.OnRetry(attempt+1, err)
	}
	next := attempt + 1
	r.pending = r.sched.AfterFunc(r.policy.wait(next), func() { r.run(next) })
}

// Cancel implements host.Handle
func (r *retry[T]) Cancel() {
	r.cancelled = true
	if r.pending != nil {
		r.pending.Cancel()
	}
}
