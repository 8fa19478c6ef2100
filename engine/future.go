package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/dotgrid/host"
)

// future is a one-shot readiness signal resolved by the grid build
type future struct {
	ch        chan struct{}
	once      sync.Once
	callbacks []func()
}

func newFuture() *future {
	return &future{ch: make(chan struct{})}
}

// Resolve closes the future and runs callbacks in registration order, idempotent
func (f *future) Resolve() {
	f.once.Do(func() {
		close(f.ch)
		cbs := f.callbacks
		f.callbacks = nil
		for _, fn := range cbs {
			fn()
		}
	})
}

// Done is closed on Resolve
func (f *future) Done() <-chan struct{} {
	return f.ch
}

// Resolved reports whether Resolve ran
func (f *future) Resolved() bool {
	select {
	case <-f.ch:
		return true
	default:
		return false
	}
}

// OnResolve registers fn, running it at once if already resolved
func (f *future) OnResolve(fn func()) {
	if f.Resolved() {
		fn()
		return
	}
	f.callbacks = append(f.callbacks, fn)
}

// awaitWithTimeout races f against a timer; exactly one of onReady and onTimeout runs
// Cancelling the returned handle stops the timer; a later Resolve then still calls onReady,
// which callers guard by state
func awaitWithTimeout(s host.Scheduler, f *future, d time.Duration, onReady, onTimeout func()) host.Handle {
	settled := false
	timer := s.AfterFunc(d, func() {
		if settled {
			return
		}
		settled = true
		onTimeout()
	})
	f.OnResolve(func() {
		if settled {
			return
		}
		settled = true
		timer.Cancel()
		onReady()
	})
	return timer
}
