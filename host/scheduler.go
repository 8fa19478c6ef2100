// Package host provides the single-threaded callback queue the animation engine runs on.
//
// All engine work (frames, timers, pointer and resize signals) is serialized onto one
// goroutine. Implementations never run two callbacks concurrently.
package host

import (
	"sync/atomic"
	"time"
)

// Handle cancels a pending frame request or timer
// Cancel must be idempotent and safe after the callback already ran
type Handle interface {
	Cancel()
}

// Scheduler is the host callback queue
type Scheduler interface {
	// Now returns the scheduler's current time
	Now() time.Time

	// RequestFrame schedules fn for the next native frame
	// A request made during frame N runs at frame N+1
	RequestFrame(fn func(now time.Time)) Handle

	// AfterFunc schedules fn once after d
	AfterFunc(d time.Duration, fn func()) Handle

	// Post enqueues fn to run on the scheduler goroutine
	Post(fn func())
}

// entry is the shared cancellation record for frames and timers
type entry struct {
	cancelled atomic.Bool
	fn        func()
	frameFn   func(time.Time)
	stop      func() bool
}

// Cancel implements Handle
func (e *entry) Cancel() {
	if e.cancelled.CompareAndSwap(false, true) && e.stop != nil {
		e.stop()
	}
}

// Cancelled reports whether Cancel was called
func (e *entry) Cancelled() bool {
	return e.cancelled.Load()
}

// Nop is a Handle that does nothing, useful as a zero value
var Nop Handle = nopHandle{}

type nopHandle struct{}

func (nopHandle) Cancel() {}

// CancelAll cancels every non-nil handle
func CancelAll(handles ...Handle) {
	for _, h := range handles {
		if h != nil {
			h.Cancel()
		}
	}
}
