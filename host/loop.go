package host

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval approximates a 60 Hz display refresh
const DefaultFrameInterval = time.Second / 60

// queueSize bounds posted callbacks waiting for the loop goroutine
const queueSize = 256

// Loop is the real Scheduler: one goroutine, a native frame ticker and a callback queue
type Loop struct {
	frameInterval time.Duration

	queue chan func()

	mu     sync.Mutex
	frames []*entry

	crash atomic.Pointer[func(any)]

	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewLoop creates a loop with the given native frame interval
// A non-positive interval falls back to DefaultFrameInterval
func NewLoop(frameInterval time.Duration) *Loop {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &Loop{
		frameInterval: frameInterval,
		queue:         make(chan func(), queueSize),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// SetCrashHandler installs the panic handler for callbacks
// Without a handler a panicking callback re-panics on the loop goroutine
func (l *Loop) SetCrashHandler(fn func(any)) {
	l.crash.Store(&fn)
}

// Now implements Scheduler
func (l *Loop) Now() time.Time {
	return time.Now()
}

// RequestFrame implements Scheduler
func (l *Loop) RequestFrame(fn func(now time.Time)) Handle {
	e := &entry{frameFn: fn}
	l.mu.Lock()
	l.frames = append(l.frames, e)
	l.mu.Unlock()
	return e
}

// AfterFunc implements Scheduler
// The timer fires on a runtime goroutine and hops onto the loop through Post
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	e := &entry{fn: fn}
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if !e.Cancelled() {
				e.fn()
			}
		})
	})
	e.stop = t.Stop
	return e
}

// Post implements Scheduler
// Posting after Stop drops the callback
func (l *Loop) Post(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.stopCh:
	}
}

// Run processes callbacks on the calling goroutine until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer close(l.doneCh)

	ticker := time.NewTicker(l.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopCh:
			return nil
		case fn := <-l.queue:
			l.invoke(fn)
		case now := <-ticker.C:
			l.runFrames(now)
		}
	}
}

// Stop halts Run, idempotent and safe to call from a callback
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

// Done is closed once Run has returned
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

// runFrames executes the frame requests collected before this tick
func (l *Loop) runFrames(now time.Time) {
	l.mu.Lock()
	pending := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, e := range pending {
		if e.Cancelled() {
			continue
		}
		l.invoke(func() { e.frameFn(now) })
	}
}

// invoke runs fn with panic recovery routed to the crash handler
func (l *Loop) invoke(fn func()) {
	handler := l.crash.Load()
	if handler == nil {
		fn()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			(*handler)(r)
		}
	}()
	fn()
}
