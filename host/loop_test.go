package host

import (
	"context"
	"testing"
	"time"
)

// TestLoopRunsPostedFramesAndTimers exercises the real loop end to end
func TestLoopRunsPostedFramesAndTimers(t *testing.T) {
	l := NewLoop(2 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	posted := make(chan struct{})
	framed := make(chan struct{})
	timed := make(chan struct{})

	l.Post(func() { close(posted) })
	l.Post(func() {
		l.RequestFrame(func(time.Time) { close(framed) })
	})
	l.AfterFunc(5*time.Millisecond, func() { close(timed) })

	for name, ch := range map[string]chan struct{}{"post": posted, "frame": framed, "timer": timed} {
		select {
		case <-ch:
		case <-ctx.Done():
			t.Fatalf("%s callback never ran", name)
		}
	}

	l.Stop()
	l.Stop()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Run() = %v, want nil after Stop", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	<-l.Done()
}

// TestLoopCancelledTimerDropped verifies a cancelled timer never reaches the queue consumer
func TestLoopCancelledTimerDropped(t *testing.T) {
	l := NewLoop(time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	fired := make(chan struct{}, 1)
	h := l.AfterFunc(10*time.Millisecond, func() { fired <- struct{}{} })
	h.Cancel()

	_ = l.Run(ctx)

	select {
	case <-fired:
		t.Error("cancelled timer fired")
	default:
	}
}

// TestLoopCrashHandler verifies callback panics are routed to the handler and the loop survives
func TestLoopCrashHandler(t *testing.T) {
	l := NewLoop(time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	recovered := make(chan any, 1)
	l.SetCrashHandler(func(r any) { recovered <- r })

	go func() { _ = l.Run(ctx) }()
	defer l.Stop()

	l.Post(func() { panic("boom") })
	after := make(chan struct{})
	l.Post(func() { close(after) })

	select {
	case r := <-recovered:
		if r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	case <-ctx.Done():
		t.Fatal("crash handler not called")
	}

	select {
	case <-after:
	case <-ctx.Done():
		t.Fatal("loop stopped processing after panic")
	}
}
