package geometry

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/dotgrid/host"
)

// fakeContainer reports scripted boxes and counts reflows
type fakeContainer struct {
	bounding []Size // consumed per call, last value sticks
	layout   Size
	settled  Size // layout after reflowsToSettle reflows
	settleAt int
	reflows  int
}

func (c *fakeContainer) BoundingBox() Size {
	if len(c.bounding) == 0 {
		return Size{}
	}
	s := c.bounding[0]
	if len(c.bounding) > 1 {
		c.bounding = c.bounding[1:]
	}
	return s
}

func (c *fakeContainer) LayoutBox() Size { return c.layout }

func (c *fakeContainer) Reflow() {
	c.reflows++
	if c.settleAt > 0 && c.reflows >= c.settleAt {
		c.layout = c.settled
	}
}

type fakeViewport Size

func (v fakeViewport) Size() Size { return Size(v) }

func TestResolveProbeOrder(t *testing.T) {
	tests := []struct {
		name      string
		container *fakeContainer
		viewport  fakeViewport
		final     bool
		want      Size
		source    Source
		wantErr   bool
	}{
		{
			name:      "bounding box",
			container: &fakeContainer{bounding: []Size{{800, 400}}, layout: Size{1, 1}},
			want:      Size{800, 400},
			source:    SourceBoundingBox,
		},
		{
			name:      "layout after reflow",
			container: &fakeContainer{settled: Size{640, 300}, settleAt: 1},
			want:      Size{640, 300},
			source:    SourceLayoutBox,
		},
		{
			name:      "degenerate width falls through",
			container: &fakeContainer{bounding: []Size{{0, 400}}, layout: Size{500, 200}},
			want:      Size{500, 200},
			source:    SourceLayoutBox,
		},
		{
			name:      "viewport ignored before final",
			container: &fakeContainer{},
			viewport:  fakeViewport{1000, 500},
			wantErr:   true,
		},
		{
			name:      "viewport fallback on final",
			container: &fakeContainer{},
			viewport:  fakeViewport{1000, 500},
			final:     true,
			want:      Size{1000, 400},
			source:    SourceViewport,
		},
		{
			name:      "degenerate viewport",
			container: &fakeContainer{},
			viewport:  fakeViewport{0, 0},
			final:     true,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolver{Container: tt.container, Viewport: tt.viewport}
			got, src, err := r.Resolve(tt.final)
			if tt.wantErr {
				if !errors.Is(err, ErrGeometryUnresolved) {
					t.Fatalf("err = %v, want ErrGeometryUnresolved", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || src != tt.source {
				t.Errorf("Resolve() = %v via %v, want %v via %v", got, src, tt.want, tt.source)
			}
		})
	}
}

// TestResolveForcesReflowOnDegenerateBox verifies the stale cached box is refreshed before use
func TestResolveForcesReflowOnDegenerateBox(t *testing.T) {
	c := &fakeContainer{bounding: []Size{{800, 400}}}
	r := Resolver{Container: c}
	if _, _, err := r.Resolve(false); err != nil {
		t.Fatal(err)
	}
	if c.reflows != 0 {
		t.Errorf("reflows = %d, want 0 when bounding box is usable", c.reflows)
	}

	c = &fakeContainer{}
	r = Resolver{Container: c}
	_, _, _ = r.Resolve(false)
	if c.reflows != 1 {
		t.Errorf("reflows = %d, want 1", c.reflows)
	}
}

func TestSourceString(t *testing.T) {
	for src, want := range map[Source]string{
		SourceNone:        "none",
		SourceBoundingBox: "bounding-box",
		SourceLayoutBox:   "layout-box",
		SourceViewport:    "viewport",
	} {
		if got := src.String(); got != want {
			t.Errorf("Source(%d).String() = %q, want %q", src, got, want)
		}
	}
}

// TestRetryFallbackAfterBoundedAttempts covers a container stuck at 0x0: only the final attempt may use the viewport
func TestRetryFallbackAfterBoundedAttempts(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v := host.NewVirtual(start, 10*time.Millisecond)

	c := &fakeContainer{}
	r := Resolver{Container: c, Viewport: fakeViewport{1200, 900}}

	var retries []int
	policy := Policy{
		Attempts: 4,
		Delay:    20 * time.Millisecond,
		Step:     10 * time.Millisecond,
		OnRetry:  func(attempt int, err error) { retries = append(retries, attempt) },
	}

	var (
		got      Size
		attempts int
		gotErr   error
		calls    int
		finalAt  time.Duration
	)
	Retry(v, policy, func(final bool) (Size, error) {
		s, _, err := r.Resolve(final)
		return s, err
	}, func(s Size, n int, err error) {
		calls++
		got, attempts, gotErr = s, n, err
		finalAt = v.Now().Sub(start)
	})

	v.Advance(time.Second)

	if calls != 1 {
		t.Fatalf("done called %d times, want 1", calls)
	}
	if gotErr != nil {
		t.Fatalf("err = %v, want fallback success", gotErr)
	}
	if got != (Size{1200, 720}) {
		t.Errorf("size = %v, want 1200x720", got)
	}
	if attempts != 4 {
		t.Errorf("attempts = %d, want 4", attempts)
	}
	if len(retries) != 3 {
		t.Errorf("OnRetry calls = %v, want 3", retries)
	}
	// widening waits: 20 + 30 + 40
	if finalAt != 90*time.Millisecond {
		t.Errorf("final attempt at %v, want 90ms", finalAt)
	}
	if c.reflows != 4 {
		t.Errorf("reflows = %d, want one per attempt", c.reflows)
	}
}

// TestRetrySucceedsWhenLayoutSettles verifies retry stops at the first usable box
func TestRetrySucceedsWhenLayoutSettles(t *testing.T) {
	v := host.NewVirtual(time.Unix(0, 0), 10*time.Millisecond)
	c := &fakeContainer{settled: Size{300, 200}, settleAt: 2}
	r := Resolver{Container: c}

	var got Size
	var attempts int
	Retry(v, Policy{Attempts: 5, Delay: 10 * time.Millisecond}, func(final bool) (Size, error) {
		s, _, err := r.Resolve(final)
		return s, err
	}, func(s Size, n int, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		got, attempts = s, n
	})
	v.Advance(time.Second)

	if got != (Size{300, 200}) || attempts != 2 {
		t.Errorf("got %v after %d attempts, want 300x200 after 2", got, attempts)
	}
}

// TestRetryExhaustion verifies a terminal failure is reported, not panicked
func TestRetryExhaustion(t *testing.T) {
	v := host.NewVirtual(time.Unix(0, 0), 10*time.Millisecond)
	r := Resolver{Container: &fakeContainer{}, Viewport: fakeViewport{}}

	var gotErr error
	var attempts int
	Retry(v, Policy{Attempts: 3, Delay: 5 * time.Millisecond}, func(final bool) (Size, error) {
		s, _, err := r.Resolve(final)
		return s, err
	}, func(_ Size, n int, err error) {
		gotErr, attempts = err, n
	})
	v.Advance(time.Second)

	if !errors.Is(gotErr, ErrGeometryUnresolved) {
		t.Errorf("err = %v, want ErrGeometryUnresolved", gotErr)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

// TestRetryCancel verifies a cancelled retry never reports
func TestRetryCancel(t *testing.T) {
	v := host.NewVirtual(time.Unix(0, 0), 10*time.Millisecond)
	r := Resolver{Container: &fakeContainer{}}

	called := false
	h := Retry(v, Policy{Attempts: 3, Delay: 5 * time.Millisecond}, func(final bool) (Size, error) {
		s, _, err := r.Resolve(final)
		return s, err
	}, func(Size, int, error) { called = true })

	h.Cancel()
	v.Advance(time.Second)

	if called {
		t.Error("done called after Cancel")
	}
	if v.PendingTimers() != 0 {
		t.Errorf("pending timers = %d, want 0", v.PendingTimers())
	}
}
