package host

import (
	"sort"
	"sync"
	"time"
)

// Virtual is a deterministic Scheduler driven by Advance, for tests and headless runs
// Frames fire on fixed boundaries of the native interval; timers fire in due order
type Virtual struct {
	mu sync.Mutex

	now           time.Time
	frameInterval time.Duration
	nextFrame     time.Time

	frames []*entry
	timers []*virtualTimer
	posted []func()
	seq    uint64

	frameCount int
}

type virtualTimer struct {
	*entry
	due time.Time
	seq uint64
}

// NewVirtual creates a virtual scheduler starting at start
func NewVirtual(start time.Time, frameInterval time.Duration) *Virtual {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &Virtual{
		now:           start,
		frameInterval: frameInterval,
		nextFrame:     start.Add(frameInterval),
	}
}

// Now implements Scheduler
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// RequestFrame implements Scheduler
func (v *Virtual) RequestFrame(fn func(now time.Time)) Handle {
	e := &entry{frameFn: fn}
	v.mu.Lock()
	v.frames = append(v.frames, e)
	v.mu.Unlock()
	return e
}

// AfterFunc implements Scheduler
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	t := &virtualTimer{entry: &entry{fn: fn}, due: v.now.Add(d), seq: v.seq}
	v.timers = append(v.timers, t)
	return t.entry
}

// Post implements Scheduler
// Posted callbacks run on the next Advance or Flush
func (v *Virtual) Post(fn func()) {
	v.mu.Lock()
	v.posted = append(v.posted, fn)
	v.mu.Unlock()
}

// Flush runs posted callbacks without moving time
func (v *Virtual) Flush() {
	for {
		v.mu.Lock()
		posted := v.posted
		v.posted = nil
		v.mu.Unlock()
		if len(posted) == 0 {
			return
		}
		for _, fn := range posted {
			fn()
		}
	}
}

// Advance moves time forward by d, firing timers and frames that fall due on the way
// Timers due at or before a frame boundary run before that frame
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		v.Flush()

		v.mu.Lock()
		timer := v.nextTimer()
		frameDue := v.nextFrame

		switch {
		case timer != nil && !timer.due.After(frameDue) && !timer.due.After(target):
			v.removeTimer(timer)
			if timer.due.After(v.now) {
				v.now = timer.due
			}
			v.mu.Unlock()
			if !timer.Cancelled() {
				timer.fn()
			}

		case !frameDue.After(target):
			v.now = frameDue
			v.nextFrame = frameDue.Add(v.frameInterval)
			pending := v.frames
			v.frames = nil
			v.frameCount++
			now := v.now
			v.mu.Unlock()
			for _, e := range pending {
				if !e.Cancelled() {
					e.frameFn(now)
				}
			}

		default:
			v.now = target
			v.mu.Unlock()
			v.Flush()
			return
		}
	}
}

// PendingFrames counts live frame requests
func (v *Virtual) PendingFrames() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, e := range v.frames {
		if !e.Cancelled() {
			n++
		}
	}
	return n
}

// PendingTimers counts live timers
func (v *Virtual) PendingTimers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, t := range v.timers {
		if !t.Cancelled() {
			n++
		}
	}
	return n
}

// FrameCount returns the number of native frame boundaries crossed
func (v *Virtual) FrameCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frameCount
}

// nextTimer returns the earliest live timer, caller holds mu
func (v *Virtual) nextTimer() *virtualTimer {
	live := v.timers[:0]
	for _, t := range v.timers {
		if !t.Cancelled() {
			live = append(live, t)
		}
	}
	v.timers = live
	if len(v.timers) == 0 {
		return nil
	}
	sort.Slice(v.timers, func(i, j int) bool {
		if v.timers[i].due.Equal(v.timers[j].due) {
			return v.timers[i].seq < v.timers[j].seq
		}
		return v.timers[i].due.Before(v.timers[j].due)
	})
	return v.timers[0]
}

// removeTimer drops t from the timer list, caller holds mu
func (v *Virtual) removeTimer(t *virtualTimer) {
	for i, other := range v.timers {
		if other == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return
		}
	}
}
