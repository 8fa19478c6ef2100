// Package engine runs the pointer-reactive dot grid: lifecycle, geometry, frame throttle and drawing.
//
// Every method except the Manager guard runs on the host scheduler goroutine.
package engine

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/dotgrid/geometry"
	"github.com/lixenwraith/dotgrid/grid"
	"github.com/lixenwraith/dotgrid/host"
	"github.com/lixenwraith/dotgrid/logging"
	"github.com/lixenwraith/dotgrid/metrics"
	"github.com/lixenwraith/dotgrid/render"
)

// Env is what the host supplies for one start
type Env struct {
	// Active is the host activation signal, read once per start
	Active    bool
	Container geometry.Container
	Viewport  geometry.Viewport
	Surface   render.Surface
}

// Chime is notified when the pointer enters the surface
type Chime interface {
	Play()
}

// Engine is one animation instance from Start to teardown
type Engine struct {
	id       uuid.UUID
	cfg      Config
	style    grid.Style
	env      Env
	resolver geometry.Resolver
	sched    host.Scheduler
	metrics  *metrics.Engine
	chime    Chime
	release  func(*Engine)

	state atomic.Uint32

	grid     *grid.Grid
	tracker  *grid.Tracker
	throttle *Throttle
	source   geometry.Source

	ready    *future
	frame    host.Handle
	timeout  host.Handle
	retry    host.Handle
	debounce host.Handle

	done chan struct{}
	err  error
}

func newEngine(m *Manager, env Env) *Engine {
	e := &Engine{
		id:       uuid.New(),
		cfg:      m.cfg,
		style:    m.cfg.Style(),
		env:      env,
		resolver: geometry.Resolver{Container: env.Container, Viewport: env.Viewport},
		sched:    m.sched,
		metrics:  m.metrics,
		chime:    m.chime,
		release:  m.release,
		throttle: NewThrottle(m.cfg.FrameInterval()),
		ready:    newFuture(),
		done:     make(chan struct{}),
	}
	return e
}

// ID returns the instance id
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// State returns the lifecycle state, safe from any goroutine
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	e.state.Store(uint32(s))
	e.metrics.State(int(s))
}

// Grid returns the active grid, nil outside Running
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Pointer returns the tracked pointer, the sentinel when none
func (e *Engine) Pointer() grid.Pointer {
	if e.tracker == nil {
		return grid.OffSurface
	}
	return e.tracker.Pointer()
}

// Source returns the geometry probe that produced the current grid
func (e *Engine) Source() geometry.Source {
	return e.source
}

// checkPrerequisites validates the host environment before any work is scheduled
func (e *Engine) checkPrerequisites() error {
	switch {
	case !e.env.Active:
		return fmt.Errorf("%w: host not active", ErrPrerequisiteUnmet)
	case e.env.Container == nil:
		return fmt.Errorf("%w: no container", ErrPrerequisiteUnmet)
	case e.env.Surface == nil:
		return fmt.Errorf("%w: no surface", ErrPrerequisiteUnmet)
	case e.env.Viewport == nil:
		return fmt.Errorf("%w: no viewport", ErrPrerequisiteUnmet)
	}
	if w := e.env.Viewport.Size().W; w < e.cfg.MinViewportWidth {
		return fmt.Errorf("%w: viewport width %.0f below %.0f", ErrPrerequisiteUnmet, w, e.cfg.MinViewportWidth)
	}
	return nil
}

// begin arms the start timeout and the first geometry resolution
func (e *Engine) begin() {
	logging.Logger().Debug("engine initializing", "id", e.id)
	e.timeout = awaitWithTimeout(e.sched, e.ready, e.cfg.StartTimeout, e.onReady, e.onStartTimeout)
	e.retry = geometry.Retry(e.sched, e.policy(), e.resolve, e.onInitialGeometry)
}

func (e *Engine) policy() geometry.Policy {
	p := e.cfg.RetryPolicy()
	p.OnRetry = func(attempt int, err error) {
		e.metrics.GeometryRetry()
		logging.Logger().Debug("geometry retry", "id", e.id, "attempt", attempt, "err", err)
	}
	return p
}

func (e *Engine) resolve(final bool) (geometry.Size, error) {
	size, src, err := e.resolver.Resolve(final)
	if err == nil {
		e.source = src
	}
	return size, err
}

func (e *Engine) onInitialGeometry(size geometry.Size, attempts int, err error) {
	if e.State() != Initializing {
		return
	}
	if err != nil {
		e.fail(fmt.Errorf("after %d attempts: %w", attempts, err), metrics.OutcomeGeometry)
		return
	}
	if err := e.layout(size); err != nil {
		e.fail(err, metrics.OutcomeGeometry)
		return
	}
	// An empty grid leaves the future pending; the start timeout settles it
	if !e.grid.Empty() {
		e.ready.Resolve()
	}
}

// layout sizes the surface and replaces the grid
func (e *Engine) layout(size geometry.Size) error {
	w, h := int(math.Ceil(size.W)), int(math.Ceil(size.H))
	if err := e.env.Surface.Resize(w, h); err != nil {
		return fmt.Errorf("resize surface to %dx%d: %w", w, h, err)
	}
	e.grid = grid.Build(size.W, size.H, e.cfg.Spacing, e.style)
	e.metrics.GridPoints(e.grid.Len())
	logging.Logger().Debug("grid built",
		"id", e.id, "source", e.source.String(),
		"width", size.W, "height", size.H,
		"cols", e.grid.Cols, "rows", e.grid.Rows)
	return nil
}

func (e *Engine) onReady() {
	if e.State() != Initializing {
		return
	}
	e.timeout = nil
	e.tracker = grid.NewTracker()
	e.throttle.Reset()
	e.setState(Running)
	e.metrics.Init(metrics.OutcomeRunning)
	e.env.Surface.SetHidden(false)
	e.frame = e.sched.RequestFrame(e.onFrame)
	logging.Logger().Info("engine running", "id", e.id, "points", e.grid.Len())
}

func (e *Engine) onStartTimeout() {
	if e.State() != Initializing {
		return
	}
	e.timeout = nil
	e.fail(fmt.Errorf("%w after %s", ErrStartTimeout, e.cfg.StartTimeout), metrics.OutcomeTimeout)
}

// fail hides the surface and tears down with err
func (e *Engine) fail(err error, outcome string) {
	logging.Logger().Warn("engine start failed", "id", e.id, "err", err)
	e.metrics.Init(outcome)
	e.env.Surface.SetHidden(true)
	e.shutdown(err)
}

// onFrame is the native frame callback
func (e *Engine) onFrame(now time.Time) {
	if e.State() != Running {
		return
	}
	e.frame = e.sched.RequestFrame(e.onFrame)

	if !e.throttle.Tick(now) {
		e.metrics.FrameSkipped()
		return
	}
	e.draw()
	e.metrics.FrameDrawn()
}

// draw renders one logical frame
func (e *Engine) draw() {
	s := e.env.Surface
	s.Clear()
	if e.grid.Empty() {
		s.Present()
		return
	}

	p := e.tracker.Pointer()
	for i := range e.grid.Points {
		pt := &e.grid.Points[i]
		pt.Step(p, e.style)
		s.SetOpacity(pt.Opacity)
		s.FillCircle(pt.X, pt.Y, pt.Radius)
	}
	s.ResetPaint()
	s.Present()
}

// Resize schedules a geometry refresh after the debounce window
// Repeated calls within the window collapse into one refresh
func (e *Engine) Resize() {
	if e.State() != Running {
		return
	}
	if e.debounce != nil {
		e.debounce.Cancel()
	}
	e.debounce = e.sched.AfterFunc(e.cfg.ResizeDebounce, e.relayout)
}

func (e *Engine) relayout() {
	e.debounce = nil
	if e.State() != Running {
		return
	}
	if e.retry != nil {
		e.retry.Cancel()
	}
	e.retry = geometry.Retry(e.sched, e.policy(), e.resolve, func(size geometry.Size, attempts int, err error) {
		if e.State() != Running {
			return
		}
		if err != nil {
			logging.Logger().Warn("resize geometry unresolved, keeping grid", "id", e.id, "attempts", attempts, "err", err)
			return
		}
		if err := e.layout(size); err != nil {
			logging.Logger().Warn("resize layout failed", "id", e.id, "err", err)
		}
	})
}

// PointerMove records a pointer position relative to the container
func (e *Engine) PointerMove(x, y float64) {
	if e.State() != Running {
		return
	}
	if e.tracker.Move(x, y) && e.chime != nil {
		e.chime.Play()
	}
}

// PointerLeave resets the pointer to the sentinel
func (e *Engine) PointerLeave() {
	if e.State() != Running {
		return
	}
	e.tracker.Leave()
}

// shutdown cancels all scheduled work, clears the surface and releases the guard last
// Idempotent
func (e *Engine) shutdown(err error) {
	switch e.State() {
	case Uninitialized, ShuttingDown:
		return
	}
	e.setState(ShuttingDown)

	host.CancelAll(e.frame, e.timeout, e.retry, e.debounce)
	e.frame, e.timeout, e.retry, e.debounce = nil, nil, nil, nil

	if s := e.env.Surface; s != nil {
		s.Clear()
		s.ResetPaint()
		s.Present()
	}
	if e.tracker != nil {
		e.tracker.Leave()
	}
	e.tracker = nil
	e.grid = nil
	e.throttle.Reset()
	e.metrics.GridPoints(0)

	e.err = err
	e.setState(Uninitialized)
	close(e.done)
	logging.Logger().Info("engine stopped", "id", e.id, "err", err)

	e.release(e)
}
