package engine

import (
	"sync"

	"github.com/lixenwraith/dotgrid/host"
	"github.com/lixenwraith/dotgrid/logging"
	"github.com/lixenwraith/dotgrid/metrics"
)

// Manager owns the single-instance guard; at most one engine is Initializing or Running
type Manager struct {
	cfg     Config
	sched   host.Scheduler
	metrics *metrics.Engine
	chime   Chime

	mu     sync.Mutex
	active *Engine
}

// Option configures a Manager
type Option func(*Manager)

// WithMetrics records engine telemetry on m
func WithMetrics(m *metrics.Engine) Option {
	return func(mgr *Manager) { mgr.metrics = m }
}

// WithChime plays c when the pointer enters the surface
func WithChime(c Chime) Option {
	return func(mgr *Manager) { mgr.chime = c }
}

// NewManager validates cfg and creates a manager running engines on sched
func NewManager(cfg Config, sched host.Scheduler, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Manager{cfg: cfg, sched: sched}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns the manager configuration
func (m *Manager) Config() Config {
	return m.cfg
}

// Start creates and initializes an engine for env
// Returns ErrAlreadyActive while another engine is Initializing or Running, and
// ErrPrerequisiteUnmet without side effects when env does not allow the animation
// The returned handle may already be done if initialization failed synchronously
func (m *Manager) Start(env Env) (*Handle, error) {
	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		m.metrics.Init(metrics.OutcomeDuplicate)
		logging.Logger().Debug("start suppressed, engine already active")
		return nil, ErrAlreadyActive
	}
	e := newEngine(m, env)
	e.setState(Initializing)
	m.active = e
	m.mu.Unlock()

	if err := e.checkPrerequisites(); err != nil {
		e.setState(Uninitialized)
		close(e.done)
		m.release(e)
		m.metrics.Init(metrics.OutcomePrerequisite)
		logging.Logger().Debug("start skipped", "err", err)
		return nil, err
	}

	h := &Handle{e: e}
	e.begin()
	return h, nil
}

// Restart tears down a stale active engine, then starts a fresh one
// Used on navigation show events where a previous instance may have survived the hide
func (m *Manager) Restart(env Env) (*Handle, error) {
	if e := m.current(); e != nil {
		logging.Logger().Warn("stale engine active on restart, tearing down", "id", e.id)
		e.shutdown(nil)
	}
	return m.Start(env)
}

// Teardown stops the active engine, if any
// Idempotent and safe when nothing was ever started
func (m *Manager) Teardown() {
	if e := m.current(); e != nil {
		e.shutdown(nil)
	}
}

// Resize forwards a host resize signal to the active engine
func (m *Manager) Resize() {
	if e := m.current(); e != nil {
		e.Resize()
	}
}

// PointerMove forwards a pointer position relative to the container
func (m *Manager) PointerMove(x, y float64) {
	if e := m.current(); e != nil {
		e.PointerMove(x, y)
	}
}

// PointerLeave forwards a pointer leave
func (m *Manager) PointerLeave() {
	if e := m.current(); e != nil {
		e.PointerLeave()
	}
}

// Active reports whether an engine holds the guard
func (m *Manager) Active() bool {
	return m.current() != nil
}

// State returns the active engine state, Uninitialized when none
func (m *Manager) State() State {
	if e := m.current(); e != nil {
		return e.State()
	}
	return Uninitialized
}

// Current returns the engine holding the guard, nil when none
func (m *Manager) Current() *Engine {
	return m.current()
}

func (m *Manager) current() *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// release clears the guard if e still holds it
func (m *Manager) release(e *Engine) {
	m.mu.Lock()
	if m.active == e {
		m.active = nil
	}
	m.mu.Unlock()
}
