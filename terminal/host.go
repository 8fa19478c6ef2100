package terminal

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dotgrid/engine"
	"github.com/lixenwraith/dotgrid/host"
	"github.com/lixenwraith/dotgrid/logging"
	"github.com/lixenwraith/dotgrid/render"
)

// Host turns screen events into engine lifecycle, resize and pointer signals
// Handle runs on the scheduler goroutine; Pump is the only other goroutine
type Host struct {
	screen    tcell.Screen
	sched     host.Scheduler
	mgr       *engine.Manager
	surface   render.Surface
	container *Container
	viewport  *Viewport

	active bool
	quit   func()
}

// HostConfig wires a Host
type HostConfig struct {
	Screen    tcell.Screen
	Scheduler host.Scheduler
	Manager   *engine.Manager
	Surface   render.Surface
	Container *Container
	Viewport  *Viewport
	// Active is the initial activation flag
	Active bool
	// Quit is called on the quit keys
	Quit func()
}

// NewHost creates a host; the screen must already be initialized
func NewHost(cfg HostConfig) *Host {
	h := &Host{
		screen:    cfg.Screen,
		sched:     cfg.Scheduler,
		mgr:       cfg.Manager,
		surface:   cfg.Surface,
		container: cfg.Container,
		viewport:  cfg.Viewport,
		active:    cfg.Active,
		quit:      cfg.Quit,
	}
	if h.container == nil {
		h.container = NewContainer(cfg.Screen, DefaultHeroFraction)
	}
	if h.viewport == nil {
		h.viewport = NewViewport(cfg.Screen)
	}
	if h.quit == nil {
		h.quit = func() {}
	}
	return h
}

// Env builds the engine environment from current host state
func (h *Host) Env() engine.Env {
	return engine.Env{
		Active:    h.active,
		Container: h.container,
		Viewport:  h.viewport,
		Surface:   h.surface,
	}
}

// Active reports the activation flag
func (h *Host) Active() bool {
	return h.active
}

// Pump forwards screen events onto the scheduler until the screen is finalized
func (h *Host) Pump() {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		h.sched.Post(func() { h.Handle(ev) })
	}
}

// Handle dispatches one screen event
func (h *Host) Handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, hgt := ev.Size()
		h.container.Observe(w, hgt)
		h.screen.Sync()
		h.mgr.Resize()

	case *tcell.EventMouse:
		x, y := ev.Position()
		if lx, ly, ok := h.container.Local(x, y); ok {
			h.mgr.PointerMove(lx, ly)
		} else {
			h.mgr.PointerLeave()
		}

	case *tcell.EventFocus:
		if ev.Focused {
			h.Show()
		} else {
			h.Hide()
		}

	case *tcell.EventKey:
		h.HandleKey(ev.Key(), ev.Rune())
	}
}

// HandleKey applies the control keys
func (h *Host) HandleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		h.quit()
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch r {
	case 'q':
		h.quit()
	case 'n':
		// Navigation away and back without a process restart
		h.Hide()
		h.Show()
	case 'p':
		h.active = !h.active
		logging.Logger().Info("activation toggled", "active", h.active)
		if h.active {
			h.Show()
		} else {
			h.Hide()
		}
	}
}

// Show is the page-shown signal: re-check activation, heal a stale engine and start
func (h *Host) Show() {
	if !h.active {
		return
	}
	if _, err := h.mgr.Restart(h.Env()); err != nil {
		switch {
		case errors.Is(err, engine.ErrAlreadyActive):
		case errors.Is(err, engine.ErrPrerequisiteUnmet):
			logging.Logger().Info("animation not started", "err", err)
		default:
			logging.Logger().Warn("animation start failed", "err", err)
		}
	}
}

// Hide is the page-hidden signal
func (h *Host) Hide() {
	h.mgr.Teardown()
}
