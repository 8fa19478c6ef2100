// Package metrics records engine telemetry as prometheus collectors.
//
// Collectors are registered on a caller-supplied registerer; nothing is served over HTTP.
// A nil *Engine is valid and records nothing, so callers never branch on telemetry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Init outcomes
const (
	OutcomeRunning      = "running"
	OutcomePrerequisite = "prerequisite"
	OutcomeGeometry     = "geometry"
	OutcomeTimeout      = "timeout"
	OutcomeDuplicate    = "duplicate"
)

// Engine groups the collectors for one manager
type Engine struct {
	framesDrawn     prometheus.Counter
	framesSkipped   prometheus.Counter
	inits           *prometheus.CounterVec
	geometryRetries prometheus.Counter
	gridPoints      prometheus.Gauge
	state           prometheus.Gauge
}

// New creates and registers the collectors on reg
func New(reg prometheus.Registerer) (*Engine, error) {
	m := &Engine{
		framesDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dotgrid_frames_drawn_total",
			Help: "Logical frames drawn by the render loop",
		}),
		framesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dotgrid_frames_skipped_total",
			Help: "Native frame callbacks skipped by the logical frame throttle",
		}),
		inits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dotgrid_init_total",
			Help: "Initialization attempts by outcome",
		}, []string{"outcome"}),
		geometryRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dotgrid_geometry_retries_total",
			Help: "Scheduled geometry resolution retries",
		}),
		gridPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dotgrid_grid_points",
			Help: "Points in the active grid",
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dotgrid_state",
			Help: "Lifecycle state: 0 uninitialized, 1 initializing, 2 running, 3 shutting down",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.framesDrawn, m.framesSkipped, m.inits, m.geometryRetries, m.gridPoints, m.state,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FrameDrawn counts a drawn logical frame
func (m *Engine) FrameDrawn() {
	if m == nil {
		return
	}
	m.framesDrawn.Inc()
}

// FrameSkipped counts a throttled native callback
func (m *Engine) FrameSkipped() {
	if m == nil {
		return
	}
	m.framesSkipped.Inc()
}

// Init counts an initialization outcome
func (m *Engine) Init(outcome string) {
	if m == nil {
		return
	}
	m.inits.WithLabelValues(outcome).Inc()
}

// GeometryRetry counts a scheduled geometry retry
func (m *Engine) GeometryRetry() {
	if m == nil {
		return
	}
	m.geometryRetries.Inc()
}

// GridPoints records the active grid size
func (m *Engine) GridPoints(n int) {
	if m == nil {
		return
	}
	m.gridPoints.Set(float64(n))
}

// State records the lifecycle state ordinal
func (m *Engine) State(s int) {
	if m == nil {
		return
	}
	m.state.Set(float64(s))
}
