package status

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/lastlight/engine"
)

const namespace = "lastlight"

// Metrics is the process's Prometheus collector set. It owns its registry so
// several instances can coexist in tests.
type Metrics struct {
	Registry *prometheus.Registry

	StepDuration prometheus.Histogram
	Outcomes     *prometheus.CounterVec
	Events       *prometheus.CounterVec
	Sessions     prometheus.Counter
	Spectators   prometheus.Gauge
	Battery      prometheus.Gauge
	Traps        prometheus.Gauge
}

// NewMetrics registers every collector on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		StepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Wall time spent in one simulation step",
			Buckets:   []float64{.0001, .0005, .001, .002, .005, .01, .02},
		}),
		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Step outcomes by kind",
		}, []string{"outcome"}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Game events by type",
		}, []string{"type"}),
		Sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Sessions created",
		}),
		Spectators: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spectators",
			Help:      "Connected spectator feeds",
		}),
		Battery: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "battery_level",
			Help:      "Flashlight battery of the active session",
		}),
		Traps: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "traps",
			Help:      "Traps in the active session",
		}),
	}
}

// ObserveStep records one step's wall time, outcome and resource levels
func (m *Metrics) ObserveStep(sess *engine.Session, o engine.Outcome, took time.Duration) {
	m.StepDuration.Observe(took.Seconds())
	if o.Kind != engine.OutcomeNone {
		m.Outcomes.WithLabelValues(o.Kind.String()).Inc()
	}
	m.Battery.Set(sess.Player.Battery)
	m.Traps.Set(float64(len(sess.Traps)))
}

// HandleEvent implements engine.EventHandler
func (m *Metrics) HandleEvent(ev engine.GameEvent) {
	m.Events.WithLabelValues(ev.Type.String()).Inc()
}

// EventTypes implements engine.EventHandler; every type is counted
func (m *Metrics) EventTypes() []engine.EventType {
	types := make([]engine.EventType, 0, int(engine.EventSessionReset)+1)
	for t := engine.EventType(0); t <= engine.EventSessionReset; t++ {
		types = append(types, t)
	}
	return types
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
