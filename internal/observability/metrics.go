// Package observability provides Prometheus metrics for the projection engine.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics holds the Prometheus metrics for engine runs.
// It satisfies calculation.MetricsRecorder.
type EngineMetrics struct {
	gatherer prometheus.Gatherer

	// Run metrics
	RunsTotal     *prometheus.CounterVec
	PhaseDuration *prometheus.HistogramVec
	EpochsTotal   prometheus.Counter

	// Forecast metrics
	ForecastRequests *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on reg. A nil reg uses a fresh
// registry, which keeps tests and multiple engines from colliding.
func NewEngineMetrics(namespace string, reg *prometheus.Registry) *EngineMetrics {
	if namespace == "" {
		namespace = "fire_calculator"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &EngineMetrics{
		gatherer: reg,
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "runs_total",
			Help:      "Total number of projection runs by final status",
		}, []string{"status"}),
		PhaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "phase_duration_seconds",
			Help:      "Time spent in each engine phase",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"phase"}),
		EpochsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "optimizer",
			Name:      "epochs_total",
			Help:      "Total number of optimization epochs simulated",
		}),
		ForecastRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "forecast",
			Name:      "requests_total",
			Help:      "Forecast acquisitions by outcome",
		}, []string{"outcome"}),
	}
}

// RunFinished counts a completed run.
func (m *EngineMetrics) RunFinished(status string) {
	m.RunsTotal.WithLabelValues(status).Inc()
}

// PhaseObserved records how long a phase took.
func (m *EngineMetrics) PhaseObserved(phase string, d time.Duration) {
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// EpochCompleted counts one optimizer epoch.
func (m *EngineMetrics) EpochCompleted() {
	m.EpochsTotal.Inc()
}

// ForecastRequested counts a forecast acquisition outcome.
func (m *EngineMetrics) ForecastRequested(outcome string) {
	m.ForecastRequests.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving these metrics.
func (m *EngineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
