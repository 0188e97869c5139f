package calculation

import "time"

// MetricsRecorder receives engine events. observability.EngineMetrics is the
// Prometheus-backed implementation; NopMetrics discards everything.
type MetricsRecorder interface {
	RunFinished(status string)
	PhaseObserved(phase string, d time.Duration)
	EpochCompleted()
	ForecastRequested(outcome string)
}

// NopMetrics implements MetricsRecorder with no effect.
type NopMetrics struct{}

func (NopMetrics) RunFinished(string)                  {}
func (NopMetrics) PhaseObserved(string, time.Duration) {}
func (NopMetrics) EpochCompleted()                     {}
func (NopMetrics) ForecastRequested(string)            {}
