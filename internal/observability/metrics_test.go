package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpgo/fire-calculator/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ calculation.MetricsRecorder = (*EngineMetrics)(nil)

// counterValue sums every series of a counter family.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestEngineMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics("test", reg)

	m.RunFinished("complete")
	m.RunFinished("debt_unresolved")
	m.EpochCompleted()
	m.EpochCompleted()
	m.EpochCompleted()
	m.ForecastRequested("cache_hit")
	m.PhaseObserved("optimizing", 250*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "test_engine_runs_total"))
	assert.Equal(t, 3.0, counterValue(t, reg, "test_optimizer_epochs_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "test_forecast_requests_total"))
}

func TestEngineMetrics_Handler(t *testing.T) {
	m := NewEngineMetrics("", nil)
	m.RunFinished("complete")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `fire_calculator_engine_runs_total{status="complete"} 1`)
}
