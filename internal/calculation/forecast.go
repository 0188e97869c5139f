package calculation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rpgo/fire-calculator/internal/marketdata"
)

// ForecastAcquirer fetches price history and runs the forecast oracle for each
// auto-forecast symbol. Remote requests made through one acquirer start at
// least Delay apart, across runs and goroutines; cached and pre-supplied
// forecasts skip both.
type ForecastAcquirer struct {
	Source  marketdata.TimeSeriesSource
	Oracle  marketdata.Oracle
	Cache   marketdata.ForecastCache
	Delay   time.Duration
	Logger  Logger
	Metrics MetricsRecorder

	mu          sync.Mutex
	lastRequest time.Time
}

// NewForecastAcquirer creates an acquirer with the provider's mandatory delay.
func NewForecastAcquirer(source marketdata.TimeSeriesSource, oracle marketdata.Oracle) *ForecastAcquirer {
	return &ForecastAcquirer{
		Source:  source,
		Oracle:  oracle,
		Delay:   RequestDelay,
		Logger:  NopLogger{},
		Metrics: NopMetrics{},
	}
}

// AcquireForecasts resolves a forecast path for every symbol, in order. preset
// entries win over the cache, which wins over a remote request. A nil acquirer
// can only serve preset forecasts; anything else is a missing-data failure.
func AcquireForecasts(ctx context.Context, a *ForecastAcquirer, symbols []string, asOf time.Time, horizonDays int, preset map[string][]float64) (map[string][]float64, error) {
	out := make(map[string][]float64, len(symbols))
	for _, sym := range symbols {
		if series, ok := preset[sym]; ok {
			if err := marketdata.ValidateForecast(series, 1); err != nil {
				return nil, marketdata.Classify(sym, err, true)
			}
			out[sym] = truncateForecast(series, horizonDays)
			continue
		}
		if a == nil || a.Source == nil || a.Oracle == nil {
			return nil, &marketdata.CollaboratorError{
				Kind:   marketdata.KindMissingData,
				Symbol: sym,
				Err:    fmt.Errorf("no forecast snapshot and no forecast source configured"),
			}
		}
		series, err := a.acquire(ctx, sym, asOf, horizonDays)
		if err != nil {
			return nil, err
		}
		out[sym] = series
	}
	return out, nil
}

// acquire resolves one symbol from the cache or the provider.
func (a *ForecastAcquirer) acquire(ctx context.Context, sym string, asOf time.Time, horizonDays int) ([]float64, error) {
	key := marketdata.CacheKey(sym, asOf, horizonDays)
	if a.Cache != nil {
		if series, ok := a.Cache.Get(ctx, key); ok && marketdata.ValidateForecast(series, horizonDays) == nil {
			a.metrics().ForecastRequested("cache_hit")
			a.logger().Debugf("forecast cache hit for %s", sym)
			return series, nil
		}
	}

	if err := a.waitTurn(ctx, sym); err != nil {
		return nil, fmt.Errorf("forecast acquisition cancelled: %w", err)
	}

	history, err := a.Source.Fetch(ctx, sym, asOf)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("forecast acquisition cancelled: %w", ctx.Err())
		}
		a.metrics().ForecastRequested("source_error")
		return nil, marketdata.Classify(sym, err, false)
	}
	if len(history) == 0 {
		a.metrics().ForecastRequested("source_error")
		return nil, &marketdata.CollaboratorError{Kind: marketdata.KindMissingData, Symbol: sym, Err: marketdata.ErrMissingData}
	}

	series, err := a.Oracle.PredictReturns(ctx, history, horizonDays)
	if err == nil {
		err = marketdata.ValidateForecast(series, horizonDays)
	}
	if err != nil {
		a.metrics().ForecastRequested("inference_error")
		return nil, marketdata.Classify(sym, err, true)
	}
	series = truncateForecast(series, horizonDays)
	a.metrics().ForecastRequested("fetched")
	a.logger().Infof("forecast acquired for %s from %d prices", sym, len(history))

	if a.Cache != nil {
		if err := a.Cache.Set(ctx, key, series); err != nil {
			a.logger().Warnf("failed to cache forecast for %s: %v", sym, err)
		}
	}
	return series, nil
}

// waitTurn blocks until Delay has passed since the previous remote request
// through a, then claims the slot. Waiters queue on the mutex.
func (a *ForecastAcquirer) waitTurn(ctx context.Context, sym string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.lastRequest.IsZero() {
		if wait := a.Delay - nowFunc().Sub(a.lastRequest); wait > 0 {
			a.logger().Debugf("waiting %s before requesting %s", wait, sym)
			if err := sleepFunc(ctx, wait); err != nil {
				return err
			}
		}
	}
	a.lastRequest = nowFunc()
	return nil
}

func (a *ForecastAcquirer) logger() Logger {
	if a.Logger == nil {
		return NopLogger{}
	}
	return a.Logger
}

func (a *ForecastAcquirer) metrics() MetricsRecorder {
	if a.Metrics == nil {
		return NopMetrics{}
	}
	return a.Metrics
}

func truncateForecast(series []float64, horizonDays int) []float64 {
	n := len(series)
	if horizonDays > 0 && n > horizonDays {
		n = horizonDays
	}
	out := make([]float64, n)
	copy(out, series[:n])
	return out
}
