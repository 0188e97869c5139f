// Package marketdata holds the collaborators behind forecast acquisition:
// time-series sources, forecast oracles and the forecast cache.
package marketdata

import (
	"context"
	"time"
)

// TimeSeriesSource returns closing prices for a symbol up to asOf, oldest first.
type TimeSeriesSource interface {
	Fetch(ctx context.Context, symbol string, asOf time.Time) ([]float64, error)
}

// Oracle predicts horizonDays daily percentage returns from a price history.
type Oracle interface {
	PredictReturns(ctx context.Context, history []float64, horizonDays int) ([]float64, error)
}

// PricePoint is one dated closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}
