package marketdata

import (
	"context"
	"fmt"
	"math"
)

// History length tiers for selecting an oracle.
const (
	DefaultShortMinimum = 30
	DefaultFullMinimum  = 252
)

// TieredOracle dispatches to Full when the history is long enough, to Short
// when it meets the short minimum, and fails otherwise.
type TieredOracle struct {
	Short        Oracle
	Full         Oracle
	ShortMinimum int
	FullMinimum  int
}

// NewTieredOracle creates a tiered oracle with the default minimums.
func NewTieredOracle(short, full Oracle) *TieredOracle {
	return &TieredOracle{
		Short:        short,
		Full:         full,
		ShortMinimum: DefaultShortMinimum,
		FullMinimum:  DefaultFullMinimum,
	}
}

var _ Oracle = (*TieredOracle)(nil)

// PredictReturns selects the oracle tier and validates its output.
func (t *TieredOracle) PredictReturns(ctx context.Context, history []float64, horizonDays int) ([]float64, error) {
	var o Oracle
	switch {
	case len(history) >= t.FullMinimum && t.Full != nil:
		o = t.Full
	case len(history) >= t.ShortMinimum && t.Short != nil:
		o = t.Short
	default:
		return nil, fmt.Errorf("%w: have %d prices, need at least %d", ErrInsufficientHistory, len(history), t.ShortMinimum)
	}
	out, err := o.PredictReturns(ctx, history, horizonDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	if err := ValidateForecast(out, horizonDays); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateForecast rejects empty, short or non-finite forecast output.
func ValidateForecast(returns []float64, horizonDays int) error {
	if len(returns) == 0 {
		return fmt.Errorf("%w: empty forecast", ErrInference)
	}
	if len(returns) < horizonDays {
		return fmt.Errorf("%w: forecast has %d days, want %d", ErrInference, len(returns), horizonDays)
	}
	for i, r := range returns {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= -100 {
			return fmt.Errorf("%w: malformed return %v at day %d", ErrInference, r, i)
		}
	}
	return nil
}

// DriftOracle projects the mean daily percentage change of the last Lookback
// prices forward as a flat path. It is a baseline model, useful where no
// trained forecaster is deployed.
type DriftOracle struct {
	Lookback int
}

var _ Oracle = DriftOracle{}

// PredictReturns returns horizonDays copies of the historical mean daily return.
func (d DriftOracle) PredictReturns(ctx context.Context, history []float64, horizonDays int) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(history) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices", ErrInsufficientHistory)
	}
	start := 0
	if d.Lookback > 1 && len(history) > d.Lookback {
		start = len(history) - d.Lookback
	}
	var sum float64
	n := 0
	for i := start + 1; i < len(history); i++ {
		if history[i-1] <= 0 {
			continue
		}
		sum += (history[i]/history[i-1] - 1) * 100
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: no usable price changes", ErrInference)
	}
	mean := sum / float64(n)
	out := make([]float64, horizonDays)
	for i := range out {
		out[i] = mean
	}
	return out, nil
}
