package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rpgo/fire-calculator/internal/calculation"
	"github.com/rpgo/fire-calculator/internal/marketdata"
	"github.com/rpgo/fire-calculator/internal/observability"
	"github.com/spf13/cobra"
)

// engineFlags are shared by every command that runs projections.
type engineFlags struct {
	debug      bool
	source     string
	apiKey     string
	redisAddr  string
	cacheTTL   time.Duration
	delay      time.Duration
	lookback   int
	maxEpochs  int
	minWidth   float64
	preserve   int
	horizonAge int
}

func (f *engineFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.debug, "debug", false, "log engine state transitions and epochs")
	fs.StringVar(&f.source, "source", "", "price history source: a CSV directory or an http(s) base URL")
	fs.StringVar(&f.apiKey, "api-key", os.Getenv("FIRE_MARKETDATA_KEY"), "API key for an HTTP price source")
	fs.StringVar(&f.redisAddr, "redis", "", "Redis address for caching forecasts (empty keeps them in memory)")
	fs.DurationVar(&f.cacheTTL, "cache-ttl", marketdata.DefaultCacheTTL, "forecast cache lifetime")
	fs.DurationVar(&f.delay, "request-delay", calculation.RequestDelay, "pause between remote price requests")
	fs.IntVar(&f.lookback, "lookback", 252, "prices used by the drift forecast")
	fs.IntVar(&f.maxEpochs, "max-epochs", calculation.DefaultMaxEpochs, fmt.Sprintf("maximum allocation search epochs (at most %d)", calculation.MaxEpochsCap))
	fs.Float64Var(&f.minWidth, "min-width", calculation.DefaultMinWidth, "stop the allocation search below this interval width")
	fs.IntVar(&f.preserve, "preservation-age", calculation.PreservationAge, "age from which super can be drawn")
	fs.IntVar(&f.horizonAge, "horizon-age", calculation.HorizonAge, "latest working age modelled")
}

// wiring is an engine plus the resources built around it.
type wiring struct {
	engine  *calculation.RetirementEngine
	logger  *calculation.StdLogger
	metrics *observability.EngineMetrics
	close   func() error
}

// build wires an engine from the flags. close releases the forecast cache.
func (f *engineFlags) build(logOut io.Writer, reg *prometheus.Registry) (*wiring, error) {
	logger := calculation.NewStdLogger(logOut, f.debug)
	metrics := observability.NewEngineMetrics("", reg)

	engine := calculation.NewRetirementEngine()
	engine.SetLogger(logger)
	engine.SetMetrics(metrics)
	engine.Options.Convergence = calculation.Convergence{MaxEpochs: f.maxEpochs, MinWidth: f.minWidth}
	engine.Options.PreservationAge = f.preserve
	engine.Options.HorizonAge = f.horizonAge

	w := &wiring{engine: engine, logger: logger, metrics: metrics, close: func() error { return nil }}
	if f.source == "" {
		return w, nil
	}

	var source marketdata.TimeSeriesSource
	if strings.HasPrefix(f.source, "http://") || strings.HasPrefix(f.source, "https://") {
		source = marketdata.NewHTTPSource(f.source, f.apiKey)
	} else {
		if st, err := os.Stat(f.source); err != nil || !st.IsDir() {
			return nil, fmt.Errorf("price source %q is not a directory or URL", f.source)
		}
		source = marketdata.NewCSVSource(f.source)
	}

	acquirer := calculation.NewForecastAcquirer(source, newOracle(f.lookback))
	acquirer.Delay = f.delay
	acquirer.Logger = logger
	acquirer.Metrics = metrics

	if f.redisAddr != "" {
		rc := marketdata.NewRedisCache(f.redisAddr, f.cacheTTL)
		acquirer.Cache = rc
		w.close = rc.Close
	} else {
		acquirer.Cache = marketdata.NewMemoryCache()
	}
	engine.Forecasts = acquirer
	return w, nil
}

// newOracle tiers the drift model: short histories average over the short
// minimum, full histories over lookback.
func newOracle(lookback int) *marketdata.TieredOracle {
	return marketdata.NewTieredOracle(
		marketdata.DriftOracle{Lookback: marketdata.DefaultShortMinimum},
		marketdata.DriftOracle{Lookback: lookback},
	)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fire",
		Short:         "FIRE retirement projection engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newProjectCommand(), newExampleCommand(), newServeCommand())
	return root
}
