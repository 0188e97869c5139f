package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/rpgo/fire-calculator/internal/domain"
	"github.com/rpgo/fire-calculator/pkg/dateutil"
	"github.com/rpgo/fire-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// EngineState is a stage of a projection run.
type EngineState int

const (
	StateIdle EngineState = iota
	StateResolvingDebt
	StateTerminated
	StateAcquiringForecasts
	StateOptimizing
	StateComplete
)

func (s EngineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolvingDebt:
		return "resolving_debt"
	case StateTerminated:
		return "terminated"
	case StateAcquiringForecasts:
		return "acquiring_forecasts"
	case StateOptimizing:
		return "optimizing"
	case StateComplete:
		return "complete"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options tunes a RetirementEngine.
type Options struct {
	Convergence     Convergence
	PreservationAge int
	HorizonAge      int
	UnboundedYears  int
}

// DefaultOptions returns the standard model settings.
func DefaultOptions() Options {
	return Options{
		Convergence:     DefaultConvergence(),
		PreservationAge: PreservationAge,
		HorizonAge:      HorizonAge,
		UnboundedYears:  UnboundedProbeYears,
	}
}

// RetirementEngine orchestrates debt resolution, forecast acquisition and the
// allocation search. It holds configuration only; every Run is independent.
type RetirementEngine struct {
	Options   Options
	Forecasts *ForecastAcquirer
	Logger    Logger
	Metrics   MetricsRecorder
}

// NewRetirementEngine creates an engine with default options and no forecast source.
func NewRetirementEngine() *RetirementEngine {
	return &RetirementEngine{
		Options: DefaultOptions(),
		Logger:  NopLogger{},
		Metrics: NopMetrics{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *RetirementEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetMetrics sets the metrics recorder. If nil is provided, metrics are discarded.
func (e *RetirementEngine) SetMetrics(m MetricsRecorder) {
	if m == nil {
		e.Metrics = NopMetrics{}
		return
	}
	e.Metrics = m
}

// run carries the per-call state machine.
type run struct {
	engine *RetirementEngine
	state  EngineState
	marked time.Time
}

func (r *run) transition(next EngineState) {
	now := time.Now()
	if r.state != StateIdle {
		r.engine.metrics().PhaseObserved(r.state.String(), now.Sub(r.marked))
	}
	r.engine.logger().Debugf("engine: %s -> %s", r.state, next)
	r.state, r.marked = next, now
}

// Run computes the retirement projection for snap. The snapshot is not modified.
// Unresolved debt is reported through the result status, not an error; errors
// come only from cancellation and forecast collaborators.
func (e *RetirementEngine) Run(ctx context.Context, snap domain.Snapshot) (*domain.RetirementResult, error) {
	r := &run{engine: e, state: StateIdle}
	res, err := r.execute(ctx, snap)
	status := "error"
	if err == nil {
		status = string(res.Status)
	}
	e.metrics().RunFinished(status)
	return res, err
}

func (r *run) execute(ctx context.Context, snap domain.Snapshot) (*domain.RetirementResult, error) {
	e := r.engine
	if snap.AsOf.IsZero() {
		snap.AsOf = nowFunc()
	}
	opts := e.Options
	if opts.PreservationAge == 0 {
		opts.PreservationAge = PreservationAge
	}
	if opts.HorizonAge == 0 {
		opts.HorizonAge = HorizonAge
	}
	if opts.UnboundedYears <= 0 {
		opts.UnboundedYears = UnboundedProbeYears
	}

	in := newModelInputs(snap, opts)

	r.transition(StateResolvingDebt)
	resolution := ResolveDebts(in.debts, in.dailyContribution, in.hurdle, in.horizonDay)
	e.logger().Infof("debt resolution: %d days, resolved=%t, remaining=%d", resolution.Days, resolution.Resolved, len(resolution.Remaining))
	if !resolution.Resolved {
		r.transition(StateTerminated)
		return &domain.RetirementResult{
			Status:              domain.StatusDebtUnresolved,
			DaysToResolveDebt:   resolution.Days,
			MonthsToResolveDebt: dateutil.MonthsFromDays(resolution.Days),
			UnresolvedDebts:     debtBalances(resolution.Remaining),
			MonthlyBalances:     []domain.MonthlyBalance{},
		}, nil
	}

	r.transition(StateAcquiringForecasts)
	forecasts, err := AcquireForecasts(ctx, e.Forecasts, snap.ForecastSymbols(), snap.AsOf, ForecastWindowDays, snap.Forecasts)
	if err != nil {
		return nil, fmt.Errorf("forecast acquisition failed: %w", err)
	}
	plan := in.plan(forecasts)

	r.transition(StateOptimizing)
	opt := NewAllocationOptimizer(opts.Convergence)
	opt.Logger, opt.Metrics = e.logger(), e.metrics()
	outcome, err := opt.Optimize(ctx, plan)
	if err != nil {
		return nil, err
	}

	res := assembleResult(snap, plan, outcome, resolution)
	r.transition(StateComplete)
	e.logger().Infof("projection complete: %d months worked, broker proportion %s", res.MonthsWorked, res.BrokerProportion.StringFixed(4))
	return res, nil
}

func (e *RetirementEngine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *RetirementEngine) metrics() MetricsRecorder {
	if e.Metrics == nil {
		return NopMetrics{}
	}
	return e.Metrics
}

// modelInputs is the snapshot converted to simulation units.
type modelInputs struct {
	snap              domain.Snapshot
	dailyContribution float64
	dailyExpense      float64
	inflation         float64
	hurdle            float64
	debts             *DebtLedger
	preservationDay   int
	horizonDay        int
	unboundedDays     int
}

func newModelInputs(snap domain.Snapshot, opts Options) modelInputs {
	in := modelInputs{
		snap:              snap,
		dailyContribution: snap.AnnualContribution.InexactFloat64() / DaysPerYear,
		dailyExpense:      snap.TotalAnnualExpenses().InexactFloat64() / DaysPerYear,
		inflation:         snap.InflationRate.InexactFloat64(),
		preservationDay:   dateutil.DaysUntil(snap.AsOf, dateutil.AddYears(snap.BirthDate, opts.PreservationAge)),
		horizonDay:        dateutil.DaysUntil(snap.AsOf, dateutil.AddYears(snap.BirthDate, opts.HorizonAge)),
		unboundedDays:     opts.UnboundedYears * DaysPerYear,
	}
	for _, inv := range snap.Investments {
		in.hurdle += inv.Allocation.InexactFloat64() * inv.ExpectedReturn.InexactFloat64()
	}

	var accounts []DebtAccount
	for _, d := range snap.AllDebts() {
		rate := d.AnnualRate.InexactFloat64()
		accounts = append(accounts, DebtAccount{
			Name:         d.Name,
			Balance:      d.Principal.InexactFloat64(),
			AnnualRate:   rate,
			MinimumDaily: d.MinimumMonthlyPayment.InexactFloat64() * 12 / DaysPerYear,
			DailyFactor:  DailyNominalFactor(rate),
		})
	}
	in.debts = NewDebtLedger(accounts)
	return in
}

// plan builds the epoch starting point once forecasts are known.
func (in modelInputs) plan(forecasts map[string][]float64) Plan {
	growthFor := func(symbol string, auto bool, rate decimal.Decimal) Growth {
		g := Growth{Factor: DailyRealFactor(rate.InexactFloat64(), in.inflation)}
		if auto {
			g.Forecast = forecasts[symbol]
		}
		return g
	}

	var brokers Pool
	var weights []float64
	for _, inv := range in.snap.Investments {
		brokers.Balances = append(brokers.Balances, 0)
		brokers.Growth = append(brokers.Growth, growthFor(inv.Symbol, inv.AutoForecast, inv.ExpectedReturn))
		weights = append(weights, inv.Allocation.InexactFloat64())
	}
	if len(weights) == 0 {
		// Without an allocation the brokerage share is held as cash.
		brokers = NewPool([]float64{0}, []Growth{{Factor: DailyRealFactor(0, in.inflation)}})
		weights = []float64{1}
	}

	var holdings Pool
	superBalance := 0.0
	for _, h := range in.snap.Holdings {
		if h.IsSuper {
			superBalance += h.Value.InexactFloat64()
			continue
		}
		holdings.Balances = append(holdings.Balances, h.Value.InexactFloat64())
		holdings.Growth = append(holdings.Growth, growthFor(h.Symbol, h.AutoForecast, h.ExpectedReturn))
	}
	super := NewPool([]float64{superBalance}, []Growth{{Factor: DailyRealFactor(in.snap.SuperGrowthRate.InexactFloat64(), in.inflation)}})

	return Plan{
		Brokers:           brokers,
		Weights:           weights,
		Holdings:          holdings,
		Super:             super,
		Debts:             in.debts,
		DailyContribution: in.dailyContribution,
		DailyExpense:      in.dailyExpense,
		Hurdle:            in.hurdle,
		PreservationDay:   in.preservationDay,
		HorizonDay:        in.horizonDay,
		UnboundedDays:     in.unboundedDays,
	}
}

// assembleResult converts the final epoch into the immutable result.
// The contribution split is what is left today after the minimums on the
// starting debts.
func assembleResult(snap domain.Snapshot, plan Plan, outcome OptimizationOutcome, resolution DebtResolution) *domain.RetirementResult {
	final := outcome.Final
	retireOn := snap.AsOf.AddDate(0, 0, final.Days)
	prop := decimal.NewFromFloat(final.Proportion)
	monthly := money.FromDecimal(snap.AnnualContribution).Monthly().Round()
	minimums := money.FromFloat(plan.Debts.MinimumDue() * DaysPerYear / 12)
	if minimums.GreaterThan(monthly.Decimal) {
		minimums = monthly
	}
	brokerMonthly, superMonthly := money.FromDecimal(monthly.Sub(minimums.Decimal)).Split(prop)

	months := make([]domain.MonthlyBalance, 0, len(final.Months))
	for _, m := range final.Months {
		months = append(months, domain.MonthlyBalance{
			Month:    m.Month,
			Date:     snap.AsOf.AddDate(0, 0, m.Day),
			Broker:   cents(m.Broker),
			Holdings: cents(m.Holdings),
			Super:    cents(m.Super),
			Debt:     cents(m.Debt),
		})
	}

	epochs := make([]domain.EpochTrace, 0, len(outcome.Epochs))
	for _, s := range outcome.Epochs {
		epochs = append(epochs, domain.EpochTrace{
			Epoch:      s.Epoch,
			Proportion: s.Proportion,
			Min:        s.Min,
			Max:        s.Max,
			PreRatio:   s.PreRatio,
			PostRatio:  s.PostRatio,
			Days:       s.Days,
		})
	}

	return &domain.RetirementResult{
		Status:           domain.StatusComplete,
		MonthsWorked:     dateutil.MonthsFromDays(final.Days),
		DaysWorked:       final.Days,
		RetirementDate:   retireOn,
		RetirementAge:    dateutil.Age(snap.BirthDate, retireOn),
		BrokerProportion: prop.Round(6),
		MonthlyContributions: domain.BucketAmounts{
			Broker: brokerMonthly.Decimal,
			Super:  superMonthly.Decimal,
		},
		MonthlyDebtPayments: minimums.Decimal,
		BalancesAtRetirement: domain.BucketAmounts{
			Broker: cents(final.Brokers.Total() + final.Holdings.Total()),
			Super:  cents(final.Super.Total()),
		},
		MonthsToResolveDebt: dateutil.MonthsFromDays(resolution.Days),
		DaysToResolveDebt:   resolution.Days,
		UnresolvedDebts:     debtBalances(final.Debts.Accounts()),
		MonthlyBalances:     months,
		Epochs:              epochs,
	}
}

func debtBalances(accounts []DebtAccount) []domain.DebtBalance {
	out := make([]domain.DebtBalance, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, domain.DebtBalance{
			Name:       a.Name,
			Balance:    cents(a.Balance),
			AnnualRate: decimal.NewFromFloat(a.AnnualRate),
		})
	}
	return out
}

func cents(v float64) decimal.Decimal {
	return money.FromFloat(v).Decimal
}
