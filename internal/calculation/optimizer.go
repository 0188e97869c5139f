package calculation

import (
	"context"
	"fmt"
)

// Convergence bounds the bisection: it stops after MaxEpochs runs or once the
// search interval is narrower than MinWidth, whichever comes first.
// MaxEpochs is clamped to [1, MaxEpochsCap].
type Convergence struct {
	MaxEpochs int     `yaml:"max_epochs" json:"max_epochs"`
	MinWidth  float64 `yaml:"min_width" json:"min_width"`
}

// DefaultConvergence returns the standard search settings.
func DefaultConvergence() Convergence {
	return Convergence{MaxEpochs: DefaultMaxEpochs, MinWidth: DefaultMinWidth}
}

// Plan is the fixed starting point of every optimization epoch.
type Plan struct {
	Brokers  Pool      // future brokerage buckets, usually starting at zero
	Weights  []float64 // allocation weights of Brokers
	Holdings Pool      // existing non-super investments
	Super    Pool      // single retirement-fund balance
	Debts    *DebtLedger

	DailyContribution float64
	DailyExpense      float64
	Hurdle            float64

	PreservationDay int // simulation day on which preservation age is reached
	HorizonDay      int // simulation day on which the horizon age is reached
	UnboundedDays   int // cap for the unconditional depletion probes
}

// superWindow is the number of days super must carry expenses.
func (p Plan) superWindow() int {
	w := p.HorizonDay - p.PreservationDay
	if w < 0 {
		return 0
	}
	return w
}

// MonthSample is one monthly point of the working phase, in simulation units.
type MonthSample struct {
	Month    int
	Day      int
	Broker   float64
	Holdings float64
	Super    float64
	Debt     float64
}

// EpochOutcome is the state left behind by one run of the day loop.
type EpochOutcome struct {
	Proportion    float64
	Days          int
	Brokers       Pool
	Holdings      Pool
	Super         Pool
	Debts         *DebtLedger
	Months        []MonthSample
	PreserveDays  int
	SuperDays     int
	PreRatio      float64
	PostRatio     float64
	HorizonForced bool
}

// OptimizationOutcome is the final epoch plus the trace of all epochs.
type OptimizationOutcome struct {
	Final  EpochOutcome
	Epochs []EpochStep
}

// EpochStep records the search interval around one epoch.
type EpochStep struct {
	Epoch      int
	Proportion float64
	Min        float64
	Max        float64
	PreRatio   float64
	PostRatio  float64
	Days       int
}

// AllocationOptimizer searches the brokerage/super contribution split.
type AllocationOptimizer struct {
	Convergence Convergence
	Logger      Logger
	Metrics     MetricsRecorder
}

// NewAllocationOptimizer creates an optimizer with the given convergence criterion.
func NewAllocationOptimizer(c Convergence) *AllocationOptimizer {
	return &AllocationOptimizer{Convergence: c, Logger: NopLogger{}, Metrics: NopMetrics{}}
}

// Optimize runs the bisection. The search relies on more contribution towards
// a bucket never lowering that bucket's feasibility ratio; when that does not
// hold the interval may settle on a poor split, bounded by the convergence caps.
func (o *AllocationOptimizer) Optimize(ctx context.Context, plan Plan) (OptimizationOutcome, error) {
	maxEpochs := o.Convergence.MaxEpochs
	if maxEpochs < 1 {
		maxEpochs = 1
	}
	if maxEpochs > MaxEpochsCap {
		maxEpochs = MaxEpochsCap
	}
	lo, hi := 0.0, 1.0
	prop := 0.5

	var out OptimizationOutcome
	for epoch := 1; epoch <= maxEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return OptimizationOutcome{}, fmt.Errorf("optimization cancelled at epoch %d: %w", epoch, err)
		}
		res := runEpoch(plan, prop)
		step := EpochStep{
			Epoch:      epoch,
			Proportion: prop,
			PreRatio:   res.PreRatio,
			PostRatio:  res.PostRatio,
			Days:       res.Days,
		}
		if res.PreRatio < res.PostRatio {
			lo = prop
		} else {
			hi = prop
		}
		step.Min, step.Max = lo, hi
		out.Final = res
		out.Epochs = append(out.Epochs, step)
		o.metrics().EpochCompleted()
		o.logger().Debugf("epoch %d: proportion=%.6f days=%d pre=%.4f post=%.4f interval=[%.6f, %.6f]",
			epoch, prop, res.Days, res.PreRatio, res.PostRatio, lo, hi)

		if hi-lo < o.Convergence.MinWidth {
			break
		}
		prop = (lo + hi) / 2
	}
	return out, nil
}

func (o *AllocationOptimizer) logger() Logger {
	if o.Logger == nil {
		return NopLogger{}
	}
	return o.Logger
}

func (o *AllocationOptimizer) metrics() MetricsRecorder {
	if o.Metrics == nil {
		return NopMetrics{}
	}
	return o.Metrics
}

// runEpoch steps the working phase one day at a time at a fixed split.
func runEpoch(plan Plan, prop float64) EpochOutcome {
	brokers := plan.Brokers.Clone()
	holdings := plan.Holdings.Clone()
	super := plan.Super.Clone()
	debts := plan.Debts.Clone()

	out := EpochOutcome{Proportion: prop}
	sample := func(month, day int) {
		out.Months = append(out.Months, MonthSample{
			Month:    month,
			Day:      day,
			Broker:   brokers.Total(),
			Holdings: holdings.Total(),
			Super:    super.Total(),
			Debt:     debts.Total(),
		})
	}
	sample(0, 0)

	var retiredBroker, retiredSuper bool
	days := 0
	lastMonth := 0
	for !(retiredBroker && retiredSuper) {
		if days >= plan.HorizonDay {
			retiredBroker, retiredSuper = true, true
			out.HorizonForced = true
			break
		}
		d := days

		leftover := debts.Step(plan.DailyContribution, plan.Hurdle)
		brokerShare := leftover * prop
		for i := range brokers.Balances {
			brokers.Balances[i] += brokerShare * plan.Weights[i]
		}
		if len(super.Balances) > 0 {
			super.Balances[0] += leftover - brokerShare
		}
		brokers.Grow(d)
		holdings.Grow(d)
		super.Grow(d)
		days++

		if !retiredBroker {
			window := plan.PreservationDay - days
			state := ProbeState{
				Day:          days,
				Pools:        []Pool{holdings, brokers},
				Debts:        debts,
				DailyExpense: plan.DailyExpense,
			}
			retiredBroker = window <= 0 || Probe(state, window) >= window
		}
		if !retiredSuper {
			start := days
			if plan.PreservationDay > start {
				start = plan.PreservationDay
			}
			window := plan.HorizonDay - start
			state := ProbeState{
				Day:          days,
				Pools:        []Pool{super},
				Debts:        debts,
				DailyExpense: plan.DailyExpense,
				Deferral:     start - days,
			}
			retiredSuper = window <= 0 || Probe(state, window) >= window
		}

		if m := days * 12 / DaysPerYear; m != lastMonth {
			lastMonth = m
			sample(m, days)
		}
	}

	out.Days = days
	out.Brokers, out.Holdings, out.Super, out.Debts = brokers, holdings, super, debts

	deferral := plan.PreservationDay - days
	if deferral < 0 {
		deferral = 0
	}
	out.PreserveDays = Probe(ProbeState{
		Day:          days,
		Pools:        []Pool{holdings, brokers},
		Debts:        debts,
		DailyExpense: plan.DailyExpense,
	}, plan.UnboundedDays)
	out.SuperDays = Probe(ProbeState{
		Day:          days,
		Pools:        []Pool{super},
		Debts:        debts,
		DailyExpense: plan.DailyExpense,
		Deferral:     deferral,
	}, plan.UnboundedDays)

	out.PreRatio = feasibilityRatio(out.PreserveDays, plan.PreservationDay-days)
	out.PostRatio = feasibilityRatio(out.SuperDays, plan.superWindow())
	return out
}

// feasibilityRatio is actual/available days; an empty window counts as fully covered.
func feasibilityRatio(actual, available int) float64 {
	if available <= 0 {
		return ratioCap
	}
	return float64(actual) / float64(available)
}
