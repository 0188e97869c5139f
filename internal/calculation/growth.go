package calculation

import "math"

// DailyRealFactor converts an annual return into an inflation-adjusted daily multiplier.
func DailyRealFactor(annualRate, annualInflation float64) float64 {
	return math.Pow((1+annualRate)/(1+annualInflation), 1.0/DaysPerYear)
}

// DailyNominalFactor converts an annual rate into a daily compounding multiplier (debts).
func DailyNominalFactor(annualRate float64) float64 {
	return math.Pow(1+annualRate, 1.0/DaysPerYear)
}

// Growth describes how one balance moves from day to day. Inside the forecast
// window the realized forecast return is used; afterwards the closed-form factor.
type Growth struct {
	Factor   float64
	Forecast []float64 // daily percentage returns indexed by simulation day
}

// Multiplier returns the growth multiplier for a simulation day.
func (g Growth) Multiplier(day int) float64 {
	if day >= 0 && day < len(g.Forecast) {
		return 1 + g.Forecast[day]/100
	}
	return g.Factor
}

// Compound returns the combined multiplier for n consecutive days starting at day.
// Days past the forecast window collapse into a single power of the factor.
func (g Growth) Compound(day, n int) float64 {
	if n <= 0 {
		return 1
	}
	m := 1.0
	for n > 0 && day >= 0 && day < len(g.Forecast) {
		m *= 1 + g.Forecast[day]/100
		day++
		n--
	}
	if n > 0 {
		m *= math.Pow(g.Factor, float64(n))
	}
	return m
}

// Pool is a set of balances funded and drawn down together.
// Balances and Growth are parallel slices.
type Pool struct {
	Balances []float64
	Growth   []Growth
}

// NewPool builds a pool from starting balances and their growth models.
func NewPool(balances []float64, growth []Growth) Pool {
	return Pool{Balances: balances, Growth: growth}
}

// Clone returns a pool whose balances can be mutated independently.
// Growth models are read-only and shared.
func (p Pool) Clone() Pool {
	b := make([]float64, len(p.Balances))
	copy(b, p.Balances)
	return Pool{Balances: b, Growth: p.Growth}
}

// Grow applies one day of growth to every balance.
func (p Pool) Grow(day int) {
	for i := range p.Balances {
		p.Balances[i] *= p.Growth[i].Multiplier(day)
	}
}

// GrowN applies n days of growth starting at day.
func (p Pool) GrowN(day, n int) {
	for i := range p.Balances {
		p.Balances[i] *= p.Growth[i].Compound(day, n)
	}
}

// Total sums the balances.
func (p Pool) Total() float64 {
	var t float64
	for _, b := range p.Balances {
		t += b
	}
	return t
}

func clonePools(pools []Pool) []Pool {
	out := make([]Pool, len(pools))
	for i, p := range pools {
		out[i] = p.Clone()
	}
	return out
}
