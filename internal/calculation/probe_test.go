package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatPool(balances ...float64) Pool {
	g := make([]Growth, len(balances))
	for i := range g {
		g[i] = Growth{Factor: 1}
	}
	return NewPool(append([]float64(nil), balances...), g)
}

func TestProbe_DepletionDay(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		expense float64
		limit   int
		want    int
	}{
		{"depletes inside window", 100, 10, 20, 10},
		{"survives window", 100, 10, 5, 5},
		{"zero expense lasts forever", 0, 0, 30, 30},
		{"empty balance", 0, 10, 30, 0},
		{"no window", 100, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := ProbeState{Pools: []Pool{flatPool(tt.balance)}, DailyExpense: tt.expense}
			assert.Equal(t, tt.want, Probe(state, tt.limit))
		})
	}
}

// TestProbe_CopyIndependence checks probing never touches the caller's state
func TestProbe_CopyIndependence(t *testing.T) {
	holdings := flatPool(500, 500)
	brokers := NewPool([]float64{1000}, []Growth{{Factor: 1.001}})
	debts := NewDebtLedger([]DebtAccount{account("card", 300, 0.2, 60)})

	Probe(ProbeState{
		Pools:        []Pool{holdings, brokers},
		Debts:        debts,
		DailyExpense: 25,
		Deferral:     10,
	}, 365)

	assert.Equal(t, []float64{500, 500}, holdings.Balances)
	assert.Equal(t, []float64{1000}, brokers.Balances)
	assert.Equal(t, 300.0, debts.Total())
}

func TestProbe_DebtMinimumsDrawFromPools(t *testing.T) {
	withDebt := NewDebtLedger([]DebtAccount{account("loan", 1e6, 0, 365)}) // 12/day minimum
	pools := []Pool{flatPool(120)}

	assert.Equal(t, 10, Probe(ProbeState{Pools: pools, Debts: withDebt}, 100))
	assert.Equal(t, 5, Probe(ProbeState{Pools: pools, Debts: withDebt, DailyExpense: 12}, 100))
}

func TestProbe_DrainsPoolsInOrder(t *testing.T) {
	// 30 days from the first pool, then 20 from the second.
	state := ProbeState{Pools: []Pool{flatPool(300), flatPool(100, 100)}, DailyExpense: 10}

	assert.Equal(t, 50, Probe(state, 100))
}

func TestProbe_DeferralGrowsBeforeWindow(t *testing.T) {
	g := Growth{Factor: DailyRealFactor(0.1, 0)}
	pool := NewPool([]float64{1000}, []Growth{g})

	immediate := Probe(ProbeState{Pools: []Pool{pool}, DailyExpense: 5}, 10000)
	deferred := Probe(ProbeState{Pools: []Pool{pool}, DailyExpense: 5, Deferral: 3 * DaysPerYear}, 10000)

	assert.Greater(t, deferred, immediate)
}

func TestProbe_ForecastWindowUsed(t *testing.T) {
	crash := Growth{Factor: 1, Forecast: []float64{-50}}
	pool := NewPool([]float64{100}, []Growth{crash})

	// Day 0 halves the balance before the first withdrawal.
	assert.Equal(t, 5, Probe(ProbeState{Pools: []Pool{pool}, DailyExpense: 10}, 100))
	// Starting after the forecast window only the factor applies.
	assert.Equal(t, 10, Probe(ProbeState{Day: 1, Pools: []Pool{pool}, DailyExpense: 10}, 100))
}
