package calculation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithdraw_Examples(t *testing.T) {
	tests := []struct {
		name          string
		balances      []float64
		weights       []float64
		amount        float64
		wantBalances  []float64
		wantShortfall float64
	}{
		{"value weighted default", []float64{100, 300, 600}, nil, 100, []float64{90, 270, 540}, 0},
		{"custom weights", []float64{100, 300, 600}, []float64{0.2, 0.3, 0.5}, 300, []float64{40, 210, 450}, 0},
		{"insufficient funds", []float64{10, 0}, nil, 50, []float64{0, 0}, 40},
		{"zero weights fall back to value", []float64{100, 300}, []float64{0, 0}, 40, []float64{90, 270}, 0},
		{"mismatched weights fall back to value", []float64{100, 300}, []float64{1}, 40, []float64{90, 270}, 0},
		{"exact total", []float64{25, 75}, nil, 100, []float64{0, 0}, 0},
		{"single balance", []float64{80}, nil, 30, []float64{50}, 0},
		{"floored share is redistributed", []float64{10, 990}, []float64{0.5, 0.5}, 100, []float64{0, 900}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := append([]float64(nil), tt.balances...)
			shortfall := Withdraw(balances, tt.weights, tt.amount)

			assert.InDelta(t, tt.wantShortfall, shortfall, 1e-9)
			assert.InDeltaSlice(t, tt.wantBalances, balances, 1e-9)
		})
	}
}

func TestWithdraw_NoOp(t *testing.T) {
	balances := []float64{100, 200}

	assert.Equal(t, 0.0, Withdraw(balances, nil, 0))
	assert.Equal(t, -5.0, Withdraw(balances, nil, -5))
	assert.Equal(t, []float64{100, 200}, balances)
	assert.Equal(t, 12.0, Withdraw(nil, nil, 12))
}

// TestWithdraw_ConservationProperty checks conservation and non-negativity over random inputs
func TestWithdraw_ConservationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		n := 1 + rng.Intn(6)
		balances := make([]float64, n)
		var before float64
		for j := range balances {
			if rng.Intn(4) > 0 {
				balances[j] = rng.Float64() * 1000
			}
			before += balances[j]
		}
		var weights []float64
		if rng.Intn(2) == 0 {
			weights = make([]float64, n)
			for j := range weights {
				weights[j] = rng.Float64()
			}
		}
		amount := rng.Float64() * before * 1.5

		shortfall := Withdraw(balances, weights, amount)

		var after float64
		for j, b := range balances {
			assert.GreaterOrEqual(t, b, 0.0, "case %d balance %d", i, j)
			after += b
		}
		assert.GreaterOrEqual(t, shortfall, 0.0, "case %d", i)
		assert.InDelta(t, amount, before-after+shortfall, 1e-6, "case %d", i)
	}
}

func TestFundFromPools_DrainsInOrder(t *testing.T) {
	first := NewPool([]float64{30}, []Growth{{Factor: 1}})
	second := NewPool([]float64{50, 50}, []Growth{{Factor: 1}, {Factor: 1}})

	short := fundFromPools([]Pool{first, second}, 50)

	assert.Equal(t, 0.0, short)
	assert.Equal(t, []float64{0}, first.Balances)
	assert.InDeltaSlice(t, []float64{40, 40}, second.Balances, 1e-9)

	short = fundFromPools([]Pool{first, second}, 100)
	assert.InDelta(t, 20, short, 1e-9)
	assert.Equal(t, 0.0, second.Total())
}
