package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestForecastSymbols(t *testing.T) {
	s := Snapshot{
		Investments: []Investment{
			{Symbol: "VAS", AutoForecast: true},
			{Symbol: "BOND"},
			{Symbol: "VGS", AutoForecast: true},
		},
		Holdings: []Holding{
			{Symbol: "VAS", AutoForecast: true},
			{Symbol: "A200", AutoForecast: true},
			{Symbol: "SUPER", AutoForecast: true, IsSuper: true},
			{AutoForecast: true},
		},
	}

	assert.Equal(t, []string{"VAS", "VGS", "A200"}, s.ForecastSymbols())
}

func TestAllDebts(t *testing.T) {
	s := Snapshot{
		Debts:   []Debt{{Name: "Card", Principal: decimal.NewFromInt(100)}},
		Housing: Housing{Mode: HousingMortgage, Mortgage: &Debt{Principal: decimal.NewFromInt(1000)}},
	}
	debts := s.AllDebts()
	assert.Len(t, debts, 2)
	assert.Equal(t, "Mortgage", debts[1].Name)
	assert.Empty(t, s.Housing.Mortgage.Name, "the snapshot is not modified")

	s.Housing.Mode = HousingRent
	assert.Len(t, s.AllDebts(), 1)
}

func TestTotalAnnualExpenses(t *testing.T) {
	s := Snapshot{AnnualExpenses: decimal.NewFromInt(40000), Housing: Housing{Mode: HousingRent, AnnualRent: decimal.NewFromInt(18000)}}
	assert.True(t, s.TotalAnnualExpenses().Equal(decimal.NewFromInt(58000)))

	s.Housing.Mode = HousingMortgage
	assert.True(t, s.TotalAnnualExpenses().Equal(decimal.NewFromInt(40000)))
}
