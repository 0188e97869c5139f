package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "12.35", FromFloat(12.345).String())
	assert.Equal(t, "0.00", FromFloat(0.004).String())

	d := decimal.NewFromFloat(10.125)
	assert.True(t, FromDecimal(d).Decimal.Equal(d), "FromDecimal does not round")
	assert.Equal(t, "10.13", FromDecimal(d).Round().String())
}

func TestMonthly(t *testing.T) {
	assert.Equal(t, "5000.00", FromFloat(60000).Monthly().String())
	assert.Equal(t, "833.33", FromFloat(10000).Monthly().Round().String())
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		fraction float64
		part     string
		rest     string
	}{
		{"even", "1000", 0.5, "500.00", "500.00"},
		{"uneven cents", "833.333333", 0.3, "250.00", "583.33"},
		{"all", "100", 1, "100.00", "0.00"},
		{"none", "100", 0, "0.00", "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part, rest := FromDecimal(decimal.RequireFromString(tt.amount)).Split(decimal.NewFromFloat(tt.fraction))
			assert.Equal(t, tt.part, part.String())
			assert.Equal(t, tt.rest, rest.String())
		})
	}
}

func TestSplit_PartsAddUp(t *testing.T) {
	m := FromDecimal(decimal.RequireFromString("1234.5678"))
	for _, f := range []float64{0.1, 0.333333, 0.5, 0.987654} {
		part, rest := m.Split(decimal.NewFromFloat(f))
		assert.True(t, part.Add(rest.Decimal).Equal(m.Round().Decimal), "fraction %v", f)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{999.999, "$1,000.00"},
		{1234.567, "$1,234.57"},
		{1300000, "$1,300,000.00"},
		{-12.5, "-$12.50"},
		{-0.001, "$0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromDecimal(decimal.NewFromFloat(tt.in)).Format())
	}
}
