package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.57", FormatCurrency(decimal.NewFromFloat(1234.567)))
	assert.Equal(t, "-$12.50", FormatCurrency(decimal.NewFromFloat(-12.5)))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(decimal.NewFromFloat(0.123456)))
}

func TestFormatMonths(t *testing.T) {
	assert.Equal(t, "0 months", FormatMonths(0))
	assert.Equal(t, "7 months", FormatMonths(7))
	assert.Equal(t, "2 years", FormatMonths(24))
	assert.Equal(t, "10 years 3 months", FormatMonths(123))
}

func TestIntToString(t *testing.T) {
	assert.Equal(t, "42", intToString(42))
}
