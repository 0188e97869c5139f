package output

import (
	"strconv"

	"github.com/rpgo/fire-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency with 2 decimals and thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return money.FromDecimal(amount).Format()
}

// FormatPercentage formats a fraction (0.25) as a percentage with 2 decimals (25.00%).
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatMonths renders a month count as years and months.
func FormatMonths(months int) string {
	y, m := months/12, months%12
	switch {
	case y == 0:
		return strconv.Itoa(m) + " months"
	case m == 0:
		return strconv.Itoa(y) + " years"
	default:
		return strconv.Itoa(y) + " years " + strconv.Itoa(m) + " months"
	}
}

func intToString(i int) string { return strconv.Itoa(i) }

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', 6, 64) }
