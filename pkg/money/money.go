// Package money holds the cent-precision conversions used at the edges of the
// float64 simulation: rounding balances, splitting contributions and display.
package money

import (
	"github.com/shopspring/decimal"
)

// Money is a monetary amount with decimal precision.
type Money struct {
	decimal.Decimal
}

// FromFloat converts a simulation value to Money rounded to cents.
func FromFloat(value float64) Money {
	return Money{decimal.NewFromFloat(value).Round(2)}
}

// FromDecimal wraps d without rounding.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the amount to cents.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Split divides the amount (rounded to cents) into a fraction and the rest.
// The two parts always add back to the rounded amount.
func (m Money) Split(fraction decimal.Decimal) (part, rest Money) {
	total := m.Decimal.Round(2)
	p := total.Mul(fraction).Round(2)
	return Money{p}, Money{total.Sub(p)}
}

// String returns the amount with two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as currency, e.g. $1,234.50 or -$12.00.
func (m Money) Format() string {
	s := m.Decimal.Abs().StringFixed(2)
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	var b []byte
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, whole[i])
	}
	out := "$" + string(b) + frac
	if m.Decimal.Round(2).IsNegative() {
		return "-" + out
	}
	return out
}
