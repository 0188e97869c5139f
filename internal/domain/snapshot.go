package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Housing modes
const (
	HousingMortgage = "mortgage"
	HousingRent     = "rent"
)

// Snapshot is the complete, immutable input to a retirement projection.
// It is passed by value; the engine never mutates it.
type Snapshot struct {
	AsOf               time.Time       `yaml:"as_of" json:"as_of"`
	BirthDate          time.Time       `yaml:"birth_date" json:"birth_date"`
	AnnualExpenses     decimal.Decimal `yaml:"annual_expenses" json:"annual_expenses"`
	AnnualContribution decimal.Decimal `yaml:"annual_contribution" json:"annual_contribution"`
	InflationRate      decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	SuperGrowthRate    decimal.Decimal `yaml:"super_growth_rate" json:"super_growth_rate"`
	Housing            Housing         `yaml:"housing" json:"housing"`
	Debts              []Debt          `yaml:"debts" json:"debts"`
	Investments        []Investment    `yaml:"investments" json:"investments"`
	Holdings           []Holding       `yaml:"holdings" json:"holdings"`

	// Forecasts holds pre-acquired daily percentage returns keyed by symbol.
	Forecasts map[string][]float64 `yaml:"forecasts,omitempty" json:"forecasts,omitempty"`
}

// Housing describes how the user pays for housing.
type Housing struct {
	Mode       string          `yaml:"mode" json:"mode"` // mortgage|rent
	AnnualRent decimal.Decimal `yaml:"annual_rent,omitempty" json:"annual_rent,omitempty"`
	Mortgage   *Debt           `yaml:"mortgage,omitempty" json:"mortgage,omitempty"`
}

// Debt is a single liability as entered by the user.
type Debt struct {
	Name                  string          `yaml:"name" json:"name"`
	Principal             decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRate            decimal.Decimal `yaml:"annual_rate" json:"annual_rate"`
	MinimumMonthlyPayment decimal.Decimal `yaml:"minimum_monthly_payment" json:"minimum_monthly_payment"`
}

// Investment is a future brokerage line item receiving contributions.
type Investment struct {
	Name           string          `yaml:"name" json:"name"`
	Symbol         string          `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Allocation     decimal.Decimal `yaml:"allocation" json:"allocation"`
	ExpectedReturn decimal.Decimal `yaml:"expected_return" json:"expected_return"`
	AutoForecast   bool            `yaml:"auto_forecast,omitempty" json:"auto_forecast,omitempty"`
}

// Holding is an existing investment. Super holdings seed the retirement fund.
type Holding struct {
	Name           string          `yaml:"name" json:"name"`
	Symbol         string          `yaml:"symbol,omitempty" json:"symbol,omitempty"`
	Value          decimal.Decimal `yaml:"value" json:"value"`
	ExpectedReturn decimal.Decimal `yaml:"expected_return" json:"expected_return"`
	IsSuper        bool            `yaml:"is_super,omitempty" json:"is_super,omitempty"`
	AutoForecast   bool            `yaml:"auto_forecast,omitempty" json:"auto_forecast,omitempty"`
}

// AllDebts returns the debt list with the mortgage appended when housing is mortgaged.
func (s Snapshot) AllDebts() []Debt {
	debts := make([]Debt, 0, len(s.Debts)+1)
	debts = append(debts, s.Debts...)
	if s.Housing.Mode == HousingMortgage && s.Housing.Mortgage != nil {
		m := *s.Housing.Mortgage
		if m.Name == "" {
			m.Name = "Mortgage"
		}
		debts = append(debts, m)
	}
	return debts
}

// TotalAnnualExpenses returns living expenses plus rent when renting.
func (s Snapshot) TotalAnnualExpenses() decimal.Decimal {
	if s.Housing.Mode == HousingRent {
		return s.AnnualExpenses.Add(s.Housing.AnnualRent)
	}
	return s.AnnualExpenses
}

// ForecastSymbols lists the symbols flagged for auto-forecasting, in input order, without duplicates.
// Super holdings are skipped: the fund grows at SuperGrowthRate.
func (s Snapshot) ForecastSymbols() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(sym string, auto bool) {
		if !auto || sym == "" || seen[sym] {
			return
		}
		seen[sym] = true
		out = append(out, sym)
	}
	for _, inv := range s.Investments {
		add(inv.Symbol, inv.AutoForecast)
	}
	for _, h := range s.Holdings {
		add(h.Symbol, h.AutoForecast && !h.IsSuper)
	}
	return out
}
