package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResultStatus describes how a projection ended.
type ResultStatus string

const (
	// StatusComplete means the allocation search ran and a retirement date was found.
	StatusComplete ResultStatus = "complete"
	// StatusDebtUnresolved means debts could not be cleared before the horizon age.
	StatusDebtUnresolved ResultStatus = "debt_unresolved"
)

// RetirementResult is the immutable output of a projection run
type RetirementResult struct {
	Status               ResultStatus     `json:"status" yaml:"status"`
	MonthsWorked         int              `json:"months_worked" yaml:"months_worked"`
	DaysWorked           int              `json:"days_worked" yaml:"days_worked"`
	RetirementDate       time.Time        `json:"retirement_date" yaml:"retirement_date"`
	RetirementAge        int              `json:"retirement_age" yaml:"retirement_age"`
	BrokerProportion     decimal.Decimal  `json:"broker_proportion" yaml:"broker_proportion"`
	MonthlyContributions BucketAmounts    `json:"monthly_contributions" yaml:"monthly_contributions"`
	MonthlyDebtPayments  decimal.Decimal  `json:"monthly_debt_payments" yaml:"monthly_debt_payments"`
	BalancesAtRetirement BucketAmounts    `json:"balances_at_retirement" yaml:"balances_at_retirement"`
	MonthsToResolveDebt  int              `json:"months_to_resolve_debt" yaml:"months_to_resolve_debt"`
	DaysToResolveDebt    int              `json:"days_to_resolve_debt" yaml:"days_to_resolve_debt"`
	UnresolvedDebts      []DebtBalance    `json:"unresolved_debts" yaml:"unresolved_debts"`
	MonthlyBalances      []MonthlyBalance `json:"monthly_balances" yaml:"monthly_balances"`
	Epochs               []EpochTrace     `json:"epochs,omitempty" yaml:"epochs,omitempty"`
}

// BucketAmounts splits an amount between the brokerage side and super.
type BucketAmounts struct {
	Broker decimal.Decimal `json:"broker" yaml:"broker"`
	Super  decimal.Decimal `json:"super" yaml:"super"`
}

// Total returns broker plus super.
func (b BucketAmounts) Total() decimal.Decimal { return b.Broker.Add(b.Super) }

// DebtBalance is a debt remaining at the end of a phase.
type DebtBalance struct {
	Name       string          `json:"name" yaml:"name"`
	Balance    decimal.Decimal `json:"balance" yaml:"balance"`
	AnnualRate decimal.Decimal `json:"annual_rate" yaml:"annual_rate"`
}

// MonthlyBalance is one charting point of the working phase.
type MonthlyBalance struct {
	Month    int             `json:"month" yaml:"month"`
	Date     time.Time       `json:"date" yaml:"date"`
	Broker   decimal.Decimal `json:"broker" yaml:"broker"`
	Holdings decimal.Decimal `json:"holdings" yaml:"holdings"`
	Super    decimal.Decimal `json:"super" yaml:"super"`
	Debt     decimal.Decimal `json:"debt" yaml:"debt"`
}

// Total returns the sum of all asset balances (debt excluded).
func (m MonthlyBalance) Total() decimal.Decimal {
	return m.Broker.Add(m.Holdings).Add(m.Super)
}

// EpochTrace records one bisection step of the allocation search.
type EpochTrace struct {
	Epoch      int     `json:"epoch" yaml:"epoch"`
	Proportion float64 `json:"proportion" yaml:"proportion"`
	Min        float64 `json:"min" yaml:"min"`
	Max        float64 `json:"max" yaml:"max"`
	PreRatio   float64 `json:"pre_ratio" yaml:"pre_ratio"`
	PostRatio  float64 `json:"post_ratio" yaml:"post_ratio"`
	Days       int     `json:"days" yaml:"days"`
}

// IsDebtUnresolved reports whether the run stopped at debt resolution.
func (r *RetirementResult) IsDebtUnresolved() bool {
	return r.Status == StatusDebtUnresolved
}
