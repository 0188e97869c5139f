package calculation

import (
	"math"
	"sort"
)

// DebtAccount is one active liability inside a ledger.
type DebtAccount struct {
	Name         string
	Balance      float64
	AnnualRate   float64
	MinimumDaily float64
	DailyFactor  float64
}

// DebtLedger tracks active debts ordered by descending annual rate.
// Ties keep their original order.
type DebtLedger struct {
	accounts []DebtAccount
}

// NewDebtLedger builds a ledger, dropping accounts that are already paid off.
func NewDebtLedger(accounts []DebtAccount) *DebtLedger {
	active := make([]DebtAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.Balance > DebtEpsilon {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].AnnualRate > active[j].AnnualRate
	})
	return &DebtLedger{accounts: active}
}

// Clone returns an independent copy of the ledger.
func (l *DebtLedger) Clone() *DebtLedger {
	if l == nil {
		return &DebtLedger{}
	}
	acc := make([]DebtAccount, len(l.accounts))
	copy(acc, l.accounts)
	return &DebtLedger{accounts: acc}
}

// Resolved reports whether every debt has been paid off.
func (l *DebtLedger) Resolved() bool { return l == nil || len(l.accounts) == 0 }

// Accounts returns a copy of the active accounts in payment order.
func (l *DebtLedger) Accounts() []DebtAccount {
	if l == nil {
		return nil
	}
	out := make([]DebtAccount, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// Total is the sum of outstanding balances.
func (l *DebtLedger) Total() float64 {
	if l == nil {
		return 0
	}
	var t float64
	for _, a := range l.accounts {
		t += a.Balance
	}
	return t
}

// Accrue applies one day of interest to every balance above epsilon.
func (l *DebtLedger) Accrue() {
	for i := range l.accounts {
		if l.accounts[i].Balance > DebtEpsilon {
			l.accounts[i].Balance *= l.accounts[i].DailyFactor
		}
	}
}

// MinimumDue is today's total minimum payment, capped per debt at its balance.
func (l *DebtLedger) MinimumDue() float64 {
	if l == nil {
		return 0
	}
	var due float64
	for _, a := range l.accounts {
		if a.Balance > DebtEpsilon {
			due += math.Min(a.MinimumDaily, a.Balance)
		}
	}
	return due
}

// PayMinimums pays minimums in rate order until budget runs out and returns what is left.
func (l *DebtLedger) PayMinimums(budget float64) float64 {
	for i := range l.accounts {
		if budget <= 0 {
			break
		}
		a := &l.accounts[i]
		if a.Balance <= DebtEpsilon {
			continue
		}
		pay := math.Min(math.Min(a.MinimumDaily, a.Balance), budget)
		a.Balance -= pay
		budget -= pay
	}
	return budget
}

// PayAvalanche puts budget towards the highest-rate debts whose rate is at or
// above hurdle. Debts below the hurdle are left on their minimums.
func (l *DebtLedger) PayAvalanche(budget, hurdle float64) float64 {
	for i := range l.accounts {
		if budget <= 0 {
			break
		}
		a := &l.accounts[i]
		if a.Balance <= DebtEpsilon || a.AnnualRate < hurdle {
			continue
		}
		pay := math.Min(a.Balance, budget)
		a.Balance -= pay
		budget -= pay
	}
	return budget
}

// Prune removes debts at or below epsilon.
func (l *DebtLedger) Prune() {
	kept := l.accounts[:0]
	for _, a := range l.accounts {
		if a.Balance > DebtEpsilon {
			kept = append(kept, a)
		}
	}
	l.accounts = kept
}

// Step simulates one day: accrue, pay minimums, avalanche the rest above the
// hurdle, drop paid-off debts. It returns the unspent budget.
func (l *DebtLedger) Step(budget, hurdle float64) float64 {
	if l.Resolved() {
		return budget
	}
	l.Accrue()
	budget = l.PayMinimums(budget)
	budget = l.PayAvalanche(budget, hurdle)
	l.Prune()
	return budget
}

// stepMinimums advances one day with every minimum paid from outside the ledger.
func (l *DebtLedger) stepMinimums() {
	if l.Resolved() {
		return
	}
	l.Accrue()
	l.PayMinimums(l.MinimumDue())
	l.Prune()
}

// DebtResolution is the outcome of paying debts down before investing.
type DebtResolution struct {
	Days      int
	Resolved  bool
	Remaining []DebtAccount
}

// ResolveDebts runs the avalanche day by day until every debt is cleared or
// horizonDays elapse. The ledger passed in is not modified.
func ResolveDebts(ledger *DebtLedger, dailyBudget, hurdle float64, horizonDays int) DebtResolution {
	l := ledger.Clone()
	day := 0
	for !l.Resolved() && day < horizonDays {
		l.Step(dailyBudget, hurdle)
		day++
	}
	return DebtResolution{
		Days:      day,
		Resolved:  l.Resolved(),
		Remaining: l.Accounts(),
	}
}
