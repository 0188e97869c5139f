package calculation

// ProbeState is a point-in-time snapshot handed to Probe. Probe works on its
// own copy, so the caller's pools and ledger are never modified.
type ProbeState struct {
	// Day is the simulation day index of the first probed day.
	Day int
	// Pools are drawn in order: the first pool is exhausted before the next is touched.
	Pools []Pool
	// Debts may be nil. Minimums due are funded from Pools before expenses.
	Debts        *DebtLedger
	DailyExpense float64
	// Deferral is a number of days the pools grow untouched before the probe
	// window opens. Debt minimums during deferral are paid from elsewhere.
	Deferral int
}

// Probe answers how many days, up to limit, the snapshot sustains the daily
// expense plus debt minimums with no further contributions. A return value
// equal to limit means the snapshot lasted the whole window.
func Probe(state ProbeState, limit int) int {
	if limit <= 0 {
		return 0
	}
	pools := clonePools(state.Pools)
	var debts *DebtLedger
	if !state.Debts.Resolved() {
		debts = state.Debts.Clone()
	}

	day := state.Day
	if state.Deferral > 0 {
		for _, p := range pools {
			p.GrowN(day, state.Deferral)
		}
		for i := 0; i < state.Deferral && !debts.Resolved(); i++ {
			debts.stepMinimums()
		}
		day += state.Deferral
	}

	for n := 0; n < limit; n++ {
		for _, p := range pools {
			p.Grow(day)
		}
		day++

		if !debts.Resolved() {
			debts.Accrue()
			due := debts.MinimumDue()
			short := fundFromPools(pools, due)
			debts.PayMinimums(due - short)
			debts.Prune()
			if short > 0 {
				return n
			}
		}
		if fundFromPools(pools, state.DailyExpense) > 0 {
			return n
		}
	}
	return limit
}
