package calculation

// Withdraw takes amount out of balances pro rata and returns the unmet shortfall.
//
// Weights are used when they match the balances and sum to a positive value;
// otherwise balances are weighted by their own value, or split evenly when all
// are zero. A share that would drive a balance below zero is redistributed over
// the balances that still hold value, so the amount taken is always
// min(amount, sum(balances)).
func Withdraw(balances []float64, weights []float64, amount float64) float64 {
	if amount <= 0 || len(balances) == 0 {
		return amount
	}

	var total float64
	for _, b := range balances {
		if b > 0 {
			total += b
		}
	}
	take := amount
	if take > total {
		take = total
	}
	shortfall := amount - take

	if take >= total {
		for i := range balances {
			balances[i] = 0
		}
		return shortfall
	}
	if len(balances) == 1 {
		balances[0] -= take
		return shortfall
	}

	w := withdrawalWeights(balances, weights, total)
	remaining := take
	// Each pass either covers the remainder or empties at least one balance.
	for pass := 0; pass <= len(balances) && remaining > 0; pass++ {
		var active float64
		for i, b := range balances {
			if b > 0 {
				active += w[i]
			}
		}
		if active <= 0 {
			// Only balances with zero weight still hold value; fall back to value weighting.
			for i, b := range balances {
				w[i] = b
				if b > 0 {
					active += b
				}
			}
			if active <= 0 {
				break
			}
		}
		next := 0.0
		for i, b := range balances {
			if b <= 0 {
				continue
			}
			share := remaining * w[i] / active
			if share >= b {
				next += share - b
				balances[i] = 0
				continue
			}
			balances[i] = b - share
		}
		remaining = next
	}
	return shortfall
}

// withdrawalWeights resolves the weight vector used by Withdraw.
func withdrawalWeights(balances, weights []float64, total float64) []float64 {
	w := make([]float64, len(balances))
	if len(weights) == len(balances) {
		var sum float64
		for i, x := range weights {
			if x > 0 {
				w[i] = x
				sum += x
			}
		}
		if sum > 0 {
			return w
		}
	}
	if total > 0 {
		for i, b := range balances {
			if b > 0 {
				w[i] = b
			}
		}
		return w
	}
	for i := range w {
		w[i] = 1
	}
	return w
}

// fundFromPools draws amount from each pool in order until covered.
func fundFromPools(pools []Pool, amount float64) float64 {
	for _, p := range pools {
		if amount <= 0 {
			return 0
		}
		amount = Withdraw(p.Balances, nil, amount)
	}
	return amount
}
