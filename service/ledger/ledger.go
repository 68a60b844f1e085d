// Package ledger holds the pure aggregates derived from an account's
// movement list. Nothing here mutates its input; callers pass snapshots.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"bankist_app/data"
)

var one = decimal.NewFromInt(1)

// Balance is the sum of all signed movement amounts.
func Balance(movements []data.Movement) decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, movement := range movements {
		total = total.Add(movement.Amount)
	}
	return total
}

// TotalDeposits sums the positive movements only.
func TotalDeposits(movements []data.Movement) decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, movement := range movements {
		if movement.Amount.IsPositive() {
			total = total.Add(movement.Amount)
		}
	}
	return total
}

// TotalWithdrawals sums the negative movements only; the result is <= 0.
func TotalWithdrawals(movements []data.Movement) decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, movement := range movements {
		if movement.Amount.IsNegative() {
			total = total.Add(movement.Amount)
		}
	}
	return total
}

// TotalInterest sums amount*ratePercent/100 over the deposits, skipping any
// single contribution below 1 unit. An empty qualifying set yields zero.
func TotalInterest(movements []data.Movement, ratePercent decimal.Decimal) decimal.Decimal {
	total := decimal.NewFromInt(0)
	for _, movement := range movements {
		if !movement.Amount.IsPositive() {
			continue
		}
		contribution := movement.Amount.Mul(ratePercent).Div(decimal.NewFromInt(100))
		if contribution.Cmp(one) < 0 {
			continue
		}
		total = total.Add(contribution)
	}
	return total
}

// OrderedForDisplay returns a copy of the movements, sorted ascending by
// amount when requested, otherwise in ledger order. The input is never
// reordered.
func OrderedForDisplay(movements []data.Movement, sortAscending bool) []data.Movement {
	out := make([]data.Movement, len(movements))
	copy(out, movements)
	if sortAscending {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Amount.Cmp(out[j].Amount) < 0
		})
	}
	return out
}
