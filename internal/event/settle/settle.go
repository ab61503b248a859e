package settle

// =============================================================================
// SETTLEMENT ENGINE
// Given what each participant paid and the equal-split per-head cost,
// computes a minimal set of debtor -> creditor transfers that zeroes
// every balance. Greedy heuristic: largest debtor pays largest creditor.
// =============================================================================

import (
	"math"
	"sort"
)

// Epsilon is the threshold under which a balance counts as settled.
// Amounts are currency, so anything below a cent is noise.
const Epsilon = 0.01

// Balance is one participant's declared spend for the event.
type Balance struct {
	UserID     int64   `json:"user_id"`
	AmountPaid float64 `json:"amount_paid"`
}

// Transfer is a single directed payment in the settlement plan.
type Transfer struct {
	From   int64   `json:"from"`
	To     int64   `json:"to"`
	Amount float64 `json:"amount"`
}

type position struct {
	userID    int64
	remaining float64
}

// Compute returns the settlement plan for the given balances.
// Pure and deterministic for a given input ordering; the caller guarantees
// perHead >= 0. The result is never nil.
func Compute(balances []Balance, perHead float64) []Transfer {
	var debtors, creditors []position
	for _, b := range balances {
		diff := b.AmountPaid - perHead
		switch {
		case diff < -Epsilon:
			debtors = append(debtors, position{userID: b.UserID, remaining: -diff})
		case diff > Epsilon:
			creditors = append(creditors, position{userID: b.UserID, remaining: diff})
		}
	}

	// Largest outstanding amounts first; stable so equal balances keep
	// their input order.
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})

	transfers := []Transfer{}
	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		amount := math.Min(debtors[d].remaining, creditors[c].remaining)

		if amount > Epsilon {
			transfers = append(transfers, Transfer{
				From:   debtors[d].userID,
				To:     creditors[c].userID,
				Amount: Round2(amount),
			})
		}

		debtors[d].remaining -= amount
		creditors[c].remaining -= amount

		if debtors[d].remaining <= Epsilon {
			d++
		}
		if creditors[c].remaining <= Epsilon {
			c++
		}
	}

	return transfers
}

// Round2 rounds a currency amount to 2 decimal places, half away from zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
