package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
)

// SettledEpsilon is the absolute tolerance under which a balance counts as settled.
// It is used both to pick debtors/creditors and to decide when one is paid off.
const SettledEpsilon = 0.01

var epsilon = decimal.NewFromFloat(SettledEpsilon)

// ledgerEntry is the solver's private working copy of one participant's
// outstanding amount. remaining is a magnitude: what a debtor still owes or
// what a creditor is still owed.
type ledgerEntry struct {
	id        string
	name      string
	remaining decimal.Decimal
}

// ComputeSettlements returns the payments that clear every balance in stats.
//
// Debtors (balance < -SettledEpsilon) and creditors (balance > SettledEpsilon)
// are each sorted largest first, then matched greedily: the largest remaining
// debt pays the largest remaining credit the smaller of the two amounts,
// rounded to cents. A participant is done once less than SettledEpsilon
// remains. Equal balances keep their input order.
//
// The result is never nil. stats is not modified.
func ComputeSettlements(stats []models.ParticipantStats) []models.Settlement {
	var debtors, creditors []ledgerEntry
	for _, s := range stats {
		balance, ok := toDecimal(s.Balance)
		if !ok {
			continue
		}
		switch {
		case s.Balance < -SettledEpsilon:
			debtors = append(debtors, ledgerEntry{id: s.ID, name: s.Name, remaining: balance.Neg()})
		case s.Balance > SettledEpsilon:
			creditors = append(creditors, ledgerEntry{id: s.ID, name: s.Name, remaining: balance})
		}
	}

	largestFirst := func(a, b ledgerEntry) int { return b.remaining.Cmp(a.remaining) }
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	settlements := make([]models.Settlement, 0, min(len(debtors), len(creditors)))
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining).Round(money.Places)
		if amount.IsPositive() {
			settlements = append(settlements, models.Settlement{
				FromParticipantID: debtor.id,
				ToParticipantID:   creditor.id,
				Amount:            amount.InexactFloat64(),
				FromName:          debtor.name,
				ToName:            creditor.name,
			})
		}

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.Abs().LessThan(epsilon) {
			i++
		}
		if creditor.remaining.LessThan(epsilon) {
			j++
		}
	}

	return settlements
}
