package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
)

// EvenShares splits amount evenly between participantIDs, to the cent.
// The shares always add up to amount rounded to cents: leftover cents go one
// each to the first participants. Duplicate IDs are counted once.
// Returns nil when participantIDs is empty.
func EvenShares(amount float64, participantIDs []string) []models.ReceiptItemShare {
	ids := uniqueIDs(participantIDs)
	if len(ids) == 0 {
		return nil
	}
	total, ok := toDecimal(amount)
	if !ok {
		return nil
	}
	total = total.Round(money.Places)

	n := decimal.NewFromInt(int64(len(ids)))
	base := total.Div(n).Truncate(money.Places)
	cent := decimal.New(1, -money.Places)
	if total.IsNegative() {
		cent = cent.Neg()
	}
	leftover := total.Sub(base.Mul(n)).Div(cent).IntPart()

	shares := make([]models.ReceiptItemShare, len(ids))
	for i, id := range ids {
		share := base
		if int64(i) < leftover {
			share = share.Add(cent)
		}
		shares[i] = models.ReceiptItemShare{
			ParticipantID: id,
			ShareAmount:   share.InexactFloat64(),
		}
	}
	return shares
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
