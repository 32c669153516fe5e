// Package calculator derives balances and settlements from a trip's receipts.
//
// Everything in this package is pure: inputs are never modified and the same
// input always produces the same output, so functions are safe to call from
// concurrent requests without coordination.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// ComputeStats computes paid, spent and net balance for every participant.
//
// Algorithm:
//   - paid_total: sum of TotalAmount over receipts the participant paid
//   - spent_total: sum of ShareAmount over every item share assigned to the participant
//   - balance: paid_total - spent_total
//
// The result has one entry per participant, in input order. Shares and payers
// that reference unknown participants contribute nothing.
func ComputeStats(participants []models.Participant, receipts []models.ReceiptWithItems) []models.ParticipantStats {
	paid := make(map[string]decimal.Decimal, len(participants))
	spent := make(map[string]decimal.Decimal, len(participants))

	for _, receipt := range receipts {
		if total, ok := toDecimal(receipt.TotalAmount); ok {
			paid[receipt.PaidByParticipantID] = paid[receipt.PaidByParticipantID].Add(total)
		}
		for _, item := range receipt.Items {
			for _, share := range item.Shares {
				if amount, ok := toDecimal(share.ShareAmount); ok {
					spent[share.ParticipantID] = spent[share.ParticipantID].Add(amount)
				}
			}
		}
	}

	stats := make([]models.ParticipantStats, len(participants))
	for i, p := range participants {
		paidTotal := paid[p.ID]
		spentTotal := spent[p.ID]
		stats[i] = models.ParticipantStats{
			Participant: p,
			PaidTotal:   paidTotal.InexactFloat64(),
			SpentTotal:  spentTotal.InexactFloat64(),
			Balance:     paidTotal.Sub(spentTotal).InexactFloat64(),
		}
	}
	return stats
}

// toDecimal converts a float amount, rejecting NaN and infinities.
func toDecimal(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
