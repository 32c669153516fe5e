package calculator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mmynk/tripsplit/internal/models"
)

func participant(id, name string) models.Participant {
	return models.Participant{ID: id, TripID: "trip", Name: name}
}

// receipt builds a receipt paid by payer whose total is the sum of its items.
func receipt(id, payer string, items ...models.ReceiptItem) models.ReceiptWithItems {
	var total float64
	for i := range items {
		total += items[i].Amount
		items[i].OrderIndex = i
	}
	return models.ReceiptWithItems{
		Receipt: models.Receipt{
			ID:                  id,
			TripID:              "trip",
			TotalAmount:         total,
			Currency:            models.DefaultCurrency,
			PaidByParticipantID: payer,
		},
		Items: items,
	}
}

func item(name string, amount float64, shares map[string]float64) models.ReceiptItem {
	it := models.ReceiptItem{Name: name, Category: "Food", Amount: amount}
	for id, a := range shares {
		it.Shares = append(it.Shares, models.ReceiptItemShare{ParticipantID: id, ShareAmount: a})
	}
	return it
}

func evenItem(name string, amount float64, ids ...string) models.ReceiptItem {
	return models.ReceiptItem{Name: name, Category: "Food", Amount: amount, Shares: EvenShares(amount, ids)}
}

// randomTrip generates a consistent trip: every payer and share references a
// known participant and every item's shares add up to its amount.
func randomTrip(r *rand.Rand) ([]models.Participant, []models.ReceiptWithItems) {
	n := 2 + r.IntN(7)
	participants := make([]models.Participant, n)
	ids := make([]string, n)
	for i := range participants {
		ids[i] = fmt.Sprintf("p%d", i)
		participants[i] = participant(ids[i], fmt.Sprintf("Person %d", i))
	}

	receipts := make([]models.ReceiptWithItems, r.IntN(12))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range receipts {
		items := make([]models.ReceiptItem, 1+r.IntN(4))
		for k := range items {
			amount := float64(1+r.IntN(500000)) / 100
			perm := r.Perm(n)[:1+r.IntN(n)]
			sharers := make([]string, len(perm))
			for x, idx := range perm {
				sharers[x] = ids[idx]
			}
			items[k] = evenItem(fmt.Sprintf("item %d", k), amount, sharers...)
		}
		rec := receipt(fmt.Sprintf("r%d", i), ids[r.IntN(n)], items...)
		rec.TotalAmount = sumItems(items)
		rec.Date = base.Add(time.Duration(r.IntN(96)) * time.Hour)
		receipts[i] = rec
	}
	return participants, receipts
}

func sumItems(items []models.ReceiptItem) float64 {
	var cents int64
	for _, it := range items {
		cents += int64(it.Amount*100 + 0.5)
	}
	return float64(cents) / 100
}
