package service

import (
	"time"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPITrip(t *models.Trip) *api.Trip {
	return &api.Trip{
		ID:           t.ID,
		Name:         t.Name,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		BaseCurrency: t.BaseCurrency,
		TotalBudget:  t.TotalBudget,
		CreatedAt:    t.CreatedAt,
	}
}

func toAPIParticipant(p models.Participant) api.Participant {
	return api.Participant{
		ID:          p.ID,
		TripID:      p.TripID,
		Name:        p.Name,
		BudgetTotal: p.BudgetTotal,
		IsSelf:      p.IsSelf,
	}
}

func toAPIParticipants(ps []models.Participant) []api.Participant {
	out := make([]api.Participant, len(ps))
	for i, p := range ps {
		out[i] = toAPIParticipant(p)
	}
	return out
}

// toAPIReceipt converts a stored receipt; selfID selects whose share MyShare reports.
func toAPIReceipt(r models.ReceiptWithItems, selfID string) api.Receipt {
	items := make([]api.ReceiptItem, len(r.Items))
	for i, item := range r.Items {
		shares := make([]api.ItemShare, len(item.Shares))
		for j, s := range item.Shares {
			shares[j] = api.ItemShare{ParticipantID: s.ParticipantID, Amount: s.ShareAmount}
		}
		items[i] = api.ReceiptItem{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Amount:   item.Amount,
			Memo:     item.Memo,
			Shares:   shares,
		}
	}

	out := api.Receipt{
		ID:                  r.ID,
		TripID:              r.TripID,
		TotalAmount:         r.TotalAmount,
		Currency:            r.Currency,
		PaidByParticipantID: r.PaidByParticipantID,
		PayerName:           r.PayerName,
		StoreName:           r.StoreName,
		Memo:                r.Memo,
		Items:               items,
		CreatedAt:           r.CreatedAt,
	}
	if !r.Date.IsZero() {
		out.Date = r.Date.Format(time.RFC3339)
	}
	if selfID != "" {
		out.MyShare = money.Round(r.ShareOf(selfID))
	}
	return out
}

func toAPIReceipts(rs []models.ReceiptWithItems, selfID string) []api.Receipt {
	out := make([]api.Receipt, len(rs))
	for i, r := range rs {
		out[i] = toAPIReceipt(r, selfID)
	}
	return out
}

func toAPIStats(stats []models.ParticipantStats) []api.ParticipantStats {
	out := make([]api.ParticipantStats, len(stats))
	for i, s := range stats {
		out[i] = api.ParticipantStats{
			ParticipantID: s.ID,
			Name:          s.Name,
			IsSelf:        s.IsSelf,
			PaidTotal:     s.PaidTotal,
			SpentTotal:    s.SpentTotal,
			Balance:       s.Balance,
			BudgetTotal:   s.BudgetTotal,
		}
		if s.BudgetTotal != nil {
			remaining := money.Round(*s.BudgetTotal - s.SpentTotal)
			out[i].BudgetRemaining = &remaining
		}
	}
	return out
}

func toAPISettlements(settlements []models.Settlement) []api.Settlement {
	out := make([]api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = api.Settlement{
			FromParticipantID: s.FromParticipantID,
			FromName:          s.FromName,
			ToParticipantID:   s.ToParticipantID,
			ToName:            s.ToName,
			Amount:            s.Amount,
		}
	}
	return out
}

func toAPISummary(s models.TripSummary, selfID string) *api.TripSummary {
	out := &api.TripSummary{
		TotalSpent:   s.TotalSpent,
		Budget:       s.Budget,
		Progress:     s.Progress,
		Categories:   make([]api.CategoryTotal, len(s.Categories)),
		Days:         make([]api.DayReceipts, len(s.Days)),
		BudgetStatus: make([]api.BudgetStatus, len(s.BudgetStatus)),
	}
	for i, c := range s.Categories {
		out.Categories[i] = api.CategoryTotal{Category: c.Category, Amount: c.Amount}
	}
	for i, d := range s.Days {
		totals := make([]float64, len(d.Receipts))
		for j, r := range d.Receipts {
			totals[j] = r.TotalAmount
		}
		out.Days[i] = api.DayReceipts{
			Day:      d.Day,
			Total:    money.Sum(totals...),
			Receipts: toAPIReceipts(d.Receipts, selfID),
		}
	}
	for i, b := range s.BudgetStatus {
		out.BudgetStatus[i] = api.BudgetStatus{
			ParticipantID: b.ParticipantID,
			Name:          b.Name,
			Spent:         b.Spent,
			Budget:        b.Budget,
			Remaining:     b.Remaining,
			Over:          b.Over,
		}
	}
	return out
}
