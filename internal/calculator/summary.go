package calculator

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
)

// dayLayout is the calendar-day format used to group receipts.
const dayLayout = "2006-01-02"

// Summarize builds the spending overview of a trip from its receipts and the
// participant stats computed by ComputeStats.
func Summarize(trip models.Trip, stats []models.ParticipantStats, receipts []models.ReceiptWithItems) models.TripSummary {
	total := decimal.Zero
	categories := make(map[string]decimal.Decimal)
	for _, r := range receipts {
		if amount, ok := toDecimal(r.TotalAmount); ok {
			total = total.Add(amount)
		}
		for _, item := range r.Items {
			category := strings.TrimSpace(item.Category)
			if category == "" {
				category = models.DefaultCategory
			}
			if amount, ok := toDecimal(item.Amount); ok {
				categories[category] = categories[category].Add(amount)
			}
		}
	}

	summary := models.TripSummary{
		TotalSpent:   total.InexactFloat64(),
		Budget:       trip.TotalBudget,
		Categories:   categoryTotals(categories),
		Days:         GroupByDay(receipts),
		BudgetStatus: BudgetStatuses(stats),
	}
	if trip.TotalBudget != nil && *trip.TotalBudget > 0 {
		summary.Progress = min(max(summary.TotalSpent / *trip.TotalBudget, 0), 1)
	}
	return summary
}

// categoryTotals orders categories by amount, largest first, then by name.
func categoryTotals(byCategory map[string]decimal.Decimal) []models.CategoryTotal {
	totals := make([]models.CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		totals = append(totals, models.CategoryTotal{Category: category, Amount: amount.InexactFloat64()})
	}
	slices.SortFunc(totals, func(a, b models.CategoryTotal) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return totals
}

// GroupByDay groups receipts by calendar day, newest day first. Within a day,
// receipts are ordered by date then creation time, newest first. Receipts
// without a date are left out.
func GroupByDay(receipts []models.ReceiptWithItems) []models.DayReceipts {
	sorted := make([]models.ReceiptWithItems, 0, len(receipts))
	for _, r := range receipts {
		if !r.Date.IsZero() {
			sorted = append(sorted, r)
		}
	}
	slices.SortStableFunc(sorted, func(a, b models.ReceiptWithItems) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})

	var days []models.DayReceipts
	for _, r := range sorted {
		day := r.Date.Format(dayLayout)
		if n := len(days); n > 0 && days[n-1].Day == day {
			days[n-1].Receipts = append(days[n-1].Receipts, r)
			continue
		}
		days = append(days, models.DayReceipts{Day: day, Receipts: []models.ReceiptWithItems{r}})
	}
	return days
}

// BudgetStatuses compares what each participant consumed with their personal budget.
func BudgetStatuses(stats []models.ParticipantStats) []models.BudgetStatus {
	statuses := make([]models.BudgetStatus, len(stats))
	for i, s := range stats {
		status := models.BudgetStatus{
			ParticipantID: s.ID,
			Name:          s.Name,
			Spent:         s.SpentTotal,
		}
		if s.BudgetTotal != nil {
			budget := *s.BudgetTotal
			remaining := money.Round(budget - s.SpentTotal)
			status.Budget = &budget
			status.Remaining = &remaining
			status.Over = remaining < 0
		}
		statuses[i] = status
	}
	return statuses
}
