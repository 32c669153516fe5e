package models

// CategoryTotal is the amount spent on one item category.
type CategoryTotal struct {
	Category string
	Amount   float64
}

// DayReceipts groups the receipts dated on one calendar day (YYYY-MM-DD).
type DayReceipts struct {
	Day      string
	Receipts []ReceiptWithItems
}

// BudgetStatus compares a participant's spending against their personal budget.
type BudgetStatus struct {
	ParticipantID string
	Name          string
	Spent         float64

	// Budget is nil when the participant has no budget; Remaining is then nil too.
	Budget    *float64
	Remaining *float64
	Over      bool
}

// TripSummary is the overview of a trip's spending.
type TripSummary struct {
	TotalSpent float64

	// Budget is the trip's total budget, nil when unset.
	Budget *float64

	// Progress is TotalSpent / Budget clamped to [0, 1]; zero without a budget.
	Progress float64

	Categories   []CategoryTotal
	Days         []DayReceipts
	BudgetStatus []BudgetStatus
}
