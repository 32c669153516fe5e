package api

// User is a registered account as returned to its owner.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Trip is a travel event and its optional budget.
type Trip struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	BaseCurrency string   `json:"baseCurrency"`
	TotalBudget  *float64 `json:"totalBudget,omitempty"`
	CreatedAt    int64    `json:"createdAt"`
}

// Participant is a person on a trip.
type Participant struct {
	ID          string   `json:"id"`
	TripID      string   `json:"tripId"`
	Name        string   `json:"name"`
	BudgetTotal *float64 `json:"budgetTotal,omitempty"`
	IsSelf      bool     `json:"isSelf"`
}

// ItemShare assigns part of an item to a participant.
type ItemShare struct {
	ParticipantID string  `json:"participantId"`
	Amount        float64 `json:"amount"`
}

// ReceiptItem is one line of a receipt. On create, either Shares or
// ParticipantIDs (split evenly) must be set.
type ReceiptItem struct {
	ID             string      `json:"id,omitempty"`
	Name           string      `json:"name"`
	Category       string      `json:"category,omitempty"`
	Amount         float64     `json:"amount"`
	Memo           string      `json:"memo,omitempty"`
	Shares         []ItemShare `json:"shares,omitempty"`
	ParticipantIDs []string    `json:"participantIds,omitempty"`
}

// Receipt is a payment with its items. Date is RFC 3339.
type Receipt struct {
	ID                  string        `json:"id"`
	TripID              string        `json:"tripId"`
	TotalAmount         float64       `json:"totalAmount"`
	Currency            string        `json:"currency"`
	PaidByParticipantID string        `json:"paidByParticipantId"`
	PayerName           string        `json:"payerName,omitempty"`
	Date                string        `json:"date,omitempty"`
	StoreName           string        `json:"storeName,omitempty"`
	Memo                string        `json:"memo,omitempty"`
	Items               []ReceiptItem `json:"items"`
	// MyShare is the trip owner's part of the receipt.
	MyShare   float64 `json:"myShare"`
	CreatedAt int64   `json:"createdAt"`
}

// ParticipantStats is what a participant paid, consumed and is owed.
type ParticipantStats struct {
	ParticipantID   string   `json:"participantId"`
	Name            string   `json:"name"`
	IsSelf          bool     `json:"isSelf"`
	PaidTotal       float64  `json:"paidTotal"`
	SpentTotal      float64  `json:"spentTotal"`
	Balance         float64  `json:"balance"`
	BudgetTotal     *float64 `json:"budgetTotal,omitempty"`
	BudgetRemaining *float64 `json:"budgetRemaining,omitempty"`
}

// Settlement is one suggested payment.
type Settlement struct {
	FromParticipantID string  `json:"fromParticipantId"`
	FromName          string  `json:"fromName"`
	ToParticipantID   string  `json:"toParticipantId"`
	ToName            string  `json:"toName"`
	Amount            float64 `json:"amount"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type DayReceipts struct {
	Day      string    `json:"day"`
	Total    float64   `json:"total"`
	Receipts []Receipt `json:"receipts"`
}

type BudgetStatus struct {
	ParticipantID string   `json:"participantId"`
	Name          string   `json:"name"`
	Spent         float64  `json:"spent"`
	Budget        *float64 `json:"budget,omitempty"`
	Remaining     *float64 `json:"remaining,omitempty"`
	Over          bool     `json:"over"`
}

// TripSummary is the spending overview of a trip.
type TripSummary struct {
	TotalSpent   float64         `json:"totalSpent"`
	Budget       *float64        `json:"budget,omitempty"`
	Progress     float64         `json:"progress"`
	Categories   []CategoryTotal `json:"categories"`
	Days         []DayReceipts   `json:"days"`
	BudgetStatus []BudgetStatus  `json:"budgetStatus"`
}
