package models

// DefaultCurrency is used when a trip or receipt is created without a currency.
const DefaultCurrency = "JPY"

// Trip represents a bounded travel event. Participants and receipts belong to
// exactly one trip and are removed with it.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// OwnerID is the user who created the trip. Only the owner can read or change it.
	OwnerID string

	// Name is the display name of the trip (e.g., "Kyoto 2026").
	Name string

	// StartDate and EndDate are calendar dates in YYYY-MM-DD format. Either may be empty.
	StartDate string
	EndDate   string

	// BaseCurrency is the ISO 4217 code receipts default to.
	BaseCurrency string

	// TotalBudget is the optional budget for the whole trip.
	TotalBudget *float64

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}
