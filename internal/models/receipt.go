package models

import "time"

// DefaultCategory is assigned to receipt items created without a category.
const DefaultCategory = "Other"

// Receipt is one payment event: a single participant paid TotalAmount at a store.
type Receipt struct {
	ID                  string
	TripID              string
	TotalAmount         float64
	Currency            string
	PaidByParticipantID string
	Date                time.Time
	StoreName           string
	Memo                string
	CreatedAt           int64
	UpdatedAt           int64
}

// ReceiptItem is a named, categorized part of a receipt.
type ReceiptItem struct {
	ID         string
	ReceiptID  string
	Name       string
	Category   string
	Amount     float64
	Memo       string
	OrderIndex int

	// Shares assign parts of Amount to participants. The producer keeps
	// the sum of ShareAmount equal to Amount.
	Shares []ReceiptItemShare
}

// ReceiptItemShare attributes part of one item's cost to one participant.
type ReceiptItemShare struct {
	ID            string
	ReceiptItemID string
	ParticipantID string
	ShareAmount   float64
}

// ReceiptWithItems is a receipt with its ordered items and their shares attached,
// as assembled by the storage layer.
type ReceiptWithItems struct {
	Receipt

	// PayerName is the display name of the paying participant, empty if unknown.
	PayerName string

	Items []ReceiptItem
}

// ShareOf returns the total amount assigned to participantID across all items.
func (r ReceiptWithItems) ShareOf(participantID string) float64 {
	var total float64
	for _, item := range r.Items {
		for _, share := range item.Shares {
			if share.ParticipantID == participantID {
				total += share.ShareAmount
			}
		}
	}
	return total
}
