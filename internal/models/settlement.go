package models

// ParticipantStats extends a participant with the totals derived from a trip's receipts.
type ParticipantStats struct {
	Participant

	// PaidTotal is the sum of receipt totals this participant paid.
	PaidTotal float64

	// SpentTotal is the sum of item shares assigned to this participant.
	SpentTotal float64

	// Balance is PaidTotal - SpentTotal.
	// Positive = the group owes this participant, Negative = this participant owes the group.
	Balance float64
}

// Settlement is a suggested payment: From pays To the given Amount.
// Settlements are computed on demand and never stored.
type Settlement struct {
	FromParticipantID string
	ToParticipantID   string
	Amount            float64
	FromName          string
	ToName            string
}
