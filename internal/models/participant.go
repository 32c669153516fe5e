package models

// SelfParticipantName is the name given to the participant representing the trip owner.
const SelfParticipantName = "You"

// Participant is a person taking part in a trip.
type Participant struct {
	ID     string
	TripID string
	Name   string

	// BudgetTotal is the participant's personal spending cap, nil when unset.
	BudgetTotal *float64

	// IsSelf marks the participant created for the trip owner. It cannot be removed.
	IsSelf bool

	CreatedAt int64
	UpdatedAt int64
}
