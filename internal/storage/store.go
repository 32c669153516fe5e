// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripsplit/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailExists is returned when registering an email that is already taken.
	ErrEmailExists = errors.New("email already registered")

	// ErrSelfParticipant is returned when removing the trip owner's own participant.
	ErrSelfParticipant = errors.New("cannot remove the trip owner's participant")

	// ErrParticipantInUse is returned when removing a participant who paid receipts.
	ErrParticipantInUse = errors.New("participant has paid receipts")
)

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	TripStore
	ParticipantStore
	ReceiptStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists registered accounts.
type UserStore interface {
	// CreateUser persists a new user. Returns ErrEmailExists for duplicate emails.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TripStore persists trips.
type TripStore interface {
	// CreateTrip persists a new trip together with the owner's self participant.
	// ID, currency and timestamps are filled in when empty.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTripsByOwner returns the owner's trips, newest first.
	ListTripsByOwner(ctx context.Context, ownerID string) ([]*models.Trip, error)

	UpdateTripBudget(ctx context.Context, tripID string, budget *float64) error

	// DeleteTrip removes a trip with its participants and receipts.
	DeleteTrip(ctx context.Context, tripID string) error
}

// ParticipantStore persists trip participants.
type ParticipantStore interface {
	CreateParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// ListParticipantsByTrip returns participants in creation order.
	ListParticipantsByTrip(ctx context.Context, tripID string) ([]models.Participant, error)

	UpdateParticipantBudget(ctx context.Context, participantID string, budget *float64) error

	// DeleteParticipant removes a participant and their item shares.
	// Returns ErrSelfParticipant or ErrParticipantInUse when removal is not allowed.
	DeleteParticipant(ctx context.Context, participantID string) error
}

// ReceiptStore persists receipts with their items and shares.
type ReceiptStore interface {
	// CreateReceipt persists a receipt, its items and their shares atomically.
	// IDs, item order and timestamps are filled in.
	CreateReceipt(ctx context.Context, receipt *models.ReceiptWithItems) error

	GetReceipt(ctx context.Context, receiptID string) (*models.ReceiptWithItems, error)

	// ListReceiptsByTrip returns the trip's receipts, newest date first.
	ListReceiptsByTrip(ctx context.Context, tripID string) ([]models.ReceiptWithItems, error)

	DeleteReceipt(ctx context.Context, receiptID string) error
}
