package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

const tripColumns = "id, owner_id, name, start_date, end_date, base_currency, total_budget, created_at, updated_at"

// CreateTrip persists a new trip and its self participant in one transaction.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.BaseCurrency == "" {
		trip.BaseCurrency = models.DefaultCurrency
	}
	now := time.Now().Unix()
	if trip.CreatedAt == 0 {
		trip.CreatedAt = now
	}
	trip.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips ("+tripColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		trip.ID, trip.OwnerID, trip.Name, trip.StartDate, trip.EndDate, trip.BaseCurrency,
		nullFloat(trip.TotalBudget), trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	self := &models.Participant{
		TripID: trip.ID,
		Name:   models.SelfParticipantName,
		IsSelf: true,
	}
	if err := insertParticipant(ctx, tx, self); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tripColumns+" FROM trips WHERE id = ?", tripID)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

// ListTripsByOwner retrieves all trips owned by a user, newest first.
func (s *SQLiteStore) ListTripsByOwner(ctx context.Context, ownerID string) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+tripColumns+" FROM trips WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}
	return trips, nil
}

// UpdateTripBudget sets or clears the trip's total budget.
func (s *SQLiteStore) UpdateTripBudget(ctx context.Context, tripID string, budget *float64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE trips SET total_budget = ?, updated_at = ? WHERE id = ?",
		nullFloat(budget), time.Now().Unix(), tripID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip budget: %w", err)
	}
	return requireAffected(result, "trip", tripID)
}

// DeleteTrip removes a trip with everything that belongs to it.
// Receipts go first: they restrict deletion of the participants who paid them.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM receipts WHERE trip_id = ?", tripID); err != nil {
		return fmt.Errorf("failed to delete trip receipts: %w", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if err := requireAffected(result, "trip", tripID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(row scanner) (*models.Trip, error) {
	trip := &models.Trip{}
	var budget sql.NullFloat64
	err := row.Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.StartDate, &trip.EndDate,
		&trip.BaseCurrency, &budget, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return nil, err
	}
	trip.TotalBudget = floatPtr(budget)
	return trip, nil
}

// requireAffected turns an UPDATE/DELETE that matched nothing into ErrNotFound.
func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
