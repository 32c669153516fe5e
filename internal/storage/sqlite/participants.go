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

const participantColumns = "id, trip_id, name, budget_total, is_self, created_at, updated_at"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateParticipant adds a participant to a trip.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	return insertParticipant(ctx, s.db, participant)
}

func insertParticipant(ctx context.Context, db execer, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if p.CreatedAt == 0 {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := db.ExecContext(ctx,
		"INSERT INTO participants ("+participantColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.TripID, p.Name, nullFloat(p.BudgetTotal), p.IsSelf, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id = ?",
		participantID,
	)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return p, nil
}

// ListParticipantsByTrip retrieves a trip's participants in creation order.
// The self participant always comes first.
func (s *SQLiteStore) ListParticipantsByTrip(ctx context.Context, tripID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE trip_id = ? ORDER BY is_self DESC, created_at ASC, rowid ASC",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// UpdateParticipantBudget sets or clears a participant's personal budget.
func (s *SQLiteStore) UpdateParticipantBudget(ctx context.Context, participantID string, budget *float64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE participants SET budget_total = ?, updated_at = ? WHERE id = ?",
		nullFloat(budget), time.Now().Unix(), participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant budget: %w", err)
	}
	return requireAffected(result, "participant", participantID)
}

// DeleteParticipant removes a participant. Their item shares are removed with them.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, participantID string) error {
	p, err := s.GetParticipant(ctx, participantID)
	if err != nil {
		return err
	}
	if p.IsSelf {
		return storage.ErrSelfParticipant
	}

	var paid int
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM receipts WHERE paid_by_participant_id = ?",
		participantID,
	).Scan(&paid)
	if err != nil {
		return fmt.Errorf("failed to count paid receipts: %w", err)
	}
	if paid > 0 {
		return fmt.Errorf("%w: %d receipts", storage.ErrParticipantInUse, paid)
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return requireAffected(result, "participant", participantID)
}

func scanParticipant(row scanner) (*models.Participant, error) {
	p := &models.Participant{}
	var budget sql.NullFloat64
	err := row.Scan(&p.ID, &p.TripID, &p.Name, &budget, &p.IsSelf, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.BudgetTotal = floatPtr(budget)
	return p, nil
}
