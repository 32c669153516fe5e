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

// dateLayout stores receipt dates in UTC with fixed-width fractions so that
// text ordering matches chronological ordering.
const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

const receiptSelect = `
	SELECT r.id, r.trip_id, r.total_amount, r.currency, r.paid_by_participant_id, r.date,
	       r.store_name, r.memo, r.created_at, r.updated_at, COALESCE(p.name, '')
	FROM receipts r
	LEFT JOIN participants p ON r.paid_by_participant_id = p.id`

// CreateReceipt persists a receipt with its items and shares in one transaction.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.ReceiptWithItems) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.Currency == "" {
		receipt.Currency = models.DefaultCurrency
	}
	now := time.Now().Unix()
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = now
	}
	receipt.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (id, trip_id, total_amount, currency, paid_by_participant_id, date,
		                       store_name, memo, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.TripID, receipt.TotalAmount, receipt.Currency, receipt.PaidByParticipantID,
		receipt.Date.UTC().Format(dateLayout), receipt.StoreName, nullString(receipt.Memo),
		receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	for i := range receipt.Items {
		item := &receipt.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.Category == "" {
			item.Category = models.DefaultCategory
		}
		item.ReceiptID = receipt.ID
		item.OrderIndex = i

		_, err = tx.ExecContext(ctx,
			"INSERT INTO receipt_items (id, receipt_id, name, category, amount, memo, order_index) VALUES (?, ?, ?, ?, ?, ?, ?)",
			item.ID, item.ReceiptID, item.Name, item.Category, item.Amount, nullString(item.Memo), item.OrderIndex,
		)
		if err != nil {
			return fmt.Errorf("failed to insert receipt item: %w", err)
		}

		for j := range item.Shares {
			share := &item.Shares[j]
			if share.ID == "" {
				share.ID = uuid.New().String()
			}
			share.ReceiptItemID = item.ID

			_, err = tx.ExecContext(ctx,
				"INSERT INTO receipt_item_shares (id, receipt_item_id, participant_id, share_amount) VALUES (?, ?, ?, ?)",
				share.ID, share.ReceiptItemID, share.ParticipantID, share.ShareAmount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item share: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if receipt.PayerName == "" {
		if payer, err := s.GetParticipant(ctx, receipt.PaidByParticipantID); err == nil {
			receipt.PayerName = payer.Name
		}
	}
	return nil
}

// GetReceipt retrieves a receipt by ID, including items, shares and the payer's name.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.ReceiptWithItems, error) {
	row := s.db.QueryRowContext(ctx, receiptSelect+" WHERE r.id = ?", receiptID)
	receipt, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	items, err := s.loadItems(ctx, []string{receipt.ID})
	if err != nil {
		return nil, err
	}
	receipt.Items = items[receipt.ID]
	return receipt, nil
}

// ListReceiptsByTrip retrieves all receipts of a trip, newest date first.
func (s *SQLiteStore) ListReceiptsByTrip(ctx context.Context, tripID string) ([]models.ReceiptWithItems, error) {
	rows, err := s.db.QueryContext(ctx,
		receiptSelect+" WHERE r.trip_id = ? ORDER BY r.date DESC, r.created_at DESC, r.id",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []models.ReceiptWithItems
	var ids []string
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, *receipt)
		ids = append(ids, receipt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	if len(receipts) == 0 {
		return nil, nil
	}

	items, err := s.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		receipts[i].Items = items[receipts[i].ID]
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt with its items and shares.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return requireAffected(result, "receipt", receiptID)
}

// loadItems fetches the items of the given receipts, with shares attached,
// keyed by receipt ID and ordered by their position on the receipt.
func (s *SQLiteStore) loadItems(ctx context.Context, receiptIDs []string) (map[string][]models.ReceiptItem, error) {
	args := make([]any, len(receiptIDs))
	for i, id := range receiptIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, receipt_id, name, category, amount, memo, order_index
		 FROM receipt_items WHERE receipt_id IN (`+placeholders(len(receiptIDs))+`)
		 ORDER BY receipt_id, order_index ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt items: %w", err)
	}
	defer rows.Close()

	var items []models.ReceiptItem
	for rows.Next() {
		var item models.ReceiptItem
		var memo sql.NullString
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Name, &item.Category, &item.Amount, &memo, &item.OrderIndex); err != nil {
			return nil, fmt.Errorf("failed to scan receipt item: %w", err)
		}
		item.Memo = memo.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipt items: %w", err)
	}

	shares, err := s.loadShares(ctx, items)
	if err != nil {
		return nil, err
	}

	byReceipt := make(map[string][]models.ReceiptItem, len(receiptIDs))
	for _, item := range items {
		item.Shares = shares[item.ID]
		byReceipt[item.ReceiptID] = append(byReceipt[item.ReceiptID], item)
	}
	return byReceipt, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, items []models.ReceiptItem) (map[string][]models.ReceiptItemShare, error) {
	shares := make(map[string][]models.ReceiptItemShare, len(items))
	if len(items) == 0 {
		return shares, nil
	}

	args := make([]any, len(items))
	for i, item := range items {
		args[i] = item.ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.receipt_item_id, s.participant_id, s.share_amount
		 FROM receipt_item_shares s
		 WHERE s.receipt_item_id IN (`+placeholders(len(items))+`)
		 ORDER BY s.rowid`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.ReceiptItemShare
		if err := rows.Scan(&share.ID, &share.ReceiptItemID, &share.ParticipantID, &share.ShareAmount); err != nil {
			return nil, fmt.Errorf("failed to scan item share: %w", err)
		}
		shares[share.ReceiptItemID] = append(shares[share.ReceiptItemID], share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item shares: %w", err)
	}
	return shares, nil
}

func scanReceipt(row scanner) (*models.ReceiptWithItems, error) {
	r := &models.ReceiptWithItems{}
	var date string
	var memo sql.NullString
	err := row.Scan(&r.ID, &r.TripID, &r.TotalAmount, &r.Currency, &r.PaidByParticipantID, &date,
		&r.StoreName, &memo, &r.CreatedAt, &r.UpdatedAt, &r.PayerName)
	if err != nil {
		return nil, err
	}
	r.Memo = memo.String
	if date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid receipt date %q: %w", date, err)
		}
		r.Date = parsed
	}
	return r, nil
}
