package service

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/money"
	"github.com/mmynk/tripsplit/internal/storage"
)

var _ api.ReceiptServiceHandler = (*ReceiptService)(nil)

// ReceiptService records and lists the payments made during a trip.
type ReceiptService struct {
	access  tripAccess
	store   storage.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewReceiptService creates a ReceiptService.
func NewReceiptService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *ReceiptService {
	return &ReceiptService{
		access:  tripAccess{store: store},
		store:   store,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateReceipt validates and stores a receipt. Items given as a participant
// list are split evenly to the cent.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.CreateReceiptResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipantsByTrip(ctx, trip.ID)
	if err != nil {
		s.logger.Error("CreateReceipt: failed to list participants", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}
	l := ledger{participants: participants}

	receipt, err := s.buildReceipt(req.Msg, trip, l)
	if err != nil {
		s.logger.Warn("CreateReceipt rejected", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	if err := s.store.CreateReceipt(ctx, receipt); err != nil {
		s.logger.Error("CreateReceipt failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.IncrementReceiptsCreated()

	out := toAPIReceipt(*receipt, l.selfID())
	s.logger.Info("Receipt created", "trip_id", trip.ID, "receipt_id", receipt.ID, "items", len(receipt.Items))
	return connect.NewResponse(&api.CreateReceiptResponse{Receipt: &out}), nil
}

func (s *ReceiptService) buildReceipt(msg *api.CreateReceiptRequest, trip *models.Trip, l ledger) (*models.ReceiptWithItems, error) {
	members := make(map[string]bool, len(l.participants))
	for _, p := range l.participants {
		members[p.ID] = true
	}

	payer := msg.PaidByParticipantID
	if payer == "" {
		payer = l.selfID()
	}
	if !members[payer] {
		return nil, invalidArgument("payer %q is not a participant of this trip", payer)
	}

	if len(msg.Items) == 0 {
		return nil, invalidArgument("receipt needs at least one item")
	}
	items := make([]models.ReceiptItem, len(msg.Items))
	amounts := make([]float64, len(msg.Items))
	for i, in := range msg.Items {
		item, err := buildItem(i, in, members)
		if err != nil {
			return nil, err
		}
		items[i] = item
		amounts[i] = item.Amount
	}

	// The payer is credited exactly what the items charge, so a stated total
	// must agree with the item sum to the cent.
	total := money.Sum(amounts...)
	if msg.TotalAmount != nil {
		if !validAmount(*msg.TotalAmount) {
			return nil, invalidArgument("total_amount must be positive")
		}
		if !money.Equal(*msg.TotalAmount, total) {
			return nil, invalidArgument("total_amount %.2f does not match the item sum %.2f", *msg.TotalAmount, total)
		}
	}

	date, err := s.parseDate(msg.Date)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(msg.Currency))
	if currency == "" {
		currency = trip.BaseCurrency
	}

	return &models.ReceiptWithItems{
		Receipt: models.Receipt{
			TripID:              trip.ID,
			TotalAmount:         total,
			Currency:            currency,
			PaidByParticipantID: payer,
			Date:                date,
			StoreName:           strings.TrimSpace(msg.StoreName),
			Memo:                strings.TrimSpace(msg.Memo),
		},
		Items: items,
	}, nil
}

func buildItem(i int, in api.ReceiptItem, members map[string]bool) (models.ReceiptItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.ReceiptItem{}, invalidArgument("item %d: name required", i+1)
	}
	if !validAmount(in.Amount) {
		return models.ReceiptItem{}, invalidArgument("item %q: amount must be positive", name)
	}
	amount := money.Round(in.Amount)

	var shares []models.ReceiptItemShare
	switch {
	case len(in.Shares) > 0:
		rounded := make([]float64, len(in.Shares))
		for j, sh := range in.Shares {
			if !members[sh.ParticipantID] {
				return models.ReceiptItem{}, invalidArgument("item %q: %q is not a participant of this trip", name, sh.ParticipantID)
			}
			if !(sh.Amount >= 0) || math.IsInf(sh.Amount, 0) {
				return models.ReceiptItem{}, invalidArgument("item %q: share amounts must not be negative", name)
			}
			rounded[j] = money.Round(sh.Amount)
			shares = append(shares, models.ReceiptItemShare{
				ParticipantID: sh.ParticipantID,
				ShareAmount:   rounded[j],
			})
		}
		// Compare what is stored, not what was sent.
		if sum := money.Sum(rounded...); !money.Equal(sum, amount) {
			return models.ReceiptItem{}, invalidArgument("item %q: shares add up to %.2f, not %.2f", name, sum, amount)
		}
	case len(in.ParticipantIDs) > 0:
		for _, id := range in.ParticipantIDs {
			if !members[id] {
				return models.ReceiptItem{}, invalidArgument("item %q: %q is not a participant of this trip", name, id)
			}
		}
		shares = calculator.EvenShares(amount, in.ParticipantIDs)
	default:
		return models.ReceiptItem{}, invalidArgument("item %q: needs shares or participant_ids", name)
	}

	return models.ReceiptItem{
		Name:     name,
		Category: strings.TrimSpace(in.Category),
		Amount:   amount,
		Memo:     strings.TrimSpace(in.Memo),
		Shares:   shares,
	}, nil
}

func validAmount(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates; empty means now.
func (s *ReceiptService) parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, invalidArgument("date %q is neither RFC 3339 nor YYYY-MM-DD", value)
}

// GetReceipt returns one receipt with its items and shares.
func (s *ReceiptService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	receipt, err := s.access.receipt(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipantsByTrip(ctx, receipt.TripID)
	if err != nil {
		s.logger.Error("GetReceipt: failed to list participants", "receipt_id", receipt.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := toAPIReceipt(*receipt, ledger{participants: participants}.selfID())
	return connect.NewResponse(&api.GetReceiptResponse{Receipt: &out}), nil
}

// ListReceipts returns a trip's receipts, newest first, each with the owner's share.
func (s *ReceiptService) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	l, err := s.access.loadLedger(ctx, trip.ID)
	if err != nil {
		s.logger.Error("ListReceipts failed", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	s.logger.Debug("ListReceipts", "trip_id", trip.ID, "count", len(l.receipts))
	return connect.NewResponse(&api.ListReceiptsResponse{Receipts: toAPIReceipts(l.receipts, l.selfID())}), nil
}

// DeleteReceipt removes a receipt with its items and shares.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, req *connect.Request[api.DeleteReceiptRequest]) (*connect.Response[api.DeleteReceiptResponse], error) {
	receipt, err := s.access.receipt(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteReceipt(ctx, receipt.ID); err != nil {
		s.logger.Error("DeleteReceipt failed", "receipt_id", receipt.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Receipt deleted", "trip_id", receipt.TripID, "receipt_id", receipt.ID)
	return connect.NewResponse(&api.DeleteReceiptResponse{}), nil
}
