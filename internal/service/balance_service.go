package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/storage"
)

var _ api.BalanceServiceHandler = (*BalanceService)(nil)

// BalanceService derives balances, settlements and summaries from a trip's receipts.
// Nothing it returns is stored.
type BalanceService struct {
	access  tripAccess
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewBalanceService creates a BalanceService.
func NewBalanceService(store storage.Store, m *metrics.Metrics, logger *slog.Logger) *BalanceService {
	return &BalanceService{
		access:  tripAccess{store: store},
		metrics: m,
		logger:  logger,
	}
}

// GetParticipantStats returns what each participant paid, consumed and is owed.
func (s *BalanceService) GetParticipantStats(ctx context.Context, req *connect.Request[api.GetParticipantStatsRequest]) (*connect.Response[api.GetParticipantStatsResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	l, err := s.access.loadLedger(ctx, trip.ID)
	if err != nil {
		s.logger.Error("GetParticipantStats failed", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	stats := calculator.ComputeStats(l.participants, l.receipts)
	return connect.NewResponse(&api.GetParticipantStatsResponse{Stats: toAPIStats(stats)}), nil
}

// GetSettlements returns the payments that settle the trip.
func (s *BalanceService) GetSettlements(ctx context.Context, req *connect.Request[api.GetSettlementsRequest]) (*connect.Response[api.GetSettlementsResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	l, err := s.access.loadLedger(ctx, trip.ID)
	if err != nil {
		s.logger.Error("GetSettlements failed", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	settlements := calculator.ComputeSettlements(calculator.ComputeStats(l.participants, l.receipts))
	s.metrics.ObserveSettlements(len(settlements))

	s.logger.Info("Settlements computed", "trip_id", trip.ID, "receipts", len(l.receipts), "settlements", len(settlements))
	return connect.NewResponse(&api.GetSettlementsResponse{
		Settlements: toAPISettlements(settlements),
		Currency:    trip.BaseCurrency,
	}), nil
}

// GetTripSummary returns totals, budget progress, categories and the day-by-day receipt list.
func (s *BalanceService) GetTripSummary(ctx context.Context, req *connect.Request[api.GetTripSummaryRequest]) (*connect.Response[api.GetTripSummaryResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	l, err := s.access.loadLedger(ctx, trip.ID)
	if err != nil {
		s.logger.Error("GetTripSummary failed", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	stats := calculator.ComputeStats(l.participants, l.receipts)
	summary := calculator.Summarize(*trip, stats, l.receipts)
	return connect.NewResponse(&api.GetTripSummaryResponse{
		Summary:  toAPISummary(summary, l.selfID()),
		Currency: trip.BaseCurrency,
	}), nil
}
