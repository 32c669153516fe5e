package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

var _ api.TripServiceHandler = (*TripService)(nil)

// dateOnly is the layout of trip start and end dates.
const dateOnly = "2006-01-02"

// TripService manages trips and their participants.
type TripService struct {
	access          tripAccess
	store           storage.Store
	defaultCurrency string
	logger          *slog.Logger
}

// NewTripService creates a TripService. New trips without a currency get defaultCurrency.
func NewTripService(store storage.Store, defaultCurrency string, logger *slog.Logger) *TripService {
	if defaultCurrency == "" {
		defaultCurrency = models.DefaultCurrency
	}
	return &TripService{
		access:          tripAccess{store: store},
		store:           store,
		defaultCurrency: strings.ToUpper(defaultCurrency),
		logger:          logger,
	}
}

// CreateTrip creates a trip owned by the caller, with the caller's own participant.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("trip name required")
	}
	if err := validateDates(req.Msg.StartDate, req.Msg.EndDate); err != nil {
		return nil, err
	}
	if err := validateBudget(req.Msg.TotalBudget); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Msg.BaseCurrency))
	if currency == "" {
		currency = s.defaultCurrency
	}

	trip := &models.Trip{
		OwnerID:      userID,
		Name:         name,
		StartDate:    req.Msg.StartDate,
		EndDate:      req.Msg.EndDate,
		BaseCurrency: currency,
		TotalBudget:  req.Msg.TotalBudget,
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		s.logger.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}

	participants, err := s.store.ListParticipantsByTrip(ctx, trip.ID)
	if err == nil && (len(participants) == 0 || !participants[0].IsSelf) {
		err = errors.New("self participant missing")
	}
	if err != nil {
		s.logger.Error("CreateTrip: failed to load self participant", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(fmt.Errorf("trip %s: %w", trip.ID, err))
	}
	self := toAPIParticipant(participants[0])

	s.logger.Info("Trip created", "trip_id", trip.ID, "user_id", userID)
	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip), Self: &self}), nil
}

// GetTrip returns a trip with its participants.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipantsByTrip(ctx, trip.ID)
	if err != nil {
		s.logger.Error("GetTrip: failed to list participants", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTripResponse{
		Trip:         toAPITrip(trip),
		Participants: toAPIParticipants(participants),
	}), nil
}

// ListTrips returns the caller's trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, _ *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	trips, err := s.store.ListTripsByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("ListTrips failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Trip, len(trips))
	for i, trip := range trips {
		out[i] = *toAPITrip(trip)
	}
	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

// DeleteTrip removes a trip with its participants and receipts.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteTrip(ctx, trip.ID); err != nil {
		s.logger.Error("DeleteTrip failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Trip deleted", "trip_id", trip.ID)
	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}

// UpdateTripBudget sets or clears the trip budget.
func (s *TripService) UpdateTripBudget(ctx context.Context, req *connect.Request[api.UpdateTripBudgetRequest]) (*connect.Response[api.UpdateTripBudgetResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}
	if err := validateBudget(req.Msg.TotalBudget); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTripBudget(ctx, trip.ID, req.Msg.TotalBudget); err != nil {
		s.logger.Error("UpdateTripBudget failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}
	trip.TotalBudget = req.Msg.TotalBudget

	return connect.NewResponse(&api.UpdateTripBudgetResponse{Trip: toAPITrip(trip)}), nil
}

// AddParticipant adds a named participant to a trip.
func (s *TripService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("participant name required")
	}
	if err := validateBudget(req.Msg.BudgetTotal); err != nil {
		return nil, err
	}

	p := &models.Participant{TripID: trip.ID, Name: name, BudgetTotal: req.Msg.BudgetTotal}
	if err := s.store.CreateParticipant(ctx, p); err != nil {
		s.logger.Error("AddParticipant failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := toAPIParticipant(*p)
	s.logger.Info("Participant added", "trip_id", trip.ID, "participant_id", p.ID)
	return connect.NewResponse(&api.AddParticipantResponse{Participant: &out}), nil
}

// ListParticipants returns a trip's participants, the owner first.
func (s *TripService) ListParticipants(ctx context.Context, req *connect.Request[api.ListParticipantsRequest]) (*connect.Response[api.ListParticipantsResponse], error) {
	trip, err := s.access.trip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipantsByTrip(ctx, trip.ID)
	if err != nil {
		s.logger.Error("ListParticipants failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListParticipantsResponse{Participants: toAPIParticipants(participants)}), nil
}

// UpdateParticipantBudget sets or clears a participant's personal budget.
func (s *TripService) UpdateParticipantBudget(ctx context.Context, req *connect.Request[api.UpdateParticipantBudgetRequest]) (*connect.Response[api.UpdateParticipantBudgetResponse], error) {
	p, err := s.access.participant(ctx, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}
	if err := validateBudget(req.Msg.BudgetTotal); err != nil {
		return nil, err
	}

	if err := s.store.UpdateParticipantBudget(ctx, p.ID, req.Msg.BudgetTotal); err != nil {
		s.logger.Error("UpdateParticipantBudget failed", "participant_id", p.ID, "error", err)
		return nil, toConnectError(err)
	}
	p.BudgetTotal = req.Msg.BudgetTotal

	out := toAPIParticipant(*p)
	return connect.NewResponse(&api.UpdateParticipantBudgetResponse{Participant: &out}), nil
}

// RemoveParticipant removes a participant. The owner's participant and anyone
// who paid a receipt cannot be removed.
func (s *TripService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	p, err := s.access.participant(ctx, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteParticipant(ctx, p.ID); err != nil {
		s.logger.Warn("RemoveParticipant refused", "participant_id", p.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Participant removed", "trip_id", p.TripID, "participant_id", p.ID)
	return connect.NewResponse(&api.RemoveParticipantResponse{}), nil
}

func validateBudget(budget *float64) error {
	if budget != nil && !(*budget >= 0) {
		return invalidArgument("budget must not be negative")
	}
	return nil
}

func validateDates(start, end string) error {
	var startDay, endDay time.Time
	var err error
	if start != "" {
		if startDay, err = time.Parse(dateOnly, start); err != nil {
			return invalidArgument("start_date %q is not YYYY-MM-DD", start)
		}
	}
	if end != "" {
		if endDay, err = time.Parse(dateOnly, end); err != nil {
			return invalidArgument("end_date %q is not YYYY-MM-DD", end)
		}
	}
	if start != "" && end != "" && endDay.Before(startDay) {
		return invalidArgument("end_date is before start_date")
	}
	return nil
}
