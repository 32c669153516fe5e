package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/api"
)

func TestTripService_CreateTrip(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	ctx := context.Background()

	resp, err := env.trips.CreateTrip(ctx, authed(&api.CreateTripRequest{
		Name:        "  Kyoto  ",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-07",
		TotalBudget: ptr(100000),
	}, token))
	require.NoError(t, err)

	trip := resp.Msg.Trip
	assert.Equal(t, "Kyoto", trip.Name)
	assert.Equal(t, "JPY", trip.BaseCurrency)
	assert.Equal(t, 100000.0, *trip.TotalBudget)
	assert.True(t, resp.Msg.Self.IsSelf)
	assert.Equal(t, "You", resp.Msg.Self.Name)

	got, err := env.trips.GetTrip(ctx, authed(&api.GetTripRequest{TripID: trip.ID}, token))
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.Msg.Trip.ID)
	require.Len(t, got.Msg.Participants, 1)
	assert.Equal(t, resp.Msg.Self.ID, got.Msg.Participants[0].ID)
}

func TestTripService_CreateTrip_Invalid(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")

	tests := map[string]*api.CreateTripRequest{
		"missing name":     {Name: " "},
		"bad start date":   {Name: "Trip", StartDate: "April 1st"},
		"end before start": {Name: "Trip", StartDate: "2026-04-07", EndDate: "2026-04-01"},
		"negative budget":  {Name: "Trip", TotalBudget: ptr(-1)},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := env.trips.CreateTrip(context.Background(), authed(req, token))
			assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		})
	}
}

func TestTripService_OwnerOnly(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com")
	mallory := env.register(t, "mallory@example.com")
	ctx := context.Background()

	tripID, selfID, _ := env.createTrip(t, alice, "Private")

	_, err := env.trips.GetTrip(ctx, authed(&api.GetTripRequest{TripID: tripID}, mallory))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = env.trips.UpdateParticipantBudget(ctx, authed(&api.UpdateParticipantBudgetRequest{ParticipantID: selfID, BudgetTotal: ptr(1)}, mallory))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = env.trips.DeleteTrip(ctx, authed(&api.DeleteTripRequest{TripID: tripID}, mallory))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	list, err := env.trips.ListTrips(ctx, authed(&api.ListTripsRequest{}, mallory))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Trips)

	_, err = env.trips.GetTrip(ctx, connect.NewRequest(&api.GetTripRequest{TripID: tripID}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestTripService_Budgets(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	ctx := context.Background()
	tripID, _, ids := env.createTrip(t, token, "Kyoto", "Bob")

	updated, err := env.trips.UpdateTripBudget(ctx, authed(&api.UpdateTripBudgetRequest{TripID: tripID, TotalBudget: ptr(5000)}, token))
	require.NoError(t, err)
	assert.Equal(t, 5000.0, *updated.Msg.Trip.TotalBudget)

	cleared, err := env.trips.UpdateTripBudget(ctx, authed(&api.UpdateTripBudgetRequest{TripID: tripID}, token))
	require.NoError(t, err)
	assert.Nil(t, cleared.Msg.Trip.TotalBudget)

	p, err := env.trips.UpdateParticipantBudget(ctx, authed(&api.UpdateParticipantBudgetRequest{ParticipantID: ids[0], BudgetTotal: ptr(800)}, token))
	require.NoError(t, err)
	assert.Equal(t, 800.0, *p.Msg.Participant.BudgetTotal)

	_, err = env.trips.UpdateParticipantBudget(ctx, authed(&api.UpdateParticipantBudgetRequest{ParticipantID: "missing"}, token))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestTripService_Participants(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	ctx := context.Background()
	tripID, selfID, ids := env.createTrip(t, token, "Kyoto", "Bob", "Carol")
	bob, carol := ids[0], ids[1]

	list, err := env.trips.ListParticipants(ctx, authed(&api.ListParticipantsRequest{TripID: tripID}, token))
	require.NoError(t, err)
	require.Len(t, list.Msg.Participants, 3)
	assert.Equal(t, []string{"You", "Bob", "Carol"}, []string{
		list.Msg.Participants[0].Name, list.Msg.Participants[1].Name, list.Msg.Participants[2].Name,
	})

	_, err = env.trips.AddParticipant(ctx, authed(&api.AddParticipantRequest{TripID: tripID, Name: ""}, token))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	t.Run("self cannot be removed", func(t *testing.T) {
		_, err := env.trips.RemoveParticipant(ctx, authed(&api.RemoveParticipantRequest{ParticipantID: selfID}, token))
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	})

	t.Run("payer cannot be removed", func(t *testing.T) {
		_, err := env.receipts.CreateReceipt(ctx, authed(&api.CreateReceiptRequest{
			TripID:              tripID,
			PaidByParticipantID: bob,
			Items:               []api.ReceiptItem{{Name: "Taxi", Amount: 1200, ParticipantIDs: []string{bob, carol}}},
		}, token))
		require.NoError(t, err)

		_, err = env.trips.RemoveParticipant(ctx, authed(&api.RemoveParticipantRequest{ParticipantID: bob}, token))
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	})

	t.Run("sharing participant can be removed", func(t *testing.T) {
		_, err := env.trips.RemoveParticipant(ctx, authed(&api.RemoveParticipantRequest{ParticipantID: carol}, token))
		require.NoError(t, err)

		list, err := env.trips.ListParticipants(ctx, authed(&api.ListParticipantsRequest{TripID: tripID}, token))
		require.NoError(t, err)
		assert.Len(t, list.Msg.Participants, 2)
	})
}

func TestTripService_DeleteTrip(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	ctx := context.Background()
	tripID, selfID, _ := env.createTrip(t, token, "Kyoto")

	_, err := env.receipts.CreateReceipt(ctx, authed(&api.CreateReceiptRequest{
		TripID: tripID,
		Items:  []api.ReceiptItem{{Name: "Tea", Amount: 300, ParticipantIDs: []string{selfID}}},
	}, token))
	require.NoError(t, err)

	_, err = env.trips.DeleteTrip(ctx, authed(&api.DeleteTripRequest{TripID: tripID}, token))
	require.NoError(t, err)

	_, err = env.trips.GetTrip(ctx, authed(&api.GetTripRequest{TripID: tripID}, token))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	list, err := env.trips.ListTrips(ctx, authed(&api.ListTripsRequest{}, token))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Trips)
}
