package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/api"
)

// kyotoTrip sets up: You paid a 3000 dinner shared by three, Bob paid a 1200
// taxi shared with You. Bob has a personal budget of 1500.
func kyotoTrip(t *testing.T, env *testEnv, token string) (tripID, self, bob, carol string) {
	t.Helper()
	ctx := context.Background()

	tripID, self, ids := env.createTrip(t, token, "Kyoto", "Bob", "Carol")
	bob, carol = ids[0], ids[1]

	_, err := env.trips.UpdateTripBudget(ctx, authed(&api.UpdateTripBudgetRequest{TripID: tripID, TotalBudget: ptr(10000)}, token))
	require.NoError(t, err)
	_, err = env.trips.UpdateParticipantBudget(ctx, authed(&api.UpdateParticipantBudgetRequest{ParticipantID: bob, BudgetTotal: ptr(1500)}, token))
	require.NoError(t, err)

	_, err = env.receipts.CreateReceipt(ctx, authed(&api.CreateReceiptRequest{
		TripID: tripID,
		Date:   "2026-04-02",
		Items: []api.ReceiptItem{
			{Name: "Kaiseki", Category: "Food", Amount: 3000, ParticipantIDs: []string{self, bob, carol}},
		},
	}, token))
	require.NoError(t, err)

	_, err = env.receipts.CreateReceipt(ctx, authed(&api.CreateReceiptRequest{
		TripID:              tripID,
		Date:                "2026-04-03",
		PaidByParticipantID: bob,
		Items: []api.ReceiptItem{
			{Name: "Taxi", Category: "Transport", Amount: 1200, Shares: []api.ItemShare{
				{ParticipantID: self, Amount: 600},
				{ParticipantID: bob, Amount: 600},
			}},
		},
	}, token))
	require.NoError(t, err)

	return tripID, self, bob, carol
}

func TestBalanceService_GetParticipantStats(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	tripID, _, _, _ := kyotoTrip(t, env, token)

	resp, err := env.balances.GetParticipantStats(context.Background(), authed(&api.GetParticipantStatsRequest{TripID: tripID}, token))
	require.NoError(t, err)

	byName := make(map[string]api.ParticipantStats)
	for _, s := range resp.Msg.Stats {
		byName[s.Name] = s
	}
	require.Len(t, byName, 3)

	assert.Equal(t, 3000.0, byName["You"].PaidTotal)
	assert.Equal(t, 1600.0, byName["You"].SpentTotal)
	assert.Equal(t, 1400.0, byName["You"].Balance)
	assert.True(t, byName["You"].IsSelf)

	assert.Equal(t, 1200.0, byName["Bob"].PaidTotal)
	assert.Equal(t, -400.0, byName["Bob"].Balance)
	require.NotNil(t, byName["Bob"].BudgetRemaining)
	assert.Equal(t, -100.0, *byName["Bob"].BudgetRemaining)

	assert.Equal(t, -1000.0, byName["Carol"].Balance)
	assert.Nil(t, byName["Carol"].BudgetRemaining)
}

func TestBalanceService_GetSettlements(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	tripID, self, bob, carol := kyotoTrip(t, env, token)

	resp, err := env.balances.GetSettlements(context.Background(), authed(&api.GetSettlementsRequest{TripID: tripID}, token))
	require.NoError(t, err)

	assert.Equal(t, "JPY", resp.Msg.Currency)
	assert.Equal(t, []api.Settlement{
		{FromParticipantID: carol, FromName: "Carol", ToParticipantID: self, ToName: "You", Amount: 1000},
		{FromParticipantID: bob, FromName: "Bob", ToParticipantID: self, ToName: "You", Amount: 400},
	}, resp.Msg.Settlements)
	assert.Equal(t, 1, testutil.CollectAndCount(env.metrics.SettlementTransfers))
}

func TestBalanceService_GetSettlements_EmptyTrip(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	tripID, _, _ := env.createTrip(t, token, "Quiet", "Bob")

	resp, err := env.balances.GetSettlements(context.Background(), authed(&api.GetSettlementsRequest{TripID: tripID}, token))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Settlements)
}

func TestBalanceService_GetTripSummary(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	tripID, _, bob, _ := kyotoTrip(t, env, token)

	resp, err := env.balances.GetTripSummary(context.Background(), authed(&api.GetTripSummaryRequest{TripID: tripID}, token))
	require.NoError(t, err)
	summary := resp.Msg.Summary

	assert.Equal(t, 4200.0, summary.TotalSpent)
	assert.Equal(t, 10000.0, *summary.Budget)
	assert.InDelta(t, 0.42, summary.Progress, 1e-9)
	assert.Equal(t, []api.CategoryTotal{
		{Category: "Food", Amount: 3000},
		{Category: "Transport", Amount: 1200},
	}, summary.Categories)

	require.Len(t, summary.Days, 2)
	assert.Equal(t, "2026-04-03", summary.Days[0].Day)
	assert.Equal(t, 1200.0, summary.Days[0].Total)
	assert.Equal(t, 600.0, summary.Days[0].Receipts[0].MyShare)
	assert.Equal(t, "2026-04-02", summary.Days[1].Day)

	var bobStatus api.BudgetStatus
	for _, b := range summary.BudgetStatus {
		if b.ParticipantID == bob {
			bobStatus = b
		}
	}
	assert.True(t, bobStatus.Over)
	assert.Equal(t, -100.0, *bobStatus.Remaining)
}

func TestBalanceService_OwnerOnly(t *testing.T) {
	env := setupTestServer(t)
	alice := env.register(t, "alice@example.com")
	mallory := env.register(t, "mallory@example.com")
	tripID, _, _, _ := kyotoTrip(t, env, alice)

	_, err := env.balances.GetSettlements(context.Background(), authed(&api.GetSettlementsRequest{TripID: tripID}, mallory))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = env.balances.GetTripSummary(context.Background(), authed(&api.GetTripSummaryRequest{TripID: "missing"}, alice))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestBalanceService_BalancesSumToZero(t *testing.T) {
	env := setupTestServer(t)
	token := env.register(t, "alice@example.com")
	ctx := context.Background()
	tripID, self, ids := env.createTrip(t, token, "Nara", "Bob", "Carol", "Dave")
	bob, carol, dave := ids[0], ids[1], ids[2]

	receipts := []*api.CreateReceiptRequest{
		{
			TripID: tripID,
			Items: []api.ReceiptItem{
				{Name: "Deer crackers", Amount: 100, ParticipantIDs: []string{self, bob, carol}},
			},
		},
		{
			TripID:              tripID,
			PaidByParticipantID: bob,
			TotalAmount:         ptr(1),
			Items: []api.ReceiptItem{
				{Name: "Gum", Amount: 1, Shares: []api.ItemShare{
					{ParticipantID: self, Amount: 0.34},
					{ParticipantID: carol, Amount: 0.33},
					{ParticipantID: dave, Amount: 0.33},
				}},
			},
		},
		{
			TripID:              tripID,
			PaidByParticipantID: carol,
			Items: []api.ReceiptItem{
				{Name: "Ryokan", Amount: 1000, ParticipantIDs: []string{self, bob, carol}},
				{Name: "Sake", Amount: 45.67, Shares: []api.ItemShare{
					{ParticipantID: bob, Amount: 20},
					{ParticipantID: dave, Amount: 25.67},
				}},
				{Name: "Mochi", Amount: 7, ParticipantIDs: []string{self, bob, carol, dave}},
			},
		},
	}
	for _, req := range receipts {
		_, err := env.receipts.CreateReceipt(ctx, authed(req, token))
		require.NoError(t, err)
	}

	stats, err := env.balances.GetParticipantStats(ctx, authed(&api.GetParticipantStatsRequest{TripID: tripID}, token))
	require.NoError(t, err)
	require.Len(t, stats.Msg.Stats, 4)

	remaining := make(map[string]float64)
	sum := 0.0
	for _, s := range stats.Msg.Stats {
		sum += s.Balance
		remaining[s.ParticipantID] = s.Balance
	}
	assert.InDelta(t, 0, sum, 1e-6)

	settlements, err := env.balances.GetSettlements(ctx, authed(&api.GetSettlementsRequest{TripID: tripID}, token))
	require.NoError(t, err)
	require.NotEmpty(t, settlements.Msg.Settlements)
	for _, s := range settlements.Msg.Settlements {
		remaining[s.FromParticipantID] += s.Amount
		remaining[s.ToParticipantID] -= s.Amount
	}
	for id, balance := range remaining {
		assert.InDelta(t, 0, balance, 0.01, "participant %s is left unsettled", id)
	}
}
