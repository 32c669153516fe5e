package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tripsplit/internal/api"
	"github.com/mmynk/tripsplit/internal/auth"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/middleware"
	"github.com/mmynk/tripsplit/internal/storage/sqlite"
)

// testEnv is a full server on a temp database, reached through the Connect clients.
type testEnv struct {
	auth     api.AuthServiceClient
	trips    api.TripServiceClient
	receipts api.ReceiptServiceClient
	balances api.BalanceServiceClient
	metrics  *metrics.Metrics
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager, api.AuthServiceRegisterProcedure, api.AuthServiceLoginProcedure),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, m, logger), interceptors))
	mux.Handle(api.NewTripServiceHandler(NewTripService(store, "JPY", logger), interceptors))
	mux.Handle(api.NewReceiptServiceHandler(NewReceiptService(store, m, logger), interceptors))
	mux.Handle(api.NewBalanceServiceHandler(NewBalanceService(store, m, logger), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		auth:     api.NewAuthServiceClient(http.DefaultClient, server.URL),
		trips:    api.NewTripServiceClient(http.DefaultClient, server.URL),
		receipts: api.NewReceiptServiceClient(http.DefaultClient, server.URL),
		balances: api.NewBalanceServiceClient(http.DefaultClient, server.URL),
		metrics:  m,
	}
}

// register creates an account and returns its bearer token.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()

	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: "Tester",
		Password:    "password123",
	}))
	require.NoError(t, err)
	return resp.Msg.Token
}

// createTrip creates a trip with extra participants and returns the trip ID,
// the self participant ID and the IDs of the named participants in order.
func (e *testEnv) createTrip(t *testing.T, token, name string, others ...string) (string, string, []string) {
	t.Helper()
	ctx := context.Background()

	resp, err := e.trips.CreateTrip(ctx, authed(&api.CreateTripRequest{Name: name}, token))
	require.NoError(t, err)

	ids := make([]string, len(others))
	for i, other := range others {
		added, err := e.trips.AddParticipant(ctx, authed(&api.AddParticipantRequest{
			TripID: resp.Msg.Trip.ID,
			Name:   other,
		}, token))
		require.NoError(t, err)
		ids[i] = added.Msg.Participant.ID
	}
	return resp.Msg.Trip.ID, resp.Msg.Self.ID, ids
}

func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func ptr(f float64) *float64 { return &f }
