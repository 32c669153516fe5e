package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// BalanceServiceName is the fully-qualified name of the BalanceService service.
const BalanceServiceName = "tripsplit.v1.BalanceService"

const (
	BalanceServiceGetParticipantStatsProcedure = "/tripsplit.v1.BalanceService/GetParticipantStats"
	BalanceServiceGetSettlementsProcedure      = "/tripsplit.v1.BalanceService/GetSettlements"
	BalanceServiceGetTripSummaryProcedure      = "/tripsplit.v1.BalanceService/GetTripSummary"
)

type GetParticipantStatsRequest struct {
	TripID string `json:"tripId"`
}

type GetParticipantStatsResponse struct {
	Stats []ParticipantStats `json:"stats"`
}

type GetSettlementsRequest struct {
	TripID string `json:"tripId"`
}

type GetSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
	Currency    string       `json:"currency"`
}

type GetTripSummaryRequest struct {
	TripID string `json:"tripId"`
}

type GetTripSummaryResponse struct {
	Summary  *TripSummary `json:"summary"`
	Currency string       `json:"currency"`
}

// BalanceServiceHandler is implemented by the server side of BalanceService.
type BalanceServiceHandler interface {
	GetParticipantStats(context.Context, *connect.Request[GetParticipantStatsRequest]) (*connect.Response[GetParticipantStatsResponse], error)
	GetSettlements(context.Context, *connect.Request[GetSettlementsRequest]) (*connect.Response[GetSettlementsResponse], error)
	GetTripSummary(context.Context, *connect.Request[GetTripSummaryRequest]) (*connect.Response[GetTripSummaryResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(BalanceServiceName), serviceMux{
		BalanceServiceGetParticipantStatsProcedure: connect.NewUnaryHandler(BalanceServiceGetParticipantStatsProcedure, svc.GetParticipantStats, opts...),
		BalanceServiceGetSettlementsProcedure:      connect.NewUnaryHandler(BalanceServiceGetSettlementsProcedure, svc.GetSettlements, opts...),
		BalanceServiceGetTripSummaryProcedure:      connect.NewUnaryHandler(BalanceServiceGetTripSummaryProcedure, svc.GetTripSummary, opts...),
	}
}

// BalanceServiceClient is a client for the tripsplit.v1.BalanceService service.
type BalanceServiceClient interface {
	BalanceServiceHandler
}

// NewBalanceServiceClient constructs a client for BalanceService at baseURL.
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	opts = clientOptions(opts)
	return &balanceServiceClient{
		getParticipantStats: newClient[GetParticipantStatsRequest, GetParticipantStatsResponse](httpClient, baseURL, BalanceServiceGetParticipantStatsProcedure, opts),
		getSettlements:      newClient[GetSettlementsRequest, GetSettlementsResponse](httpClient, baseURL, BalanceServiceGetSettlementsProcedure, opts),
		getTripSummary:      newClient[GetTripSummaryRequest, GetTripSummaryResponse](httpClient, baseURL, BalanceServiceGetTripSummaryProcedure, opts),
	}
}

type balanceServiceClient struct {
	getParticipantStats *connect.Client[GetParticipantStatsRequest, GetParticipantStatsResponse]
	getSettlements      *connect.Client[GetSettlementsRequest, GetSettlementsResponse]
	getTripSummary      *connect.Client[GetTripSummaryRequest, GetTripSummaryResponse]
}

func (c *balanceServiceClient) GetParticipantStats(ctx context.Context, req *connect.Request[GetParticipantStatsRequest]) (*connect.Response[GetParticipantStatsResponse], error) {
	return c.getParticipantStats.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetSettlements(ctx context.Context, req *connect.Request[GetSettlementsRequest]) (*connect.Response[GetSettlementsResponse], error) {
	return c.getSettlements.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetTripSummary(ctx context.Context, req *connect.Request[GetTripSummaryRequest]) (*connect.Response[GetTripSummaryResponse], error) {
	return c.getTripSummary.CallUnary(ctx, req)
}
