package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "tripsplit.v1.TripService"

const (
	TripServiceCreateTripProcedure              = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure                 = "/tripsplit.v1.TripService/GetTrip"
	TripServiceListTripsProcedure               = "/tripsplit.v1.TripService/ListTrips"
	TripServiceDeleteTripProcedure              = "/tripsplit.v1.TripService/DeleteTrip"
	TripServiceUpdateTripBudgetProcedure        = "/tripsplit.v1.TripService/UpdateTripBudget"
	TripServiceAddParticipantProcedure          = "/tripsplit.v1.TripService/AddParticipant"
	TripServiceListParticipantsProcedure        = "/tripsplit.v1.TripService/ListParticipants"
	TripServiceUpdateParticipantBudgetProcedure = "/tripsplit.v1.TripService/UpdateParticipantBudget"
	TripServiceRemoveParticipantProcedure       = "/tripsplit.v1.TripService/RemoveParticipant"
)

type CreateTripRequest struct {
	Name         string   `json:"name"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	BaseCurrency string   `json:"baseCurrency,omitempty"`
	TotalBudget  *float64 `json:"totalBudget,omitempty"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
	// Self is the participant created for the owner.
	Self *Participant `json:"self"`
}

type GetTripRequest struct {
	TripID string `json:"tripId"`
}

type GetTripResponse struct {
	Trip         *Trip         `json:"trip"`
	Participants []Participant `json:"participants"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []Trip `json:"trips"`
}

type DeleteTripRequest struct {
	TripID string `json:"tripId"`
}

type DeleteTripResponse struct{}

// UpdateTripBudgetRequest sets the trip budget; a nil TotalBudget clears it.
type UpdateTripBudgetRequest struct {
	TripID      string   `json:"tripId"`
	TotalBudget *float64 `json:"totalBudget,omitempty"`
}

type UpdateTripBudgetResponse struct {
	Trip *Trip `json:"trip"`
}

type AddParticipantRequest struct {
	TripID      string   `json:"tripId"`
	Name        string   `json:"name"`
	BudgetTotal *float64 `json:"budgetTotal,omitempty"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type ListParticipantsRequest struct {
	TripID string `json:"tripId"`
}

type ListParticipantsResponse struct {
	Participants []Participant `json:"participants"`
}

// UpdateParticipantBudgetRequest sets a personal budget; a nil BudgetTotal clears it.
type UpdateParticipantBudgetRequest struct {
	ParticipantID string   `json:"participantId"`
	BudgetTotal   *float64 `json:"budgetTotal,omitempty"`
}

type UpdateParticipantBudgetResponse struct {
	Participant *Participant `json:"participant"`
}

type RemoveParticipantRequest struct {
	ParticipantID string `json:"participantId"`
}

type RemoveParticipantResponse struct{}

// TripServiceHandler is implemented by the server side of TripService.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error)
	UpdateTripBudget(context.Context, *connect.Request[UpdateTripBudgetRequest]) (*connect.Response[UpdateTripBudgetResponse], error)
	AddParticipant(context.Context, *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error)
	UpdateParticipantBudget(context.Context, *connect.Request[UpdateParticipantBudgetRequest]) (*connect.Response[UpdateParticipantBudgetResponse], error)
	RemoveParticipant(context.Context, *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(TripServiceName), serviceMux{
		TripServiceCreateTripProcedure:              connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...),
		TripServiceGetTripProcedure:                 connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...),
		TripServiceListTripsProcedure:               connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...),
		TripServiceDeleteTripProcedure:              connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...),
		TripServiceUpdateTripBudgetProcedure:        connect.NewUnaryHandler(TripServiceUpdateTripBudgetProcedure, svc.UpdateTripBudget, opts...),
		TripServiceAddParticipantProcedure:          connect.NewUnaryHandler(TripServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		TripServiceListParticipantsProcedure:        connect.NewUnaryHandler(TripServiceListParticipantsProcedure, svc.ListParticipants, opts...),
		TripServiceUpdateParticipantBudgetProcedure: connect.NewUnaryHandler(TripServiceUpdateParticipantBudgetProcedure, svc.UpdateParticipantBudget, opts...),
		TripServiceRemoveParticipantProcedure:       connect.NewUnaryHandler(TripServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
	}
}

// TripServiceClient is a client for the tripsplit.v1.TripService service.
type TripServiceClient interface {
	TripServiceHandler
}

// NewTripServiceClient constructs a client for TripService at baseURL.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	opts = clientOptions(opts)
	return &tripServiceClient{
		createTrip:              newClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL, TripServiceCreateTripProcedure, opts),
		getTrip:                 newClient[GetTripRequest, GetTripResponse](httpClient, baseURL, TripServiceGetTripProcedure, opts),
		listTrips:               newClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL, TripServiceListTripsProcedure, opts),
		deleteTrip:              newClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL, TripServiceDeleteTripProcedure, opts),
		updateTripBudget:        newClient[UpdateTripBudgetRequest, UpdateTripBudgetResponse](httpClient, baseURL, TripServiceUpdateTripBudgetProcedure, opts),
		addParticipant:          newClient[AddParticipantRequest, AddParticipantResponse](httpClient, baseURL, TripServiceAddParticipantProcedure, opts),
		listParticipants:        newClient[ListParticipantsRequest, ListParticipantsResponse](httpClient, baseURL, TripServiceListParticipantsProcedure, opts),
		updateParticipantBudget: newClient[UpdateParticipantBudgetRequest, UpdateParticipantBudgetResponse](httpClient, baseURL, TripServiceUpdateParticipantBudgetProcedure, opts),
		removeParticipant:       newClient[RemoveParticipantRequest, RemoveParticipantResponse](httpClient, baseURL, TripServiceRemoveParticipantProcedure, opts),
	}
}

type tripServiceClient struct {
	createTrip              *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip                 *connect.Client[GetTripRequest, GetTripResponse]
	listTrips               *connect.Client[ListTripsRequest, ListTripsResponse]
	deleteTrip              *connect.Client[DeleteTripRequest, DeleteTripResponse]
	updateTripBudget        *connect.Client[UpdateTripBudgetRequest, UpdateTripBudgetResponse]
	addParticipant          *connect.Client[AddParticipantRequest, AddParticipantResponse]
	listParticipants        *connect.Client[ListParticipantsRequest, ListParticipantsResponse]
	updateParticipantBudget *connect.Client[UpdateParticipantBudgetRequest, UpdateParticipantBudgetResponse]
	removeParticipant       *connect.Client[RemoveParticipantRequest, RemoveParticipantResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateTripBudget(ctx context.Context, req *connect.Request[UpdateTripBudgetRequest]) (*connect.Response[UpdateTripBudgetResponse], error) {
	return c.updateTripBudget.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddParticipant(ctx context.Context, req *connect.Request[AddParticipantRequest]) (*connect.Response[AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListParticipants(ctx context.Context, req *connect.Request[ListParticipantsRequest]) (*connect.Response[ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateParticipantBudget(ctx context.Context, req *connect.Request[UpdateParticipantBudgetRequest]) (*connect.Response[UpdateParticipantBudgetResponse], error) {
	return c.updateParticipantBudget.CallUnary(ctx, req)
}

func (c *tripServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[RemoveParticipantRequest]) (*connect.Response[RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}
