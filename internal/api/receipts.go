package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ReceiptServiceName is the fully-qualified name of the ReceiptService service.
const ReceiptServiceName = "tripsplit.v1.ReceiptService"

const (
	ReceiptServiceCreateReceiptProcedure = "/tripsplit.v1.ReceiptService/CreateReceipt"
	ReceiptServiceGetReceiptProcedure    = "/tripsplit.v1.ReceiptService/GetReceipt"
	ReceiptServiceListReceiptsProcedure  = "/tripsplit.v1.ReceiptService/ListReceipts"
	ReceiptServiceDeleteReceiptProcedure = "/tripsplit.v1.ReceiptService/DeleteReceipt"
)

// CreateReceiptRequest records a payment. Optional fields default as follows:
// payer to the owner's participant, currency to the trip's, date to now. Date
// accepts RFC 3339 or YYYY-MM-DD. TotalAmount is always the item sum; when sent
// it must match that sum to the cent.
type CreateReceiptRequest struct {
	TripID              string        `json:"tripId"`
	PaidByParticipantID string        `json:"paidByParticipantId,omitempty"`
	Date                string        `json:"date,omitempty"`
	StoreName           string        `json:"storeName,omitempty"`
	Memo                string        `json:"memo,omitempty"`
	Currency            string        `json:"currency,omitempty"`
	TotalAmount         *float64      `json:"totalAmount,omitempty"`
	Items               []ReceiptItem `json:"items"`
}

type CreateReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type GetReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

type GetReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type ListReceiptsRequest struct {
	TripID string `json:"tripId"`
}

type ListReceiptsResponse struct {
	Receipts []Receipt `json:"receipts"`
}

type DeleteReceiptRequest struct {
	ReceiptID string `json:"receiptId"`
}

type DeleteReceiptResponse struct{}

// ReceiptServiceHandler is implemented by the server side of ReceiptService.
type ReceiptServiceHandler interface {
	CreateReceipt(context.Context, *connect.Request[CreateReceiptRequest]) (*connect.Response[CreateReceiptResponse], error)
	GetReceipt(context.Context, *connect.Request[GetReceiptRequest]) (*connect.Response[GetReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[ListReceiptsRequest]) (*connect.Response[ListReceiptsResponse], error)
	DeleteReceipt(context.Context, *connect.Request[DeleteReceiptRequest]) (*connect.Response[DeleteReceiptResponse], error)
}

// NewReceiptServiceHandler builds an HTTP handler from the service implementation.
func NewReceiptServiceHandler(svc ReceiptServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(ReceiptServiceName), serviceMux{
		ReceiptServiceCreateReceiptProcedure: connect.NewUnaryHandler(ReceiptServiceCreateReceiptProcedure, svc.CreateReceipt, opts...),
		ReceiptServiceGetReceiptProcedure:    connect.NewUnaryHandler(ReceiptServiceGetReceiptProcedure, svc.GetReceipt, opts...),
		ReceiptServiceListReceiptsProcedure:  connect.NewUnaryHandler(ReceiptServiceListReceiptsProcedure, svc.ListReceipts, opts...),
		ReceiptServiceDeleteReceiptProcedure: connect.NewUnaryHandler(ReceiptServiceDeleteReceiptProcedure, svc.DeleteReceipt, opts...),
	}
}

// ReceiptServiceClient is a client for the tripsplit.v1.ReceiptService service.
type ReceiptServiceClient interface {
	ReceiptServiceHandler
}

// NewReceiptServiceClient constructs a client for ReceiptService at baseURL.
func NewReceiptServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReceiptServiceClient {
	opts = clientOptions(opts)
	return &receiptServiceClient{
		createReceipt: newClient[CreateReceiptRequest, CreateReceiptResponse](httpClient, baseURL, ReceiptServiceCreateReceiptProcedure, opts),
		getReceipt:    newClient[GetReceiptRequest, GetReceiptResponse](httpClient, baseURL, ReceiptServiceGetReceiptProcedure, opts),
		listReceipts:  newClient[ListReceiptsRequest, ListReceiptsResponse](httpClient, baseURL, ReceiptServiceListReceiptsProcedure, opts),
		deleteReceipt: newClient[DeleteReceiptRequest, DeleteReceiptResponse](httpClient, baseURL, ReceiptServiceDeleteReceiptProcedure, opts),
	}
}

type receiptServiceClient struct {
	createReceipt *connect.Client[CreateReceiptRequest, CreateReceiptResponse]
	getReceipt    *connect.Client[GetReceiptRequest, GetReceiptResponse]
	listReceipts  *connect.Client[ListReceiptsRequest, ListReceiptsResponse]
	deleteReceipt *connect.Client[DeleteReceiptRequest, DeleteReceiptResponse]
}

func (c *receiptServiceClient) CreateReceipt(ctx context.Context, req *connect.Request[CreateReceiptRequest]) (*connect.Response[CreateReceiptResponse], error) {
	return c.createReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) GetReceipt(ctx context.Context, req *connect.Request[GetReceiptRequest]) (*connect.Response[GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

func (c *receiptServiceClient) ListReceipts(ctx context.Context, req *connect.Request[ListReceiptsRequest]) (*connect.Response[ListReceiptsResponse], error) {
	return c.listReceipts.CallUnary(ctx, req)
}

func (c *receiptServiceClient) DeleteReceipt(ctx context.Context, req *connect.Request[DeleteReceiptRequest]) (*connect.Response[DeleteReceiptResponse], error) {
	return c.deleteReceipt.CallUnary(ctx, req)
}
