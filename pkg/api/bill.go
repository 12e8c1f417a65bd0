package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const BillServiceName = "billwise.v1.BillService"

const (
	BillServiceSaveBillProcedure         = "/billwise.v1.BillService/SaveBill"
	BillServiceUpdateBillProcedure       = "/billwise.v1.BillService/UpdateBill"
	BillServiceDeleteBillProcedure       = "/billwise.v1.BillService/DeleteBill"
	BillServiceWatchBillsProcedure       = "/billwise.v1.BillService/WatchBills"
	BillServiceWatchBillsByDateProcedure = "/billwise.v1.BillService/WatchBillsByDate"
	BillServiceSearchBillsProcedure      = "/billwise.v1.BillService/SearchBills"
)

// BillServiceHandler is implemented by the server side of BillService.
type BillServiceHandler interface {
	SaveBill(context.Context, *connect.Request[SaveBillRequest]) (*connect.Response[SaveBillResponse], error)
	UpdateBill(context.Context, *connect.Request[UpdateBillRequest]) (*connect.Response[RowsResponse], error)
	DeleteBill(context.Context, *connect.Request[DeleteBillRequest]) (*connect.Response[RowsResponse], error)
	WatchBills(context.Context, *connect.Request[WatchBillsRequest], *connect.ServerStream[BillsEnvelope]) error
	WatchBillsByDate(context.Context, *connect.Request[WatchBillsByDateRequest], *connect.ServerStream[BillsEnvelope]) error
	SearchBills(context.Context, *connect.Request[SearchBillsRequest], *connect.ServerStream[BillsEnvelope]) error
}

// NewBillServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BillServiceSaveBillProcedure, connect.NewUnaryHandler(BillServiceSaveBillProcedure, svc.SaveBill, opts...))
	mux.Handle(BillServiceUpdateBillProcedure, connect.NewUnaryHandler(BillServiceUpdateBillProcedure, svc.UpdateBill, opts...))
	mux.Handle(BillServiceDeleteBillProcedure, connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...))
	mux.Handle(BillServiceWatchBillsProcedure, connect.NewServerStreamHandler(BillServiceWatchBillsProcedure, svc.WatchBills, opts...))
	mux.Handle(BillServiceWatchBillsByDateProcedure, connect.NewServerStreamHandler(BillServiceWatchBillsByDateProcedure, svc.WatchBillsByDate, opts...))
	mux.Handle(BillServiceSearchBillsProcedure, connect.NewServerStreamHandler(BillServiceSearchBillsProcedure, svc.SearchBills, opts...))
	return "/" + BillServiceName + "/", mux
}

// BillServiceClient calls a remote BillService.
type BillServiceClient struct {
	saveBill         *connect.Client[SaveBillRequest, SaveBillResponse]
	updateBill       *connect.Client[UpdateBillRequest, RowsResponse]
	deleteBill       *connect.Client[DeleteBillRequest, RowsResponse]
	watchBills       *connect.Client[WatchBillsRequest, BillsEnvelope]
	watchBillsByDate *connect.Client[WatchBillsByDateRequest, BillsEnvelope]
	searchBills      *connect.Client[SearchBillsRequest, BillsEnvelope]
}

// NewBillServiceClient creates a client for the BillService at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillServiceClient {
	opts = clientOptions(opts)
	return &BillServiceClient{
		saveBill:         connect.NewClient[SaveBillRequest, SaveBillResponse](httpClient, baseURL+BillServiceSaveBillProcedure, opts...),
		updateBill:       connect.NewClient[UpdateBillRequest, RowsResponse](httpClient, baseURL+BillServiceUpdateBillProcedure, opts...),
		deleteBill:       connect.NewClient[DeleteBillRequest, RowsResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
		watchBills:       connect.NewClient[WatchBillsRequest, BillsEnvelope](httpClient, baseURL+BillServiceWatchBillsProcedure, opts...),
		watchBillsByDate: connect.NewClient[WatchBillsByDateRequest, BillsEnvelope](httpClient, baseURL+BillServiceWatchBillsByDateProcedure, opts...),
		searchBills:      connect.NewClient[SearchBillsRequest, BillsEnvelope](httpClient, baseURL+BillServiceSearchBillsProcedure, opts...),
	}
}

func (c *BillServiceClient) SaveBill(ctx context.Context, req *connect.Request[SaveBillRequest]) (*connect.Response[SaveBillResponse], error) {
	return c.saveBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) UpdateBill(ctx context.Context, req *connect.Request[UpdateBillRequest]) (*connect.Response[RowsResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) DeleteBill(ctx context.Context, req *connect.Request[DeleteBillRequest]) (*connect.Response[RowsResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) WatchBills(ctx context.Context, req *connect.Request[WatchBillsRequest]) (*connect.ServerStreamForClient[BillsEnvelope], error) {
	return c.watchBills.CallServerStream(ctx, req)
}

func (c *BillServiceClient) WatchBillsByDate(ctx context.Context, req *connect.Request[WatchBillsByDateRequest]) (*connect.ServerStreamForClient[BillsEnvelope], error) {
	return c.watchBillsByDate.CallServerStream(ctx, req)
}

func (c *BillServiceClient) SearchBills(ctx context.Context, req *connect.Request[SearchBillsRequest]) (*connect.ServerStreamForClient[BillsEnvelope], error) {
	return c.searchBills.CallServerStream(ctx, req)
}
