package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/usecase"
	"github.com/mmynk/billwise/pkg/api"
)

// BillService implements the Connect BillService.
type BillService struct {
	bills *usecase.BillUseCase
}

var _ api.BillServiceHandler = (*BillService)(nil)

// NewBillService creates a new BillService backed by the bill use cases.
func NewBillService(bills *usecase.BillUseCase) *BillService {
	return &BillService{bills: bills}
}

func (s *BillService) SaveBill(ctx context.Context, req *connect.Request[api.SaveBillRequest]) (*connect.Response[api.SaveBillResponse], error) {
	return unary(ctx, s.bills.SaveBill(ctx, billFromAPI(req.Msg.Bill)), func(id string) *api.SaveBillResponse {
		slog.Info("Bill saved", "bill_id", id)
		return &api.SaveBillResponse{ID: id}
	})
}

func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.RowsResponse], error) {
	if req.Msg.Bill.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New(usecase.MsgIDRequired))
	}
	return unary(ctx, s.bills.UpdateBill(ctx, billFromAPI(req.Msg.Bill)), rowsResponse)
}

func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.RowsResponse], error) {
	return unary(ctx, s.bills.DeleteBill(ctx, models.Bill{ID: req.Msg.ID}), rowsResponse)
}

func (s *BillService) WatchBills(ctx context.Context, req *connect.Request[api.WatchBillsRequest], stream *connect.ServerStream[api.BillsEnvelope]) error {
	return forward(ctx, s.bills.GetBills, stream, billsToAPI)
}

func (s *BillService) WatchBillsByDate(ctx context.Context, req *connect.Request[api.WatchBillsByDateRequest], stream *connect.ServerStream[api.BillsEnvelope]) error {
	if req.Msg.End.Before(req.Msg.Start) {
		return connect.NewError(connect.CodeInvalidArgument, errors.New(usecase.MsgInvalidPeriod))
	}
	return forward(ctx, func(ctx context.Context) <-chan response.Response[[]models.Bill] {
		return s.bills.GetBillsByDate(ctx, req.Msg.Start, req.Msg.End)
	}, stream, billsToAPI)
}

func (s *BillService) SearchBills(ctx context.Context, req *connect.Request[api.SearchBillsRequest], stream *connect.ServerStream[api.BillsEnvelope]) error {
	return forward(ctx, func(ctx context.Context) <-chan response.Response[[]models.Bill] {
		return s.bills.GetBillsByText(ctx, req.Msg.Needle)
	}, stream, billsToAPI)
}

func billsToAPI(bills []models.Bill) []api.Bill {
	return mapSlice(bills, billToAPI)
}
