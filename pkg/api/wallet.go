package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const WalletServiceName = "billwise.v1.WalletService"

const (
	WalletServiceSaveWalletProcedure   = "/billwise.v1.WalletService/SaveWallet"
	WalletServiceUpdateWalletProcedure = "/billwise.v1.WalletService/UpdateWallet"
	WalletServiceDeleteWalletProcedure = "/billwise.v1.WalletService/DeleteWallet"
	WalletServiceWatchWalletsProcedure = "/billwise.v1.WalletService/WatchWallets"
	WalletServiceWatchWalletProcedure  = "/billwise.v1.WalletService/WatchWallet"
	WalletServiceSaveCardProcedure     = "/billwise.v1.WalletService/SaveCard"
	WalletServiceUpdateCardProcedure   = "/billwise.v1.WalletService/UpdateCard"
	WalletServiceDeleteCardProcedure   = "/billwise.v1.WalletService/DeleteCard"
	WalletServiceWatchCardsProcedure   = "/billwise.v1.WalletService/WatchCards"
)

// WalletServiceHandler is implemented by the server side of WalletService.
type WalletServiceHandler interface {
	SaveWallet(context.Context, *connect.Request[SaveWalletRequest]) (*connect.Response[IDResponse], error)
	UpdateWallet(context.Context, *connect.Request[UpdateWalletRequest]) (*connect.Response[RowsResponse], error)
	DeleteWallet(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[RowsResponse], error)
	WatchWallets(context.Context, *connect.Request[WatchWalletsRequest], *connect.ServerStream[WalletsEnvelope]) error
	WatchWallet(context.Context, *connect.Request[WatchWalletRequest], *connect.ServerStream[WalletEnvelope]) error
	SaveCard(context.Context, *connect.Request[SaveCardRequest]) (*connect.Response[IDResponse], error)
	UpdateCard(context.Context, *connect.Request[UpdateCardRequest]) (*connect.Response[RowsResponse], error)
	DeleteCard(context.Context, *connect.Request[DeleteRequest]) (*connect.Response[RowsResponse], error)
	WatchCards(context.Context, *connect.Request[WatchCardsRequest], *connect.ServerStream[CardsEnvelope]) error
}

// NewWalletServiceHandler builds an HTTP handler for svc and returns the
// path to mount it on.
func NewWalletServiceHandler(svc WalletServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(WalletServiceSaveWalletProcedure, connect.NewUnaryHandler(WalletServiceSaveWalletProcedure, svc.SaveWallet, opts...))
	mux.Handle(WalletServiceUpdateWalletProcedure, connect.NewUnaryHandler(WalletServiceUpdateWalletProcedure, svc.UpdateWallet, opts...))
	mux.Handle(WalletServiceDeleteWalletProcedure, connect.NewUnaryHandler(WalletServiceDeleteWalletProcedure, svc.DeleteWallet, opts...))
	mux.Handle(WalletServiceWatchWalletsProcedure, connect.NewServerStreamHandler(WalletServiceWatchWalletsProcedure, svc.WatchWallets, opts...))
	mux.Handle(WalletServiceWatchWalletProcedure, connect.NewServerStreamHandler(WalletServiceWatchWalletProcedure, svc.WatchWallet, opts...))
	mux.Handle(WalletServiceSaveCardProcedure, connect.NewUnaryHandler(WalletServiceSaveCardProcedure, svc.SaveCard, opts...))
	mux.Handle(WalletServiceUpdateCardProcedure, connect.NewUnaryHandler(WalletServiceUpdateCardProcedure, svc.UpdateCard, opts...))
	mux.Handle(WalletServiceDeleteCardProcedure, connect.NewUnaryHandler(WalletServiceDeleteCardProcedure, svc.DeleteCard, opts...))
	mux.Handle(WalletServiceWatchCardsProcedure, connect.NewServerStreamHandler(WalletServiceWatchCardsProcedure, svc.WatchCards, opts...))
	return "/" + WalletServiceName + "/", mux
}

// WalletServiceClient calls a remote WalletService.
type WalletServiceClient struct {
	saveWallet   *connect.Client[SaveWalletRequest, IDResponse]
	updateWallet *connect.Client[UpdateWalletRequest, RowsResponse]
	deleteWallet *connect.Client[DeleteRequest, RowsResponse]
	watchWallets *connect.Client[WatchWalletsRequest, WalletsEnvelope]
	watchWallet  *connect.Client[WatchWalletRequest, WalletEnvelope]
	saveCard     *connect.Client[SaveCardRequest, IDResponse]
	updateCard   *connect.Client[UpdateCardRequest, RowsResponse]
	deleteCard   *connect.Client[DeleteRequest, RowsResponse]
	watchCards   *connect.Client[WatchCardsRequest, CardsEnvelope]
}

// NewWalletServiceClient creates a client for the WalletService at baseURL.
func NewWalletServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *WalletServiceClient {
	opts = clientOptions(opts)
	return &WalletServiceClient{
		saveWallet:   connect.NewClient[SaveWalletRequest, IDResponse](httpClient, baseURL+WalletServiceSaveWalletProcedure, opts...),
		updateWallet: connect.NewClient[UpdateWalletRequest, RowsResponse](httpClient, baseURL+WalletServiceUpdateWalletProcedure, opts...),
		deleteWallet: connect.NewClient[DeleteRequest, RowsResponse](httpClient, baseURL+WalletServiceDeleteWalletProcedure, opts...),
		watchWallets: connect.NewClient[WatchWalletsRequest, WalletsEnvelope](httpClient, baseURL+WalletServiceWatchWalletsProcedure, opts...),
		watchWallet:  connect.NewClient[WatchWalletRequest, WalletEnvelope](httpClient, baseURL+WalletServiceWatchWalletProcedure, opts...),
		saveCard:     connect.NewClient[SaveCardRequest, IDResponse](httpClient, baseURL+WalletServiceSaveCardProcedure, opts...),
		updateCard:   connect.NewClient[UpdateCardRequest, RowsResponse](httpClient, baseURL+WalletServiceUpdateCardProcedure, opts...),
		deleteCard:   connect.NewClient[DeleteRequest, RowsResponse](httpClient, baseURL+WalletServiceDeleteCardProcedure, opts...),
		watchCards:   connect.NewClient[WatchCardsRequest, CardsEnvelope](httpClient, baseURL+WalletServiceWatchCardsProcedure, opts...),
	}
}

func (c *WalletServiceClient) SaveWallet(ctx context.Context, req *connect.Request[SaveWalletRequest]) (*connect.Response[IDResponse], error) {
	return c.saveWallet.CallUnary(ctx, req)
}

func (c *WalletServiceClient) UpdateWallet(ctx context.Context, req *connect.Request[UpdateWalletRequest]) (*connect.Response[RowsResponse], error) {
	return c.updateWallet.CallUnary(ctx, req)
}

func (c *WalletServiceClient) DeleteWallet(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[RowsResponse], error) {
	return c.deleteWallet.CallUnary(ctx, req)
}

func (c *WalletServiceClient) WatchWallets(ctx context.Context, req *connect.Request[WatchWalletsRequest]) (*connect.ServerStreamForClient[WalletsEnvelope], error) {
	return c.watchWallets.CallServerStream(ctx, req)
}

func (c *WalletServiceClient) WatchWallet(ctx context.Context, req *connect.Request[WatchWalletRequest]) (*connect.ServerStreamForClient[WalletEnvelope], error) {
	return c.watchWallet.CallServerStream(ctx, req)
}

func (c *WalletServiceClient) SaveCard(ctx context.Context, req *connect.Request[SaveCardRequest]) (*connect.Response[IDResponse], error) {
	return c.saveCard.CallUnary(ctx, req)
}

func (c *WalletServiceClient) UpdateCard(ctx context.Context, req *connect.Request[UpdateCardRequest]) (*connect.Response[RowsResponse], error) {
	return c.updateCard.CallUnary(ctx, req)
}

func (c *WalletServiceClient) DeleteCard(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[RowsResponse], error) {
	return c.deleteCard.CallUnary(ctx, req)
}

func (c *WalletServiceClient) WatchCards(ctx context.Context, req *connect.Request[WatchCardsRequest]) (*connect.ServerStreamForClient[CardsEnvelope], error) {
	return c.watchCards.CallServerStream(ctx, req)
}
