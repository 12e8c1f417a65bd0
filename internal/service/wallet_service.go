package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/usecase"
	"github.com/mmynk/billwise/pkg/api"
)

// WalletService implements the Connect WalletService.
type WalletService struct {
	wallets *usecase.WalletUseCase
}

var _ api.WalletServiceHandler = (*WalletService)(nil)

// NewWalletService creates a new WalletService backed by the wallet use cases.
func NewWalletService(wallets *usecase.WalletUseCase) *WalletService {
	return &WalletService{wallets: wallets}
}

func (s *WalletService) SaveWallet(ctx context.Context, req *connect.Request[api.SaveWalletRequest]) (*connect.Response[api.IDResponse], error) {
	return unary(ctx, s.wallets.SaveWallet(ctx, walletFromAPI(req.Msg.Wallet)), func(id int64) *api.IDResponse {
		slog.Info("Wallet saved", "wallet_id", id)
		return idResponse(id)
	})
}

func (s *WalletService) UpdateWallet(ctx context.Context, req *connect.Request[api.UpdateWalletRequest]) (*connect.Response[api.RowsResponse], error) {
	return unary(ctx, s.wallets.UpdateWallet(ctx, walletFromAPI(req.Msg.Wallet)), rowsResponse)
}

func (s *WalletService) DeleteWallet(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.RowsResponse], error) {
	return unary(ctx, s.wallets.DeleteWallet(ctx, models.Wallet{ID: req.Msg.ID}), rowsResponse)
}

func (s *WalletService) WatchWallets(ctx context.Context, req *connect.Request[api.WatchWalletsRequest], stream *connect.ServerStream[api.WalletsEnvelope]) error {
	return forward(ctx, s.wallets.GetWallets, stream, func(ws []models.WalletWithCards) []api.WalletWithCards {
		return mapSlice(ws, walletWithCardsToAPI)
	})
}

func (s *WalletService) WatchWallet(ctx context.Context, req *connect.Request[api.WatchWalletRequest], stream *connect.ServerStream[api.WalletEnvelope]) error {
	return forward(ctx, func(ctx context.Context) <-chan response.Response[models.WalletWithCards] {
		return s.wallets.GetWalletWithCards(ctx, req.Msg.ID)
	}, stream, walletWithCardsToAPI)
}

func (s *WalletService) SaveCard(ctx context.Context, req *connect.Request[api.SaveCardRequest]) (*connect.Response[api.IDResponse], error) {
	return unary(ctx, s.wallets.SaveWalletCard(ctx, cardFromAPI(req.Msg.Card)), idResponse)
}

func (s *WalletService) UpdateCard(ctx context.Context, req *connect.Request[api.UpdateCardRequest]) (*connect.Response[api.RowsResponse], error) {
	return unary(ctx, s.wallets.UpdateWalletCard(ctx, cardFromAPI(req.Msg.Card)), rowsResponse)
}

func (s *WalletService) DeleteCard(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.RowsResponse], error) {
	return unary(ctx, s.wallets.DeleteWalletCard(ctx, models.WalletCard{ID: req.Msg.ID}), rowsResponse)
}

func (s *WalletService) WatchCards(ctx context.Context, req *connect.Request[api.WatchCardsRequest], stream *connect.ServerStream[api.CardsEnvelope]) error {
	return forward(ctx, func(ctx context.Context) <-chan response.Response[[]models.WalletCard] {
		return s.wallets.GetWalletCards(ctx, req.Msg.WalletID)
	}, stream, func(cards []models.WalletCard) []api.WalletCard {
		return mapSlice(cards, cardToAPI)
	})
}
