package repository

import (
	"context"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/storage"
)

// WalletCardRepository exposes card persistence as response streams.
type WalletCardRepository struct {
	store   storage.CardStore
	metrics *metrics.Metrics
}

func NewWalletCardRepository(store storage.CardStore, m *metrics.Metrics) *WalletCardRepository {
	return &WalletCardRepository{store: store, metrics: m}
}

func (r *WalletCardRepository) Save(ctx context.Context, card *models.WalletCard) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityWalletCard, OpSave, func(ctx context.Context) (int64, error) {
		return r.store.SaveCard(ctx, card)
	})
}

func (r *WalletCardRepository) Update(ctx context.Context, card *models.WalletCard) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityWalletCard, OpUpdate, func(ctx context.Context) (int64, error) {
		return r.store.UpdateCard(ctx, card)
	})
}

func (r *WalletCardRepository) Delete(ctx context.Context, card *models.WalletCard) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityWalletCard, OpDelete, func(ctx context.Context) (int64, error) {
		return r.store.DeleteCard(ctx, card)
	})
}

// ByWallet emits the cards owned by walletID.
func (r *WalletCardRepository) ByWallet(ctx context.Context, walletID int64) <-chan response.Response[[]models.WalletCard] {
	return watch(ctx, r.metrics, EntityWalletCard, r.store.WatchCards(ctx, walletID))
}
