package repository

import (
	"context"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/storage"
)

// WalletRepository exposes wallet persistence as response streams.
type WalletRepository struct {
	store   storage.WalletStore
	metrics *metrics.Metrics
}

// NewWalletRepository creates a WalletRepository. m may be nil.
func NewWalletRepository(store storage.WalletStore, m *metrics.Metrics) *WalletRepository {
	return &WalletRepository{store: store, metrics: m}
}

// Save inserts wallet with its ledger and emits the new ID.
func (r *WalletRepository) Save(ctx context.Context, wallet *models.Wallet) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityWallet, OpSave, func(ctx context.Context) (int64, error) {
		return r.store.SaveWallet(ctx, wallet)
	})
}

// Update overwrites wallet and its ledger.
func (r *WalletRepository) Update(ctx context.Context, wallet *models.Wallet) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityWallet, OpUpdate, func(ctx context.Context) (int64, error) {
		return r.store.UpdateWallet(ctx, wallet)
	})
}

// Delete removes wallet together with its cards and bills.
func (r *WalletRepository) Delete(ctx context.Context, wallet *models.Wallet) <-chan response.Response[int64] {
	return mutate(ctx, r.metrics, EntityWallet, OpDelete, func(ctx context.Context) (int64, error) {
		return r.store.DeleteWallet(ctx, wallet)
	})
}

// Find looks a wallet up by ID.
func (r *WalletRepository) Find(ctx context.Context, id int64) <-chan response.Response[models.WalletWithCards] {
	return find(ctx, r.metrics, EntityWallet, func(ctx context.Context) (models.WalletWithCards, error) {
		w, err := r.store.GetWalletWithCards(ctx, id)
		if err != nil {
			return models.WalletWithCards{}, err
		}
		return *w, nil
	})
}

// All emits every wallet with its cards.
func (r *WalletRepository) All(ctx context.Context) <-chan response.Response[[]models.WalletWithCards] {
	return watch(ctx, r.metrics, EntityWallet, r.store.WatchWalletsWithCards(ctx))
}

// Watch emits one wallet with its cards, ending with a not-found error if
// the wallet is deleted.
func (r *WalletRepository) Watch(ctx context.Context, id int64) <-chan response.Response[models.WalletWithCards] {
	return watch(ctx, r.metrics, EntityWallet, r.store.WatchWalletWithCards(ctx, id))
}
