// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/billwise/internal/models"
)

var (
	// ErrConstraint wraps faults raised by a uniqueness or referential rule.
	ErrConstraint = errors.New("constraint violation")

	// ErrNotFound is returned by lookups that match no row.
	ErrNotFound = errors.New("not found")
)

// Snapshot is one emission of a live query: the current rows, or the read
// fault that ended the query.
type Snapshot[T any] struct {
	Value T
	Err   error
}

// BillStore persists bills.
//
// Mutations report what they did: SaveBill returns the bill's ID (empty if
// nothing was inserted), UpdateBill and DeleteBill return the number of rows
// affected.
type BillStore interface {
	SaveBill(ctx context.Context, bill *models.Bill) (string, error)
	UpdateBill(ctx context.Context, bill *models.Bill) (int64, error)
	DeleteBill(ctx context.Context, bill *models.Bill) (int64, error)

	// GetBill returns ErrNotFound if no bill has the given ID.
	GetBill(ctx context.Context, id string) (*models.Bill, error)

	// WatchBills emits every bill, most recent first, on every change.
	WatchBills(ctx context.Context) <-chan Snapshot[[]models.Bill]

	// WatchBillsByDate emits the bills whose date lies in [start, end].
	WatchBillsByDate(ctx context.Context, start, end time.Time) <-chan Snapshot[[]models.Bill]

	// WatchBillsByText emits the bills whose title, origin or description
	// contains needle (ASCII case-insensitive).
	WatchBillsByText(ctx context.Context, needle string) <-chan Snapshot[[]models.Bill]
}

// WalletStore persists wallets together with their ledger entries.
type WalletStore interface {
	// SaveWallet returns the store-assigned ID, or 0 if nothing was inserted.
	SaveWallet(ctx context.Context, wallet *models.Wallet) (int64, error)
	UpdateWallet(ctx context.Context, wallet *models.Wallet) (int64, error)
	DeleteWallet(ctx context.Context, wallet *models.Wallet) (int64, error)

	// GetWalletWithCards returns ErrNotFound if the wallet does not exist.
	GetWalletWithCards(ctx context.Context, id int64) (*models.WalletWithCards, error)

	WatchWalletsWithCards(ctx context.Context) <-chan Snapshot[[]models.WalletWithCards]

	// WatchWalletWithCards ends with ErrNotFound once the wallet is gone.
	WatchWalletWithCards(ctx context.Context, id int64) <-chan Snapshot[models.WalletWithCards]
}

// CardStore persists wallet cards.
type CardStore interface {
	SaveCard(ctx context.Context, card *models.WalletCard) (int64, error)
	UpdateCard(ctx context.Context, card *models.WalletCard) (int64, error)
	DeleteCard(ctx context.Context, card *models.WalletCard) (int64, error)
	WatchCards(ctx context.Context, walletID int64) <-chan Snapshot[[]models.WalletCard]
}

// SubscriptionStore persists subscriptions.
type SubscriptionStore interface {
	SaveSubscription(ctx context.Context, sub *models.Subscription) (int64, error)
	UpdateSubscription(ctx context.Context, sub *models.Subscription) (int64, error)
	DeleteSubscription(ctx context.Context, sub *models.Subscription) (int64, error)
	WatchSubscriptions(ctx context.Context) <-chan Snapshot[[]models.Subscription]
}

// Transactor runs fn inside a single store transaction. Store calls made
// with the ctx passed to fn join that transaction. The transaction commits
// when fn returns nil and rolls back otherwise; fn's error is returned as is.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles every aggregate store.
// This abstraction allows swapping storage backends without changing the
// repository layer.
type Store interface {
	BillStore
	WalletStore
	CardStore
	SubscriptionStore
	Transactor

	// Close releases any resources held by the store.
	Close() error
}
