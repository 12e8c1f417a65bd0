package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/repository"
	"github.com/mmynk/billwise/internal/response"
)

// WalletUseCase handles wallets and the cards they own.
type WalletUseCase struct {
	wallets  WalletRepository
	cards    WalletCardRepository
	uow      UnitOfWork
	maxValue decimal.Decimal
}

// NewWalletUseCase creates a WalletUseCase. A zero maxValue means
// DefaultMaxValue.
func NewWalletUseCase(wallets WalletRepository, cards WalletCardRepository, uow UnitOfWork, maxValue decimal.Decimal) *WalletUseCase {
	if maxValue.IsZero() {
		maxValue = DefaultMaxValue
	}
	return &WalletUseCase{wallets: wallets, cards: cards, uow: uow, maxValue: maxValue}
}

func (uc *WalletUseCase) validateWallet(wallet *models.Wallet) (string, bool) {
	if msg, ok := checkTitle(wallet.Title); !ok {
		return msg, false
	}
	return checkAmount(wallet.Balance, uc.maxValue)
}

// SaveWallet creates a wallet. A non-zero Balance becomes the opening entry
// of its ledger; any Entries passed in are ignored.
func (uc *WalletUseCase) SaveWallet(ctx context.Context, wallet models.Wallet) <-chan response.Response[int64] {
	if msg, ok := uc.validateWallet(&wallet); !ok {
		return response.Reject[int64](msg)
	}

	balance := wallet.Balance
	wallet.Entries = nil
	wallet.Balance = decimal.Zero
	wallet.SetBalance(balance)

	slog.Info("SaveWallet request received", "title", wallet.Title)
	return uc.wallets.Save(ctx, &wallet)
}

// UpdateWallet changes a wallet's title and balance. The stored ledger is
// kept: the balance change is absorbed by the opening entry. Entries passed
// in are ignored.
func (uc *WalletUseCase) UpdateWallet(ctx context.Context, wallet models.Wallet) <-chan response.Response[int64] {
	if msg, ok := uc.validateWallet(&wallet); !ok {
		return response.Reject[int64](msg)
	}

	slog.Info("UpdateWallet request received", "wallet_id", wallet.ID)
	return atomically(ctx, uc.uow, func(ctx context.Context) response.Response[int64] {
		found := response.Await(ctx, uc.wallets.Find(ctx, wallet.ID))
		current, ok := found.Value()
		switch {
		case found.Failed() && found.Kind() == response.KindNotFound:
			return response.Error[int64](response.KindNotFound, repository.ZeroRowsMessage(repository.EntityWallet, repository.OpUpdate))
		case !ok:
			return response.Error[int64](found.Kind(), found.Message())
		}

		next := current.Wallet
		next.Title = wallet.Title
		next.SetBalance(wallet.Balance)
		return response.Await(ctx, uc.wallets.Update(ctx, &next))
	})
}

// DeleteWallet removes a wallet with its cards and bills.
func (uc *WalletUseCase) DeleteWallet(ctx context.Context, wallet models.Wallet) <-chan response.Response[int64] {
	slog.Info("DeleteWallet request received", "wallet_id", wallet.ID)
	return uc.wallets.Delete(ctx, &wallet)
}

// GetWallets emits every wallet with its cards.
func (uc *WalletUseCase) GetWallets(ctx context.Context) <-chan response.Response[[]models.WalletWithCards] {
	return uc.wallets.All(ctx)
}

// GetWalletWithCards emits one wallet with its cards.
func (uc *WalletUseCase) GetWalletWithCards(ctx context.Context, id int64) <-chan response.Response[models.WalletWithCards] {
	return uc.wallets.Watch(ctx, id)
}

func (uc *WalletUseCase) validateCard(card *models.WalletCard) (string, bool) {
	if msg, ok := checkTitle(card.Title); !ok {
		return msg, false
	}
	if msg, ok := checkAmount(card.Limit, uc.maxValue); !ok {
		return msg, false
	}
	return checkAmount(card.Spent, uc.maxValue)
}

func (uc *WalletUseCase) SaveWalletCard(ctx context.Context, card models.WalletCard) <-chan response.Response[int64] {
	if msg, ok := uc.validateCard(&card); !ok {
		return response.Reject[int64](msg)
	}
	slog.Info("SaveWalletCard request received", "wallet_id", card.WalletID, "title", card.Title)
	return uc.cards.Save(ctx, &card)
}

func (uc *WalletUseCase) UpdateWalletCard(ctx context.Context, card models.WalletCard) <-chan response.Response[int64] {
	if msg, ok := uc.validateCard(&card); !ok {
		return response.Reject[int64](msg)
	}
	slog.Info("UpdateWalletCard request received", "card_id", card.ID)
	return uc.cards.Update(ctx, &card)
}

func (uc *WalletUseCase) DeleteWalletCard(ctx context.Context, card models.WalletCard) <-chan response.Response[int64] {
	slog.Info("DeleteWalletCard request received", "card_id", card.ID)
	return uc.cards.Delete(ctx, &card)
}

// GetWalletCards emits the cards of one wallet.
func (uc *WalletUseCase) GetWalletCards(ctx context.Context, walletID int64) <-chan response.Response[[]models.WalletCard] {
	return uc.cards.ByWallet(ctx, walletID)
}
