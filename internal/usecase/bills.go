package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/calculator"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
)

// BillUseCase handles bills and their effect on wallet balances.
type BillUseCase struct {
	bills    BillRepository
	wallets  WalletRepository
	uow      UnitOfWork
	maxValue decimal.Decimal
	newID    func() string
}

// NewBillUseCase creates a BillUseCase. A zero maxValue means DefaultMaxValue.
func NewBillUseCase(bills BillRepository, wallets WalletRepository, uow UnitOfWork, maxValue decimal.Decimal) *BillUseCase {
	if maxValue.IsZero() {
		maxValue = DefaultMaxValue
	}
	return &BillUseCase{
		bills:    bills,
		wallets:  wallets,
		uow:      uow,
		maxValue: maxValue,
		newID:    uuid.NewString,
	}
}

func (uc *BillUseCase) validate(bill *models.Bill) (string, bool) {
	if !bill.Type.Valid() {
		return MsgInvalidType, false
	}
	return checkAmount(bill.Value, uc.maxValue)
}

// SaveBill stores a new bill under a fresh ID.
//
// A paid bill is posted to its wallet's ledger first. The wallet update and
// the bill insert share one transaction: if either fails, neither is kept.
func (uc *BillUseCase) SaveBill(ctx context.Context, bill models.Bill) <-chan response.Response[string] {
	if msg, ok := uc.validate(&bill); !ok {
		return response.Reject[string](msg)
	}

	bill.ID = uc.newID()
	slog.Info("SaveBill request received", "bill_id", bill.ID, "wallet_id", bill.WalletID, "paid", bill.Paid)

	if !bill.Paid {
		return uc.bills.Save(ctx, &bill)
	}

	return atomically(ctx, uc.uow, func(ctx context.Context) response.Response[string] {
		found := response.Await(ctx, uc.wallets.Find(ctx, bill.WalletID))
		current, ok := found.Value()
		if !ok {
			return response.Error[string](found.Kind(), found.Message())
		}

		wallet, err := calculator.Reconcile(current.Wallet, &bill, uc.maxValue)
		switch {
		case errors.Is(err, calculator.ErrBalanceTooHigh):
			return response.Error[string](response.KindValidation, BalanceTooHighMessage(uc.maxValue))
		case errors.Is(err, calculator.ErrInsufficientFunds):
			return response.Error[string](response.KindValidation, MsgInsufficientFunds)
		}

		if updated := response.Await(ctx, uc.wallets.Update(ctx, &wallet)); updated.Failed() {
			return response.Error[string](updated.Kind(), updated.Message())
		}
		return response.Await(ctx, uc.bills.Save(ctx, &bill))
	})
}

// UpdateBill overwrites a bill. The wallet ledger is left as it is, even if
// Paid or Value changed.
func (uc *BillUseCase) UpdateBill(ctx context.Context, bill models.Bill) <-chan response.Response[int64] {
	if msg, ok := uc.validate(&bill); !ok {
		return response.Reject[int64](msg)
	}
	slog.Info("UpdateBill request received", "bill_id", bill.ID)
	return uc.bills.Update(ctx, &bill)
}

// DeleteBill removes a bill. Its ledger entry, if any, stays in the wallet.
func (uc *BillUseCase) DeleteBill(ctx context.Context, bill models.Bill) <-chan response.Response[int64] {
	slog.Info("DeleteBill request received", "bill_id", bill.ID)
	return uc.bills.Delete(ctx, &bill)
}

// GetBills emits every bill on each change.
func (uc *BillUseCase) GetBills(ctx context.Context) <-chan response.Response[[]models.Bill] {
	return uc.bills.All(ctx)
}

// GetBillsByDate emits the bills dated within [start, end].
func (uc *BillUseCase) GetBillsByDate(ctx context.Context, start, end time.Time) <-chan response.Response[[]models.Bill] {
	return uc.bills.ByDate(ctx, start, end)
}

// GetBillsByText emits the bills matching needle.
func (uc *BillUseCase) GetBillsByText(ctx context.Context, needle string) <-chan response.Response[[]models.Bill] {
	return uc.bills.ByText(ctx, needle)
}
