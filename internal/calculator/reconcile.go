// Package calculator holds the pure arithmetic behind wallet reconciliation.
package calculator

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/models"
)

var (
	// ErrBalanceTooHigh is returned when posting would push a wallet above the
	// configured maximum.
	ErrBalanceTooHigh = errors.New("balance above maximum")

	// ErrInsufficientFunds is returned when posting would leave a wallet
	// below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// SignedAmount returns value as it affects a wallet: positive for income,
// negative for expense.
func SignedAmount(billType models.BillType, value decimal.Decimal) decimal.Decimal {
	if billType == models.BillTypeExpense {
		return value.Abs().Neg()
	}
	return value.Abs()
}

// Reconcile returns a copy of wallet with bill posted to its ledger. The
// input wallet is not modified.
//
// The prospective balance must stay within [0, maxBalance].
func Reconcile(wallet models.Wallet, bill *models.Bill, maxBalance decimal.Decimal) (models.Wallet, error) {
	next := wallet
	next.Entries = slices.Clone(wallet.Entries)
	next.Post(bill.ID, SignedAmount(bill.Type, bill.Value))

	if next.Balance.GreaterThan(maxBalance) {
		return wallet, ErrBalanceTooHigh
	}
	if next.Balance.IsNegative() {
		return wallet, ErrInsufficientFunds
	}
	return next, nil
}
