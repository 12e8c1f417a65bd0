// Package usecase implements the business operations on bills, wallets,
// cards and subscriptions.
//
// Each operation validates its input, rejecting it before any storage
// access, and otherwise forwards to a repository. Paid bills are also
// reconciled into their wallet's ledger in the same transaction.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/calculator"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
)

// DefaultMaxValue is the ceiling for any single amount and for a wallet
// balance.
var DefaultMaxValue = decimal.New(999999999, -2)

// Validation messages.
const (
	MsgTitleRequired     = "Título obrigatório."
	MsgInsufficientFunds = "Saldo insuficiente."
	MsgInvalidDuration   = "Duração inválida."
	MsgInvalidValue      = "Valor inválido."
	MsgInvalidType       = "Tipo inválido."
	MsgIDRequired        = "Identificador obrigatório."
	MsgInvalidPeriod     = "Período inválido."
)

// ValueTooHighMessage rejects an amount above maxValue.
func ValueTooHighMessage(maxValue decimal.Decimal) string {
	return fmt.Sprintf("Valor muito alto (max. R$%s).", calculator.FormatBRL(maxValue))
}

// BalanceTooHighMessage rejects a posting that would push a wallet above
// maxValue.
func BalanceTooHighMessage(maxValue decimal.Decimal) string {
	return fmt.Sprintf("Saldo máximo excedido (max. R$%s).", calculator.FormatBRL(maxValue))
}

// BillRepository is the bill persistence the use cases need.
type BillRepository interface {
	Save(ctx context.Context, bill *models.Bill) <-chan response.Response[string]
	Update(ctx context.Context, bill *models.Bill) <-chan response.Response[int64]
	Delete(ctx context.Context, bill *models.Bill) <-chan response.Response[int64]
	All(ctx context.Context) <-chan response.Response[[]models.Bill]
	ByDate(ctx context.Context, start, end time.Time) <-chan response.Response[[]models.Bill]
	ByText(ctx context.Context, needle string) <-chan response.Response[[]models.Bill]
}

// WalletRepository is the wallet persistence the use cases need.
type WalletRepository interface {
	Save(ctx context.Context, wallet *models.Wallet) <-chan response.Response[int64]
	Update(ctx context.Context, wallet *models.Wallet) <-chan response.Response[int64]
	Delete(ctx context.Context, wallet *models.Wallet) <-chan response.Response[int64]
	Find(ctx context.Context, id int64) <-chan response.Response[models.WalletWithCards]
	All(ctx context.Context) <-chan response.Response[[]models.WalletWithCards]
	Watch(ctx context.Context, id int64) <-chan response.Response[models.WalletWithCards]
}

// WalletCardRepository is the card persistence the use cases need.
type WalletCardRepository interface {
	Save(ctx context.Context, card *models.WalletCard) <-chan response.Response[int64]
	Update(ctx context.Context, card *models.WalletCard) <-chan response.Response[int64]
	Delete(ctx context.Context, card *models.WalletCard) <-chan response.Response[int64]
	ByWallet(ctx context.Context, walletID int64) <-chan response.Response[[]models.WalletCard]
}

// SubscriptionRepository is the subscription persistence the use cases need.
type SubscriptionRepository interface {
	Save(ctx context.Context, sub *models.Subscription) <-chan response.Response[int64]
	Update(ctx context.Context, sub *models.Subscription) <-chan response.Response[int64]
	Delete(ctx context.Context, sub *models.Subscription) <-chan response.Response[int64]
	All(ctx context.Context) <-chan response.Response[[]models.Subscription]
}

// UnitOfWork runs fn in a single transaction. fn's error rolls it back and
// is returned unchanged.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context) error) error
}

// rollback carries a failed Response out of a transaction.
type rollback[T any] struct {
	resp response.Response[T]
}

func (r *rollback[T]) Error() string { return r.resp.Message() }

// atomically runs fn inside uow and returns its Response as a stream.
// An Error from fn rolls the transaction back. A transaction that fails
// because ctx ended is KindCancelled; any other fault becomes a KindInternal
// Error carrying the fault's message.
func atomically[T any](ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) response.Response[T]) <-chan response.Response[T] {
	return response.Once(ctx, func(ctx context.Context) response.Response[T] {
		var result response.Response[T]
		err := uow.Within(ctx, func(ctx context.Context) error {
			result = fn(ctx)
			if result.Failed() {
				return &rollback[T]{resp: result}
			}
			return nil
		})

		var rb *rollback[T]
		switch {
		case err == nil:
			return result
		case errors.As(err, &rb):
			return rb.resp
		case ctx.Err() != nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return response.Error[T](response.KindCancelled, response.MsgInterrupted)
		default:
			return response.Error[T](response.KindInternal, err.Error())
		}
	})
}

// checkTitle returns MsgTitleRequired if title is blank.
func checkTitle(title string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return MsgTitleRequired, false
	}
	return "", true
}

// checkAmount validates an amount against [0, maxValue].
func checkAmount(v, maxValue decimal.Decimal) (string, bool) {
	if v.IsNegative() {
		return MsgInvalidValue, false
	}
	if v.GreaterThan(maxValue) {
		return ValueTooHighMessage(maxValue), false
	}
	return "", true
}
