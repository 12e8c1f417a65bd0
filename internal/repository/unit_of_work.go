package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/storage"
)

// Fault is a transaction failure that fn did not cause. Error returns the
// user-facing message; the store error is available through Unwrap.
type Fault struct {
	Message string
	Err     error
}

func (f *Fault) Error() string { return f.Message }

func (f *Fault) Unwrap() error { return f.Err }

// UnitOfWork groups repository calls into one store transaction.
type UnitOfWork struct {
	tx storage.Transactor
}

func NewUnitOfWork(tx storage.Transactor) *UnitOfWork {
	return &UnitOfWork{tx: tx}
}

// Within runs fn in a transaction. Repository calls made with the ctx given
// to fn take part in it. If fn returns an error the transaction rolls back
// and that error is returned unchanged. Begin and commit failures come back
// as a *Fault; one caused by ctx ending carries response.MsgInterrupted.
func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	var fnErr error
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		fnErr = fn(ctx)
		return fnErr
	})
	if err == nil {
		return nil
	}
	if fnErr != nil {
		return fnErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.Info("Transaction interrupted", "error", err)
		return &Fault{Message: response.MsgInterrupted, Err: err}
	}

	slog.Error("Transaction failed", "error", err)
	return &Fault{Message: UnknownMessage(EntityTransaction), Err: err}
}
