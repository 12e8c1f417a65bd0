// Package repository adapts the store to the response protocol.
//
// It is the only layer that looks at raw storage errors. Every fault is
// logged here and replaced by a user-facing message; callers see Responses
// only.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/storage"
)

// Entity names as they appear in user-facing messages.
const (
	EntityBill         = "Bill"
	EntityWallet       = "Wallet"
	EntityWalletCard   = "WalletCard"
	EntitySubscription = "Subscription"
	EntityTransaction  = "Transaction"
)

const (
	OpSave   = "save"
	OpUpdate = "update"
	OpDelete = "delete"
	OpFind   = "find"
	OpWatch  = "watch"
)

// ConflictMessage is the message of a constraint fault.
func ConflictMessage(entity string) string {
	return entity + ": unique constraint violation"
}

// UnknownMessage is the message of any unclassified fault.
func UnknownMessage(entity string) string {
	return entity + ": unknown error, contact administrator"
}

// NotFoundMessage is the message of a one-shot lookup that found nothing.
func NotFoundMessage(entity string) string {
	return entity + ": not found"
}

// ZeroRowsMessage is the message of a mutation that affected nothing.
func ZeroRowsMessage(entity, op string) string {
	return fmt.Sprintf("%s: %s failed", entity, op)
}

// classify turns a store error into a Response error.
func classify[T any](entity, op string, err error) response.Response[T] {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return response.Error[T](response.KindCancelled, response.MsgInterrupted)
	case errors.Is(err, storage.ErrConstraint):
		slog.Warn("Constraint violation", "entity", entity, "op", op, "error", err)
		return response.Error[T](response.KindConflict, ConflictMessage(entity))
	case errors.Is(err, storage.ErrNotFound) && op != OpSave:
		return response.Error[T](response.KindNotFound, NotFoundMessage(entity))
	default:
		slog.Error("Storage fault", "entity", entity, "op", op, "error", err)
		return response.Error[T](response.KindInternal, UnknownMessage(entity))
	}
}

// outcome labels r for metrics.
func outcome[T any](r response.Response[T]) string {
	if r.Failed() {
		return r.Kind().String()
	}
	return metrics.OutcomeSuccess
}

// mutate runs call as a mutation stream. A zero result means nothing was
// written and becomes a KindNotFound error.
func mutate[T comparable](ctx context.Context, m *metrics.Metrics, entity, op string, call func(ctx context.Context) (T, error)) <-chan response.Response[T] {
	return response.Once(ctx, func(ctx context.Context) response.Response[T] {
		start := time.Now()
		r := func() response.Response[T] {
			result, err := call(ctx)
			if err != nil {
				return classify[T](entity, op, err)
			}
			var zero T
			if result == zero {
				slog.Warn("Mutation affected no rows", "entity", entity, "op", op)
				return response.Error[T](response.KindNotFound, ZeroRowsMessage(entity, op))
			}
			return response.Success(result)
		}()
		m.Observe(strings.ToLower(entity), op, outcome(r), time.Since(start))
		return r
	})
}

// find runs a one-shot lookup.
func find[T any](ctx context.Context, m *metrics.Metrics, entity string, call func(ctx context.Context) (T, error)) <-chan response.Response[T] {
	return response.Once(ctx, func(ctx context.Context) response.Response[T] {
		start := time.Now()
		var r response.Response[T]
		if value, err := call(ctx); err != nil {
			r = classify[T](entity, OpFind, err)
		} else {
			r = response.Success(value)
		}
		m.Observe(strings.ToLower(entity), OpFind, outcome(r), time.Since(start))
		return r
	})
}

// watch turns a live query into a response stream: Loading, then one
// Success per snapshot. A read fault ends the stream with an Error.
func watch[T any](ctx context.Context, m *metrics.Metrics, entity string, src <-chan storage.Snapshot[T]) <-chan response.Response[T] {
	out := make(chan response.Response[T], 1)
	out <- response.Loading[T]()

	closed := m.StreamOpened(strings.ToLower(entity))
	go func() {
		defer close(out)
		defer closed()

		for snap := range src {
			r := response.Success(snap.Value)
			if snap.Err != nil {
				r = classify[T](entity, OpWatch, snap.Err)
				m.Observe(strings.ToLower(entity), OpWatch, outcome(r), 0)
			}

			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
			if r.Failed() {
				return
			}
		}
	}()

	return out
}
