package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/models"
	"github.com/mmynk/billwise/internal/response"
	"github.com/mmynk/billwise/internal/storage"
	"github.com/mmynk/billwise/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// drain collects a finite stream until it closes.
func drain[T any](t *testing.T, ch <-chan response.Response[T]) []response.Response[T] {
	t.Helper()
	var got []response.Response[T]
	timeout := time.After(2 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, r)
		case <-timeout:
			t.Fatalf("stream did not close, got %v", got)
		}
	}
}

// recv reads the next emission of an open stream.
func recv[T any](t *testing.T, ch <-chan response.Response[T]) response.Response[T] {
	t.Helper()
	select {
	case r, ok := <-ch:
		if !ok {
			t.Fatal("stream closed")
		}
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for response")
	}
	return response.Response[T]{}
}

// terminal asserts a mutation stream is Loading then exactly one terminal value.
func terminal[T any](t *testing.T, ch <-chan response.Response[T]) response.Response[T] {
	t.Helper()
	got := drain(t, ch)
	if len(got) != 2 {
		t.Fatalf("expected 2 emissions, got %v", got)
	}
	if got[0].State() != response.StateLoading {
		t.Errorf("first emission = %v, want Loading", got[0])
	}
	return got[1]
}

func wantError[T any](t *testing.T, r response.Response[T], kind response.Kind, message string) {
	t.Helper()
	if !r.Failed() {
		t.Fatalf("expected error, got %v", r)
	}
	if r.Kind() != kind || r.Message() != message {
		t.Errorf("got %s %q, want %s %q", r.Kind(), r.Message(), kind, message)
	}
}

func saveWallet(t *testing.T, repo *WalletRepository, title string) int64 {
	t.Helper()
	r := terminal(t, repo.Save(context.Background(), &models.Wallet{Title: title}))
	id, ok := r.Value()
	if !ok {
		t.Fatalf("Save wallet failed: %v", r)
	}
	return id
}

func TestBillRepository(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	bills := NewBillRepository(store, nil)
	walletID := saveWallet(t, NewWalletRepository(store, nil), "Main")

	bill := &models.Bill{ID: "b-1", Type: models.BillTypeExpense, Value: decimal.NewFromInt(10), Title: "Lunch", WalletID: walletID}

	t.Run("Save emits the ID", func(t *testing.T) {
		r := terminal(t, bills.Save(ctx, bill))
		if id, ok := r.Value(); !ok || id != "b-1" {
			t.Errorf("Save = %v, want Success(b-1)", r)
		}
	})

	t.Run("Save duplicate is a conflict", func(t *testing.T) {
		r := terminal(t, bills.Save(ctx, bill))
		wantError(t, r, response.KindConflict, "Bill: unique constraint violation")
	})

	t.Run("Update missing bill affects nothing", func(t *testing.T) {
		missing := *bill
		missing.ID = "missing"
		r := terminal(t, bills.Update(ctx, &missing))
		wantError(t, r, response.KindNotFound, "Bill: update failed")
	})

	t.Run("Find missing bill", func(t *testing.T) {
		r := terminal(t, bills.Find(ctx, "missing"))
		wantError(t, r, response.KindNotFound, "Bill: not found")
	})

	t.Run("Delete twice", func(t *testing.T) {
		first := terminal(t, bills.Delete(ctx, bill))
		if n, ok := first.Value(); !ok || n != 1 {
			t.Errorf("first Delete = %v, want Success(1)", first)
		}
		second := terminal(t, bills.Delete(ctx, bill))
		wantError(t, second, response.KindNotFound, "Bill: delete failed")
	})
}

func TestWatchStream(t *testing.T) {
	store := newTestStore(t)
	bills := NewBillRepository(store, nil)
	walletID := saveWallet(t, NewWalletRepository(store, nil), "Main")

	ctx, cancel := context.WithCancel(context.Background())
	ch := bills.All(ctx)

	if r := recv(t, ch); r.State() != response.StateLoading {
		t.Fatalf("first emission = %v, want Loading", r)
	}
	empty := recv(t, ch)
	if v, ok := empty.Value(); !ok || len(v) != 0 {
		t.Fatalf("second emission = %v, want Success([])", empty)
	}

	bill := &models.Bill{ID: "b-1", Type: models.BillTypeIncome, Value: decimal.NewFromInt(1), WalletID: walletID}
	terminal(t, bills.Save(context.Background(), bill))

	next := recv(t, ch)
	if v, ok := next.Value(); !ok || len(v) != 1 {
		t.Errorf("after save = %v, want one bill", next)
	}

	cancel()
	for range ch {
	}
}

func TestWatchDeletedWallet(t *testing.T) {
	store := newTestStore(t)
	wallets := NewWalletRepository(store, nil)
	id := saveWallet(t, wallets, "Short lived")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := wallets.Watch(ctx, id)
	recv(t, ch)
	recv(t, ch)

	terminal(t, wallets.Delete(context.Background(), &models.Wallet{ID: id}))

	r := recv(t, ch)
	wantError(t, r, response.KindNotFound, "Wallet: not found")
	if _, ok := <-ch; ok {
		t.Error("expected stream to close after error")
	}
}

// faultyBills fails every call with a non-constraint error.
type faultyBills struct {
	storage.BillStore
}

var errDisk = errors.New("disk I/O error")

func (faultyBills) SaveBill(context.Context, *models.Bill) (string, error) {
	return "", errDisk
}

func (faultyBills) WatchBills(context.Context) <-chan storage.Snapshot[[]models.Bill] {
	ch := make(chan storage.Snapshot[[]models.Bill], 1)
	ch <- storage.Snapshot[[]models.Bill]{Err: errDisk}
	close(ch)
	return ch
}

func TestUnknownFaults(t *testing.T) {
	reg := prometheus.NewRegistry()
	bills := NewBillRepository(faultyBills{}, metrics.New(reg))
	ctx := context.Background()

	t.Run("mutation", func(t *testing.T) {
		r := terminal(t, bills.Save(ctx, &models.Bill{ID: "x"}))
		wantError(t, r, response.KindInternal, "Bill: unknown error, contact administrator")
	})

	t.Run("query read fault is terminal", func(t *testing.T) {
		got := drain(t, bills.All(ctx))
		if len(got) != 2 || got[0].State() != response.StateLoading {
			t.Fatalf("got %v, want Loading then Error", got)
		}
		wantError(t, got[1], response.KindInternal, "Bill: unknown error, contact administrator")
	})

	t.Run("metrics recorded", func(t *testing.T) {
		n, err := testutil.GatherAndCount(reg, "billwise_repository_operations_total")
		if err != nil {
			t.Fatalf("GatherAndCount failed: %v", err)
		}
		if n != 2 {
			t.Errorf("operation series = %d, want 2", n)
		}
	})
}

func TestCancelledMutation(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := terminal(t, NewWalletRepository(store, nil).Save(ctx, &models.Wallet{Title: "late"}))
	wantError(t, r, response.KindCancelled, response.MsgInterrupted)
}

// failingTx reports a commit failure after fn succeeded.
type failingTx struct{}

var errCommit = errors.New("database is locked")

func (failingTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return errCommit
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("fn error is returned unchanged and rolls back", func(t *testing.T) {
		store := newTestStore(t)
		wallets := NewWalletRepository(store, nil)
		uow := NewUnitOfWork(store)
		boom := errors.New("boom")

		err := uow.Within(ctx, func(ctx context.Context) error {
			if r := response.Await(ctx, wallets.Save(ctx, &models.Wallet{Title: "tx"})); r.Failed() {
				t.Fatalf("Save failed inside tx: %v", r)
			}
			return boom
		})
		if err != boom {
			t.Fatalf("Within = %v, want boom", err)
		}

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		ch := wallets.All(watchCtx)
		recv(t, ch)
		if v, _ := recv(t, ch).Value(); len(v) != 0 {
			t.Errorf("expected rollback, found wallets %+v", v)
		}
	})

	t.Run("commit failure is a fault", func(t *testing.T) {
		err := NewUnitOfWork(failingTx{}).Within(ctx, func(context.Context) error { return nil })

		var fault *Fault
		if !errors.As(err, &fault) {
			t.Fatalf("Within = %v, want *Fault", err)
		}
		if fault.Error() != "Transaction: unknown error, contact administrator" {
			t.Errorf("message = %q", fault.Error())
		}
		if !errors.Is(err, errCommit) {
			t.Error("expected fault to wrap the commit error")
		}
	})
	t.Run("cancelled context never begins", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		ran := false
		err := NewUnitOfWork(newTestStore(t)).Within(cancelled, func(context.Context) error {
			ran = true
			return nil
		})
		if ran {
			t.Error("fn ran under a cancelled context")
		}

		var fault *Fault
		if !errors.As(err, &fault) {
			t.Fatalf("Within = %v, want *Fault", err)
		}
		if fault.Error() != response.MsgInterrupted {
			t.Errorf("message = %q, want %q", fault.Error(), response.MsgInterrupted)
		}
		if !errors.Is(err, context.Canceled) {
			t.Error("expected fault to wrap context.Canceled")
		}
	})
}
