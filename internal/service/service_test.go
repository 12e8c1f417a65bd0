package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/internal/middleware"
	"github.com/mmynk/billwise/internal/repository"
	"github.com/mmynk/billwise/internal/storage/sqlite"
	"github.com/mmynk/billwise/internal/usecase"
	"github.com/mmynk/billwise/pkg/api"
)

const testPassphrase = "correct horse battery"

type testClients struct {
	url     string
	bills   *api.BillServiceClient
	wallets *api.WalletServiceClient
	subs    *api.SubscriptionServiceClient
	auth    *api.AuthServiceClient
}

// setupTestServer serves every service over a fresh database. A non-nil
// jwtManager puts all procedures except Login behind a bearer token.
func setupTestServer(t *testing.T, jwtManager *auth.JWTManager) *testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	billRepo := repository.NewBillRepository(store, nil)
	walletRepo := repository.NewWalletRepository(store, nil)
	cardRepo := repository.NewWalletCardRepository(store, nil)
	subRepo := repository.NewSubscriptionRepository(store, nil)
	uow := repository.NewUnitOfWork(store)

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	mux := http.NewServeMux()
	if jwtManager != nil {
		interceptors = append([]connect.Interceptor{middleware.RequireAuth(jwtManager, api.AuthServiceLoginProcedure)}, interceptors...)

		hash, err := auth.HashPassphrase(testPassphrase)
		if err != nil {
			t.Fatalf("failed to hash passphrase: %v", err)
		}
		authenticator, err := auth.NewPassphraseAuthenticator("owner", hash)
		if err != nil {
			t.Fatalf("failed to create authenticator: %v", err)
		}
		mux.Handle(api.NewAuthServiceHandler(
			NewAuthService(authenticator, jwtManager, slog.Default()),
			connect.WithInterceptors(interceptors...),
		))
	}
	opts := connect.WithInterceptors(interceptors...)

	mux.Handle(api.NewBillServiceHandler(NewBillService(usecase.NewBillUseCase(billRepo, walletRepo, uow, decimal.Zero)), opts))
	mux.Handle(api.NewWalletServiceHandler(NewWalletService(usecase.NewWalletUseCase(walletRepo, cardRepo, uow, decimal.Zero)), opts))
	mux.Handle(api.NewSubscriptionServiceHandler(NewSubscriptionService(usecase.NewSubscriptionUseCase(subRepo, decimal.Zero)), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return newTestClients(server.URL)
}

func newTestClients(url string, opts ...connect.ClientOption) *testClients {
	return &testClients{
		url:     url,
		bills:   api.NewBillServiceClient(http.DefaultClient, url, opts...),
		wallets: api.NewWalletServiceClient(http.DefaultClient, url, opts...),
		subs:    api.NewSubscriptionServiceClient(http.DefaultClient, url, opts...),
		auth:    api.NewAuthServiceClient(http.DefaultClient, url, opts...),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// receive reads envelopes until the first non-loading one and returns
// everything read.
func receive[T any](t *testing.T, stream *connect.ServerStreamForClient[api.Envelope[T]]) []api.Envelope[T] {
	t.Helper()
	var got []api.Envelope[T]
	for stream.Receive() {
		env := *stream.Msg()
		got = append(got, env)
		if env.State != api.StateLoading {
			return got
		}
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	t.Fatalf("stream ended after %v", got)
	return nil
}

func assertCode(t *testing.T, err error, code connect.Code, message string) {
	t.Helper()
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error %v, got %v", code, err)
	}
	if connectErr.Code() != code {
		t.Errorf("expected code %v, got %v (%s)", code, connectErr.Code(), connectErr.Message())
	}
	if message != "" && connectErr.Message() != message {
		t.Errorf("expected message %q, got %q", message, connectErr.Message())
	}
}

func saveWallet(t *testing.T, c *testClients, title, balance string) int64 {
	t.Helper()
	resp, err := c.wallets.SaveWallet(context.Background(), connect.NewRequest(&api.SaveWalletRequest{
		Wallet: api.Wallet{Title: title, Balance: dec(balance)},
	}))
	if err != nil {
		t.Fatalf("SaveWallet failed: %v", err)
	}
	return resp.Msg.ID
}

func TestPaidBillAdjustsWallet(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	walletID := saveWallet(t, c, "Conta", "1000")

	resp, err := c.bills.SaveBill(ctx, connect.NewRequest(&api.SaveBillRequest{Bill: api.Bill{
		Type:     "expense",
		Value:    dec("250.50"),
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Paid:     true,
		Title:    "Mercado",
		Tags:     []string{"casa"},
		WalletID: walletID,
	}}))
	if err != nil {
		t.Fatalf("SaveBill failed: %v", err)
	}
	if resp.Msg.ID == "" {
		t.Fatal("expected generated bill id")
	}

	stream, err := c.wallets.WatchWallets(ctx, connect.NewRequest(&api.WatchWalletsRequest{}))
	if err != nil {
		t.Fatalf("WatchWallets failed: %v", err)
	}
	defer stream.Close()

	got := receive(t, stream)
	if got[0].State != api.StateLoading {
		t.Errorf("expected loading first, got %q", got[0].State)
	}
	last := got[len(got)-1]
	if last.State != api.StateSuccess || last.Value == nil {
		t.Fatalf("expected success, got %+v", last)
	}
	wallets := *last.Value
	if len(wallets) != 1 {
		t.Fatalf("expected 1 wallet, got %d", len(wallets))
	}
	if !wallets[0].Wallet.Balance.Equal(dec("749.50")) {
		t.Errorf("expected balance 749.50, got %s", wallets[0].Wallet.Balance)
	}
	if len(wallets[0].Wallet.Entries) != 2 {
		t.Errorf("expected opening and bill entries, got %+v", wallets[0].Wallet.Entries)
	}
}

func TestBillErrors(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx := context.Background()
	walletID := saveWallet(t, c, "Conta", "100")

	tests := []struct {
		name    string
		bill    api.Bill
		code    connect.Code
		message string
	}{
		{
			name:    "insufficient funds",
			bill:    api.Bill{Type: "expense", Value: dec("100.01"), Paid: true, WalletID: walletID},
			code:    connect.CodeInvalidArgument,
			message: usecase.MsgInsufficientFunds,
		},
		{
			name:    "invalid type",
			bill:    api.Bill{Type: "transfer", Value: dec("1"), WalletID: walletID},
			code:    connect.CodeInvalidArgument,
			message: usecase.MsgInvalidType,
		},
		{
			name:    "value too high",
			bill:    api.Bill{Type: "income", Value: dec("10000000"), WalletID: walletID},
			code:    connect.CodeInvalidArgument,
			message: "Valor muito alto (max. R$9.999.999,99).",
		},
		{
			name:    "missing wallet",
			bill:    api.Bill{Type: "income", Value: dec("1"), WalletID: walletID + 100},
			code:    connect.CodeAlreadyExists,
			message: repository.ConflictMessage(repository.EntityBill),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.bills.SaveBill(ctx, connect.NewRequest(&api.SaveBillRequest{Bill: tt.bill}))
			assertCode(t, err, tt.code, tt.message)
		})
	}
}

func TestDeleteBillTwice(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx := context.Background()
	walletID := saveWallet(t, c, "Conta", "0")

	saved, err := c.bills.SaveBill(ctx, connect.NewRequest(&api.SaveBillRequest{Bill: api.Bill{
		Type: "income", Value: dec("10"), Date: time.Now().UTC(), WalletID: walletID,
	}}))
	if err != nil {
		t.Fatalf("SaveBill failed: %v", err)
	}

	deleted, err := c.bills.DeleteBill(ctx, connect.NewRequest(&api.DeleteBillRequest{ID: saved.Msg.ID}))
	if err != nil {
		t.Fatalf("DeleteBill failed: %v", err)
	}
	if deleted.Msg.Rows != 1 {
		t.Errorf("expected 1 row, got %d", deleted.Msg.Rows)
	}

	_, err = c.bills.DeleteBill(ctx, connect.NewRequest(&api.DeleteBillRequest{ID: saved.Msg.ID}))
	assertCode(t, err, connect.CodeNotFound, repository.ZeroRowsMessage(repository.EntityBill, "delete"))
}

func TestWatchMissingWallet(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := c.wallets.WatchWallet(ctx, connect.NewRequest(&api.WatchWalletRequest{ID: 42}))
	if err != nil {
		t.Fatalf("WatchWallet failed: %v", err)
	}
	defer stream.Close()

	got := receive(t, stream)
	last := got[len(got)-1]
	if last.State != api.StateError {
		t.Fatalf("expected error envelope, got %+v", last)
	}
	if last.Kind != "not_found" || last.Message != repository.NotFoundMessage(repository.EntityWallet) {
		t.Errorf("unexpected error envelope %+v", last)
	}
	if stream.Receive() {
		t.Errorf("expected stream to end, got %+v", stream.Msg())
	}
	if err := stream.Err(); err != nil {
		t.Errorf("expected clean end, got %v", err)
	}
}

func TestSearchBills(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	walletID := saveWallet(t, c, "Conta", "0")

	for _, title := range []string{"Aluguel", "Mercado", "aluguel garagem"} {
		if _, err := c.bills.SaveBill(ctx, connect.NewRequest(&api.SaveBillRequest{Bill: api.Bill{
			Type: "expense", Value: dec("5"), Date: time.Now().UTC(), Title: title, WalletID: walletID,
		}})); err != nil {
			t.Fatalf("SaveBill(%s) failed: %v", title, err)
		}
	}

	stream, err := c.bills.SearchBills(ctx, connect.NewRequest(&api.SearchBillsRequest{Needle: "ALUGUEL"}))
	if err != nil {
		t.Fatalf("SearchBills failed: %v", err)
	}
	defer stream.Close()

	got := receive(t, stream)
	last := got[len(got)-1]
	if last.State != api.StateSuccess {
		t.Fatalf("expected success, got %+v", last)
	}
	if len(*last.Value) != 2 {
		t.Errorf("expected 2 matches, got %d", len(*last.Value))
	}
}

func TestWatchBillsByDateRejectsInvertedRange(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	stream, err := c.bills.WatchBillsByDate(ctx, connect.NewRequest(&api.WatchBillsByDateRequest{
		Start: now,
		End:   now.Add(-time.Hour),
	}))
	if err != nil {
		t.Fatalf("WatchBillsByDate failed: %v", err)
	}
	defer stream.Close()

	if stream.Receive() {
		t.Fatalf("expected no messages, got %+v", stream.Msg())
	}
	assertCode(t, stream.Err(), connect.CodeInvalidArgument, usecase.MsgInvalidPeriod)
}

func TestUpdateBillRequiresID(t *testing.T) {
	c := setupTestServer(t, nil)
	walletID := saveWallet(t, c, "Conta", "0")

	_, err := c.bills.UpdateBill(context.Background(), connect.NewRequest(&api.UpdateBillRequest{
		Bill: api.Bill{Type: "expense", Value: decimal.NewFromInt(1), Title: "Sem id", WalletID: walletID},
	}))
	assertCode(t, err, connect.CodeInvalidArgument, usecase.MsgIDRequired)
}

func TestWalletCards(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx := context.Background()
	walletID := saveWallet(t, c, "Conta", "0")

	_, err := c.wallets.SaveCard(ctx, connect.NewRequest(&api.SaveCardRequest{Card: api.WalletCard{
		WalletID: walletID + 1, Title: "Visa", Limit: dec("1000"),
	}}))
	assertCode(t, err, connect.CodeAlreadyExists, repository.ConflictMessage(repository.EntityWalletCard))

	_, err = c.wallets.SaveCard(ctx, connect.NewRequest(&api.SaveCardRequest{Card: api.WalletCard{
		WalletID: walletID, Title: " ", Limit: dec("1000"),
	}}))
	assertCode(t, err, connect.CodeInvalidArgument, usecase.MsgTitleRequired)

	saved, err := c.wallets.SaveCard(ctx, connect.NewRequest(&api.SaveCardRequest{Card: api.WalletCard{
		WalletID: walletID, Title: "Visa", Limit: dec("1000"), Spent: dec("150"),
	}}))
	if err != nil {
		t.Fatalf("SaveCard failed: %v", err)
	}

	wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	stream, err := c.wallets.WatchCards(wctx, connect.NewRequest(&api.WatchCardsRequest{WalletID: walletID}))
	if err != nil {
		t.Fatalf("WatchCards failed: %v", err)
	}
	defer stream.Close()

	got := receive(t, stream)
	cards := *got[len(got)-1].Value
	if len(cards) != 1 || cards[0].ID != saved.Msg.ID {
		t.Fatalf("unexpected cards %+v", cards)
	}
	if !cards[0].Available.Equal(dec("850")) {
		t.Errorf("expected 850 available, got %s", cards[0].Available)
	}
}

func TestSubscriptions(t *testing.T) {
	c := setupTestServer(t, nil)
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := c.subs.SaveSubscription(ctx, connect.NewRequest(&api.SaveSubscriptionRequest{Subscription: api.Subscription{
		Title: "Streaming", StartDate: start, DueDate: start.AddDate(0, 1, 0), Price: dec("39.90"), Months: 0,
	}}))
	assertCode(t, err, connect.CodeInvalidArgument, usecase.MsgInvalidDuration)

	saved, err := c.subs.SaveSubscription(ctx, connect.NewRequest(&api.SaveSubscriptionRequest{Subscription: api.Subscription{
		Title: "Streaming", StartDate: start, DueDate: start.AddDate(0, 1, 0), Price: dec("39.90"), Months: 1,
	}}))
	if err != nil {
		t.Fatalf("SaveSubscription failed: %v", err)
	}

	deleted, err := c.subs.DeleteSubscription(ctx, connect.NewRequest(&api.DeleteRequest{ID: saved.Msg.ID}))
	if err != nil {
		t.Fatalf("DeleteSubscription failed: %v", err)
	}
	if deleted.Msg.Rows != 1 {
		t.Errorf("expected 1 row, got %d", deleted.Msg.Rows)
	}
}

func TestAuthFlow(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	c := setupTestServer(t, jwtManager)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("rejects anonymous calls", func(t *testing.T) {
		_, err := c.wallets.SaveWallet(ctx, connect.NewRequest(&api.SaveWalletRequest{
			Wallet: api.Wallet{Title: "Conta", Balance: dec("1")},
		}))
		assertCode(t, err, connect.CodeUnauthenticated, "")

		stream, err := c.wallets.WatchWallets(ctx, connect.NewRequest(&api.WatchWalletsRequest{}))
		if err != nil {
			t.Fatalf("WatchWallets failed: %v", err)
		}
		defer stream.Close()
		if stream.Receive() {
			t.Fatalf("expected no messages, got %+v", stream.Msg())
		}
		assertCode(t, stream.Err(), connect.CodeUnauthenticated, "")
	})

	t.Run("rejects bad credentials", func(t *testing.T) {
		_, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Name: "owner", Passphrase: "wrong passphrase"}))
		assertCode(t, err, connect.CodeUnauthenticated, "")

		_, err = c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Name: "owner"}))
		assertCode(t, err, connect.CodeInvalidArgument, "")
	})

	t.Run("token grants access", func(t *testing.T) {
		login, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Name: "owner", Passphrase: testPassphrase}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if login.Msg.Token == "" || !login.Msg.ExpiresAt.After(time.Now()) {
			t.Fatalf("unexpected login response %+v", login.Msg)
		}

		authed := newTestClients(c.url, connect.WithInterceptors(middleware.BearerToken(login.Msg.Token)))
		if _, err := authed.wallets.SaveWallet(ctx, connect.NewRequest(&api.SaveWalletRequest{
			Wallet: api.Wallet{Title: "Conta", Balance: dec("1")},
		})); err != nil {
			t.Fatalf("SaveWallet failed: %v", err)
		}

		stream, err := authed.wallets.WatchWallets(ctx, connect.NewRequest(&api.WatchWalletsRequest{}))
		if err != nil {
			t.Fatalf("WatchWallets failed: %v", err)
		}
		defer stream.Close()
		got := receive(t, stream)
		if last := got[len(got)-1]; last.State != api.StateSuccess || len(*last.Value) != 1 {
			t.Errorf("unexpected envelope %+v", last)
		}
	})
}
