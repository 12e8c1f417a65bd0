package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/internal/config"
	"github.com/mmynk/billwise/internal/metrics"
	"github.com/mmynk/billwise/internal/middleware"
	"github.com/mmynk/billwise/internal/repository"
	"github.com/mmynk/billwise/internal/service"
	"github.com/mmynk/billwise/internal/storage/sqlite"
	"github.com/mmynk/billwise/internal/usecase"
	"github.com/mmynk/billwise/pkg/api"
	"github.com/mmynk/billwise/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	m := metrics.New(prometheus.DefaultRegisterer)

	billRepo := repository.NewBillRepository(store, m)
	walletRepo := repository.NewWalletRepository(store, m)
	cardRepo := repository.NewWalletCardRepository(store, m)
	subRepo := repository.NewSubscriptionRepository(store, m)
	uow := repository.NewUnitOfWork(store)

	bills := usecase.NewBillUseCase(billRepo, walletRepo, uow, cfg.Limits.Max)
	wallets := usecase.NewWalletUseCase(walletRepo, cardRepo, uow, cfg.Limits.Max)
	subs := usecase.NewSubscriptionUseCase(subRepo, cfg.Limits.Max)

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	mux := http.NewServeMux()

	if cfg.Auth.Enabled() {
		authenticator, err := auth.NewPassphraseAuthenticator(cfg.Auth.Owner, cfg.Auth.PassphraseHash)
		if err != nil {
			return fmt.Errorf("failed to initialize auth: %w", err)
		}
		jwtManager := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenDuration)

		// Auth runs before logging so that logged calls carry the subject.
		interceptors = append([]connect.Interceptor{
			middleware.RequireAuth(jwtManager, api.AuthServiceLoginProcedure),
		}, interceptors...)

		mux.Handle(api.NewAuthServiceHandler(
			service.NewAuthService(authenticator, jwtManager, slog.Default()),
			connect.WithInterceptors(interceptors...),
		))
		slog.Info("Token auth enabled", "owner", cfg.Auth.Owner, "token_ttl", cfg.Auth.TokenDuration)
	} else {
		slog.Warn("Token auth disabled, set AUTH_SECRET to enable it")
	}

	opts := connect.WithInterceptors(interceptors...)
	mux.Handle(api.NewBillServiceHandler(service.NewBillService(bills), opts))
	mux.Handle(api.NewWalletServiceHandler(service.NewWalletService(wallets), opts))
	mux.Handle(api.NewSubscriptionServiceHandler(service.NewSubscriptionService(subs), opts))
	mux.Handle("/metrics", promhttp.Handler())

	// Wrap with h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(middleware.HTTPLogging(middleware.CORS(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("Shutting down server", "signal", sig.String())
	}

	// Live query streams never end on their own, so shutdown cuts them off
	// after the grace period.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		slog.Warn("Closing open streams", "error", err)
		srv.Close()
	}
	slog.Info("Server exited")
	return nil
}
