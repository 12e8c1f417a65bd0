// Package commands implements billctl, a command line client for the
// billwise server.
package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/billwise/internal/middleware"
	"github.com/mmynk/billwise/pkg/api"
)

const defaultServer = "http://localhost:8080"

// clients is filled in before any command runs.
type clients struct {
	auth    *api.AuthServiceClient
	bills   *api.BillServiceClient
	wallets *api.WalletServiceClient
	subs    *api.SubscriptionServiceClient
}

// Execute runs billctl until it finishes or gets interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		server string
		token  string
		c      clients
	)

	root := &cobra.Command{
		Use:           "billctl",
		Short:         "Manage bills, wallets and subscriptions on a billwise server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = envOr("BILLWISE_SERVER", defaultServer)
			}
			if token == "" {
				token = os.Getenv("BILLWISE_TOKEN")
			}
			opts := connect.WithInterceptors(middleware.BearerToken(token))
			c = clients{
				auth:    api.NewAuthServiceClient(http.DefaultClient, server, opts),
				bills:   api.NewBillServiceClient(http.DefaultClient, server, opts),
				wallets: api.NewWalletServiceClient(http.DefaultClient, server, opts),
				subs:    api.NewSubscriptionServiceClient(http.DefaultClient, server, opts),
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&server, "server", "", "server base URL (default $BILLWISE_SERVER or "+defaultServer+")")
	root.PersistentFlags().StringVar(&token, "token", "", "bearer token (default $BILLWISE_TOKEN)")

	root.AddCommand(
		loginCmd(&c),
		hashPassphraseCmd(),
		walletCmd(&c),
		cardCmd(&c),
		billCmd(&c),
		subCmd(&c),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
