package commands

import (
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/pkg/api"
)

// login --name <owner> --passphrase <passphrase>: print a bearer token.
func loginCmd(c *clients) *cobra.Command {
	var name, passphrase string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange the owner passphrase for a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.auth.Login(cmd.Context(), connect.NewRequest(&api.LoginRequest{
				Name:       name,
				Passphrase: passphrase,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Msg.Token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", resp.Msg.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "owner", "owner name")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "owner passphrase")
	_ = cmd.MarkFlagRequired("passphrase")
	return cmd
}

// hash-passphrase <passphrase>: print the hash for AUTH_PASSPHRASE_HASH.
func hashPassphraseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passphrase <passphrase>",
		Short: "Hash a passphrase for the server auth configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassphrase(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
