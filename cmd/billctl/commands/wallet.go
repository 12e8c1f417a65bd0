package commands

import (
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/billwise/pkg/api"
)

func walletCmd(c *clients) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage wallets",
	}
	cmd.AddCommand(walletAddCmd(c), walletListCmd(c), walletEditCmd(c), walletDeleteCmd(c))
	return cmd
}

func walletAddCmd(c *clients) *cobra.Command {
	var balance string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a wallet with an opening balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(balance)
			if err != nil {
				return err
			}
			resp, err := c.wallets.SaveWallet(cmd.Context(), connect.NewRequest(&api.SaveWalletRequest{
				Wallet: api.Wallet{Title: args[0], Balance: amount},
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wallet %d created\n", resp.Msg.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&balance, "balance", "0", "opening balance")
	return cmd
}

// edit <id> <title> <balance>: bill entries are kept, the opening entry absorbs the difference.
func walletEditCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title> <balance>",
		Short: "Rename a wallet and set its balance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			if _, err := c.wallets.UpdateWallet(cmd.Context(), connect.NewRequest(&api.UpdateWalletRequest{
				Wallet: api.Wallet{ID: id, Title: args[1], Balance: amount},
			})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wallet %d updated\n", id)
			return nil
		},
	}
}

func walletListCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wallets with their cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := c.wallets.WatchWallets(cmd.Context(), connect.NewRequest(&api.WatchWalletsRequest{}))
			if err != nil {
				return err
			}
			wallets, err := firstResult(stream)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tBALANCE\tCARDS")
			for _, wc := range wallets {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", wc.Wallet.ID, wc.Wallet.Title, brl(wc.Wallet.Balance), len(wc.Cards))
				for _, card := range wc.Cards {
					fmt.Fprintf(w, "\t  card %d %s\tavailable %s\t\n", card.ID, card.Title, brl(card.Available))
				}
			}
			return w.Flush()
		},
	}
}

func walletDeleteCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a wallet with its cards and bills",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.wallets.DeleteWallet(cmd.Context(), connect.NewRequest(&api.DeleteRequest{ID: id})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wallet %d deleted\n", id)
			return nil
		},
	}
}

func cardCmd(c *clients) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage wallet cards",
	}

	var limit, spent string
	add := &cobra.Command{
		Use:   "add <wallet-id> <title>",
		Short: "Add a card to a wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			walletID, err := parseID(args[0])
			if err != nil {
				return err
			}
			limitAmount, err := parseAmount(limit)
			if err != nil {
				return err
			}
			spentAmount, err := parseAmount(spent)
			if err != nil {
				return err
			}
			resp, err := c.wallets.SaveCard(cmd.Context(), connect.NewRequest(&api.SaveCardRequest{
				Card: api.WalletCard{WalletID: walletID, Title: args[1], Limit: limitAmount, Spent: spentAmount},
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "card %d created\n", resp.Msg.ID)
			return nil
		},
	}
	add.Flags().StringVar(&limit, "limit", "0", "credit limit")
	add.Flags().StringVar(&spent, "spent", "0", "amount already spent")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.wallets.DeleteCard(cmd.Context(), connect.NewRequest(&api.DeleteRequest{ID: id})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "card %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}
