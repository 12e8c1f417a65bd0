package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/billwise/pkg/api"
)

func billCmd(c *clients) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Manage bills",
	}
	cmd.AddCommand(billAddCmd(c), billListCmd(c), billSearchCmd(c), billWatchCmd(c), billDeleteCmd(c))
	return cmd
}

func billAddCmd(c *clients) *cobra.Command {
	var (
		billType    string
		value       string
		date        string
		walletID    int64
		cardID      int64
		paid        bool
		origin      string
		description string
		category    string
		tags        []string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Record a bill; a paid bill moves its wallet balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(value)
			if err != nil {
				return err
			}
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			bill := api.Bill{
				Type:        billType,
				Value:       amount,
				Date:        day,
				Paid:        paid,
				Origin:      origin,
				Title:       args[0],
				Description: description,
				Category:    category,
				Tags:        tags,
				WalletID:    walletID,
			}
			if cardID != 0 {
				bill.CardID = &cardID
			}

			resp, err := c.bills.SaveBill(cmd.Context(), connect.NewRequest(&api.SaveBillRequest{Bill: bill}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bill %s created\n", resp.Msg.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&billType, "type", "expense", "income or expense")
	cmd.Flags().StringVar(&value, "value", "", "amount")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().Int64Var(&walletID, "wallet", 0, "wallet id")
	cmd.Flags().Int64Var(&cardID, "card", 0, "card id")
	cmd.Flags().BoolVar(&paid, "paid", false, "post the bill to its wallet")
	cmd.Flags().StringVar(&origin, "origin", "", "origin")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag (repeatable)")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("wallet")
	return cmd
}

func billListCmd(c *clients) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bills, optionally within a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				stream *connect.ServerStreamForClient[api.BillsEnvelope]
				err    error
			)
			if from == "" && to == "" {
				stream, err = c.bills.WatchBills(cmd.Context(), connect.NewRequest(&api.WatchBillsRequest{}))
			} else {
				start, end, rangeErr := parseRange(from, to)
				if rangeErr != nil {
					return rangeErr
				}
				stream, err = c.bills.WatchBillsByDate(cmd.Context(), connect.NewRequest(&api.WatchBillsByDateRequest{
					Start: start,
					End:   end,
				}))
			}
			if err != nil {
				return err
			}
			bills, err := firstResult(stream)
			if err != nil {
				return err
			}
			return printBills(cmd.OutOrStdout(), bills)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	return cmd
}

func billSearchCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find bills whose title, origin or description contains text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := c.bills.SearchBills(cmd.Context(), connect.NewRequest(&api.SearchBillsRequest{Needle: args[0]}))
			if err != nil {
				return err
			}
			bills, err := firstResult(stream)
			if err != nil {
				return err
			}
			return printBills(cmd.OutOrStdout(), bills)
		},
	}
}

// watch: reprint the bill list on every change until interrupted.
func billWatchCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the bill list on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := c.bills.WatchBills(cmd.Context(), connect.NewRequest(&api.WatchBillsRequest{}))
			if err != nil {
				return err
			}
			defer stream.Close()

			out := cmd.OutOrStdout()
			for stream.Receive() {
				env := stream.Msg()
				switch env.State {
				case api.StateLoading:
					fmt.Fprintln(out, "loading...")
				case api.StateSuccess:
					if err := printBills(out, *env.Value); err != nil {
						return err
					}
					fmt.Fprintln(out)
				case api.StateError:
					return envelopeError(env.Kind, env.Message)
				}
			}
			if cmd.Context().Err() != nil {
				return nil
			}
			return stream.Err()
		},
	}
}

func billDeleteCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bill; the wallet balance is not changed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.bills.DeleteBill(cmd.Context(), connect.NewRequest(&api.DeleteBillRequest{ID: args[0]})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bill %s deleted\n", args[0])
			return nil
		},
	}
}

func printBills(out io.Writer, bills []api.Bill) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tVALUE\tPAID\tTITLE\tTAGS")
	for _, b := range bills {
		status := "no"
		switch {
		case b.Paid:
			status = "yes"
		case b.Expired:
			status = "expired"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Date.Format(dateLayout), b.Type, brl(b.Value), status, b.Title, strings.Join(b.Tags, ","))
	}
	return w.Flush()
}
