package commands

import (
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/billwise/pkg/api"
)

func subCmd(c *clients) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sub",
		Aliases: []string{"subscription"},
		Short:   "Manage subscriptions",
	}
	cmd.AddCommand(subAddCmd(c), subListCmd(c), subDeleteCmd(c))
	return cmd
}

func subAddCmd(c *clients) *cobra.Command {
	var (
		price     string
		start     string
		months    int
		autoRenew bool
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(price)
			if err != nil {
				return err
			}
			startDate, err := parseDate(start)
			if err != nil {
				return err
			}
			resp, err := c.subs.SaveSubscription(cmd.Context(), connect.NewRequest(&api.SaveSubscriptionRequest{
				Subscription: api.Subscription{
					Title:     args[0],
					StartDate: startDate,
					DueDate:   startDate.AddDate(0, months, 0),
					Price:     amount,
					Months:    months,
					AutoRenew: autoRenew,
				},
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "subscription %d created\n", resp.Msg.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "price per period")
	cmd.Flags().StringVar(&start, "start", "", "start date as YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&months, "months", 1, "period length in months")
	cmd.Flags().BoolVar(&autoRenew, "auto-renew", false, "renew when due")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func subListCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subscriptions by due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stream, err := c.subs.WatchSubscriptions(cmd.Context(), connect.NewRequest(&api.WatchSubscriptionsRequest{}))
			if err != nil {
				return err
			}
			subs, err := firstResult(stream)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE\tMONTHS\tDUE\tAUTO-RENEW")
			for _, s := range subs {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%t\n",
					s.ID, s.Title, brl(s.Price), s.Months, s.DueDate.Format(dateLayout), s.AutoRenew)
			}
			return w.Flush()
		},
	}
}

func subDeleteCmd(c *clients) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.subs.DeleteSubscription(cmd.Context(), connect.NewRequest(&api.DeleteRequest{ID: id})); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "subscription %d deleted\n", id)
			return nil
		},
	}
}
