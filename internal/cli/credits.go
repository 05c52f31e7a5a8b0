package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCreditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credits",
		Short: "Inspect and adjust user credits",
	}

	cmd.AddCommand(newCreditsShowCmd())
	cmd.AddCommand(newCreditsChangeCmd("add", "Add credits to a user's balance"))
	cmd.AddCommand(newCreditsChangeCmd("set", "Overwrite a user's balance"))

	return cmd
}

func newCreditsShowCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show USER_ID",
		Short: "Show balance, membership and recent credit transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				acc, err := rt.ledger.Account(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				txns, err := rt.ledger.Transactions(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "User:       %s\n", acc.UserID)
				fmt.Fprintf(out, "Credits:    %d\n", acc.RemainingCredits)
				fmt.Fprintf(out, "Membership: %s\n", acc.MembershipStatus)

				if len(txns) == 0 {
					return nil
				}

				fmt.Fprintln(out)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "WHEN\tKIND\tAMOUNT\tBALANCE\tREASON")
				for _, t := range txns {
					fmt.Fprintf(tw, "%s\t%s\t%+d\t%d\t%s\n", t.CreatedAt.Format("2006-01-02 15:04"), t.Kind, t.Amount, t.BalanceAfter, t.Reason)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of transactions to show")

	return cmd
}

func newCreditsChangeCmd(op, short string) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   op + " USER_ID AMOUNT",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[1])
			}

			return withRuntime(cmd, func(rt *runtime) error {
				var balance int
				if op == "add" {
					balance, err = rt.ledger.Add(cmd.Context(), args[0], amount, reason)
				} else {
					balance, err = rt.ledger.SetBalance(cmd.Context(), args[0], amount, reason)
				}
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d credits\n", args[0], balance)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "admin adjustment", "Reason recorded in the credit log")

	return cmd
}
