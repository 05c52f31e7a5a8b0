package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history USER_ID",
		Short: "Show a user's booking history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				now := time.Now()

				summary, err := rt.history.Summary(cmd.Context(), args[0], now)
				if err != nil {
					return err
				}

				records, err := rt.history.UserHistory(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Upcoming: %d  Attended: %d  Cancelled: %d\n", summary.Upcoming, summary.Attended, summary.Cancelled)

				if len(records) == 0 {
					return nil
				}

				fmt.Fprintln(out)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "LESSON\tSTARTS\tACTION\tSTATUS\tREASON")
				for _, r := range records {
					reason := ""
					if r.CancelReason != nil {
						reason = *r.CancelReason
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Lesson.Title, r.Lesson.StartsAt.Format("2006-01-02 15:04"), r.Action, r.Status, reason)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records to show")

	return cmd
}
