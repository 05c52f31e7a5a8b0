package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newLessonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "Manage lesson participants",
	}

	cmd.AddCommand(newAddParticipantCmd())
	cmd.AddCommand(newRemoveParticipantCmd())

	return cmd
}

func newAddParticipantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-participant LESSON_ID USER_ID",
		Short: "Book a user onto a lesson, ignoring the booking window",
		Long: `Book a user onto a lesson without the booking window check.
Membership, credits and capacity are still enforced and one credit is consumed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid lesson id %q", args[0])
			}

			return withRuntime(cmd, func(rt *runtime) error {
				res, err := rt.booking.AdminAddParticipant(cmd.Context(), args[1], lessonID, time.Now())
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to lesson %s (%d credits left)\n", args[1], lessonID, res.RemainingCredits)
				return nil
			})
		},
	}
}

func newRemoveParticipantCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "remove-participant LESSON_ID USER_ID",
		Short: "Remove a user from a lesson and refund the credit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid lesson id %q", args[0])
			}

			return withRuntime(cmd, func(rt *runtime) error {
				res, err := rt.booking.AdminRemoveParticipant(cmd.Context(), args[1], lessonID, reason, time.Now())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if res.RefundFailed {
					fmt.Fprintf(out, "Removed %s from lesson %s, but the refund FAILED and needs reconciliation\n", args[1], lessonID)
					return nil
				}

				fmt.Fprintf(out, "Removed %s from lesson %s (%d credits now)\n", args[1], lessonID, res.RemainingCredits)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Cancellation reason stored in the booking history")

	return cmd
}
