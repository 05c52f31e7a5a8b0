package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srgjo27/studio_booking/internal/platform/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d schema statements\n", len(database.Migrations()))
			return nil
		},
	}
}
