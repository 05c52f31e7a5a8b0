// Package cli implements studioctl, the admin command line for the studio
// booking service.
package cli

import (
	"context"
	"database/sql"
	"os"

	"github.com/spf13/cobra"

	"github.com/srgjo27/studio_booking/internal/app"
	"github.com/srgjo27/studio_booking/internal/core/services"
	"github.com/srgjo27/studio_booking/internal/platform/config"
	"github.com/srgjo27/studio_booking/internal/platform/database"
	"github.com/srgjo27/studio_booking/internal/platform/logger"
)

// runtime is what a command needs from the running system.
type runtime struct {
	ledger  *services.LedgerService
	history *services.HistoryService
	booking *services.BookingService
	close   func() error
}

// Swapped out in tests.
var (
	openRuntime = func(ctx context.Context) (*runtime, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}

		a, err := app.New(ctx, cfg, logger.NewWithWriter(os.Stderr, cfg.LogLevel))
		if err != nil {
			return nil, err
		}

		return &runtime{ledger: a.Ledger, history: a.History, booking: a.Booking, close: a.Close}, nil
	}

	openDB = func(ctx context.Context) (*sql.DB, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}

		logger.NewWithWriter(os.Stderr, cfg.LogLevel)
		return database.NewPostgresDB(ctx, cfg.Database())
	}
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studioctl",
		Short:         "Administer studio lessons, bookings and credits",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newCreditsCmd())
	root.AddCommand(newLessonsCmd())
	root.AddCommand(newHistoryCmd())

	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

// withRuntime opens the runtime for the duration of fn.
func withRuntime(cmd *cobra.Command, fn func(rt *runtime) error) error {
	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	return fn(rt)
}
