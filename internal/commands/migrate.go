package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Dan9191/tax-ledger/internal/repository"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the payments table and its indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repository.NewRepository(db).Migrate(context.Background()); err != nil {
				return err
			}
			logger.Info("Schema is up to date")
			return nil
		},
	}
}
