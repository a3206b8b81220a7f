package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sara-relief/relief-service/internal/persistence"
)

// MigrateCmd creates the migrate command
func MigrateCmd(app func() *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			files, err := persistence.MigrationFiles()
			if err != nil {
				return err
			}
			if err := persistence.RunMigrations(a.Ctx, a.Postgres.Pool, a.Logger); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Printf("Migrations up to date (%d files)\n", len(files))
			return nil
		},
	}
}
