package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sara-relief/relief-service/cmd/reliefctl/commands"
	"github.com/sara-relief/relief-service/internal/config"
	"github.com/sara-relief/relief-service/internal/observability"
	"github.com/sara-relief/relief-service/internal/persistence"
)

var app *commands.AppContext

func main() {
	rootCmd := &cobra.Command{
		Use:   "reliefctl",
		Short: "Relief service administration",
		Long:  `Runs database migrations and seeds accounts, including the first administrator.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Postgres.Close()
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(commands.MigrateCmd(func() *commands.AppContext { return app }))
	rootCmd.AddCommand(commands.SeedCmd(func() *commands.AppContext { return app }))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Postgres.InMemory() {
		return errors.New("POSTGRES_DSN is required")
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	logger.Debug("postgres connected", zap.String("env", cfg.App.Env))

	app = &commands.AppContext{Ctx: ctx, Cfg: cfg, Logger: logger, Postgres: pg}
	return nil
}
