package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sara-relief/relief-service/internal/auth"
	"github.com/sara-relief/relief-service/internal/repository"
	"github.com/sara-relief/relief-service/internal/seed"
	"github.com/sara-relief/relief-service/internal/service"
)

// SeedCmd creates the seed command
func SeedCmd(app func() *AppContext) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create accounts from a YAML file; existing usernames are skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			f, err := seed.Load(file)
			if err != nil {
				return err
			}

			users := repository.NewUserRepository(a.Postgres.Pool)
			accounts := service.NewAuthService(service.AuthDependencies{
				UserRepo: users,
				Tokens:   auth.NewTokenManager(a.Cfg.Auth.JWTSecret, a.Cfg.Auth.AccessTokenTTLMinutes),
				Hasher:   auth.NewPasswordHasher(a.Cfg.Auth.BcryptCost),
			})

			res, err := seed.Apply(a.Ctx, accounts, users, f, a.Logger)
			if err != nil {
				return fmt.Errorf("seed failed after %d accounts: %w", res.Created, err)
			}
			fmt.Printf("Created %d accounts, skipped %d existing\n", res.Created, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "users.yaml", "Seed file")
	return cmd
}
