package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/paymint/paymint/internal/infrastructure/config"
	"github.com/paymint/paymint/internal/infrastructure/logger"
	"github.com/paymint/paymint/internal/infrastructure/postgres"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "paymint-migrate",
		Short:         "Manage Paymint database migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log.Logger)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log.Logger)
		},
	}

	rootCmd.AddCommand(upCmd, downCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
}
