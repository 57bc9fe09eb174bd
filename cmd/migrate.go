package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/repository"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			db, err := repository.NewDB(config.Cfg.Database.URL, logger)
			if err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}
			defer closeDB(db, logger)

			if err := repository.AutoMigrate(db); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			logger.Info("Database migrated", slog.Int("tables", len(repository.Models())))
			return nil
		},
	}
}
