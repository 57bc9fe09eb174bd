package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/middleware"
)

func newRemindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send today's revision reminders once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default().With(slog.String("job", "daily_reminder"))
			a, err := newApp(&config.Cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close(logger)

			ctx := middleware.WithLogger(context.Background(), logger)
			result, err := a.services.Reminder.RunDaily(ctx)
			if err != nil {
				return err
			}
			logger.Info("Daily reminder finished",
				slog.Int("users_notified", result.UsersNotified),
				slog.Int("total_revisions", result.TotalRevisions))
			return nil
		},
	}
}
