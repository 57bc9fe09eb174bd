package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/handlers"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/repository"
	"go_5_algo_keep/internal/service"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(&config.Cfg, slog.Default())
		},
	}
}

func runServe(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Application starting...", slog.String("version", config.AppVersion))

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(logger)

	router := handlers.NewRouter(cfg, logger, a.services, func() error {
		return repository.Ping(a.db)
	})

	if cfg.Cron.ScheduleEnabled {
		scheduler, err := startReminderScheduler(cfg, logger, a.services.Reminder)
		if err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second, // 全件同期が長くなる
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("could not listen on %s: %w", cfg.Server.Port, err)
		}
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
	}
	logger.Info("Server exiting")
	return nil
}

// startReminderScheduler は cron.at (HH:MM) に毎日リマインダーを送る
func startReminderScheduler(cfg *config.Config, logger *slog.Logger, reminder service.ReminderService) (*gocron.Scheduler, error) {
	loc := time.Local
	if cfg.Cron.Timezone != "" {
		l, err := time.LoadLocation(cfg.Cron.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid cron timezone %q: %w", cfg.Cron.Timezone, err)
		}
		loc = l
	}

	jobLogger := logger.With(slog.String("job", "daily_reminder"))
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	_, err := s.Every(1).Day().At(cfg.Cron.At).Do(func() {
		ctx := middleware.WithLogger(context.Background(), jobLogger)
		result, err := reminder.RunDaily(ctx)
		if err != nil {
			jobLogger.Error("Daily reminder failed", slog.Any("error", err))
			return
		}
		jobLogger.Info("Daily reminder finished",
			slog.Int("users_notified", result.UsersNotified),
			slog.Int("total_revisions", result.TotalRevisions))
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling daily reminder at %q: %w", cfg.Cron.At, err)
	}
	s.StartAsync()
	logger.Info("Daily reminder scheduled", slog.String("at", cfg.Cron.At), slog.String("timezone", loc.String()))
	return s, nil
}
