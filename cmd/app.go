package main

import (
	"fmt"
	"log/slog"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/githubapi"
	"go_5_algo_keep/internal/handlers"
	"go_5_algo_keep/internal/repository"
	"go_5_algo_keep/internal/service"

	"gorm.io/gorm"
)

// app はサブコマンドが共有する依存関係
type app struct {
	db       *gorm.DB
	services handlers.Services
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	// GitHub クライアントはプロセスで1つ
	gh, err := githubapi.NewClient(&cfg.GitHub, nil)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("initializing github client: %w", err)
	}

	mailer, err := service.NewMailer(cfg)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("initializing mailer: %w", err)
	}

	userRepo := repository.NewGormUserRepository()
	repoRepo := repository.NewGormRepoRepository()
	problemRepo := repository.NewGormProblemRepository()
	revisionRepo := repository.NewGormRevisionRepository()

	return &app{
		db: db,
		services: handlers.Services{
			Ingest:   service.NewIngestService(db, repoRepo, problemRepo, revisionRepo, gh, cfg),
			Revision: service.NewRevisionService(db, problemRepo, revisionRepo),
			Reminder: service.NewReminderService(db, revisionRepo, userRepo, mailer, cfg),
			Repo:     service.NewRepoService(db, repoRepo, problemRepo, revisionRepo, gh),
			Problem:  service.NewProblemService(db, problemRepo, revisionRepo, gh, cfg),
			User:     service.NewUserService(db, userRepo),
		},
	}, nil
}

func (a *app) Close(logger *slog.Logger) {
	closeDB(a.db, logger)
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", slog.Any("error", err))
		return
	}
	logger.Info("Database connection closed.")
}
