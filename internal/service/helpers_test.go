package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go_5_algo_keep/internal/classifier"
	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はテストごとに独立したインメモリDBを用意する
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.App.URL = "https://algo.example.com"
	cfg.Sync.Concurrency = 1
	return cfg
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strPtr(s string) *string { return &s }

func seedRepo(t *testing.T, db *gorm.DB, userID uuid.UUID, fullName, secret string) *model.Repo {
	t.Helper()
	repo, err := repository.NewGormRepoRepository().Upsert(context.Background(), db, &model.Repo{
		RepoID:        uuid.New(),
		UserID:        userID,
		FullName:      fullName,
		DefaultBranch: "main",
		WebhookSecret: secret,
	})
	require.NoError(t, err)
	return repo
}

func seedProblem(t *testing.T, db *gorm.DB, repoID uuid.UUID, path, sha string) *model.Problem {
	t.Helper()
	p, err := repository.NewGormProblemRepository().Upsert(context.Background(), db, newProblem(repoID, path, classifier.FileName(path), sha))
	require.NoError(t, err)
	return p
}
