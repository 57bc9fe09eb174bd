package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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

	require.NoError(t, AutoMigrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func seedRepo(t *testing.T, db *gorm.DB, userID uuid.UUID, fullName string) *model.Repo {
	t.Helper()
	repo, err := NewGormRepoRepository().Upsert(context.Background(), db, &model.Repo{
		RepoID:        uuid.New(),
		UserID:        userID,
		FullName:      fullName,
		DefaultBranch: "main",
		WebhookSecret: "secret-" + fullName,
	})
	require.NoError(t, err)
	return repo
}

func TestRepoRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repoRepo := NewGormRepoRepository()
	userID := uuid.New()

	first := seedRepo(t, db, userID, "octo/algo")

	t.Run("正常系: 再連携では default_branch だけが更新され、ID とシークレットは維持される", func(t *testing.T) {
		again, err := repoRepo.Upsert(ctx, db, &model.Repo{
			RepoID:        uuid.New(),
			UserID:        userID,
			FullName:      "octo/algo",
			DefaultBranch: "trunk",
			WebhookSecret: "another",
		})
		require.NoError(t, err)
		assert.Equal(t, first.RepoID, again.RepoID)
		assert.Equal(t, first.WebhookSecret, again.WebhookSecret)
		assert.Equal(t, "trunk", again.DefaultBranch)
	})

	t.Run("正常系: 別ユーザーは同じ full_name を連携できる", func(t *testing.T) {
		other := seedRepo(t, db, uuid.New(), "octo/algo")
		assert.NotEqual(t, first.RepoID, other.RepoID)

		repos, err := repoRepo.FindByFullName(ctx, db, "octo/algo")
		require.NoError(t, err)
		assert.Len(t, repos, 2)
	})

	t.Run("異常系: 存在しない ID", func(t *testing.T) {
		_, err := repoRepo.FindByID(ctx, db, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestProblemRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	problemRepo := NewGormProblemRepository()
	repo := seedRepo(t, db, uuid.New(), "octo/algo")

	p := &model.Problem{
		ProblemID: uuid.New(),
		RepoID:    repo.RepoID,
		Path:      "leetcode/easy/two-sum.py",
		SHA:       "v1",
		Title:     "Two Sum",
		Platform:  strPtr("leetcode"),
	}
	created, err := problemRepo.Upsert(ctx, db, p)
	require.NoError(t, err)
	assert.Equal(t, p.ProblemID, created.ProblemID)

	t.Run("正常系: 同じ (repo_id, path) は更新になり、ID は変わらない", func(t *testing.T) {
		updated, err := problemRepo.Upsert(ctx, db, &model.Problem{
			ProblemID:  uuid.New(),
			RepoID:     repo.RepoID,
			Path:       "leetcode/easy/two-sum.py",
			SHA:        "v2",
			Title:      "Two Sum",
			Platform:   strPtr("leetcode"),
			Difficulty: strPtr("easy"),
		})
		require.NoError(t, err)
		assert.Equal(t, created.ProblemID, updated.ProblemID)
		assert.Equal(t, "v2", updated.SHA)
		require.NotNil(t, updated.Difficulty)
		assert.Equal(t, "easy", *updated.Difficulty)

		var count int64
		require.NoError(t, db.Model(&model.Problem{}).Where("repo_id = ?", repo.RepoID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("正常系: FindByRepoAndPath", func(t *testing.T) {
		found, err := problemRepo.FindByRepoAndPath(ctx, db, model.ProblemKey{RepoID: repo.RepoID, Path: "leetcode/easy/two-sum.py"})
		require.NoError(t, err)
		assert.Equal(t, created.ProblemID, found.ProblemID)

		_, err = problemRepo.FindByRepoAndPath(ctx, db, model.ProblemKey{RepoID: repo.RepoID, Path: "missing.py"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: FindByID は Repo を Preload する", func(t *testing.T) {
		found, err := problemRepo.FindByID(ctx, db, created.ProblemID)
		require.NoError(t, err)
		require.NotNil(t, found.Repo)
		assert.Equal(t, "octo/algo", found.Repo.FullName)
	})
}

func TestProblemRepository_SearchAndStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	problemRepo := NewGormProblemRepository()
	userID := uuid.New()
	repo := seedRepo(t, db, userID, "octo/algo")
	foreign := seedRepo(t, db, uuid.New(), "other/algo")

	rows := []struct {
		repoID     uuid.UUID
		path       string
		title      string
		platform   *string
		difficulty *string
	}{
		{repo.RepoID, "leetcode/easy/two-sum.py", "Two Sum", strPtr("leetcode"), strPtr("easy")},
		{repo.RepoID, "leetcode/hard/lru.cpp", "Lru", strPtr("leetcode"), strPtr("hard")},
		{repo.RepoID, "misc/three-sum.go", "Three Sum", nil, nil},
		{foreign.RepoID, "leetcode/easy/two-sum.py", "Two Sum", strPtr("leetcode"), strPtr("easy")},
	}
	for _, r := range rows {
		_, err := problemRepo.Upsert(ctx, db, &model.Problem{
			ProblemID: uuid.New(), RepoID: r.repoID, Path: r.path, SHA: "x", Title: r.title,
			Platform: r.platform, Difficulty: r.difficulty,
		})
		require.NoError(t, err)
	}

	t.Run("正常系: タイトル部分一致 (大文字小文字無視) は自分のリポジトリだけ", func(t *testing.T) {
		problems, total, err := problemRepo.Search(ctx, db, userID, model.ProblemFilter{Search: "SUM", Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, problems, 2)
		for _, p := range problems {
			require.NotNil(t, p.Repo)
			assert.Equal(t, userID, p.Repo.UserID)
		}
	})

	t.Run("正常系: ページング", func(t *testing.T) {
		problems, total, err := problemRepo.Search(ctx, db, userID, model.ProblemFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, problems, 1)
	})

	t.Run("正常系: platform / difficulty で絞り込み", func(t *testing.T) {
		_, total, err := problemRepo.Search(ctx, db, userID, model.ProblemFilter{Platform: "leetcode", Difficulty: "hard", Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("正常系: 件数と集計", func(t *testing.T) {
		count, err := problemRepo.CountByUser(ctx, db, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		byPlatform, err := problemRepo.GroupCountByUser(ctx, db, userID, "platform")
		require.NoError(t, err)
		require.Len(t, byPlatform, 2)
		assert.Equal(t, "leetcode", *byPlatform[0].Key)
		assert.Equal(t, int64(2), byPlatform[0].Count)
		assert.Nil(t, byPlatform[1].Key)

		counts, err := problemRepo.CountByRepos(ctx, db, []uuid.UUID{repo.RepoID, foreign.RepoID})
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts[repo.RepoID])
		assert.Equal(t, int64(1), counts[foreign.RepoID])
	})

	t.Run("異常系: 集計できないカラム", func(t *testing.T) {
		_, err := problemRepo.GroupCountByUser(ctx, db, userID, "path; DROP TABLE problems")
		assert.True(t, errors.Is(err, model.ErrInvalidInput))
	})
}

func TestRevisionRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	problemRepo := NewGormProblemRepository()
	revisionRepo := NewGormRevisionRepository()
	userID := uuid.New()
	repo := seedRepo(t, db, userID, "octo/algo")
	problem, err := problemRepo.Upsert(ctx, db, &model.Problem{ProblemID: uuid.New(), RepoID: repo.RepoID, Path: "a.py", SHA: "x", Title: "A"})
	require.NoError(t, err)

	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	t.Run("正常系: CreateIfAbsent は既存のスケジュールを上書きしない", func(t *testing.T) {
		created, err := revisionRepo.CreateIfAbsent(ctx, db, &model.Revision{
			RevisionID: uuid.New(), UserID: userID, ProblemID: problem.ProblemID,
			NextDueAt: now.AddDate(0, 0, 7), IntervalDays: 7,
		})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = revisionRepo.CreateIfAbsent(ctx, db, &model.Revision{
			RevisionID: uuid.New(), UserID: userID, ProblemID: problem.ProblemID,
			NextDueAt: now.AddDate(0, 0, 1), IntervalDays: 1,
		})
		require.NoError(t, err)
		assert.False(t, created)

		rev, err := revisionRepo.FindByUserAndProblem(ctx, db, userID, problem.ProblemID)
		require.NoError(t, err)
		assert.Equal(t, 7, rev.IntervalDays)
	})

	t.Run("正常系: UpsertTrack は interval と next_due_at をリセットする", func(t *testing.T) {
		existing, err := revisionRepo.FindByUserAndProblem(ctx, db, userID, problem.ProblemID)
		require.NoError(t, err)
		existing.IntervalDays = 28
		require.NoError(t, revisionRepo.Update(ctx, db, existing))

		rev, err := revisionRepo.UpsertTrack(ctx, db, &model.Revision{
			RevisionID: uuid.New(), UserID: userID, ProblemID: problem.ProblemID,
			NextDueAt: now.AddDate(0, 0, 7), IntervalDays: 7,
		})
		require.NoError(t, err)
		assert.Equal(t, existing.RevisionID, rev.RevisionID)
		assert.Equal(t, 7, rev.IntervalDays)
	})

	t.Run("正常系: FindDue は期限内のものだけを Problem 付きで返す", func(t *testing.T) {
		due, err := revisionRepo.FindDue(ctx, db, now.AddDate(0, 0, 8))
		require.NoError(t, err)
		require.Len(t, due, 1)
		require.NotNil(t, due[0].Problem)
		assert.Equal(t, "A", due[0].Problem.Title)

		due, err = revisionRepo.FindDue(ctx, db, now)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("正常系: DeleteByRepo でリポジトリ配下の復習が消える", func(t *testing.T) {
		require.NoError(t, revisionRepo.DeleteByRepo(ctx, db, repo.RepoID))
		count, err := revisionRepo.CountByUser(ctx, db, userID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("異常系: 存在しない revision の削除", func(t *testing.T) {
		err := revisionRepo.Delete(ctx, db, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
