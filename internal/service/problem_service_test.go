package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"
	"go_5_algo_keep/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestProblemService(db *gorm.DB, provider RepositoryProvider) ProblemService {
	return NewProblemService(db, repository.NewGormProblemRepository(), repository.NewGormRevisionRepository(), provider, testConfig())
}

func TestProblemService_List(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	s := newTestProblemService(db, mocks.NewRepositoryProvider(t))
	userID := uuid.New()
	repo := seedRepo(t, db, userID, "octo/algo", "s3cret")

	tracked := seedProblem(t, db, repo.RepoID, "LeetCode/easy/two_sum.py", "1")
	seedProblem(t, db, repo.RepoID, "LeetCode/hard/trapping_rain_water.py", "2")
	seedProblem(t, db, repo.RepoID, "Codeforces/medium/watermelon.cpp", "3")
	_, err := repository.NewGormRevisionRepository().CreateIfAbsent(ctx, db, &model.Revision{
		RevisionID: uuid.New(), UserID: userID, ProblemID: tracked.ProblemID,
		NextDueAt: time.Now().UTC(), IntervalDays: 7,
	})
	require.NoError(t, err)

	t.Run("正常系: 既定のページングで全件と復習状態を返す", func(t *testing.T) {
		got, err := s.List(ctx, userID, model.ProblemFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Total)
		assert.Equal(t, 1, got.Page)
		assert.Equal(t, 1, got.Pages)
		require.Len(t, got.Problems, 3)

		var withRev int
		for _, p := range got.Problems {
			assert.Equal(t, "octo/algo", p.RepoFullName)
			assert.Nil(t, p.Repo)
			if p.Revision != nil {
				withRev++
				assert.Equal(t, tracked.ProblemID, p.ProblemID)
			}
		}
		assert.Equal(t, 1, withRev)
	})

	t.Run("正常系: 難易度と検索語で絞り込む", func(t *testing.T) {
		got, err := s.List(ctx, userID, model.ProblemFilter{Difficulty: "hard", Search: "RAIN"})
		require.NoError(t, err)
		require.Len(t, got.Problems, 1)
		assert.Equal(t, "Trapping Rain Water", got.Problems[0].Title)
	})

	t.Run("正常系: limit に応じてページ数を計算する", func(t *testing.T) {
		got, err := s.List(ctx, userID, model.ProblemFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Pages)
		assert.Len(t, got.Problems, 1)
	})

	t.Run("正常系: 他ユーザーには見えない", func(t *testing.T) {
		got, err := s.List(ctx, uuid.New(), model.ProblemFilter{})
		require.NoError(t, err)
		assert.Zero(t, got.Total)
		assert.Empty(t, got.Problems)
	})
}

func TestProblemService_Get(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("正常系: ソースコード付きで返す", func(t *testing.T) {
		db := setupTestDB(t)
		provider := mocks.NewRepositoryProvider(t)
		s := newTestProblemService(db, provider)
		repo := seedRepo(t, db, userID, "octo/algo", "s3cret")
		p := seedProblem(t, db, repo.RepoID, "easy/two_sum.py", "1")

		provider.On("FetchFile", mock.Anything, "octo/algo", "easy/two_sum.py", "main").
			Return(&model.FileContent{Content: "print(1)", SHA: "1"}, nil).Once()

		got, err := s.Get(ctx, userID, p.ProblemID)
		require.NoError(t, err)
		require.NotNil(t, got.Content)
		assert.Equal(t, "print(1)", *got.Content)
		assert.Nil(t, got.Revision)
	})

	t.Run("正常系: ソースの取得に失敗しても詳細は返す", func(t *testing.T) {
		db := setupTestDB(t)
		provider := mocks.NewRepositoryProvider(t)
		s := newTestProblemService(db, provider)
		repo := seedRepo(t, db, userID, "octo/algo", "s3cret")
		p := seedProblem(t, db, repo.RepoID, "easy/two_sum.py", "1")

		provider.On("FetchFile", mock.Anything, "octo/algo", "easy/two_sum.py", "main").
			Return(nil, errors.Join(model.ErrUpstream, errors.New("rate limited"))).Once()

		got, err := s.Get(ctx, userID, p.ProblemID)
		require.NoError(t, err)
		require.NotNil(t, got.Content)
		assert.Empty(t, *got.Content)
		assert.Equal(t, "Two Sum", got.Title)
	})

	t.Run("異常系: 他ユーザーの問題", func(t *testing.T) {
		db := setupTestDB(t)
		s := newTestProblemService(db, mocks.NewRepositoryProvider(t))
		repo := seedRepo(t, db, uuid.New(), "octo/algo", "s3cret")
		p := seedProblem(t, db, repo.RepoID, "easy/two_sum.py", "1")

		_, err := s.Get(ctx, userID, p.ProblemID)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("異常系: 存在しない問題", func(t *testing.T) {
		db := setupTestDB(t)
		s := newTestProblemService(db, mocks.NewRepositoryProvider(t))

		_, err := s.Get(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestProblemService_Stats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	s := newTestProblemService(db, mocks.NewRepositoryProvider(t))
	userID := uuid.New()
	repo := seedRepo(t, db, userID, "octo/algo", "s3cret")

	seedProblem(t, db, repo.RepoID, "leetcode/easy/a.py", "1")
	seedProblem(t, db, repo.RepoID, "leetcode/easy/b.py", "2")
	p := seedProblem(t, db, repo.RepoID, "misc/c.py", "3")
	_, err := repository.NewGormRevisionRepository().CreateIfAbsent(ctx, db, &model.Revision{
		RevisionID: uuid.New(), UserID: userID, ProblemID: p.ProblemID,
		NextDueAt: time.Now().UTC(), IntervalDays: 7,
	})
	require.NoError(t, err)

	got, err := s.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalProblems)
	assert.Equal(t, int64(1), got.TotalRevisions)

	counts := func(groups []*model.GroupCount) map[string]int64 {
		out := make(map[string]int64)
		for _, g := range groups {
			key := "<nil>"
			if g.Key != nil {
				key = *g.Key
			}
			out[key] = g.Count
		}
		return out
	}
	assert.Equal(t, map[string]int64{"leetcode": 2, "<nil>": 1}, counts(got.PlatformStats))
	assert.Equal(t, map[string]int64{"easy": 2, "<nil>": 1}, counts(got.DifficultyStats))
}
