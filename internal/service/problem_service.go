package service

import (
	"context"
	"errors"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProblemService interface {
	List(ctx context.Context, userID uuid.UUID, filter model.ProblemFilter) (*model.ProblemListResponse, error)
	// Get は問題の詳細とソースコードを返す。ソースの取得に失敗しても詳細は返す
	Get(ctx context.Context, userID, problemID uuid.UUID) (*model.ProblemWithRevision, error)
	Stats(ctx context.Context, userID uuid.UUID) (*model.StatsResponse, error)
}

type problemService struct {
	db           *gorm.DB
	problemRepo  repository.ProblemRepository
	revisionRepo repository.RevisionRepository
	provider     RepositoryProvider
	cfg          *config.Config
}

func NewProblemService(
	db *gorm.DB,
	problemRepo repository.ProblemRepository,
	revisionRepo repository.RevisionRepository,
	provider RepositoryProvider,
	cfg *config.Config,
) ProblemService {
	return &problemService{
		db:           db,
		problemRepo:  problemRepo,
		revisionRepo: revisionRepo,
		provider:     provider,
		cfg:          cfg,
	}
}

func (s *problemService) List(ctx context.Context, userID uuid.UUID, filter model.ProblemFilter) (*model.ProblemListResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = s.cfg.App.ProblemsPerPage
	}
	if filter.Limit > config.DefaultMaxProblemsLimit {
		filter.Limit = config.DefaultMaxProblemsLimit
	}

	problems, total, err := s.problemRepo.Search(ctx, s.db, userID, filter)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題一覧の取得に失敗しました。", "", err)
	}

	ids := make([]uuid.UUID, 0, len(problems))
	for _, p := range problems {
		ids = append(ids, p.ProblemID)
	}
	revisions, err := s.revisionRepo.FindByUserAndProblems(ctx, s.db, userID, ids)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの取得に失敗しました。", "", err)
	}

	items := make([]*model.ProblemWithRevision, 0, len(problems))
	for _, p := range problems {
		items = append(items, withRevision(p, revisions[p.ProblemID]))
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	logger.Debug("Problems listed", "total", total, "page", filter.Page)
	return &model.ProblemListResponse{
		Problems: items,
		Total:    total,
		Page:     filter.Page,
		Pages:    pages,
	}, nil
}

func (s *problemService) Get(ctx context.Context, userID, problemID uuid.UUID) (*model.ProblemWithRevision, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "problem_id", problemID.String())

	problem, err := s.problemRepo.FindByID(ctx, s.db, problemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROBLEM_NOT_FOUND", "問題が見つかりません。", "problem_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題の取得に失敗しました。", "", err)
	}
	if problem.Repo == nil || problem.Repo.UserID != userID {
		logger.Warn("Access to another user's problem rejected")
		return nil, model.NewAppError("FORBIDDEN", "この問題にはアクセスできません。", "problem_id", model.ErrForbidden)
	}

	revision, err := s.revisionRepo.FindByUserAndProblem(ctx, s.db, userID, problemID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの取得に失敗しました。", "", err)
	}

	item := withRevision(problem, revision)
	content := ""
	file, err := s.provider.FetchFile(ctx, problem.Repo.FullName, problem.Path, problem.Repo.DefaultBranch)
	if err != nil {
		logger.Warn("Failed to fetch problem source, returning without content", "error", err)
	} else {
		content = file.Content
	}
	item.Content = &content
	return item, nil
}

func (s *problemService) Stats(ctx context.Context, userID uuid.UUID) (*model.StatsResponse, error) {
	totalProblems, err := s.problemRepo.CountByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}
	totalRevisions, err := s.revisionRepo.CountByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}
	byPlatform, err := s.problemRepo.GroupCountByUser(ctx, s.db, userID, "platform")
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}
	byDifficulty, err := s.problemRepo.GroupCountByUser(ctx, s.db, userID, "difficulty")
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "統計の取得に失敗しました。", "", err)
	}

	return &model.StatsResponse{
		TotalProblems:   totalProblems,
		TotalRevisions:  totalRevisions,
		PlatformStats:   byPlatform,
		DifficultyStats: byDifficulty,
	}, nil
}

func withRevision(p *model.Problem, rev *model.Revision) *model.ProblemWithRevision {
	item := &model.ProblemWithRevision{Problem: *p, Revision: rev}
	if p.Repo != nil {
		item.RepoFullName = p.Repo.FullName
	}
	item.Repo = nil
	return item
}
