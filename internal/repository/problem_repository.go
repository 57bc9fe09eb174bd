//go:generate mockery --name ProblemRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProblemRepository interface {
	// Upsert は (repo_id, path) をキーに作成または更新し、保存後の行を返す
	Upsert(ctx context.Context, db *gorm.DB, problem *model.Problem) (*model.Problem, error)
	FindByRepoAndPath(ctx context.Context, db *gorm.DB, key model.ProblemKey) (*model.Problem, error)
	FindByID(ctx context.Context, db *gorm.DB, problemID uuid.UUID) (*model.Problem, error) // Repo は Preload 済み
	ListByRepo(ctx context.Context, db *gorm.DB, repoID uuid.UUID) ([]*model.Problem, error)
	Search(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter model.ProblemFilter) ([]*model.Problem, int64, error)
	CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	CountByRepos(ctx context.Context, db *gorm.DB, repoIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	GroupCountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, column string) ([]*model.GroupCount, error)
	DeleteByRepo(ctx context.Context, tx *gorm.DB, repoID uuid.UUID) error
}

// 集計に使ってよいカラム
var groupableProblemColumns = map[string]bool{
	"platform":   true,
	"difficulty": true,
	"language":   true,
}

type gormProblemRepository struct{}

func NewGormProblemRepository() ProblemRepository {
	return &gormProblemRepository{}
}

func (r *gormProblemRepository) Upsert(ctx context.Context, db *gorm.DB, problem *model.Problem) (*model.Problem, error) {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "repo_id"}, {Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"sha", "title", "platform", "difficulty", "language", "updated_at"}),
	}).Create(problem)
	if result.Error != nil {
		logger.Error("Error upserting problem in DB",
			"error", result.Error,
			"repo_id", problem.RepoID.String(),
			"path", problem.Path,
		)
		return nil, fmt.Errorf("gormProblemRepository.Upsert: %w", result.Error)
	}

	return r.FindByRepoAndPath(ctx, db, model.ProblemKey{RepoID: problem.RepoID, Path: problem.Path})
}

func (r *gormProblemRepository) FindByRepoAndPath(ctx context.Context, db *gorm.DB, key model.ProblemKey) (*model.Problem, error) {
	logger := middleware.GetLogger(ctx)
	var problem model.Problem
	result := db.WithContext(ctx).Where("repo_id = ? AND path = ?", key.RepoID, key.Path).First(&problem)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding problem by repo and path in DB",
			"error", result.Error,
			"repo_id", key.RepoID.String(),
			"path", key.Path,
		)
		return nil, fmt.Errorf("gormProblemRepository.FindByRepoAndPath: %w", result.Error)
	}
	return &problem, nil
}

func (r *gormProblemRepository) FindByID(ctx context.Context, db *gorm.DB, problemID uuid.UUID) (*model.Problem, error) {
	logger := middleware.GetLogger(ctx)
	var problem model.Problem
	result := db.WithContext(ctx).Preload("Repo").Where("problem_id = ?", problemID).First(&problem)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding problem by ID in DB", "error", result.Error, "problem_id", problemID.String())
		return nil, fmt.Errorf("gormProblemRepository.FindByID: %w", result.Error)
	}
	return &problem, nil
}

func (r *gormProblemRepository) ListByRepo(ctx context.Context, db *gorm.DB, repoID uuid.UUID) ([]*model.Problem, error) {
	logger := middleware.GetLogger(ctx)
	var problems []*model.Problem
	result := db.WithContext(ctx).Where("repo_id = ?", repoID).Find(&problems)
	if result.Error != nil {
		logger.Error("Error listing problems by repo in DB", "error", result.Error, "repo_id", repoID.String())
		return nil, fmt.Errorf("gormProblemRepository.ListByRepo: %w", result.Error)
	}
	return problems, nil
}

// ownedBy はユーザーが連携しているリポジトリの問題に絞り込むクエリを返す
func ownedBy(ctx context.Context, db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.WithContext(ctx).
		Model(&model.Problem{}).
		Joins("JOIN repos ON repos.repo_id = problems.repo_id").
		Where("repos.user_id = ?", userID)
}

func (r *gormProblemRepository) Search(ctx context.Context, db *gorm.DB, userID uuid.UUID, filter model.ProblemFilter) ([]*model.Problem, int64, error) {
	logger := middleware.GetLogger(ctx)

	query := ownedBy(ctx, db, userID)
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(problems.title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.Platform != "" {
		query = query.Where("problems.platform = ?", filter.Platform)
	}
	if filter.Difficulty != "" {
		query = query.Where("problems.difficulty = ?", filter.Difficulty)
	}
	if filter.Language != "" {
		query = query.Where("problems.language = ?", filter.Language)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		logger.Error("Error counting problems in DB", "error", err, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormProblemRepository.Search: %w", err)
	}

	var problems []*model.Problem
	offset := (filter.Page - 1) * filter.Limit
	result := query.Session(&gorm.Session{}).
		Preload("Repo").
		Select("problems.*").
		Order("problems.updated_at DESC").
		Order("problems.path ASC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&problems)
	if result.Error != nil {
		logger.Error("Error searching problems in DB", "error", result.Error, "user_id", userID.String())
		return nil, 0, fmt.Errorf("gormProblemRepository.Search: %w", result.Error)
	}
	return problems, total, nil
}

func (r *gormProblemRepository) CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	if err := ownedBy(ctx, db, userID).Count(&count).Error; err != nil {
		logger.Error("Error counting problems by user in DB", "error", err, "user_id", userID.String())
		return 0, fmt.Errorf("gormProblemRepository.CountByUser: %w", err)
	}
	return count, nil
}

func (r *gormProblemRepository) CountByRepos(ctx context.Context, db *gorm.DB, repoIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	logger := middleware.GetLogger(ctx)
	counts := make(map[uuid.UUID]int64, len(repoIDs))
	if len(repoIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		RepoID uuid.UUID
		Cnt    int64
	}
	result := db.WithContext(ctx).
		Model(&model.Problem{}).
		Select("repo_id, COUNT(*) AS cnt").
		Where("repo_id IN ?", repoIDs).
		Group("repo_id").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error counting problems by repos in DB", "error", result.Error)
		return nil, fmt.Errorf("gormProblemRepository.CountByRepos: %w", result.Error)
	}
	for _, row := range rows {
		counts[row.RepoID] = row.Cnt
	}
	return counts, nil
}

func (r *gormProblemRepository) GroupCountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, column string) ([]*model.GroupCount, error) {
	logger := middleware.GetLogger(ctx)
	if !groupableProblemColumns[column] {
		return nil, fmt.Errorf("gormProblemRepository.GroupCountByUser: column %q: %w", column, model.ErrInvalidInput)
	}

	var rows []struct {
		GroupKey *string
		Cnt      int64
	}
	col := "problems." + column
	result := ownedBy(ctx, db, userID).
		Select(col + " AS group_key, COUNT(*) AS cnt").
		Group(col).
		Order("cnt DESC").
		Scan(&rows)
	if result.Error != nil {
		logger.Error("Error grouping problems in DB", "error", result.Error, "user_id", userID.String(), "column", column)
		return nil, fmt.Errorf("gormProblemRepository.GroupCountByUser: %w", result.Error)
	}

	counts := make([]*model.GroupCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, &model.GroupCount{Key: row.GroupKey, Count: row.Cnt})
	}
	return counts, nil
}

func (r *gormProblemRepository) DeleteByRepo(ctx context.Context, tx *gorm.DB, repoID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("repo_id = ?", repoID).Delete(&model.Problem{})
	if result.Error != nil {
		logger.Error("Error deleting problems by repo in DB", "error", result.Error, "repo_id", repoID.String())
		return fmt.Errorf("gormProblemRepository.DeleteByRepo: %w", result.Error)
	}
	return nil
}
