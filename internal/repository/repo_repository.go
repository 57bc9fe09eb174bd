//go:generate mockery --name RepoRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RepoRepository interface {
	// Upsert は (user_id, full_name) が既にあれば default_branch だけを更新し、保存後の行を返す
	Upsert(ctx context.Context, db *gorm.DB, repo *model.Repo) (*model.Repo, error)
	FindByID(ctx context.Context, db *gorm.DB, repoID uuid.UUID) (*model.Repo, error)
	FindByUserAndFullName(ctx context.Context, db *gorm.DB, userID uuid.UUID, fullName string) (*model.Repo, error)
	FindByFullName(ctx context.Context, db *gorm.DB, fullName string) ([]*model.Repo, error)
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Repo, error)
	Delete(ctx context.Context, tx *gorm.DB, repoID uuid.UUID) error
}

type gormRepoRepository struct{}

func NewGormRepoRepository() RepoRepository {
	return &gormRepoRepository{}
}

func (r *gormRepoRepository) Upsert(ctx context.Context, db *gorm.DB, repo *model.Repo) (*model.Repo, error) {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "full_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"default_branch", "updated_at"}),
	}).Create(repo)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on upsert repo", "error", result.Error, "full_name", repo.FullName)
			return nil, model.ErrConflict
		}
		logger.Error("Error upserting repo in DB", "error", result.Error, "user_id", repo.UserID.String(), "full_name", repo.FullName)
		return nil, fmt.Errorf("gormRepoRepository.Upsert: %w", result.Error)
	}

	// 競合時は渡した repo_id ではなく既存の行が正になる
	return r.FindByUserAndFullName(ctx, db, repo.UserID, repo.FullName)
}

func (r *gormRepoRepository) FindByID(ctx context.Context, db *gorm.DB, repoID uuid.UUID) (*model.Repo, error) {
	logger := middleware.GetLogger(ctx)
	var repo model.Repo
	result := db.WithContext(ctx).Where("repo_id = ?", repoID).First(&repo)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding repo by ID in DB", "error", result.Error, "repo_id", repoID.String())
		return nil, fmt.Errorf("gormRepoRepository.FindByID: %w", result.Error)
	}
	return &repo, nil
}

func (r *gormRepoRepository) FindByUserAndFullName(ctx context.Context, db *gorm.DB, userID uuid.UUID, fullName string) (*model.Repo, error) {
	logger := middleware.GetLogger(ctx)
	var repo model.Repo
	result := db.WithContext(ctx).Where("user_id = ? AND full_name = ?", userID, fullName).First(&repo)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding repo by user and full name in DB", "error", result.Error, "user_id", userID.String(), "full_name", fullName)
		return nil, fmt.Errorf("gormRepoRepository.FindByUserAndFullName: %w", result.Error)
	}
	return &repo, nil
}

// FindByFullName は同じリポジトリを連携している全ユーザー分の行を返す
func (r *gormRepoRepository) FindByFullName(ctx context.Context, db *gorm.DB, fullName string) ([]*model.Repo, error) {
	logger := middleware.GetLogger(ctx)
	var repos []*model.Repo
	result := db.WithContext(ctx).Where("full_name = ?", fullName).Order("created_at ASC").Find(&repos)
	if result.Error != nil {
		logger.Error("Error finding repos by full name in DB", "error", result.Error, "full_name", fullName)
		return nil, fmt.Errorf("gormRepoRepository.FindByFullName: %w", result.Error)
	}
	return repos, nil
}

func (r *gormRepoRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Repo, error) {
	logger := middleware.GetLogger(ctx)
	var repos []*model.Repo
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&repos)
	if result.Error != nil {
		logger.Error("Error finding repos by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormRepoRepository.FindByUser: %w", result.Error)
	}
	return repos, nil
}

func (r *gormRepoRepository) Delete(ctx context.Context, tx *gorm.DB, repoID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("repo_id = ?", repoID).Delete(&model.Repo{})
	if result.Error != nil {
		logger.Error("Error deleting repo in DB", "error", result.Error, "repo_id", repoID.String())
		return fmt.Errorf("gormRepoRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
