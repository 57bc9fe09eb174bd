//go:generate mockery --name RevisionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevisionRepository interface {
	// CreateIfAbsent は (user_id, problem_id) が未登録のときだけ作成する。作成したら true
	CreateIfAbsent(ctx context.Context, db *gorm.DB, revision *model.Revision) (bool, error)
	// UpsertTrack は既存のスケジュールを next_due_at / interval_days ごと上書きし、保存後の行を返す
	UpsertTrack(ctx context.Context, db *gorm.DB, revision *model.Revision) (*model.Revision, error)
	FindByID(ctx context.Context, db *gorm.DB, revisionID uuid.UUID) (*model.Revision, error)
	FindByUserAndProblem(ctx context.Context, db *gorm.DB, userID, problemID uuid.UUID) (*model.Revision, error)
	FindByUserAndProblems(ctx context.Context, db *gorm.DB, userID uuid.UUID, problemIDs []uuid.UUID) (map[uuid.UUID]*model.Revision, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, window model.DueWindow) ([]*model.Revision, error) // Problem は Preload 済み
	FindDue(ctx context.Context, db *gorm.DB, until time.Time) ([]*model.Revision, error)                            // Problem は Preload 済み
	CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, revision *model.Revision) error
	Delete(ctx context.Context, tx *gorm.DB, revisionID uuid.UUID) error
	DeleteByRepo(ctx context.Context, tx *gorm.DB, repoID uuid.UUID) error
}

type gormRevisionRepository struct{}

func NewGormRevisionRepository() RevisionRepository {
	return &gormRevisionRepository{}
}

func (r *gormRevisionRepository) CreateIfAbsent(ctx context.Context, db *gorm.DB, revision *model.Revision) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "problem_id"}},
		DoNothing: true,
	}).Create(revision)
	if result.Error != nil {
		logger.Error("Error creating revision in DB",
			"error", result.Error,
			"user_id", revision.UserID.String(),
			"problem_id", revision.ProblemID.String(),
		)
		return false, fmt.Errorf("gormRevisionRepository.CreateIfAbsent: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormRevisionRepository) UpsertTrack(ctx context.Context, db *gorm.DB, revision *model.Revision) (*model.Revision, error) {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "problem_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"next_due_at", "interval_days", "updated_at"}),
	}).Create(revision)
	if result.Error != nil {
		logger.Error("Error upserting revision in DB",
			"error", result.Error,
			"user_id", revision.UserID.String(),
			"problem_id", revision.ProblemID.String(),
		)
		return nil, fmt.Errorf("gormRevisionRepository.UpsertTrack: %w", result.Error)
	}
	return r.FindByUserAndProblem(ctx, db, revision.UserID, revision.ProblemID)
}

func (r *gormRevisionRepository) FindByID(ctx context.Context, db *gorm.DB, revisionID uuid.UUID) (*model.Revision, error) {
	logger := middleware.GetLogger(ctx)
	var revision model.Revision
	result := db.WithContext(ctx).Where("revision_id = ?", revisionID).First(&revision)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding revision by ID in DB", "error", result.Error, "revision_id", revisionID.String())
		return nil, fmt.Errorf("gormRevisionRepository.FindByID: %w", result.Error)
	}
	return &revision, nil
}

func (r *gormRevisionRepository) FindByUserAndProblem(ctx context.Context, db *gorm.DB, userID, problemID uuid.UUID) (*model.Revision, error) {
	logger := middleware.GetLogger(ctx)
	var revision model.Revision
	result := db.WithContext(ctx).Where("user_id = ? AND problem_id = ?", userID, problemID).First(&revision)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding revision by user and problem in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"problem_id", problemID.String(),
		)
		return nil, fmt.Errorf("gormRevisionRepository.FindByUserAndProblem: %w", result.Error)
	}
	return &revision, nil
}

func (r *gormRevisionRepository) FindByUserAndProblems(ctx context.Context, db *gorm.DB, userID uuid.UUID, problemIDs []uuid.UUID) (map[uuid.UUID]*model.Revision, error) {
	logger := middleware.GetLogger(ctx)
	revisions := make(map[uuid.UUID]*model.Revision, len(problemIDs))
	if len(problemIDs) == 0 {
		return revisions, nil
	}

	var found []*model.Revision
	result := db.WithContext(ctx).Where("user_id = ? AND problem_id IN ?", userID, problemIDs).Find(&found)
	if result.Error != nil {
		logger.Error("Error finding revisions by problems in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormRevisionRepository.FindByUserAndProblems: %w", result.Error)
	}
	for _, rev := range found {
		revisions[rev.ProblemID] = rev
	}
	return revisions, nil
}

func (r *gormRevisionRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, window model.DueWindow) ([]*model.Revision, error) {
	logger := middleware.GetLogger(ctx)
	query := db.WithContext(ctx).Preload("Problem").Where("user_id = ?", userID)
	if window.From != nil {
		query = query.Where("next_due_at >= ?", *window.From)
	}
	if window.Until != nil {
		query = query.Where("next_due_at <= ?", *window.Until)
	}
	if window.Before != nil {
		query = query.Where("next_due_at < ?", *window.Before)
	}

	var revisions []*model.Revision
	result := query.Order("next_due_at ASC").Find(&revisions)
	if result.Error != nil {
		logger.Error("Error listing revisions by user in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormRevisionRepository.ListByUser: %w", result.Error)
	}
	return revisions, nil
}

func (r *gormRevisionRepository) FindDue(ctx context.Context, db *gorm.DB, until time.Time) ([]*model.Revision, error) {
	logger := middleware.GetLogger(ctx)
	var revisions []*model.Revision
	result := db.WithContext(ctx).
		Preload("Problem").
		Where("next_due_at <= ?", until).
		Order("user_id ASC, next_due_at ASC").
		Find(&revisions)
	if result.Error != nil {
		logger.Error("Error finding due revisions in DB", "error", result.Error, "until", until)
		return nil, fmt.Errorf("gormRevisionRepository.FindDue: %w", result.Error)
	}
	return revisions, nil
}

func (r *gormRevisionRepository) CountByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Revision{}).Where("user_id = ?", userID).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting revisions by user in DB", "error", result.Error, "user_id", userID.String())
		return 0, fmt.Errorf("gormRevisionRepository.CountByUser: %w", result.Error)
	}
	return count, nil
}

func (r *gormRevisionRepository) Update(ctx context.Context, tx *gorm.DB, revision *model.Revision) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Model(&model.Revision{}).
		Where("revision_id = ?", revision.RevisionID).
		Updates(map[string]interface{}{
			"next_due_at":     revision.NextDueAt,
			"last_revised_at": revision.LastRevisedAt,
			"interval_days":   revision.IntervalDays,
		})
	if result.Error != nil {
		logger.Error("Error updating revision in DB", "error", result.Error, "revision_id", revision.RevisionID.String())
		return fmt.Errorf("gormRevisionRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormRevisionRepository) Delete(ctx context.Context, tx *gorm.DB, revisionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("revision_id = ?", revisionID).Delete(&model.Revision{})
	if result.Error != nil {
		logger.Error("Error deleting revision in DB", "error", result.Error, "revision_id", revisionID.String())
		return fmt.Errorf("gormRevisionRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteByRepo はリポジトリ配下の問題に紐づく復習スケジュールを全ユーザー分削除する
func (r *gormRevisionRepository) DeleteByRepo(ctx context.Context, tx *gorm.DB, repoID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	sub := tx.WithContext(ctx).Model(&model.Problem{}).Select("problem_id").Where("repo_id = ?", repoID)
	result := tx.WithContext(ctx).Where("problem_id IN (?)", sub).Delete(&model.Revision{})
	if result.Error != nil {
		logger.Error("Error deleting revisions by repo in DB", "error", result.Error, "repo_id", repoID.String())
		return fmt.Errorf("gormRevisionRepository.DeleteByRepo: %w", result.Error)
	}
	return nil
}
