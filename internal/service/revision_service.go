package service

import (
	"context"
	"errors"
	"time"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RevisionService interface {
	Track(ctx context.Context, userID, problemID uuid.UUID) (*model.Revision, error)
	Complete(ctx context.Context, userID, revisionID uuid.UUID) (*model.Revision, error)
	Untrack(ctx context.Context, userID, revisionID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter model.RevisionFilter) ([]*model.Revision, error)
}

type revisionService struct {
	db           *gorm.DB
	problemRepo  repository.ProblemRepository
	revisionRepo repository.RevisionRepository
	now          func() time.Time
}

func NewRevisionService(db *gorm.DB, problemRepo repository.ProblemRepository, revisionRepo repository.RevisionRepository) RevisionService {
	return &revisionService{
		db:           db,
		problemRepo:  problemRepo,
		revisionRepo: revisionRepo,
		now:          time.Now,
	}
}

// Track は問題の復習を開始する。既に登録済みなら間隔を初期値に戻す
func (s *revisionService) Track(ctx context.Context, userID, problemID uuid.UUID) (*model.Revision, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "problem_id", problemID.String())

	problem, err := s.problemRepo.FindByID(ctx, s.db, problemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROBLEM_NOT_FOUND", "問題が見つかりません。", "problem_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題の取得に失敗しました。", "", err)
	}
	if problem.Repo == nil || problem.Repo.UserID != userID {
		logger.Warn("Track rejected: problem belongs to another user")
		return nil, model.NewAppError("FORBIDDEN", "この問題にはアクセスできません。", "problem_id", model.ErrForbidden)
	}

	sched := NewSchedule(s.now())
	revision, err := s.revisionRepo.UpsertTrack(ctx, s.db, &model.Revision{
		RevisionID:   uuid.New(),
		UserID:       userID,
		ProblemID:    problemID,
		NextDueAt:    sched.NextDueAt,
		IntervalDays: sched.IntervalDays,
	})
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの登録に失敗しました。", "", err)
	}

	logger.Info("Problem tracked", "revision_id", revision.RevisionID.String(), "next_due_at", revision.NextDueAt)
	return revision, nil
}

// Complete は復習完了を記録し、間隔を倍にする
func (s *revisionService) Complete(ctx context.Context, userID, revisionID uuid.UUID) (*model.Revision, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "revision_id", revisionID.String())

	var revision *model.Revision
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.ownedRevision(ctx, tx, userID, revisionID)
		if err != nil {
			return err
		}

		now := s.now()
		sched := CompleteSchedule(found.IntervalDays, now)
		if !sched.Storable() {
			logger.Warn("Revision interval out of range", "interval_days", sched.IntervalDays)
			return model.NewAppError("INTERVAL_OUT_OF_RANGE", "復習間隔が上限を超えたため、これ以上完了にできません。", "revision_id", model.ErrInvalidInput)
		}
		found.IntervalDays = sched.IntervalDays
		found.NextDueAt = sched.NextDueAt
		found.LastRevisedAt = &now

		if err := s.revisionRepo.Update(ctx, tx, found); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("REVISION_NOT_FOUND", "復習スケジュールが見つかりません。", "revision_id", err)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの更新に失敗しました。", "", err)
		}
		revision = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Revision completed", "interval_days", revision.IntervalDays, "next_due_at", revision.NextDueAt)
	return revision, nil
}

// Untrack は復習スケジュールを削除する
func (s *revisionService) Untrack(ctx context.Context, userID, revisionID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "revision_id", revisionID.String())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedRevision(ctx, tx, userID, revisionID); err != nil {
			return err
		}
		if err := s.revisionRepo.Delete(ctx, tx, revisionID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("REVISION_NOT_FOUND", "復習スケジュールが見つかりません。", "revision_id", err)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Revision untracked")
	return nil
}

func (s *revisionService) List(ctx context.Context, userID uuid.UUID, filter model.RevisionFilter) ([]*model.Revision, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "filter", string(filter))

	revisions, err := s.revisionRepo.ListByUser(ctx, s.db, userID, BucketRange(filter, s.now()))
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの取得に失敗しました。", "", err)
	}

	logger.Debug("Revisions listed", "count", len(revisions))
	return revisions, nil
}

func (s *revisionService) ownedRevision(ctx context.Context, db *gorm.DB, userID, revisionID uuid.UUID) (*model.Revision, error) {
	revision, err := s.revisionRepo.FindByID(ctx, db, revisionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("REVISION_NOT_FOUND", "復習スケジュールが見つかりません。", "revision_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの取得に失敗しました。", "", err)
	}
	if revision.UserID != userID {
		middleware.GetLogger(ctx).Warn("Revision belongs to another user", "revision_id", revisionID.String())
		return nil, model.NewAppError("FORBIDDEN", "この復習スケジュールにはアクセスできません。", "revision_id", model.ErrForbidden)
	}
	return revision, nil
}
