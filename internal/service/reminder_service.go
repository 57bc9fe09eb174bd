package service

import (
	"context"
	"time"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderService interface {
	// RunDaily は期限が今日中までの復習をユーザーごとにまとめて通知する
	RunDaily(ctx context.Context) (*model.ReminderResult, error)
}

type reminderService struct {
	db           *gorm.DB
	revisionRepo repository.RevisionRepository
	userRepo     repository.UserRepository
	mailer       Mailer
	cfg          *config.Config
	now          func() time.Time
}

func NewReminderService(
	db *gorm.DB,
	revisionRepo repository.RevisionRepository,
	userRepo repository.UserRepository,
	mailer Mailer,
	cfg *config.Config,
) ReminderService {
	return &reminderService{
		db:           db,
		revisionRepo: revisionRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *reminderService) RunDaily(ctx context.Context) (*model.ReminderResult, error) {
	logger := middleware.GetLogger(ctx)
	until := EndOfDay(s.now())

	due, err := s.revisionRepo.FindDue(ctx, s.db, until)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "期限の復習の取得に失敗しました。", "", err)
	}

	// ユーザーごとにまとめる (初出順)
	var order []uuid.UUID
	byUser := make(map[uuid.UUID][]*model.Revision)
	for _, rev := range due {
		if _, ok := byUser[rev.UserID]; !ok {
			order = append(order, rev.UserID)
		}
		byUser[rev.UserID] = append(byUser[rev.UserID], rev)
	}

	users, err := s.userRepo.FindByIDs(ctx, s.db, order)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "ユーザーの取得に失敗しました。", "", err)
	}

	result := &model.ReminderResult{Success: true, TotalRevisions: len(due)}
	for _, userID := range order {
		userLogger := logger.With("user_id", userID.String())

		user, ok := users[userID]
		if !ok || user.Email == "" {
			userLogger.Info("Skipping reminder: user has no contact address")
			continue
		}

		problems := make([]model.DueProblem, 0, len(byUser[userID]))
		for _, rev := range byUser[userID] {
			if rev.Problem == nil {
				continue
			}
			difficulty := ""
			if rev.Problem.Difficulty != nil {
				difficulty = *rev.Problem.Difficulty
			}
			problems = append(problems, model.DueProblem{
				ProblemID:  rev.ProblemID,
				Title:      rev.Problem.Title,
				Difficulty: difficulty,
				URL:        ProblemURL(s.cfg.App.URL, rev.ProblemID.String()),
			})
		}
		if len(problems) == 0 {
			continue
		}

		msg, err := BuildReminderMail(s.cfg.App.URL, user, problems)
		if err != nil {
			userLogger.Error("Failed to build reminder mail", "error", err)
			continue
		}
		if err := s.mailer.Send(ctx, msg); err != nil {
			userLogger.Error("Failed to send reminder, skipping user", "error", err)
			continue
		}
		result.UsersNotified++
	}

	logger.Info("Daily reminder finished", "users_notified", result.UsersNotified, "total_revisions", result.TotalRevisions)
	return result, nil
}
