package service

import (
	"context"
	"strings"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	// UpsertProfile はリマインダーの宛先を登録・更新する
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *model.UpsertProfileRequest) (*model.User, error)
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *model.UpsertProfileRequest) (*model.User, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String())

	user := &model.User{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := s.userRepo.Upsert(ctx, s.db, user); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの保存に失敗しました。", "", err)
	}

	logger.Info("User profile upserted", "has_email", user.Email != "")
	return user, nil
}
