//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Upsert(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error)
	FindByIDs(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]*model.User, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Upsert(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
	}).Create(user)
	if result.Error != nil {
		logger.Error("Error upserting user in DB", "error", result.Error, "user_id", user.UserID.String())
		return fmt.Errorf("gormUserRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user by ID in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormUserRepository.FindByID: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByIDs(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID]*model.User, error) {
	logger := middleware.GetLogger(ctx)
	users := make(map[uuid.UUID]*model.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	var found []*model.User
	result := db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&found)
	if result.Error != nil {
		logger.Error("Error finding users by IDs in DB", "error", result.Error, "count", len(userIDs))
		return nil, fmt.Errorf("gormUserRepository.FindByIDs: %w", result.Error)
	}
	for _, u := range found {
		users[u.UserID] = u
	}
	return users, nil
}
