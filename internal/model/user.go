package model

import (
	"time"

	"github.com/google/uuid"
)

// User は外部の認証基盤で発行されたユーザー。ここではリマインダーの宛先情報だけを持つ
type User struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `gorm:"index" json:"email"` // 空文字 = 連絡先なし
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// UpsertProfileRequest は PUT /me のリクエストボディ
type UpsertProfileRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}
