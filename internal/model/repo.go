package model

import (
	"time"

	"github.com/google/uuid"
)

// Repo は連携済みのGitHubリポジトリ
type Repo struct {
	RepoID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"repo_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_repo_user_full_name" json:"user_id"`
	FullName      string    `gorm:"not null;uniqueIndex:uq_repo_user_full_name;index" json:"full_name"` // owner/name
	DefaultBranch string    `gorm:"not null;default:main" json:"default_branch"`
	WebhookSecret string    `gorm:"not null" json:"webhook_secret,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 集計用 (DBカラムではない)
	ProblemCount int64 `gorm:"-" json:"problem_count"`
}

func (Repo) TableName() string {
	return "repos"
}

// ConnectRepoRequest はリポジトリ連携リクエストのDTO
type ConnectRepoRequest struct {
	FullName      string `json:"full_name" validate:"required,max=200"`
	DefaultBranch string `json:"default_branch" validate:"omitempty,max=255"`
}

// RemoteRepository はプロバイダから取得したリポジトリ情報
type RemoteRepository struct {
	FullName      string
	DefaultBranch string
	Private       bool
}

// TreeEntry はツリー一覧の1エントリ
type TreeEntry struct {
	Path string
	Type string // blob | tree | commit
	SHA  string
}

const TreeEntryTypeBlob = "blob"

// FileContent は1ファイル分の内容と content-identity marker
type FileContent struct {
	Content string
	SHA     string
}
