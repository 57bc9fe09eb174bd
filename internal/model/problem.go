package model

import (
	"time"

	"github.com/google/uuid"
)

// Problem はリポジトリ内の1ファイル = 1問
type Problem struct {
	ProblemID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"problem_id"`
	RepoID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_problem_repo_path" json:"repo_id"`
	Path       string    `gorm:"not null;uniqueIndex:uq_problem_repo_path" json:"path"`
	SHA        string    `gorm:"not null" json:"sha"`
	Title      string    `gorm:"not null" json:"title"`
	Platform   *string   `gorm:"index" json:"platform"`
	Difficulty *string   `gorm:"index" json:"difficulty"`
	Language   *string   `gorm:"index" json:"language"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Repo *Repo `gorm:"foreignKey:RepoID;references:RepoID" json:"repo,omitempty"`
}

func (Problem) TableName() string {
	return "problems"
}

// ProblemKey は Problem の natural key (repo id, path)
type ProblemKey struct {
	RepoID uuid.UUID
	Path   string
}

// ProblemFilter は一覧取得の絞り込み条件
type ProblemFilter struct {
	Search     string `json:"search" validate:"max=200"`
	Platform   string `json:"platform" validate:"max=50"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Language   string `json:"language" validate:"max=50"`
	Page       int    `json:"page" validate:"min=0"`
	Limit      int    `json:"limit" validate:"min=0,max=100"`
}

// ProblemWithRevision は一覧/詳細レスポンス用
type ProblemWithRevision struct {
	Problem
	RepoFullName string    `json:"repo_full_name"`
	Revision     *Revision `json:"revision"`
	Content      *string   `json:"content,omitempty"`
}

// ProblemListResponse はページング付きの一覧
type ProblemListResponse struct {
	Problems []*ProblemWithRevision `json:"problems"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	Pages    int                    `json:"pages"`
}

// GroupCount は platform / difficulty ごとの件数
type GroupCount struct {
	Key   *string `json:"key"`
	Count int64   `json:"count"`
}

// StatsResponse はダッシュボード用の集計
type StatsResponse struct {
	TotalProblems   int64         `json:"total_problems"`
	TotalRevisions  int64         `json:"total_revisions"`
	PlatformStats   []*GroupCount `json:"platform_stats"`
	DifficultyStats []*GroupCount `json:"difficulty_stats"`
}

// SyncResult は full sync の結果
type SyncResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
	Failed  int `json:"failed,omitempty"`
}
