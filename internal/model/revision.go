package model

import (
	"time"

	"github.com/google/uuid"
)

// Revision はユーザーごとの問題の復習スケジュール
type Revision struct {
	RevisionID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"revision_id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_revision_user_problem" json:"user_id"`
	ProblemID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_revision_user_problem;index" json:"problem_id"`
	NextDueAt     time.Time  `gorm:"not null;index" json:"next_due_at"`
	LastRevisedAt *time.Time `json:"last_revised_at"`
	IntervalDays  int        `gorm:"not null;default:7" json:"interval_days"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// 関連 (Preload用)
	Problem *Problem `gorm:"foreignKey:ProblemID;references:ProblemID" json:"problem,omitempty"`
}

func (Revision) TableName() string {
	return "revisions"
}

// RevisionFilter は一覧取得時のバケット
type RevisionFilter string

const (
	RevisionFilterAll     RevisionFilter = "all"
	RevisionFilterToday   RevisionFilter = "today"
	RevisionFilterWeek    RevisionFilter = "week"
	RevisionFilterOverdue RevisionFilter = "overdue"
)

// ParseRevisionFilter はクエリ文字列をフィルタに変換する。空文字は all
func ParseRevisionFilter(s string) (RevisionFilter, bool) {
	switch RevisionFilter(s) {
	case "", RevisionFilterAll:
		return RevisionFilterAll, true
	case RevisionFilterToday, RevisionFilterWeek, RevisionFilterOverdue:
		return RevisionFilter(s), true
	}
	return "", false
}

// DueWindow は next_due_at の検索範囲。nil の境界は無制限
type DueWindow struct {
	From   *time.Time // From <= next_due_at
	Until  *time.Time // next_due_at <= Until
	Before *time.Time // next_due_at < Before
}

// TrackRequest は POST /revisions のリクエストボディ
type TrackRequest struct {
	ProblemID string `json:"problem_id" validate:"required,uuid"`
}

// ReminderResult は日次リマインダーの実行結果
type ReminderResult struct {
	Success        bool `json:"success"`
	UsersNotified  int  `json:"usersNotified"`
	TotalRevisions int  `json:"totalRevisions"`
}

// DueProblem はリマインダーメールに載せる1行
type DueProblem struct {
	ProblemID  uuid.UUID
	Title      string
	Difficulty string
	URL        string
}
