package service

import (
	"time"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/model"
)

// Schedule は復習スケジュールの計算結果
type Schedule struct {
	IntervalDays int
	NextDueAt    time.Time
}

// NewSchedule は track 時・新規ファイル検出時の初期スケジュール
func NewSchedule(now time.Time) Schedule {
	return Schedule{
		IntervalDays: config.InitialRevisionIntervalDays,
		NextDueAt:    now.AddDate(0, 0, config.InitialRevisionIntervalDays),
	}
}

// maxDueYear は保存できる期限の最終年。JSON (RFC 3339) で表せるのは 9999 年まで
const maxDueYear = 9999

// CompleteSchedule は復習完了時に間隔を倍にする (上限なし)。
// 保存できる範囲に収まるかは Storable で確かめる
func CompleteSchedule(intervalDays int, now time.Time) Schedule {
	if intervalDays <= 0 {
		intervalDays = config.InitialRevisionIntervalDays
	}
	next := intervalDays * 2
	return Schedule{
		IntervalDays: next,
		NextDueAt:    now.AddDate(0, 0, next),
	}
}

// Storable は期限が保存・応答できる範囲に収まっているか
func (s Schedule) Storable() bool {
	return s.IntervalDays > 0 && s.NextDueAt.Year() <= maxDueYear
}

// StartOfDay は now と同じタイムゾーンでの当日 0:00
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// EndOfDay は当日の 23:59:59.999
func EndOfDay(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// IsDueToday: today <= next <= today+1d
func IsDueToday(next, now time.Time) bool {
	today := StartOfDay(now)
	return !next.Before(today) && !next.After(today.AddDate(0, 0, 1))
}

// IsDueThisWeek: today <= next <= today+7d
func IsDueThisWeek(next, now time.Time) bool {
	today := StartOfDay(now)
	return !next.Before(today) && !next.After(today.AddDate(0, 0, 7))
}

// IsOverdue: next < today
func IsOverdue(next, now time.Time) bool {
	return next.Before(StartOfDay(now))
}

// BucketRange はフィルタを next_due_at の検索範囲に変換する
func BucketRange(filter model.RevisionFilter, now time.Time) model.DueWindow {
	today := StartOfDay(now)
	switch filter {
	case model.RevisionFilterToday:
		until := today.AddDate(0, 0, 1)
		return model.DueWindow{From: &today, Until: &until}
	case model.RevisionFilterWeek:
		until := today.AddDate(0, 0, 7)
		return model.DueWindow{From: &today, Until: &until}
	case model.RevisionFilterOverdue:
		return model.DueWindow{Before: &today}
	default:
		return model.DueWindow{}
	}
}
