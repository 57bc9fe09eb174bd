// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "algo-keep"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultAppURL            = "http://localhost:3000"
	DefaultProblemsPerPage   = 20
	DefaultMaxProblemsLimit  = 100
	DefaultGitHubTimeout     = 15 * time.Second
	DefaultSyncConcurrency   = 4
	DefaultWebhookMaxBytes   = 5 << 20 // 5MB
	DefaultReminderSchedule  = "08:00"
	DefaultMailFrom          = `"DSA Trainer" <no-reply@example.com>`
	DefaultJWTAccessTokenTTL = 24 * time.Hour
)

// 復習スケジュール
const (
	// InitialRevisionIntervalDays は track 時と新規ファイル検出時の初期間隔 (日)
	InitialRevisionIntervalDays = 7
)
