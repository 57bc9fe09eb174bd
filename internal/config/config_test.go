package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
database:
  url: "postgres://u:p@localhost:5432/algo?sslmode=disable"
server:
  port: ":9090"
app:
  url: "https://algo.example.com"
auth:
  enabled: false
github:
  timeout: 3s
sync:
  concurrency: 2
cron:
  secret: "from-file"
mailer:
  type: "smtp"
smtp:
  host: "smtp.example.com"
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfigYAML), 0o600))

	t.Run("正常系: ファイルの値が読み込まれ、未設定の項目はデフォルトになる", func(t *testing.T) {
		require.NoError(t, LoadConfig(dir))

		assert.Equal(t, ":9090", Cfg.Server.Port)
		assert.Equal(t, "https://algo.example.com", Cfg.App.URL)
		assert.False(t, Cfg.Auth.Enabled)
		assert.Equal(t, 3*time.Second, Cfg.GitHub.Timeout)
		assert.Equal(t, 2, Cfg.Sync.Concurrency)
		assert.Equal(t, "smtp", Cfg.Mailer.Type)
		assert.Equal(t, "smtp.example.com", Cfg.SMTP.Host)

		assert.Equal(t, DefaultProblemsPerPage, Cfg.App.ProblemsPerPage)
		assert.Equal(t, DefaultWebhookMaxBytes, int(Cfg.Webhook.MaxBodyBytes))
		assert.Equal(t, DefaultReminderSchedule, Cfg.Cron.At)
		assert.Equal(t, 587, Cfg.SMTP.Port)
	})

	t.Run("正常系: 環境変数がファイルの値を上書きする", func(t *testing.T) {
		t.Setenv("CRON_SECRET", "from-env")
		t.Setenv("APP_SYNC_CONCURRENCY", "8")

		require.NoError(t, LoadConfig(dir))

		assert.Equal(t, "from-env", Cfg.Cron.Secret)
		assert.Equal(t, 8, Cfg.Sync.Concurrency)
	})
}

func TestLoadConfig_NoFile(t *testing.T) {
	require.NoError(t, LoadConfig(t.TempDir()))
	assert.True(t, Cfg.Auth.Enabled, "auth.enabled は未設定なら true")
	assert.Equal(t, DefaultServerPort, Cfg.Server.Port)
	assert.Equal(t, "log", Cfg.Mailer.Type)
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{Sync: SyncConfig{Concurrency: 16}}
	ApplyDefaults(&cfg)

	assert.Equal(t, 16, cfg.Sync.Concurrency)
	assert.Equal(t, DefaultGitHubTimeout, cfg.GitHub.Timeout)
	assert.Equal(t, AppName, cfg.App.Name)
	assert.Equal(t, DefaultMailFrom, cfg.Mailer.From)
}
