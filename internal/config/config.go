// internal/config/config.go
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type AppConfig struct {
	Name            string `mapstructure:"name"`
	URL             string `mapstructure:"url"` // メール内リンクのベースURL
	ProblemsPerPage int    `mapstructure:"problems_per_page"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"` // iat からの最大経過時間
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type GitHubConfig struct {
	Token   string        `mapstructure:"token"`
	BaseURL string        `mapstructure:"base_url"` // GitHub Enterprise 用。空なら api.github.com
	Timeout time.Duration `mapstructure:"timeout"`
}

type WebhookConfig struct {
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

type SyncConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type CronConfig struct {
	Secret          string `mapstructure:"secret"`
	ScheduleEnabled bool   `mapstructure:"schedule_enabled"` // serve 内で gocron を動かすか
	At              string `mapstructure:"at"`               // "HH:MM"
	Timezone        string `mapstructure:"timezone"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // log | smtp | ses
	From string `mapstructure:"from"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // static_credentials | iam_role
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Cron     CronConfig     `mapstructure:"cron"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SES      SESConfig      `mapstructure:"ses"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// 環境変数 (例: APP_DATABASE_URL) でも上書きできるようにする
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// よく使うものは接頭辞なしの名前でも受け付ける
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("auth.enabled", "AUTH_ENABLED")
	_ = v.BindEnv("jwt.secret_key", "JWT_SECRET")
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("cron.secret", "CRON_SECRET")
	_ = v.BindEnv("app.url", "APP_URL")
	_ = v.BindEnv("smtp.host", "SMTP_HOST")
	_ = v.BindEnv("smtp.port", "SMTP_PORT")
	_ = v.BindEnv("smtp.username", "SMTP_USER")
	_ = v.BindEnv("smtp.password", "SMTP_PASS")
	_ = v.BindEnv("smtp.from", "SMTP_FROM")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// Auth.Enabled は未設定なら true (有効)
	if !v.IsSet("auth.enabled") {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		cfg.Auth.Enabled = true
	}

	ApplyDefaults(&cfg)
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	log.Printf("Mailer Type: %s", Cfg.Mailer.Type)

	return nil
}

// ApplyDefaults はゼロ値のままの項目にデフォルト値を設定します。テストからも利用します。
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.App.Name == "" {
		cfg.App.Name = AppName
	}
	if cfg.App.URL == "" {
		cfg.App.URL = DefaultAppURL
	}
	if cfg.App.ProblemsPerPage <= 0 {
		cfg.App.ProblemsPerPage = DefaultProblemsPerPage
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = DefaultJWTAccessTokenTTL
	}
	if cfg.GitHub.Timeout <= 0 {
		cfg.GitHub.Timeout = DefaultGitHubTimeout
	}
	if cfg.Webhook.MaxBodyBytes <= 0 {
		cfg.Webhook.MaxBodyBytes = DefaultWebhookMaxBytes
	}
	if cfg.Sync.Concurrency <= 0 {
		cfg.Sync.Concurrency = DefaultSyncConcurrency
	}
	if cfg.Cron.At == "" {
		cfg.Cron.At = DefaultReminderSchedule
	}
	if cfg.Mailer.Type == "" {
		cfg.Mailer.Type = "log"
	}
	if cfg.Mailer.From == "" {
		cfg.Mailer.From = DefaultMailFrom
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
}
