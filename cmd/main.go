// cmd/main.go
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"go_5_algo_keep/internal/config"
)

// rootOptions は全サブコマンド共通のフラグ
type rootOptions struct {
	configDir string
	envFile   string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          config.AppName,
		Short:        "Mirror solved problems from GitHub and remind you to revise them",
		Version:      config.AppVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env は任意。無ければ環境変数のみ
			if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
				log.Printf("Warning: could not load %s: %v", opts.envFile, err)
			}
			if err := config.LoadConfig(opts.configDir); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			slog.SetDefault(newLogger(&config.Cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config", "configs", "directory containing config.yaml")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading config")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newRemindCommand())
	cmd.AddCommand(newMigrateCommand())

	return cmd
}

// newLogger は APP_ENV=dev なら tint、それ以外は JSON ハンドラーのロガーを返す
func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler).With(slog.String("app", cfg.App.Name))
}
