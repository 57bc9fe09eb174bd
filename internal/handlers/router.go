package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Services はルーターが使うサービス群
type Services struct {
	Ingest   service.IngestService
	Revision service.RevisionService
	Reminder service.ReminderService
	Repo     service.RepoService
	Problem  service.ProblemService
	User     service.UserService
}

// HealthChecker は /health で呼ばれる依存先の疎通確認
type HealthChecker func() error

// NewRouter はミドルウェアとルートを組み立てる
func NewRouter(cfg *config.Config, logger *slog.Logger, svc Services, health HealthChecker) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	webhookHandler := NewWebhookHandler(svc.Ingest, cfg.Webhook.MaxBodyBytes, logger)
	cronHandler := NewCronHandler(svc.Reminder, logger)
	repoHandler := NewRepoHandler(svc.Repo, svc.Ingest, logger)
	problemHandler := NewProblemHandler(svc.Problem, logger)
	revisionHandler := NewRevisionHandler(svc.Revision, logger)
	userHandler := NewUserHandler(svc.User, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// GitHub とスケジューラからの呼び出し (それぞれ独自の認証)
	r.Post("/api/github/webhook", webhookHandler.PostPush)
	r.Group(func(r chi.Router) {
		r.Use(middleware.CronSecretMiddleware(cfg.Cron.Secret))
		r.Post("/api/cron/daily", cronHandler.RunDaily)
		r.Get("/api/cron/daily", cronHandler.RunDaily)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Auth.Enabled {
			r.Use(middleware.JWTAuthMiddleware(cfg))
		} else {
			logger.Warn("Authentication is disabled, using X-User-ID header")
			r.Use(middleware.DevUserContextMiddleware)
		}

		r.Put("/me", userHandler.PutMe)

		r.Route("/repos", func(r chi.Router) {
			r.Get("/", repoHandler.GetRepos)
			r.Post("/", repoHandler.PostRepo)
			r.Get("/{repo_id}", repoHandler.GetRepo)
			r.Delete("/{repo_id}", repoHandler.DeleteRepo)
			r.Post("/{repo_id}/sync", repoHandler.PostSync)
		})

		r.Route("/problems", func(r chi.Router) {
			r.Get("/", problemHandler.GetProblems)
			r.Get("/{problem_id}", problemHandler.GetProblem)
		})
		r.Get("/stats", problemHandler.GetStats)

		r.Route("/revisions", func(r chi.Router) {
			r.Get("/", revisionHandler.GetRevisions)
			r.Post("/", revisionHandler.PostRevision)
			r.Post("/{revision_id}/complete", revisionHandler.PostComplete)
			r.Delete("/{revision_id}", revisionHandler.DeleteRevision)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(); err != nil {
				middleware.GetLogger(r.Context()).Error("Health check failed", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
