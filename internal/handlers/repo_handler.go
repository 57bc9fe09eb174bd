package handlers

import (
	"log/slog"
	"net/http"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/service"
	"go_5_algo_keep/internal/webutil"
)

type RepoHandler struct {
	repos  service.RepoService
	ingest service.IngestService
	logger *slog.Logger
}

func NewRepoHandler(repos service.RepoService, ingest service.IngestService, logger *slog.Logger) *RepoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RepoHandler{repos: repos, ingest: ingest, logger: logger}
}

// PostRepo はリポジトリを連携する。レスポンスには webhook 用のシークレットを含む
func (h *RepoHandler) PostRepo(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostRepo"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.ConnectRepoRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	repo, err := h.repos.Connect(r.Context(), userID, &req)
	if err != nil {
		logServiceError(logger, "Error connecting repository in service", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Repository connected successfully", slog.String("repo_id", repo.RepoID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, repo, logger)
}

func (h *RepoHandler) GetRepos(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetRepos"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	repos, err := h.repos.List(r.Context(), userID)
	if err != nil {
		logServiceError(logger, "Error listing repositories in service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	if repos == nil {
		repos = []*model.Repo{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, repos, logger)
}

func (h *RepoHandler) GetRepo(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetRepo"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	repoID, ok := uuidParam(w, r, logger, "repo_id")
	if !ok {
		return
	}

	repo, err := h.repos.Get(r.Context(), userID, repoID)
	if err != nil {
		logServiceError(logger, "Error getting repository from service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, repo, logger)
}

func (h *RepoHandler) DeleteRepo(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteRepo"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	repoID, ok := uuidParam(w, r, logger, "repo_id")
	if !ok {
		return
	}

	if err := h.repos.Delete(r.Context(), userID, repoID); err != nil {
		logServiceError(logger, "Error deleting repository in service", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Repository deleted successfully", slog.String("repo_id", repoID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// PostSync はデフォルトブランチ全体との突き合わせを行う
func (h *RepoHandler) PostSync(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSync"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	repoID, ok := uuidParam(w, r, logger, "repo_id")
	if !ok {
		return
	}

	result, err := h.ingest.FullSync(r.Context(), userID, repoID)
	if err != nil {
		logServiceError(logger, "Error syncing repository", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Repository synced", slog.Int("added", result.Added), slog.Int("updated", result.Updated), slog.Int("total", result.Total))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
