package handlers

import (
	"log/slog"
	"net/http"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/service"
	"go_5_algo_keep/internal/webutil"

	"github.com/google/uuid"
)

type RevisionHandler struct {
	service service.RevisionService
	logger  *slog.Logger
}

func NewRevisionHandler(s service.RevisionService, logger *slog.Logger) *RevisionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RevisionHandler{service: s, logger: logger}
}

// GetRevisions は ?filter=all|today|week|overdue で絞り込む
func (h *RevisionHandler) GetRevisions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetRevisions"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("filter")
	filter, ok := model.ParseRevisionFilter(raw)
	if !ok {
		logger.Warn("Invalid revision filter", slog.String("filter", raw))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_QUERY_PARAM", "filterは all, today, week, overdue のいずれかを指定してください。", "filter", model.ErrInvalidInput))
		return
	}

	revisions, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		logServiceError(logger, "Error listing revisions in service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	if revisions == nil {
		revisions = []*model.Revision{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, revisions, logger)
}

// PostRevision は問題の復習を開始する
func (h *RevisionHandler) PostRevision(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostRevision"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	var req model.TrackRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	problemID := uuid.MustParse(req.ProblemID) // validate:"uuid" 済み

	revision, err := h.service.Track(r.Context(), userID, problemID)
	if err != nil {
		logServiceError(logger, "Error tracking problem in service", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Problem tracked successfully", slog.String("revision_id", revision.RevisionID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, revision, logger)
}

func (h *RevisionHandler) PostComplete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostComplete"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	revisionID, ok := uuidParam(w, r, logger, "revision_id")
	if !ok {
		return
	}

	revision, err := h.service.Complete(r.Context(), userID, revisionID)
	if err != nil {
		logServiceError(logger, "Error completing revision in service", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Revision completed successfully", slog.Int("interval_days", revision.IntervalDays))
	webutil.RespondWithJSON(w, http.StatusOK, revision, logger)
}

func (h *RevisionHandler) DeleteRevision(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteRevision"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	revisionID, ok := uuidParam(w, r, logger, "revision_id")
	if !ok {
		return
	}

	if err := h.service.Untrack(r.Context(), userID, revisionID); err != nil {
		logServiceError(logger, "Error untracking revision in service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
