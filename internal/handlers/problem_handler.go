package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/service"
	"go_5_algo_keep/internal/webutil"
)

type ProblemHandler struct {
	service service.ProblemService
	logger  *slog.Logger
}

func NewProblemHandler(s service.ProblemService, logger *slog.Logger) *ProblemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProblemHandler{service: s, logger: logger}
}

// GetProblems は ?search=&platform=&difficulty=&language=&page=&limit= で絞り込んだ一覧を返す
func (h *ProblemHandler) GetProblems(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProblems"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := model.ProblemFilter{
		Search:     q.Get("search"),
		Platform:   q.Get("platform"),
		Difficulty: q.Get("difficulty"),
		Language:   q.Get("language"),
	}
	for name, dst := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			logger.Warn("Invalid query parameter", slog.String(name, raw))
			webutil.HandleError(w, logger, model.NewAppError("INVALID_QUERY_PARAM", name+"は整数で指定してください。", name, model.ErrInvalidInput))
			return
		}
		*dst = n
	}
	if !validate(w, logger, filter) {
		return
	}

	resp, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		logServiceError(logger, "Error listing problems in service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProblem"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}
	problemID, ok := uuidParam(w, r, logger, "problem_id")
	if !ok {
		return
	}

	problem, err := h.service.Get(r.Context(), userID, problemID)
	if err != nil {
		logServiceError(logger, "Error getting problem from service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, problem, logger)
}

func (h *ProblemHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		logServiceError(logger, "Error getting stats from service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
