package handlers

import (
	"log/slog"
	"net/http"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/service"
	"go_5_algo_keep/internal/webutil"
)

type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{service: s, logger: logger}
}

// PutMe はリマインダーの宛先 (名前とメールアドレス) を登録する
func (h *UserHandler) PutMe(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutMe"))
	userID, ok := currentUser(w, r, logger)
	if !ok {
		return
	}

	var req model.UpsertProfileRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}

	user, err := h.service.UpsertProfile(r.Context(), userID, &req)
	if err != nil {
		logServiceError(logger, "Error upserting profile in service", err)
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, user, logger)
}
