package handlers

import (
	"log/slog"
	"net/http"

	"go_5_algo_keep/internal/service"
	"go_5_algo_keep/internal/webutil"
)

type CronHandler struct {
	reminder service.ReminderService
	logger   *slog.Logger
}

func NewCronHandler(reminder service.ReminderService, logger *slog.Logger) *CronHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CronHandler{reminder: reminder, logger: logger}
}

// RunDaily はその日のリマインダーを送る。認証は CronSecretMiddleware で行う
func (h *CronHandler) RunDaily(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RunDaily"))

	result, err := h.reminder.RunDaily(r.Context())
	if err != nil {
		logServiceError(logger, "Daily reminder failed", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Daily reminder completed", slog.Int("users_notified", result.UsersNotified), slog.Int("total_revisions", result.TotalRevisions))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
