package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// currentUser は認証ミドルウェアが設定したユーザーIDを取り出す。失敗時はレスポンスを書き込み済み
func currentUser(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized))
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam は URL パラメータを UUID として読む
func uuidParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid ID format in URL", slog.String(name, raw), slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_URL_PARAM", name+"の形式が正しくありません。", name, model.ErrInvalidInput))
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate はボディをデコードし、validate タグで検証する
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput))
		return false
	}
	return validate(w, logger, dst)
}

func validate(w http.ResponseWriter, logger *slog.Logger, v interface{}) bool {
	err := webutil.Validator.Struct(v)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
		webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		return false
	}

	logger.Error("Unexpected error during validation", slog.Any("error", err))
	webutil.HandleError(w, logger, err)
	return false
}

// logServiceError は 5xx だけを Error で記録する
func logServiceError(logger *slog.Logger, msg string, err error) {
	if webutil.MapErrorToStatusCode(err) >= http.StatusInternalServerError {
		logger.Error(msg, slog.Any("error", err))
		return
	}
	logger.Info(msg, slog.Any("error", err))
}
