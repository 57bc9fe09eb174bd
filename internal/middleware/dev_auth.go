// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/webutil"

	"github.com/google/uuid"
)

// DevUserHeader は auth.enabled=false の時にユーザーIDを渡すヘッダー
const DevUserHeader = "X-User-ID"

// DevUserContextMiddleware は開発時用ミドルウェアです。
// X-User-ID ヘッダーのUUIDをそのままユーザーIDとしてコンテキストに設定します。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		raw := r.Header.Get(DevUserHeader)
		if raw == "" {
			logger.Warn("[DEV AUTH] Failed: X-User-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-User-ID ヘッダーが必要です。", DevUserHeader, model.ErrUnauthorized))
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: Invalid X-User-ID format", "value", raw)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] X-User-ID の形式が正しくありません。", DevUserHeader, model.ErrUnauthorized))
			return
		}

		logger.Debug("[DEV AUTH] User ID set to context (no validation)", "user_id", userID.String())
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}
