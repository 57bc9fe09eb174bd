package middleware

import (
	"crypto/subtle"
	"net/http"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/webutil"
)

// CronSecretMiddleware はスケジューラからの呼び出しを共有シークレットで検証する。
// Authorization: Bearer <secret>、GET の場合は ?secret=<secret> も受け付ける
func CronSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			if secret == "" {
				logger.Error("Cron secret is not configured, rejecting request")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証に失敗しました。", "", model.ErrUnauthorized))
				return
			}

			presented, ok := webutil.BearerToken(r)
			if !ok && r.Method == http.MethodGet {
				presented = r.URL.Query().Get("secret")
			}
			if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				logger.Warn("Cron request rejected: secret mismatch")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "認証に失敗しました。", "", model.ErrUnauthorized))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
