package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// bodyLogLimit はデバッグログに残すボディの最大バイト数
const bodyLogLimit = 4 << 10

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization":       true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-hub-signature":     true,
	"x-hub-signature-256": true,
}

// statusRecorder はステータスコードと書き込みバイト数、先頭 bodyLogLimit バイトを記録する
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
	head       *bytes.Buffer // nil ならボディは記録しない
}

func (sr *statusRecorder) WriteHeader(statusCode int) {
	sr.statusCode = statusCode
	sr.ResponseWriter.WriteHeader(statusCode)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.head != nil && sr.head.Len() < bodyLogLimit {
		sr.head.Write(b[:min(len(b), bodyLogLimit-sr.head.Len())])
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytesOut += n
	return n, err
}

// LoggingMiddleware はリクエストごとのロガーをコンテキストに入れ、開始と完了を記録する。
// デバッグレベルではヘッダーとボディの先頭も出す
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(slog.String("req_id", middleware.GetReqID(r.Context())))
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			requestLogger.Info("Request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)

			debug := logger.Enabled(r.Context(), slog.LevelDebug)
			var reqHead []byte
			if debug && r.Body != nil {
				// 先頭だけ読み、残りはそのままハンドラーへ流す (上限チェックはハンドラー側)
				reqHead, _ = io.ReadAll(io.LimitReader(r.Body, bodyLogLimit))
				r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(reqHead), r.Body), Closer: r.Body}
			}

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			if debug {
				rec.head = new(bytes.Buffer)
			}

			next.ServeHTTP(rec, r)

			logLevel := slog.LevelInfo
			switch {
			case rec.statusCode >= 500:
				logLevel = slog.LevelError
			case rec.statusCode >= 400:
				logLevel = slog.LevelWarn
			}
			requestLogger.Log(r.Context(), logLevel, "Request completed",
				slog.Int("status", rec.statusCode),
				slog.Float64("latency_ms", float64(time.Since(startTime).Nanoseconds())/1e6),
				slog.Int("bytes_out", rec.bytesOut),
			)

			if debug {
				requestLogger.Debug("Request detail",
					slog.Any("headers", formatHeaders(r.Header)),
					slog.String("body", string(reqHead)),
				)
				requestLogger.Debug("Response detail",
					slog.Int("status", rec.statusCode),
					slog.Any("headers", formatHeaders(rec.Header())),
					slog.String("body", rec.head.String()),
				)
			}
		})
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger はロガーをコンテキストに格納します。HTTP 以外 (CLI やスケジューラ) から呼ぶ時にも使います。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// formatHeaders はヘッダーをログ用に整形し、機密ヘッダーをマスクする
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
			continue
		}
		result[key] = strings.Join(values, ", ")
	}
	return result
}
