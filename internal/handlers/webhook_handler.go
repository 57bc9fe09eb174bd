package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/service"
	"go_5_algo_keep/internal/webhook"
	"go_5_algo_keep/internal/webutil"
)

type WebhookHandler struct {
	ingest       service.IngestService
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewWebhookHandler(ingest service.IngestService, maxBodyBytes int64, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{ingest: ingest, maxBodyBytes: maxBodyBytes, logger: logger}
}

// PostPush は GitHub の push webhook を受け取る。署名検証のため生ボディをそのまま渡す
func (h *WebhookHandler) PostPush(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostPush"), slog.String("delivery", r.Header.Get("X-GitHub-Delivery")))

	if event := r.Header.Get("X-GitHub-Event"); event == "ping" {
		logger.Info("Webhook ping received")
		webutil.RespondWithJSON(w, http.StatusOK, model.PushResult{Success: true}, logger)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Webhook body too large", slog.Int64("limit", tooLarge.Limit))
			webutil.HandleError(w, logger, model.NewAppError("INVALID_PAYLOAD", "ペイロードが大きすぎます。", "", model.ErrInvalidInput))
			return
		}
		logger.Warn("Failed to read webhook body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError("INVALID_PAYLOAD", "ペイロードを読み取れませんでした。", "", model.ErrInvalidInput))
		return
	}

	result, err := h.ingest.ReceivePush(r.Context(), raw, r.Header.Get(webhook.SignatureHeader), r.Header.Get("Content-Type"))
	if err != nil {
		logServiceError(logger, "Webhook processing failed", err)
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Webhook processed", slog.Int("processed", result.Processed), slog.Int("seeded", result.Seeded), slog.Int("failed", result.Failed))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
