//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
)

type Mailer interface {
	Send(ctx context.Context, msg model.MailMessage) error
}

// --- LogMailer ---
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, msg model.MailMessage) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", msg.To, "subject", msg.Subject, "body", msg.Text)
	return nil
}

// --- SmtpMailer ---
type SmtpMailer struct {
	cfg  *config.SMTPConfig
	from string
}

func NewSmtpMailer(cfg *config.SMTPConfig, defaultFrom string) *SmtpMailer {
	from := cfg.From
	if from == "" {
		from = defaultFrom
	}
	return &SmtpMailer{cfg: cfg, from: from}
}

func (m *SmtpMailer) Send(ctx context.Context, msg model.MailMessage) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	logger.Debug("Attempting to send email via SMTP", "smtp_addr", addr, "from", m.from, "to", msg.To)

	data, err := buildMIMEMessage(m.from, msg)
	if err != nil {
		logger.Error("Failed to build MIME message", "error", err)
		return err
	}

	c, err := smtp.Dial(addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			logger.Error("Failed to start TLS", "error", err, "addr", addr)
			return err
		}
	}
	if m.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
			logger.Error("SMTP authentication failed", "error", err, "username", m.cfg.Username)
			return err
		}
	}

	if err = c.Mail(envelopeAddress(m.from)); err != nil {
		logger.Error("Failed to set MAIL FROM", "error", err, "from", m.from)
		return err
	}
	if err = c.Rcpt(msg.To); err != nil {
		logger.Error("Failed to set RCPT TO", "error", err, "to", msg.To)
		return err
	}

	wc, err := c.Data()
	if err != nil {
		logger.Error("Failed to open data writer", "error", err)
		return err
	}
	if _, err = wc.Write(data); err != nil {
		wc.Close()
		logger.Error("Failed to write email data", "error", err)
		return err
	}
	if err = wc.Close(); err != nil {
		logger.Error("Failed to finish email data", "error", err)
		return err
	}
	if err = c.Quit(); err != nil {
		logger.Warn("SMTP QUIT failed after successful send", "error", err)
	}

	logger.Info("Email sent successfully via SMTP", "to", msg.To, "subject", msg.Subject)
	return nil
}

// buildMIMEMessage は text/plain と text/html を multipart/alternative にまとめる
func buildMIMEMessage(from string, msg model.MailMessage) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", mw.Boundary())

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		w, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {p.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// envelopeAddress は `"Name" <addr>` 形式から addr だけを取り出す
func envelopeAddress(from string) string {
	for i := len(from) - 1; i >= 0; i-- {
		if from[i] == '<' {
			end := len(from)
			if from[end-1] == '>' {
				end--
			}
			return from[i+1 : end]
		}
	}
	return from
}

// --- NewMailer ファクトリ関数 ---
func NewMailer(cfg *config.Config) (Mailer, error) {
	logger := slog.Default()
	switch cfg.Mailer.Type {
	case "smtp":
		logger.Info("Initializing SMTP mailer...")
		return NewSmtpMailer(&cfg.SMTP, cfg.Mailer.From), nil
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}, nil
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Mailer.Type)
		return &LogMailer{}, nil
	}
}
