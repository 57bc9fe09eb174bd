package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"testing"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIMEMessage(t *testing.T) {
	msg := model.MailMessage{
		To:      "alice@example.com",
		Subject: "🔔 2 Problems Due for Revision",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	}

	raw, err := buildMIMEMessage(`"Algo Keep" <noreply@example.com>`, msg)
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", parsed.Header.Get("To"))

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, msg.Subject, subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])
	var types, bodies []string
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		b, err := io.ReadAll(part)
		require.NoError(t, err)
		types = append(types, part.Header.Get("Content-Type"))
		bodies = append(bodies, string(b))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
	assert.Equal(t, []string{"plain body", "<p>html body</p>"}, bodies)
}

func TestEnvelopeAddress(t *testing.T) {
	tests := []struct {
		name string
		from string
		want string
	}{
		{name: "正常系: 表示名付き", from: `"Algo Keep" <noreply@example.com>`, want: "noreply@example.com"},
		{name: "正常系: アドレスのみ", from: "noreply@example.com", want: "noreply@example.com"},
		{name: "正常系: 山括弧のみ", from: "<noreply@example.com>", want: "noreply@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, envelopeAddress(tt.from))
		})
	}
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, f.err
}

func TestSESMailer_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: テキストとHTMLの両方を送る", func(t *testing.T) {
		client := &fakeSES{}
		m := &SESMailer{client: client, from: "noreply@example.com"}

		err := m.Send(ctx, model.MailMessage{To: "a@example.com", Subject: "s", Text: "t", HTML: "<b>h</b>"})
		require.NoError(t, err)
		require.NotNil(t, client.input)
		assert.Equal(t, "noreply@example.com", aws.ToString(client.input.FromEmailAddress))
		assert.Equal(t, []string{"a@example.com"}, client.input.Destination.ToAddresses)
		assert.Equal(t, "t", aws.ToString(client.input.Content.Simple.Body.Text.Data))
		assert.Equal(t, "<b>h</b>", aws.ToString(client.input.Content.Simple.Body.Html.Data))
	})

	t.Run("異常系: SES のエラーをそのまま返す", func(t *testing.T) {
		m := &SESMailer{client: &fakeSES{err: errors.New("throttled")}, from: "noreply@example.com"}
		err := m.Send(ctx, model.MailMessage{To: "a@example.com", Subject: "s", Text: "t"})
		assert.EqualError(t, err, "throttled")
	})
}

func TestNewMailer(t *testing.T) {
	t.Run("正常系: 未知の種類は LogMailer", func(t *testing.T) {
		cfg := &config.Config{Mailer: config.MailerConfig{Type: "carrier-pigeon"}}
		m, err := NewMailer(cfg)
		require.NoError(t, err)
		assert.IsType(t, &LogMailer{}, m)
	})

	t.Run("正常系: smtp は設定の From を優先する", func(t *testing.T) {
		cfg := &config.Config{
			Mailer: config.MailerConfig{Type: "smtp", From: "default@example.com"},
			SMTP:   config.SMTPConfig{Host: "localhost", Port: 25, From: "smtp@example.com"},
		}
		m, err := NewMailer(cfg)
		require.NoError(t, err)
		require.IsType(t, &SmtpMailer{}, m)
		assert.Equal(t, "smtp@example.com", m.(*SmtpMailer).from)
	})

	t.Run("異常系: SES の静的認証でキーが無い", func(t *testing.T) {
		cfg := &config.Config{
			Mailer: config.MailerConfig{Type: "ses"},
			SES:    config.SESConfig{Region: "ap-northeast-1", AuthType: "static_credentials"},
		}
		_, err := NewMailer(cfg)
		assert.Error(t, err)
	})
}
