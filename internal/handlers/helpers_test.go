// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/handlers"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

// testServer はモックサービスを差し込んだルーター
type testServer struct {
	server   *httptest.Server
	cfg      *config.Config
	ingest   *mocks.IngestService
	revision *mocks.RevisionService
	reminder *mocks.ReminderService
	repo     *mocks.RepoService
	problem  *mocks.ProblemService
	user     *mocks.UserService
	healthy  error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Auth.Enabled = false
	cfg.Cron.Secret = "cron-secret"
	cfg.Webhook.MaxBodyBytes = 1024

	ts := &testServer{
		cfg:      cfg,
		ingest:   mocks.NewIngestService(t),
		revision: mocks.NewRevisionService(t),
		reminder: mocks.NewReminderService(t),
		repo:     mocks.NewRepoService(t),
		problem:  mocks.NewProblemService(t),
		user:     mocks.NewUserService(t),
	}
	router := handlers.NewRouter(cfg, testLogger, handlers.Services{
		Ingest:   ts.ingest,
		Revision: ts.revision,
		Reminder: ts.reminder,
		Repo:     ts.repo,
		Problem:  ts.problem,
		User:     ts.user,
	}, func() error { return ts.healthy })
	ts.server = httptest.NewServer(router)
	t.Cleanup(ts.server.Close)
	return ts
}

// userHeaders は開発用認証ヘッダー
func userHeaders(userID uuid.UUID) map[string]string {
	return map[string]string{middleware.DevUserHeader: userID.String()}
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		switch b := details.Body.(type) {
		case string:
			reqBodyReader = strings.NewReader(b)
		case []byte:
			reqBodyReader = bytes.NewReader(b)
		default:
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))
	if expectations.ExpectedErrorCode != "" {
		verifyErrorResponse(t, respBodyBytes, expectations.ExpectedErrorCode)
	}
	return respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "body: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
}

func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", string(body))
	return v
}

