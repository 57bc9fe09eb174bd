package handlers_test

import (
	"net/http"
	"testing"

	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserHandler_PutMe(t *testing.T) {
	userID := uuid.New()

	t.Run("正常系: プロフィールを保存する", func(t *testing.T) {
		ts := newTestServer(t)
		req := &model.UpsertProfileRequest{Name: "Alice", Email: "alice@example.com"}
		ts.user.On("UpsertProfile", mock.Anything, userID, req).
			Return(&model.User{UserID: userID, Name: "Alice", Email: "alice@example.com"}, nil).Once()

		body := sendRequest(t, ts.server, httpRequestDetails{Method: http.MethodPut, Path: "/api/v1/me", Body: req, Headers: userHeaders(userID)},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
		assert.Equal(t, "alice@example.com", decodeBody[model.User](t, body).Email)
	})

	t.Run("異常系: メールアドレスの形式が不正", func(t *testing.T) {
		ts := newTestServer(t)
		body := sendRequest(t, ts.server, httpRequestDetails{
			Method:  http.MethodPut,
			Path:    "/api/v1/me",
			Body:    map[string]string{"email": "not-an-email"},
			Headers: userHeaders(userID),
		}, httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "VALIDATION_ERROR"})
		assert.Contains(t, string(body), "メールアドレス")
	})
}
