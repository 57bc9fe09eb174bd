package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRevisionHandler_GetRevisions(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		query      string
		wantFilter model.RevisionFilter
		expect     httpResponseExpectations
	}{
		{name: "正常系: 指定なしは all", query: "", wantFilter: model.RevisionFilterAll, expect: httpResponseExpectations{ExpectedCode: http.StatusOK}},
		{name: "正常系: today", query: "?filter=today", wantFilter: model.RevisionFilterToday, expect: httpResponseExpectations{ExpectedCode: http.StatusOK}},
		{name: "正常系: overdue", query: "?filter=overdue", wantFilter: model.RevisionFilterOverdue, expect: httpResponseExpectations{ExpectedCode: http.StatusOK}},
		{name: "異常系: 不明なフィルタ", query: "?filter=someday", expect: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "INVALID_QUERY_PARAM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			if tt.wantFilter != "" {
				ts.revision.On("List", mock.Anything, userID, tt.wantFilter).Return(nil, nil).Once()
			}
			body := sendRequest(t, ts.server, httpRequestDetails{
				Method:  http.MethodGet,
				Path:    "/api/v1/revisions" + tt.query,
				Headers: userHeaders(userID),
			}, tt.expect)
			if tt.expect.ExpectedCode == http.StatusOK {
				assert.JSONEq(t, `[]`, string(body))
			}
		})
	}
}

func TestRevisionHandler_PostRevision(t *testing.T) {
	userID := uuid.New()
	problemID := uuid.New()

	tests := []struct {
		name      string
		body      interface{}
		setupMock func(ts *testServer)
		expect    httpResponseExpectations
	}{
		{
			name: "正常系: 復習を開始する",
			body: map[string]string{"problem_id": problemID.String()},
			setupMock: func(ts *testServer) {
				ts.revision.On("Track", mock.Anything, userID, problemID).Return(&model.Revision{
					RevisionID: uuid.New(), UserID: userID, ProblemID: problemID,
					IntervalDays: 7, NextDueAt: time.Now().AddDate(0, 0, 7),
				}, nil).Once()
			},
			expect: httpResponseExpectations{ExpectedCode: http.StatusCreated},
		},
		{
			name:   "異常系: problem_id が UUID でない",
			body:   map[string]string{"problem_id": "123"},
			expect: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "VALIDATION_ERROR"},
		},
		{
			name:   "異常系: problem_id なし",
			body:   map[string]string{},
			expect: httpResponseExpectations{ExpectedCode: http.StatusBadRequest, ExpectedErrorCode: "VALIDATION_ERROR"},
		},
		{
			name: "異常系: 他人の問題は 403",
			body: map[string]string{"problem_id": problemID.String()},
			setupMock: func(ts *testServer) {
				ts.revision.On("Track", mock.Anything, userID, problemID).
					Return(nil, model.NewAppError("FORBIDDEN", "この問題にはアクセスできません。", "problem_id", model.ErrForbidden)).Once()
			},
			expect: httpResponseExpectations{ExpectedCode: http.StatusForbidden, ExpectedErrorCode: "FORBIDDEN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			if tt.setupMock != nil {
				tt.setupMock(ts)
			}
			body := sendRequest(t, ts.server, httpRequestDetails{
				Method:  http.MethodPost,
				Path:    "/api/v1/revisions",
				Body:    tt.body,
				Headers: userHeaders(userID),
			}, tt.expect)
			if tt.expect.ExpectedCode == http.StatusCreated {
				got := decodeBody[model.Revision](t, body)
				assert.Equal(t, 7, got.IntervalDays)
			}
		})
	}
}

func TestRevisionHandler_CompleteAndDelete(t *testing.T) {
	userID := uuid.New()
	revisionID := uuid.New()

	t.Run("正常系: 完了で間隔が倍になる", func(t *testing.T) {
		ts := newTestServer(t)
		ts.revision.On("Complete", mock.Anything, userID, revisionID).
			Return(&model.Revision{RevisionID: revisionID, UserID: userID, IntervalDays: 14}, nil).Once()

		body := sendRequest(t, ts.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/revisions/" + revisionID.String() + "/complete", Headers: userHeaders(userID)},
			httpResponseExpectations{ExpectedCode: http.StatusOK})
		assert.Equal(t, 14, decodeBody[model.Revision](t, body).IntervalDays)
	})

	t.Run("異常系: 存在しない復習は 404", func(t *testing.T) {
		ts := newTestServer(t)
		ts.revision.On("Complete", mock.Anything, userID, revisionID).
			Return(nil, model.NewAppError("REVISION_NOT_FOUND", "復習スケジュールが見つかりません。", "revision_id", model.ErrNotFound)).Once()
		sendRequest(t, ts.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/revisions/" + revisionID.String() + "/complete", Headers: userHeaders(userID)},
			httpResponseExpectations{ExpectedCode: http.StatusNotFound, ExpectedErrorCode: "REVISION_NOT_FOUND"})
	})

	t.Run("正常系: 削除は 204", func(t *testing.T) {
		ts := newTestServer(t)
		ts.revision.On("Untrack", mock.Anything, userID, revisionID).Return(nil).Once()
		sendRequest(t, ts.server, httpRequestDetails{Method: http.MethodDelete, Path: "/api/v1/revisions/" + revisionID.String(), Headers: userHeaders(userID)},
			httpResponseExpectations{ExpectedCode: http.StatusNoContent})
	})
}
