package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(&config.GitHubConfig{Token: "test-token", BaseURL: srv.URL, Timeout: timeout}, srv.Client())
	require.NoError(t, err)
	return c
}

func TestClient_ListFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/algo/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"sha": "root",
			"truncated": false,
			"tree": [
				{"path": "leetcode", "type": "tree", "sha": "t1"},
				{"path": "leetcode/easy/two-sum.py", "type": "blob", "sha": "b1"},
				{"path": "README.md", "type": "blob", "sha": "b2"}
			]
		}`)
	})
	c := newTestClient(t, mux, time.Second)

	entries, err := c.ListFiles(context.Background(), "octo/algo", "main")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, model.TreeEntry{Path: "leetcode/easy/two-sum.py", Type: "blob", SHA: "b1"}, entries[1])
}

func TestClient_FetchFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/algo/contents/leetcode/easy/two-sum.py", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dev", r.URL.Query().Get("ref"))
		w.Header().Set("Content-Type", "application/json")
		// "print(1)\n"
		fmt.Fprint(w, `{"type":"file","encoding":"base64","path":"leetcode/easy/two-sum.py","sha":"b1","content":"cHJpbnQoMSkK"}`)
	})
	c := newTestClient(t, mux, time.Second)

	fc, err := c.FetchFile(context.Background(), "octo/algo", "leetcode/easy/two-sum.py", "dev")
	require.NoError(t, err)
	assert.Equal(t, "print(1)\n", fc.Content)
	assert.Equal(t, "b1", fc.SHA)
}

func TestClient_GetRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/algo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"full_name":"octo/algo","default_branch":"trunk","private":true}`)
	})
	mux.HandleFunc("/repos/octo/missing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	mux.HandleFunc("/repos/octo/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, mux, time.Second)

	t.Run("正常系", func(t *testing.T) {
		repo, err := c.GetRepository(context.Background(), "octo/algo")
		require.NoError(t, err)
		assert.Equal(t, &model.RemoteRepository{FullName: "octo/algo", DefaultBranch: "trunk", Private: true}, repo)
	})

	t.Run("異常系: 404 は ErrNotFound", func(t *testing.T) {
		_, err := c.GetRepository(context.Background(), "octo/missing")
		assert.True(t, errors.Is(err, model.ErrNotFound), "got %v", err)
	})

	t.Run("異常系: 5xx は ErrUpstream", func(t *testing.T) {
		_, err := c.GetRepository(context.Background(), "octo/broken")
		assert.True(t, errors.Is(err, model.ErrUpstream), "got %v", err)
	})

	t.Run("異常系: owner/name 形式でない", func(t *testing.T) {
		_, err := c.GetRepository(context.Background(), "octo")
		assert.True(t, errors.Is(err, model.ErrInvalidInput), "got %v", err)
	})
}

func TestClient_Timeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/slow/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := newTestClient(t, mux, 50*time.Millisecond)

	start := time.Now()
	_, err := c.ListFiles(context.Background(), "octo/slow", "main")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUpstream), "got %v", err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSplitFullName(t *testing.T) {
	owner, name, err := SplitFullName("octo/algo")
	require.NoError(t, err)
	assert.Equal(t, "octo", owner)
	assert.Equal(t, "algo", name)

	for _, bad := range []string{"", "octo", "/algo", "octo/", "a/b/c"} {
		_, _, err := SplitFullName(bad)
		assert.Error(t, err, bad)
	}
}
