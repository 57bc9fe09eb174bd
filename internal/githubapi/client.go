// Package githubapi はリポジトリのツリー・ファイル内容を GitHub REST API から取得する。
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"

	"github.com/google/go-github/v66/github"
)

// Client はプロセスで1つだけ生成し、必要なサービスに渡す
type Client struct {
	gh      *github.Client
	timeout time.Duration
}

// NewClient は設定からクライアントを生成する。httpClient が nil なら http.DefaultClient 相当
func NewClient(cfg *config.GitHubConfig, httpClient *http.Client) (*Client, error) {
	gh := github.NewClient(httpClient)
	if cfg.Token != "" {
		gh = gh.WithAuthToken(cfg.Token)
	}
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("githubapi.NewClient: invalid base url %q: %w", cfg.BaseURL, err)
		}
		gh.BaseURL = u
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultGitHubTimeout
	}
	return &Client{gh: gh, timeout: timeout}, nil
}

// SplitFullName は "owner/name" を分解する
func SplitFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: repository must be owner/name, got %q", model.ErrInvalidInput, fullName)
	}
	return owner, name, nil
}

// ListFiles はブランチのツリーを再帰的に取得する
func (c *Client) ListFiles(ctx context.Context, fullName, branch string) ([]model.TreeEntry, error) {
	logger := middleware.GetLogger(ctx)
	owner, name, err := SplitFullName(fullName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tree, _, err := c.gh.Git.GetTree(ctx, owner, name, branch, true)
	if err != nil {
		logger.Error("Failed to fetch repository tree", "error", err, "repo", fullName, "branch", branch)
		return nil, wrapError("ListFiles", err)
	}
	if tree.GetTruncated() {
		logger.Warn("Repository tree was truncated by GitHub", "repo", fullName, "branch", branch, "entries", len(tree.Entries))
	}

	entries := make([]model.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, model.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
			SHA:  e.GetSHA(),
		})
	}
	return entries, nil
}

// FetchFile は1ファイルの内容を取得する。ref が空ならデフォルトブランチ
func (c *Client) FetchFile(ctx context.Context, fullName, path, ref string) (*model.FileContent, error) {
	logger := middleware.GetLogger(ctx)
	owner, name, err := SplitFullName(fullName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}
	file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, name, path, opts)
	if err != nil {
		logger.Error("Failed to fetch file content", "error", err, "repo", fullName, "path", path)
		return nil, wrapError("FetchFile", err)
	}
	if file == nil {
		return nil, fmt.Errorf("githubapi.FetchFile: %s is a directory: %w", path, model.ErrInvalidInput)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("githubapi.FetchFile: decode content: %w: %v", model.ErrUpstream, err)
	}
	return &model.FileContent{Content: content, SHA: file.GetSHA()}, nil
}

// GetRepository はリポジトリのメタ情報を取得する
func (c *Client) GetRepository(ctx context.Context, fullName string) (*model.RemoteRepository, error) {
	logger := middleware.GetLogger(ctx)
	owner, name, err := SplitFullName(fullName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		logger.Warn("Failed to fetch repository", "error", err, "repo", fullName)
		return nil, wrapError("GetRepository", err)
	}
	return &model.RemoteRepository{
		FullName:      repo.GetFullName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Private:       repo.GetPrivate(),
	}, nil
}

// wrapError は 404 を ErrNotFound、それ以外を ErrUpstream に寄せる
func wrapError(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("githubapi.%s: %w: %v", op, model.ErrNotFound, err)
	}
	return fmt.Errorf("githubapi.%s: %w: %v", op, model.ErrUpstream, err)
}
