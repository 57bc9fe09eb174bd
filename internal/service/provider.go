//go:generate mockery --name RepositoryProvider --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"

	"go_5_algo_keep/internal/model"
)

// RepositoryProvider はリモートリポジトリのツリー・内容を取得する。実装は githubapi.Client
type RepositoryProvider interface {
	ListFiles(ctx context.Context, fullName, branch string) ([]model.TreeEntry, error)
	FetchFile(ctx context.Context, fullName, path, ref string) (*model.FileContent, error)
	GetRepository(ctx context.Context, fullName string) (*model.RemoteRepository, error)
}
