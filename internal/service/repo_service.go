package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepoService interface {
	// Connect はリポジトリを連携する。既に連携済みならデフォルトブランチだけを更新する
	Connect(ctx context.Context, userID uuid.UUID, req *model.ConnectRepoRequest) (*model.Repo, error)
	List(ctx context.Context, userID uuid.UUID) ([]*model.Repo, error)
	Get(ctx context.Context, userID, repoID uuid.UUID) (*model.Repo, error)
	Delete(ctx context.Context, userID, repoID uuid.UUID) error
}

type repoService struct {
	db           *gorm.DB
	repoRepo     repository.RepoRepository
	problemRepo  repository.ProblemRepository
	revisionRepo repository.RevisionRepository
	provider     RepositoryProvider
}

func NewRepoService(
	db *gorm.DB,
	repoRepo repository.RepoRepository,
	problemRepo repository.ProblemRepository,
	revisionRepo repository.RevisionRepository,
	provider RepositoryProvider,
) RepoService {
	return &repoService{
		db:           db,
		repoRepo:     repoRepo,
		problemRepo:  problemRepo,
		revisionRepo: revisionRepo,
		provider:     provider,
	}
}

// webhookSecretBytes はシークレットの長さ (hex で64文字)
const webhookSecretBytes = 32

func generateWebhookSecret() (string, error) {
	b := make([]byte, webhookSecretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *repoService) Connect(ctx context.Context, userID uuid.UUID, req *model.ConnectRepoRequest) (*model.Repo, error) {
	fullName := strings.TrimSpace(req.FullName)
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "full_name", fullName)

	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, model.NewAppError("VALIDATION_ERROR", "リポジトリは owner/name の形式で指定してください。", "full_name", model.ErrInvalidInput)
	}

	branch := strings.TrimSpace(req.DefaultBranch)
	if branch == "" {
		remote, err := s.provider.GetRepository(ctx, fullName)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Repository not found on GitHub")
				return nil, model.NewAppError("REPO_NOT_FOUND", "GitHub 上にリポジトリが見つかりません。", "full_name", model.ErrNotFound)
			}
			logger.Error("Failed to fetch repository from GitHub", "error", err)
			return nil, model.NewAppError("UPSTREAM_ERROR", "GitHub からリポジトリ情報を取得できませんでした。", "", err)
		}
		branch = remote.DefaultBranch
	}
	if branch == "" {
		branch = "main"
	}

	secret, err := generateWebhookSecret()
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "シークレットの生成に失敗しました。", "", err)
	}

	repo, err := s.repoRepo.Upsert(ctx, s.db, &model.Repo{
		RepoID:        uuid.New(),
		UserID:        userID,
		FullName:      fullName,
		DefaultBranch: branch,
		WebhookSecret: secret,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("CONFLICT", "リポジトリは既に連携されています。", "full_name", err)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リポジトリの連携に失敗しました。", "", err)
	}

	logger.Info("Repository connected", "repo_id", repo.RepoID.String(), "default_branch", repo.DefaultBranch)
	return repo, nil
}

func (s *repoService) List(ctx context.Context, userID uuid.UUID) ([]*model.Repo, error) {
	repos, err := s.repoRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リポジトリ一覧の取得に失敗しました。", "", err)
	}

	ids := make([]uuid.UUID, 0, len(repos))
	for _, r := range repos {
		ids = append(ids, r.RepoID)
	}
	counts, err := s.problemRepo.CountByRepos(ctx, s.db, ids)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題数の取得に失敗しました。", "", err)
	}
	for _, r := range repos {
		r.ProblemCount = counts[r.RepoID]
		r.WebhookSecret = "" // 一覧では返さない
	}
	return repos, nil
}

// Get は連携情報をシークレット付きで返す (webhook 設定用)
func (s *repoService) Get(ctx context.Context, userID, repoID uuid.UUID) (*model.Repo, error) {
	repo, err := s.ownedRepo(ctx, s.db, userID, repoID)
	if err != nil {
		return nil, err
	}
	counts, err := s.problemRepo.CountByRepos(ctx, s.db, []uuid.UUID{repo.RepoID})
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "問題数の取得に失敗しました。", "", err)
	}
	repo.ProblemCount = counts[repo.RepoID]
	return repo, nil
}

// Delete は復習スケジュール -> 問題 -> リポジトリの順に削除する
func (s *repoService) Delete(ctx context.Context, userID, repoID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "repo_id", repoID.String())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.ownedRepo(ctx, tx, userID, repoID); err != nil {
			return err
		}
		if err := s.revisionRepo.DeleteByRepo(ctx, tx, repoID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "復習スケジュールの削除に失敗しました。", "", err)
		}
		if err := s.problemRepo.DeleteByRepo(ctx, tx, repoID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "問題の削除に失敗しました。", "", err)
		}
		if err := s.repoRepo.Delete(ctx, tx, repoID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("REPO_NOT_FOUND", "リポジトリが見つかりません。", "repo_id", err)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "リポジトリの削除に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Repository deleted with its problems and revisions")
	return nil
}

// ownedRepo は他ユーザーのリポジトリを存在しないものとして扱う
func (s *repoService) ownedRepo(ctx context.Context, db *gorm.DB, userID, repoID uuid.UUID) (*model.Repo, error) {
	repo, err := s.repoRepo.FindByID(ctx, db, repoID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("REPO_NOT_FOUND", "リポジトリが見つかりません。", "repo_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リポジトリの取得に失敗しました。", "", err)
	}
	if repo.UserID != userID {
		return nil, model.NewAppError("REPO_NOT_FOUND", "リポジトリが見つかりません。", "repo_id", model.ErrNotFound)
	}
	return repo, nil
}
