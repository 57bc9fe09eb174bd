package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go_5_algo_keep/internal/classifier"
	"go_5_algo_keep/internal/config"
	"go_5_algo_keep/internal/middleware"
	"go_5_algo_keep/internal/model"
	"go_5_algo_keep/internal/repository"
	"go_5_algo_keep/internal/webhook"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type IngestService interface {
	// ReceivePush は webhook の生ボディを検証し、変更ファイルを取り込む
	ReceivePush(ctx context.Context, raw []byte, signature, contentType string) (*model.PushResult, error)
	ApplyChangeSet(ctx context.Context, repo *model.Repo, changes model.ChangeSet, marker string) (*model.PushResult, error)
	// FullSync はデフォルトブランチのツリー全体と突き合わせる
	FullSync(ctx context.Context, userID, repoID uuid.UUID) (*model.SyncResult, error)
}

type ingestService struct {
	db           *gorm.DB
	repoRepo     repository.RepoRepository
	problemRepo  repository.ProblemRepository
	revisionRepo repository.RevisionRepository
	provider     RepositoryProvider
	cfg          *config.Config
	now          func() time.Time
}

func NewIngestService(
	db *gorm.DB,
	repoRepo repository.RepoRepository,
	problemRepo repository.ProblemRepository,
	revisionRepo repository.RevisionRepository,
	provider RepositoryProvider,
	cfg *config.Config,
) IngestService {
	return &ingestService{
		db:           db,
		repoRepo:     repoRepo,
		problemRepo:  problemRepo,
		revisionRepo: revisionRepo,
		provider:     provider,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *ingestService) ReceivePush(ctx context.Context, raw []byte, signature, contentType string) (*model.PushResult, error) {
	logger := middleware.GetLogger(ctx)

	if signature == "" {
		logger.Warn("Webhook rejected: signature header missing")
		return nil, model.NewAppError("NO_SIGNATURE", "署名ヘッダーがありません。", webhook.SignatureHeader, model.ErrUnauthorized)
	}

	payload, err := webhook.DecodePushPayload(raw, contentType)
	if err != nil {
		logger.Warn("Webhook rejected: invalid payload", "error", err)
		return nil, model.NewAppError("INVALID_PAYLOAD", "ペイロードの形式が正しくありません。", "", err)
	}
	fullName := payload.Repository.FullName
	logger = logger.With("repo", fullName)

	candidates, err := s.repoRepo.FindByFullName(ctx, s.db, fullName)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リポジトリの検索に失敗しました。", "", err)
	}
	if len(candidates) == 0 {
		logger.Warn("Webhook rejected: repository is not connected")
		return nil, model.NewAppError("REPO_NOT_FOUND", "連携されていないリポジトリです。", "", model.ErrNotFound)
	}

	// 同じリポジトリを複数ユーザーが連携している場合は、署名が一致した連携先を採用する
	var repo *model.Repo
	for _, c := range candidates {
		if webhook.VerifySignature(raw, signature, c.WebhookSecret) {
			repo = c
			break
		}
	}
	if repo == nil {
		logger.Warn("Webhook rejected: signature mismatch", "candidates", len(candidates))
		return nil, model.NewAppError("INVALID_SIGNATURE", "署名が一致しません。", webhook.SignatureHeader, model.ErrUnauthorized)
	}

	changes := webhook.ParseCommits(payload.Commits)
	logger.Info("Webhook verified", "repo_id", repo.RepoID.String(), "paths", len(changes.Paths), "after", payload.After)

	return s.ApplyChangeSet(ctx, repo, changes, payload.After)
}

func (s *ingestService) ApplyChangeSet(ctx context.Context, repo *model.Repo, changes model.ChangeSet, marker string) (*model.PushResult, error) {
	logger := middleware.GetLogger(ctx).With("repo_id", repo.RepoID.String())
	// リクエストが切断されても、発行済みの書き込みは最後まで行う
	writeCtx := context.WithoutCancel(ctx)
	result := &model.PushResult{Success: true}

	for _, path := range changes.Paths {
		filename := classifier.FileName(path)
		if !classifier.IsCodeFile(filename) {
			continue
		}

		seeded, err := s.applyFile(writeCtx, repo, path, filename, marker, changes.IsAdded(path))
		if err != nil {
			logger.Error("Failed to ingest file, continuing with the rest", "error", err, "path", path)
			result.Failed++
			continue
		}
		result.Processed++
		if seeded {
			result.Seeded++
		}
	}

	logger.Info("Change set applied", "processed", result.Processed, "seeded", result.Seeded, "failed", result.Failed)
	return result, nil
}

// applyFile は1ファイル分の upsert と (新規追加なら) 復習スケジュールの作成を1トランザクションで行う
func (s *ingestService) applyFile(ctx context.Context, repo *model.Repo, path, filename, marker string, added bool) (bool, error) {
	seeded := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		problem, err := s.problemRepo.Upsert(ctx, tx, newProblem(repo.RepoID, path, filename, marker))
		if err != nil {
			return err
		}
		if !added {
			return nil
		}

		sched := NewSchedule(s.now())
		seeded, err = s.revisionRepo.CreateIfAbsent(ctx, tx, &model.Revision{
			RevisionID:   uuid.New(),
			UserID:       repo.UserID,
			ProblemID:    problem.ProblemID,
			NextDueAt:    sched.NextDueAt,
			IntervalDays: sched.IntervalDays,
		})
		return err
	})
	return seeded, err
}

func (s *ingestService) FullSync(ctx context.Context, userID, repoID uuid.UUID) (*model.SyncResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID.String(), "repo_id", repoID.String())

	repo, err := s.repoRepo.FindByID(ctx, s.db, repoID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("REPO_NOT_FOUND", "リポジトリが見つかりません。", "repo_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "リポジトリの取得に失敗しました。", "", err)
	}
	if repo.UserID != userID {
		logger.Warn("Sync rejected: repository belongs to another user")
		return nil, model.NewAppError("REPO_NOT_FOUND", "リポジトリが見つかりません。", "repo_id", model.ErrNotFound)
	}

	entries, err := s.provider.ListFiles(ctx, repo.FullName, repo.DefaultBranch)
	if err != nil {
		logger.Error("Failed to list repository files", "error", err)
		return nil, model.NewAppError("UPSTREAM_ERROR", "GitHub からファイル一覧を取得できませんでした。", "", fmt.Errorf("%w: %v", model.ErrUpstream, err))
	}

	files := make([]model.TreeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == model.TreeEntryTypeBlob && classifier.IsCodeFile(classifier.FileName(e.Path)) {
			files = append(files, e)
		}
	}

	existing, err := s.problemRepo.ListByRepo(ctx, s.db, repo.RepoID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "既存の問題の取得に失敗しました。", "", err)
	}
	markers := make(map[string]string, len(existing))
	for _, p := range existing {
		markers[p.Path] = p.SHA
	}

	var (
		mu     sync.Mutex
		result = &model.SyncResult{Total: len(files)}
	)
	writeCtx := context.WithoutCancel(ctx)
	limit := s.cfg.Sync.Concurrency
	if limit <= 0 {
		limit = config.DefaultSyncConcurrency
	}
	g := new(errgroup.Group)
	g.SetLimit(limit)

	for _, f := range files {
		stored, found := markers[f.Path]
		if found && stored == f.SHA {
			continue
		}
		g.Go(func() error {
			_, err := s.problemRepo.Upsert(writeCtx, s.db, newProblem(repo.RepoID, f.Path, classifier.FileName(f.Path), f.SHA))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				logger.Error("Failed to upsert problem during sync", "error", err, "path", f.Path)
				result.Failed++
			case found:
				result.Updated++
			default:
				result.Added++
			}
			return nil
		})
	}
	// ファイル単位の失敗は result.Failed に数えるだけなので、各 Go は常に nil を返す
	g.Wait()

	logger.Info("Full sync finished", "added", result.Added, "updated", result.Updated, "total", result.Total, "failed", result.Failed)
	return result, nil
}

func newProblem(repoID uuid.UUID, path, filename, marker string) *model.Problem {
	c := classifier.Classify(path, filename)
	return &model.Problem{
		ProblemID:  uuid.New(),
		RepoID:     repoID,
		Path:       path,
		SHA:        marker,
		Title:      c.Title,
		Platform:   optional(c.Platform),
		Difficulty: optional(c.Difficulty),
		Language:   optional(c.Language),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
