package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Caia-Tech/pairforge/pkg/logging"
	"github.com/Caia-Tech/pairforge/pkg/pair"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog/log"
)

// datasetFile is the dataset's path inside the repository worktree.
const datasetFile = "dataset.json"

// GitStore persists the dataset as a JSON file in a local Git repository,
// committing once per mutation so every dataset state stays recoverable
// from history.
type GitStore struct {
	mu       sync.Mutex
	repo     *git.Repository
	repoPath string
	metrics  MetricsCollector
}

// NewGitStore opens the repository at repoPath, initializing one if none
// exists.
func NewGitStore(repoPath string, metrics MetricsCollector) (*GitStore, error) {
	repo, err := git.PlainOpen(repoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if mkErr := os.MkdirAll(repoPath, 0755); mkErr != nil {
			return nil, fmt.Errorf("failed to create repository directory: %w", mkErr)
		}
		repo, err = git.PlainInit(repoPath, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	log.Info().Str("path", repoPath).Msg("Git-backed dataset store ready")
	return &GitStore{repo: repo, repoPath: repoPath, metrics: metrics}, nil
}

func (g *GitStore) List(ctx context.Context) (pair.Dataset, error) {
	start := time.Now()
	g.mu.Lock()
	ds, err := g.load()
	g.mu.Unlock()

	g.record("list", start, err)
	return ds, err
}

func (g *GitStore) Get(ctx context.Context, index int) (pair.Pair, error) {
	start := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	ds, err := g.load()
	if err != nil {
		g.record("get", start, err)
		return pair.Pair{}, err
	}
	if index < 0 || index >= len(ds) {
		g.record("get", start, ErrIndexOutOfRange)
		return pair.Pair{}, ErrIndexOutOfRange
	}
	g.record("get", start, nil)
	return ds[index], nil
}

func (g *GitStore) Add(ctx context.Context, p pair.Pair) (pair.Pair, error) {
	start := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	ds, err := g.load()
	if err != nil {
		g.record("add", start, err)
		return pair.Pair{}, err
	}

	stamp(&p)
	ds = append(ds, p)
	err = g.save(ds, fmt.Sprintf("Add pair %s", p.ID))

	g.record("add", start, err)
	return p, err
}

func (g *GitStore) Update(ctx context.Context, index int, p pair.Pair) (pair.Pair, error) {
	start := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	ds, err := g.load()
	if err != nil {
		g.record("update", start, err)
		return pair.Pair{}, err
	}
	if index < 0 || index >= len(ds) {
		g.record("update", start, ErrIndexOutOfRange)
		return pair.Pair{}, ErrIndexOutOfRange
	}

	if p.ID == "" {
		p.ID = ds[index].ID
	}
	p.Timestamp = time.Now().UTC()
	ds[index] = p
	err = g.save(ds, fmt.Sprintf("Update pair %s", p.ID))

	g.record("update", start, err)
	return p, err
}

func (g *GitStore) Delete(ctx context.Context, index int) error {
	start := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	ds, err := g.load()
	if err != nil {
		g.record("delete", start, err)
		return err
	}
	if index < 0 || index >= len(ds) {
		g.record("delete", start, ErrIndexOutOfRange)
		return ErrIndexOutOfRange
	}

	removed := ds[index]
	ds = append(ds[:index], ds[index+1:]...)
	err = g.save(ds, fmt.Sprintf("Delete pair %s", removed.ID))

	g.record("delete", start, err)
	return err
}

func (g *GitStore) Replace(ctx context.Context, ds pair.Dataset) error {
	start := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	replacement := make(pair.Dataset, len(ds))
	copy(replacement, ds)
	for i := range replacement {
		if replacement[i].ID == "" || replacement[i].Timestamp.IsZero() {
			stamp(&replacement[i])
		}
	}
	err := g.save(replacement, fmt.Sprintf("Replace dataset (%d pairs)", len(replacement)))

	g.record("replace", start, err)
	return err
}

func (g *GitStore) Clear(ctx context.Context) error {
	start := time.Now()
	g.mu.Lock()
	err := g.save(pair.Dataset{}, "Clear dataset")
	g.mu.Unlock()

	g.record("clear", start, err)
	return err
}

func (g *GitStore) Health(ctx context.Context) error {
	start := time.Now()
	_, err := g.repo.Worktree()

	g.record("health", start, err)
	return err
}

// load reads the dataset file from the worktree. A missing file is an
// empty dataset, not an error.
func (g *GitStore) load() (pair.Dataset, error) {
	data, err := os.ReadFile(filepath.Join(g.repoPath, datasetFile))
	if os.IsNotExist(err) {
		return pair.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var ds pair.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}
	return ds, nil
}

// save writes the dataset file and commits it. Callers hold the mutex.
func (g *GitStore) save(ds pair.Dataset, message string) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	path := filepath.Join(g.repoPath, datasetFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}

	w, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if _, err := w.Add(datasetFile); err != nil {
		return fmt.Errorf("failed to stage dataset file: %w", err)
	}

	commit, err := w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "PairForge",
			Email: "pairforge@caiatech.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logger := logging.GetStorageLogger("commit", "git")
	logger.Debug().
		Str("commit", commit.String()).
		Int("pairs", len(ds)).
		Msg("Dataset committed")
	return nil
}

func (g *GitStore) record(operation string, start time.Time, err error) {
	if g.metrics == nil {
		return
	}
	g.metrics.RecordMetric(OperationMetric{
		OperationType: operation,
		Duration:      time.Since(start).Nanoseconds(),
		Success:       err == nil,
		Backend:       "git",
		Error:         err,
	})
}
