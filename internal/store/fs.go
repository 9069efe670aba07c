package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/tablesmith/internal/types"
)

// FS is a file-backed repository storing one JSON file per job. It is
// the default backend for single-machine use.
type FS struct {
	dir string
}

// NewFS creates a repository rooted at dir, creating it when missing.
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FS{dir: dir}, nil
}

func (f *FS) jobPath(id uuid.UUID) string {
	return filepath.Join(f.dir, id.String()+".json")
}

// Save writes the job snapshot atomically via a temp file rename.
func (f *FS) Save(_ context.Context, job *types.IngestionJob) error {
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	tmp, err := os.CreateTemp(f.dir, "job-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write job %s: %w", job.ID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write job %s: %w", job.ID, err)
	}

	if err := os.Rename(tmpPath, f.jobPath(job.ID)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to store job %s: %w", job.ID, err)
	}
	return nil
}

// Load reads a job snapshot from disk.
func (f *FS) Load(_ context.Context, id uuid.UUID) (*types.IngestionJob, error) {
	data, err := os.ReadFile(f.jobPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to read job %s: %w", id, err)
	}

	var job types.IngestionJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}

// List reads all job snapshots, newest first. Files that are not job
// snapshots are skipped.
func (f *FS) List(ctx context.Context) ([]*types.IngestionJob, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	var jobs []*types.IngestionJob
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		job, err := f.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}
