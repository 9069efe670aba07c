// Package store persists ingestion job snapshots. Backends share one
// Repository interface; the workflow saves a full snapshot after every
// stage transition so any backend can resume an interrupted job.
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/tablesmith/internal/types"
)

// Repository is the persistence surface for ingestion jobs.
type Repository interface {
	// Save writes the full job snapshot, replacing any previous one
	Save(ctx context.Context, job *types.IngestionJob) error
	// Load retrieves a job by ID, returning NotFoundError when absent
	Load(ctx context.Context, id uuid.UUID) (*types.IngestionJob, error)
	// List returns all stored jobs, newest first
	List(ctx context.Context) ([]*types.IngestionJob, error)
}

// NotFoundError indicates the requested job does not exist.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("job %s not found", e.ID)
}
