package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/tablesmith/internal/types"
)

// Memory is an in-process repository. Snapshots are stored as JSON so
// callers can never mutate stored state through shared pointers.
type Memory struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID][]byte
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[uuid.UUID][]byte)}
}

// Save stores a deep copy of the job.
func (m *Memory) Save(_ context.Context, job *types.IngestionJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	m.mu.Lock()
	m.jobs[job.ID] = data
	m.mu.Unlock()
	return nil
}

// Load returns a deep copy of the stored job.
func (m *Memory) Load(_ context.Context, id uuid.UUID) (*types.IngestionJob, error) {
	m.mu.RLock()
	data, ok := m.jobs[id]
	m.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{ID: id}
	}

	var job types.IngestionJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}

// List returns all jobs, newest first.
func (m *Memory) List(_ context.Context) ([]*types.IngestionJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*types.IngestionJob, 0, len(m.jobs))
	for id, data := range m.jobs {
		var job types.IngestionJob
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
		}
		jobs = append(jobs, &job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}
