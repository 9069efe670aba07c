package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/tablesmith/internal/types"
)

// Caching layers a fast repository over a durable one. Writes go to
// both; reads prefer the cache and fall back to the durable backend.
type Caching struct {
	cache   Repository
	durable Repository
}

// NewCaching creates a caching repository.
func NewCaching(cache, durable Repository) *Caching {
	return &Caching{cache: cache, durable: durable}
}

// Save writes to the durable backend first; a cache write failure does
// not fail the save.
func (c *Caching) Save(ctx context.Context, job *types.IngestionJob) error {
	if err := c.durable.Save(ctx, job); err != nil {
		return err
	}
	_ = c.cache.Save(ctx, job)
	return nil
}

// Load reads from the cache, falling back to the durable backend and
// repopulating the cache on a hit.
func (c *Caching) Load(ctx context.Context, id uuid.UUID) (*types.IngestionJob, error) {
	job, err := c.cache.Load(ctx, id)
	if err == nil {
		return job, nil
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	job, err = c.durable.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Save(ctx, job)
	return job, nil
}

// List always reads from the durable backend.
func (c *Caching) List(ctx context.Context) ([]*types.IngestionJob, error) {
	return c.durable.List(ctx)
}
