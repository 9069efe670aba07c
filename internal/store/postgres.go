package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/tablesmith/internal/types"
)

// Postgres is a shared-database repository for multi-process setups.
// The whole job is stored as a jsonb snapshot; stage and timestamps are
// lifted into columns for querying.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the database.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Migrate creates the jobs table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS ingestion_jobs (
			id UUID PRIMARY KEY,
			stage TEXT NOT NULL,
			snapshot JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to migrate ingestion_jobs: %w", err)
	}
	return nil
}

// Save upserts the job snapshot.
func (p *Postgres) Save(ctx context.Context, job *types.IngestionJob) error {
	snapshot, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO ingestion_jobs (id, stage, snapshot, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET stage = $2, snapshot = $3, updated_at = $5`,
		job.ID, string(job.Stage), snapshot, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

// Load retrieves a job snapshot by ID.
func (p *Postgres) Load(ctx context.Context, id uuid.UUID) (*types.IngestionJob, error) {
	var snapshot []byte
	err := p.pool.QueryRow(ctx,
		`SELECT snapshot FROM ingestion_jobs WHERE id = $1`, id,
	).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}

	var job types.IngestionJob
	if err := json.Unmarshal(snapshot, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}

// List returns all jobs, newest first.
func (p *Postgres) List(ctx context.Context) ([]*types.IngestionJob, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT snapshot FROM ingestion_jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*types.IngestionJob
	for rows.Next() {
		var snapshot []byte
		if err := rows.Scan(&snapshot); err != nil {
			return nil, fmt.Errorf("failed to list jobs: %w", err)
		}
		var job types.IngestionJob
		if err := json.Unmarshal(snapshot, &job); err != nil {
			return nil, fmt.Errorf("failed to decode job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}
