// Package workflow orchestrates the ingestion lifecycle: upload,
// parsing, analysis, schema generation, approval and materialization.
// Every stage transition is persisted as a full snapshot so jobs can be
// inspected and resumed across processes.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/tablesmith/internal/analysis"
	"github.com/jonathan/tablesmith/internal/formats"
	"github.com/jonathan/tablesmith/internal/materialize"
	"github.com/jonathan/tablesmith/internal/parsing"
	"github.com/jonathan/tablesmith/internal/refinement"
	"github.com/jonathan/tablesmith/internal/store"
	"github.com/jonathan/tablesmith/internal/types"
)

// UploadRequest starts a new ingestion job.
type UploadRequest struct {
	Files        []types.FileRef `validate:"required,min=1,dive"`
	Requirements string          `validate:"required"`
}

// Orchestrator drives ingestion jobs through their stages.
type Orchestrator struct {
	parser    *parsing.Parser
	generator *refinement.Generator
	builder   *materialize.Builder
	jobs      store.Repository
	validate  *validator.Validate
	logger    *zap.Logger

	inflight sync.Map // job ID -> struct{}, guards async generation
}

// NewOrchestrator wires the pipeline components together.
func NewOrchestrator(parser *parsing.Parser, generator *refinement.Generator, builder *materialize.Builder, jobs store.Repository, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		parser:    parser,
		generator: generator,
		builder:   builder,
		jobs:      jobs,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Start validates the upload and creates a job in the uploaded stage.
func (o *Orchestrator) Start(ctx context.Context, req UploadRequest) (*types.IngestionJob, error) {
	if err := o.validate.Struct(req); err != nil {
		return nil, &ValidationError{Message: "missing required fields", Cause: err}
	}

	for _, file := range req.Files {
		if !formats.IsSupported(extensionOf(file.Name)) {
			return nil, &ValidationError{Message: fmt.Sprintf("unsupported file type %q", file.Name)}
		}
	}

	job := &types.IngestionJob{
		ID:           uuid.New(),
		Stage:        types.StageUploaded,
		Files:        req.Files,
		Requirements: req.Requirements,
		CreatedAt:    timeNow(),
		UpdatedAt:    timeNow(),
	}

	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	o.logger.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.Int("files", len(job.Files)))
	return job, nil
}

// ProcessFiles parses the uploaded files in parallel and analyzes the
// results. Per-file parse failures are recorded on the job; the job
// fails only when no file parses at all.
func (o *Orchestrator) ProcessFiles(ctx context.Context, id uuid.UUID) (*types.IngestionJob, error) {
	job, err := o.jobs.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Stage != types.StageUploaded {
		return nil, &InvalidStateError{ID: id, Stage: job.Stage, Message: "files already processed"}
	}

	job.Stage = types.StageParsing
	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	parsed := make([]*types.ParsedFile, len(job.Files))
	parseErrs := make([]error, len(job.Files))

	g, _ := errgroup.WithContext(ctx)
	for i, file := range job.Files {
		i, file := i, file
		g.Go(func() error {
			result, err := o.parser.Parse(file.Path)
			if err != nil {
				parseErrs[i] = err
				return nil
			}
			// Display names can differ from on-disk names for staged uploads.
			if file.Name != "" {
				result.Filename = file.Name
			}
			parsed[i] = result
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range parseErrs {
		if err != nil {
			job.Errors = append(job.Errors, fmt.Sprintf("failed to parse %s: %v", job.Files[i].Name, err))
			o.logger.Warn("file parse failed",
				zap.String("job_id", id.String()),
				zap.String("file", job.Files[i].Name),
				zap.Error(err))
		}
	}

	for _, file := range parsed {
		if file != nil {
			job.ParsedFiles = append(job.ParsedFiles, file)
		}
	}

	if len(job.ParsedFiles) == 0 {
		return o.fail(ctx, job, fmt.Errorf("no files could be parsed"))
	}

	job.Stage = types.StageAnalyzing
	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	job.Analysis = analysis.Analyze(job.ParsedFiles)
	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	o.logger.Info("files processed",
		zap.String("job_id", id.String()),
		zap.Int("parsed", len(job.ParsedFiles)),
		zap.Int("tables", job.Analysis.TotalTables))
	return job, nil
}

// GenerateSchema runs the refinement loop synchronously and leaves the
// job awaiting approval.
func (o *Orchestrator) GenerateSchema(ctx context.Context, id uuid.UUID) (*types.IngestionJob, error) {
	job, err := o.jobs.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Stage != types.StageAnalyzing || job.Analysis == nil {
		return nil, &InvalidStateError{ID: id, Stage: job.Stage, Message: "job is not ready for schema generation"}
	}

	job.Stage = types.StageGeneratingSchema
	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	observer := func(progress types.SchemaProgress) {
		job.Progress = &progress
		if err := o.persist(ctx, job); err != nil {
			o.logger.Warn("failed to persist progress",
				zap.String("job_id", id.String()),
				zap.Error(err))
		}
	}

	result, err := o.generator.Generate(ctx, job.Analysis, job.Requirements, observer)
	if err != nil {
		return o.fail(ctx, job, err)
	}

	job.Schema = result
	job.Progress = nil
	job.Stage = types.StageAwaitingApproval
	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	o.logger.Info("schema generated",
		zap.String("job_id", id.String()),
		zap.Int("rounds", result.RoundsTaken),
		zap.Bool("verified", result.VerificationStatus))
	return job, nil
}

// GenerateSchemaAsync starts schema generation in the background. The
// caller polls Status for progress; duplicate requests for a job that
// is already generating are rejected.
func (o *Orchestrator) GenerateSchemaAsync(ctx context.Context, id uuid.UUID) error {
	job, err := o.jobs.Load(ctx, id)
	if err != nil {
		return err
	}
	if job.Stage != types.StageAnalyzing || job.Analysis == nil {
		return &InvalidStateError{ID: id, Stage: job.Stage, Message: "job is not ready for schema generation"}
	}

	if _, loaded := o.inflight.LoadOrStore(id, struct{}{}); loaded {
		return &InvalidStateError{ID: id, Stage: job.Stage, Message: "schema generation already running"}
	}

	go func() {
		// Detached from the request context: generation outlives the call.
		ctx := context.Background()
		defer o.inflight.Delete(id)
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("schema generation panicked",
					zap.String("job_id", id.String()),
					zap.Any("panic", r))
				if job, err := o.jobs.Load(ctx, id); err == nil {
					_, _ = o.fail(ctx, job, fmt.Errorf("schema generation panicked: %v", r))
				}
			}
		}()

		if _, err := o.GenerateSchema(ctx, id); err != nil {
			o.logger.Error("async schema generation failed",
				zap.String("job_id", id.String()),
				zap.Error(err))
		}
	}()

	return nil
}

// Finalize completes the approval step. Without approval the job stays
// awaiting approval; with approval the schema is materialized and the
// job completes or fails on the outcome.
func (o *Orchestrator) Finalize(ctx context.Context, id uuid.UUID, databaseName string, approved bool) (*types.IngestionJob, error) {
	job, err := o.jobs.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Stage != types.StageAwaitingApproval || job.Schema == nil {
		return nil, &InvalidStateError{ID: id, Stage: job.Stage, Message: "job is not awaiting approval"}
	}

	if !approved {
		o.logger.Info("schema not approved, awaiting revised approval",
			zap.String("job_id", id.String()))
		return job, nil
	}

	if databaseName == "" {
		databaseName = defaultDatabaseName(id)
	}

	job.Stage = types.StageCreatingDatabase
	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	result, err := o.builder.Materialize(ctx, databaseName, job.Schema.ModelDescription, job.ParsedFiles)
	job.Database = result
	if err != nil || !result.Success {
		if err == nil {
			err = fmt.Errorf("materialization failed")
		}
		return o.fail(ctx, job, err)
	}

	job.Stage = types.StageCompleted
	if err := o.persist(ctx, job); err != nil {
		return nil, err
	}

	o.logger.Info("job completed",
		zap.String("job_id", id.String()),
		zap.String("database", result.DatabaseName),
		zap.Int("tables", len(result.TablesCreated)))
	return job, nil
}

// Status returns the externally visible state of a job.
func (o *Orchestrator) Status(ctx context.Context, id uuid.UUID) (*types.JobStatus, error) {
	job, err := o.jobs.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return job.Status(), nil
}

// Schema returns the generated schema of a job once one exists.
func (o *Orchestrator) Schema(ctx context.Context, id uuid.UUID) (*types.SchemaResult, error) {
	job, err := o.jobs.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Schema == nil {
		return nil, &InvalidStateError{ID: id, Stage: job.Stage, Message: "no schema generated yet"}
	}
	return job.Schema, nil
}

// Introspect reads the live structure of a completed job's database.
func (o *Orchestrator) Introspect(ctx context.Context, id uuid.UUID) ([]materialize.TableInfo, error) {
	job, err := o.jobs.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Database == nil || !job.Database.Success {
		return nil, &InvalidStateError{ID: id, Stage: job.Stage, Message: "no database created yet"}
	}
	return o.builder.Introspect(ctx, job.Database.DatabaseName)
}

// Jobs lists the status of all known jobs, newest first.
func (o *Orchestrator) Jobs(ctx context.Context) ([]*types.JobStatus, error) {
	jobs, err := o.jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	statuses := make([]*types.JobStatus, 0, len(jobs))
	for _, job := range jobs {
		statuses = append(statuses, job.Status())
	}
	return statuses, nil
}

// fail moves a job to the failed stage, recording the cause.
func (o *Orchestrator) fail(ctx context.Context, job *types.IngestionJob, cause error) (*types.IngestionJob, error) {
	job.Stage = types.StageFailed
	job.Errors = append(job.Errors, cause.Error())
	job.Progress = nil
	if err := o.persist(ctx, job); err != nil {
		o.logger.Error("failed to persist failed job",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
	}
	o.logger.Warn("job failed",
		zap.String("job_id", job.ID.String()),
		zap.Error(cause))
	return job, cause
}

// persist updates the modification time and saves the snapshot.
func (o *Orchestrator) persist(ctx context.Context, job *types.IngestionJob) error {
	job.UpdatedAt = timeNow()
	if err := o.jobs.Save(ctx, job); err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}
	return nil
}

// defaultDatabaseName derives a database name from the job ID.
func defaultDatabaseName(id uuid.UUID) string {
	short := strings.ReplaceAll(id.String(), "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return "ingestion_" + short
}

// extensionOf returns the lowercased extension of a display name.
func extensionOf(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return strings.ToLower(name[idx:])
	}
	return ""
}

func timeNow() time.Time {
	return time.Now().UTC()
}
