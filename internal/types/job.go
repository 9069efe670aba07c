// Package types defines the shared data structures passed between the
// ingestion pipeline stages.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Stage identifies where an ingestion job is in its lifecycle.
type Stage string

// Lifecycle stages, strictly forward except for the awaiting_approval
// loop-back when finalization is requested without approval.
const (
	StageUploaded         Stage = "uploaded"
	StageParsing          Stage = "parsing"
	StageAnalyzing        Stage = "analyzing"
	StageGeneratingSchema Stage = "generating_schema"
	StageAwaitingApproval Stage = "awaiting_approval"
	StageCreatingDatabase Stage = "creating_database"
	StageCompleted        Stage = "completed"
	StageFailed           Stage = "failed"
)

// Terminal reports whether a job in this stage will never advance again.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// FileRef describes one uploaded input file by display name and storage path.
type FileRef struct {
	Name string `json:"name" validate:"required"`
	Path string `json:"path" validate:"required"`
}

// IngestionJob is the mutable record for one end-to-end ingestion run.
// It is mutated only by the workflow orchestrator and persisted as a full
// snapshot after every stage transition.
type IngestionJob struct {
	ID           uuid.UUID `json:"id"`
	Stage        Stage     `json:"stage"`
	Files        []FileRef `json:"files"`
	Requirements string    `json:"requirements"`

	ParsedFiles []*ParsedFile          `json:"parsed_files,omitempty"`
	Analysis    *AnalysisReport        `json:"analysis,omitempty"`
	Schema      *SchemaResult          `json:"schema,omitempty"`
	Database    *MaterializationResult `json:"database,omitempty"`
	Progress    *SchemaProgress        `json:"schema_progress,omitempty"`

	Errors []string `json:"errors"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JobStatus is the read-only view returned by status queries.
type JobStatus struct {
	ID           uuid.UUID       `json:"id"`
	Stage        Stage           `json:"stage"`
	Files        []FileRef       `json:"files"`
	Requirements string          `json:"requirements"`
	HasParsed    bool            `json:"has_parsed_data"`
	HasAnalysis  bool            `json:"has_analysis"`
	HasSchema    bool            `json:"has_schema"`
	HasDatabase  bool            `json:"has_database"`
	Progress     *SchemaProgress `json:"schema_progress,omitempty"`
	Errors       []string        `json:"errors"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Status derives the externally visible status view from a job snapshot.
func (j *IngestionJob) Status() *JobStatus {
	return &JobStatus{
		ID:           j.ID,
		Stage:        j.Stage,
		Files:        j.Files,
		Requirements: j.Requirements,
		HasParsed:    len(j.ParsedFiles) > 0,
		HasAnalysis:  j.Analysis != nil,
		HasSchema:    j.Schema != nil,
		HasDatabase:  j.Database != nil,
		Progress:     j.Progress,
		Errors:       j.Errors,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
