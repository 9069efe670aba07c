package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/tablesmith/internal/types"
)

func TestPrintJobStatus(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	status := &types.JobStatus{
		ID:    uuid.New(),
		Stage: types.StageAwaitingApproval,
		Files: []types.FileRef{{Name: "patients.csv", Path: "/data/patients.csv"}},
		Progress: &types.SchemaProgress{
			Stage:   "verifying",
			Message: "Round 2/10: Verifying schema validity...",
		},
	}

	printer.PrintJobStatus(status)

	out := buf.String()
	assert.Contains(t, out, "Ingestion Job")
	assert.Contains(t, out, "awaiting_approval")
	assert.Contains(t, out, "Files:    1")
}

func TestPrintJobStatus_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobStatus(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnalysis_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	report := &types.AnalysisReport{TotalFiles: 2, TotalTables: 2, TotalRows: 100}
	for i := 0; i < 8; i++ {
		report.Relationships = append(report.Relationships, types.RelationshipCandidate{
			FromTable: "a", FromColumn: "x", ToTable: "b", ToColumn: "y",
			Confidence: types.ConfidenceMedium,
		})
	}

	printer.PrintAnalysis(report)

	out := buf.String()
	assert.Contains(t, out, "File Analysis")
	assert.Contains(t, out, "and 3 more")
}

func TestPrintMaterialization(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintMaterialization(&types.MaterializationResult{
		Success:       true,
		DatabaseName:  "crm",
		DatabasePath:  "/data/crm.db",
		TablesCreated: []string{"users"},
		RowsInserted:  map[string]int{"users": 3},
	})

	out := buf.String()
	assert.Contains(t, out, "crm")
	assert.Contains(t, out, "users: 3 rows")
}

func TestNewLogger(t *testing.T) {
	verbose, err := NewLogger(true)
	assert.NoError(t, err)
	assert.NotNil(t, verbose)

	quiet, err := NewLogger(false)
	assert.NoError(t, err)
	assert.NotNil(t, quiet)
}
