// Package analysis infers candidate primary keys, cross-table
// relationships and data-quality findings from parsed tables, and builds
// the structural narrative used for schema synthesis prompts.
package analysis

import (
	"github.com/jonathan/tablesmith/internal/types"
)

// tableRef pairs a parsed table with its source file for reporting.
type tableRef struct {
	sourceFile string
	table      *types.ParsedTable
}

// Analyze aggregates the analyzer's findings over every table of a job.
// The report is deterministic for a given input and read-only thereafter.
func Analyze(files []*types.ParsedFile) *types.AnalysisReport {
	report := &types.AnalysisReport{
		TotalFiles:           len(files),
		SuggestedPrimaryKeys: make(map[string]types.PrimaryKeySuggestion),
	}

	var all []tableRef
	for _, file := range files {
		report.FileSummaries = append(report.FileSummaries, summarizeFile(file))
		report.TotalTables += len(file.Tables)
		for i := range file.Tables {
			table := &file.Tables[i]
			report.TotalRows += table.RowCount
			all = append(all, tableRef{sourceFile: file.Filename, table: table})
		}
	}

	if len(all) > 1 {
		report.Relationships = detectRelationships(all)
	}

	for _, ref := range all {
		if suggestion, ok := suggestPrimaryKey(ref.table); ok {
			report.SuggestedPrimaryKeys[ref.sourceFile+"."+ref.table.Name] = suggestion
		}
	}

	for _, ref := range all {
		for _, issue := range detectQualityIssues(ref.table) {
			report.DataQualityIssues = append(report.DataQualityIssues, types.QualityFinding{
				File:  ref.sourceFile,
				Table: ref.table.Name,
				Issue: issue,
			})
		}
	}

	report.Narrative = buildNarrative(report)
	return report
}

// summarizeFile computes per-table structural summaries with null and
// uniqueness percentages relative to the row count.
func summarizeFile(file *types.ParsedFile) types.FileSummary {
	summary := types.FileSummary{
		Filename:   file.Filename,
		Format:     file.Format,
		TableCount: len(file.Tables),
	}
	for _, table := range file.Tables {
		ts := types.TableSummary{
			Name:        table.Name,
			RowCount:    table.RowCount,
			ColumnCount: len(table.Columns),
		}
		for _, col := range table.Columns {
			cs := types.ColumnSummary{Name: col.Name, Type: col.Type}
			if table.RowCount > 0 {
				cs.NullPercentage = float64(col.NullCount) / float64(table.RowCount) * 100
				cs.UniquePercentage = float64(col.UniqueCount) / float64(table.RowCount) * 100
			}
			ts.Columns = append(ts.Columns, cs)
		}
		summary.Tables = append(summary.Tables, ts)
	}
	return summary
}
