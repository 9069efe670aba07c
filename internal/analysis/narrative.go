package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/tablesmith/internal/types"
)

// Narrative display caps: long lists are truncated to keep the prompt
// context focused.
const (
	narrativeMaxColumns       = 5
	narrativeMaxRelationships = 5
	narrativeMaxIssues        = 5
)

// buildNarrative assembles the deterministic natural-language structural
// summary fed into synthesis prompts. It is an input to, not an output
// of, the synthesis service.
func buildNarrative(report *types.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dataset contains %d file(s) with %d table(s) and a total of %d rows.",
		report.TotalFiles, report.TotalTables, report.TotalRows)

	b.WriteString("\n\nFile Details:")
	for _, file := range report.FileSummaries {
		for _, table := range file.Tables {
			fmt.Fprintf(&b, "\n- %s (%s) -> Table '%s': %d rows, %d columns",
				file.Filename, file.Format, table.Name, table.RowCount, table.ColumnCount)

			shown := table.Columns
			if len(shown) > narrativeMaxColumns {
				shown = shown[:narrativeMaxColumns]
			}
			parts := make([]string, 0, len(shown))
			for _, col := range shown {
				parts = append(parts, fmt.Sprintf("%s (%s)", col.Name, col.Type))
			}
			line := strings.Join(parts, ", ")
			if table.ColumnCount > narrativeMaxColumns {
				line += fmt.Sprintf(", ... and %d more", table.ColumnCount-narrativeMaxColumns)
			}
			fmt.Fprintf(&b, "\n  Columns: %s", line)
		}
	}

	if len(report.SuggestedPrimaryKeys) > 0 {
		b.WriteString("\n\nSuggested Primary Keys:")
		for _, key := range sortedPKKeys(report.SuggestedPrimaryKeys) {
			suggestion := report.SuggestedPrimaryKeys[key]
			fmt.Fprintf(&b, "\n- %s: '%s' (confidence: %s)", key, suggestion.Column, suggestion.Confidence)
		}
	}

	if len(report.Relationships) > 0 {
		fmt.Fprintf(&b, "\n\nDetected %d potential relationship(s):", len(report.Relationships))
		shown := report.Relationships
		if len(shown) > narrativeMaxRelationships {
			shown = shown[:narrativeMaxRelationships]
		}
		for _, rel := range shown {
			fmt.Fprintf(&b, "\n- %s.%s -> %s.%s (%s confidence: %s)",
				rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn, rel.Confidence, rel.Reason)
		}
	}

	if len(report.DataQualityIssues) > 0 {
		fmt.Fprintf(&b, "\n\nData Quality Warnings (%d issue(s)):", len(report.DataQualityIssues))
		shown := report.DataQualityIssues
		if len(shown) > narrativeMaxIssues {
			shown = shown[:narrativeMaxIssues]
		}
		for _, finding := range shown {
			fmt.Fprintf(&b, "\n- %s: %s", finding.Table, finding.Issue)
		}
	}

	return b.String()
}

func sortedPKKeys(m map[string]types.PrimaryKeySuggestion) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
