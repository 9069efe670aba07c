package analysis

import (
	"fmt"

	"github.com/jonathan/tablesmith/internal/types"
)

// Data-quality thresholds.
const (
	highNullPercentage    = 50.0
	lowUniquePercentage   = 10.0
	duplicateCheckMinRows = 10
)

// detectQualityIssues flags high-null columns, likely duplicate rows and
// tables without an obvious key.
func detectQualityIssues(table *types.ParsedTable) []string {
	var issues []string
	if table.RowCount == 0 {
		return issues
	}

	for _, col := range table.Columns {
		nullPct := float64(col.NullCount) / float64(table.RowCount) * 100
		if nullPct > highNullPercentage {
			issues = append(issues, fmt.Sprintf("Column '%s' has %.1f%% null values", col.Name, nullPct))
		}
	}

	if len(table.Columns) > 0 && table.RowCount > duplicateCheckMinRows {
		totalUniquePct := 0.0
		for _, col := range table.Columns {
			totalUniquePct += float64(col.UniqueCount) / float64(table.RowCount) * 100
		}
		if totalUniquePct/float64(len(table.Columns)) < lowUniquePercentage {
			issues = append(issues, "Potential duplicate rows detected (low unique value percentage)")
		}
	}

	hasUniqueColumn := false
	for _, col := range table.Columns {
		if col.UniqueCount == table.RowCount && col.NullCount == 0 {
			hasUniqueColumn = true
			break
		}
	}
	if !hasUniqueColumn {
		issues = append(issues, "No obvious primary key candidate found")
	}

	return issues
}
