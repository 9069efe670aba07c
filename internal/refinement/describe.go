package refinement

import (
	"fmt"
	"strings"

	"github.com/jonathan/tablesmith/internal/types"
)

// describe renders a markdown summary of the final plan for human
// review during the approval step.
func describe(plan *types.SchemaPlan) string {
	lines := []string{"# Database Schema Description\n"}

	lines = append(lines, fmt.Sprintf("This schema contains %d table(s):\n", len(plan.Tables)))

	for _, table := range plan.Tables {
		lines = append(lines, fmt.Sprintf("\n## %s", table.Name))
		purpose := table.Purpose
		if purpose == "" {
			purpose = "No description"
		}
		lines = append(lines, purpose+"\n")
		lines = append(lines, fmt.Sprintf("**Columns (%d):**", len(table.Columns)))

		for _, col := range table.Columns {
			var flags []string
			if col.PrimaryKey {
				flags = append(flags, "PK")
			}
			if col.Unique {
				flags = append(flags, "UNIQUE")
			}
			if !col.Nullable {
				flags = append(flags, "NOT NULL")
			}
			if col.ForeignKey != "" {
				flags = append(flags, "FK -> "+col.ForeignKey)
			}

			flagStr := ""
			if len(flags) > 0 {
				flagStr = " [" + strings.Join(flags, ", ") + "]"
			}
			lines = append(lines, fmt.Sprintf("- `%s` (%s)%s", col.Name, col.Type, flagStr))
		}
	}

	if len(plan.Relationships) > 0 {
		lines = append(lines, "\n## Relationships\n")
		for _, rel := range plan.Relationships {
			relType := rel.Type
			if relType == "" {
				relType = "unknown"
			}
			lines = append(lines, fmt.Sprintf("- %s.%s -> %s.%s (%s)",
				rel.FromTable, rel.FromColumn, rel.ToTable, rel.ToColumn, relType))
		}
	}

	return strings.Join(lines, "\n")
}
