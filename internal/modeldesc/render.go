package modeldesc

import (
	"strings"

	"github.com/jonathan/tablesmith/internal/types"
)

// Render deterministically renders a schema plan in the entity grammar.
// It is the fallback when LLM compilation is unavailable, so it must
// always produce parseable output.
func Render(plan *types.SchemaPlan) string {
	var sb strings.Builder

	for i, table := range plan.Tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("entity ")
		sb.WriteString(table.Name)
		sb.WriteString("\n")

		for _, col := range table.Columns {
			colType := NormalizeType(col.Type)
			sb.WriteString("  ")
			sb.WriteString(col.Name)
			sb.WriteString(": ")
			sb.WriteString(colType)

			var constraints []string
			if col.PrimaryKey {
				constraints = append(constraints, "pk")
				if colType == Integer {
					constraints = append(constraints, "autoincrement")
				}
			}
			if col.Unique && !col.PrimaryKey {
				constraints = append(constraints, "unique")
			}
			if !col.Nullable && !col.PrimaryKey {
				constraints = append(constraints, "not null")
			}
			if col.ForeignKey != "" {
				constraints = append(constraints, "fk "+col.ForeignKey)
			}

			if len(constraints) > 0 {
				sb.WriteString(" [")
				sb.WriteString(strings.Join(constraints, ", "))
				sb.WriteString("]")
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// NormalizeType maps a plan's logical column type onto a grammar type.
// Plans may carry loose spellings like "Integer" or "String(50)"; any
// unrecognized type degrades to string.
func NormalizeType(planType string) string {
	t := strings.ToLower(strings.TrimSpace(planType))
	if idx := strings.Index(t, "("); idx >= 0 {
		t = t[:idx]
	}

	switch t {
	case "integer", "int", "bigint", "smallint":
		return Integer
	case "float", "real", "double", "numeric", "decimal":
		return Float
	case "boolean", "bool":
		return Boolean
	case "date":
		return Date
	case "datetime", "timestamp":
		return Datetime
	case "text":
		return Text
	case "string", "varchar", "char":
		return String
	default:
		return String
	}
}
