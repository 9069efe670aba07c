package materialize

import (
	"fmt"
	"strings"

	"github.com/jonathan/tablesmith/internal/modeldesc"
)

// sqliteType maps grammar column types onto SQLite storage types.
// Unknown types get TEXT affinity.
func sqliteType(grammarType string) string {
	switch grammarType {
	case modeldesc.Integer:
		return "INTEGER"
	case modeldesc.Float:
		return "REAL"
	case modeldesc.Boolean:
		return "INTEGER"
	case modeldesc.Date:
		return "DATE"
	case modeldesc.Datetime:
		return "DATETIME"
	case modeldesc.String, modeldesc.Text:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// buildCreateTableSQL generates idempotent DDL for one entity.
func buildCreateTableSQL(entity *modeldesc.Entity) string {
	var defs []string

	for _, col := range entity.Columns {
		var b strings.Builder
		b.WriteString(sqlIdent(col.Name))
		b.WriteString(" ")
		b.WriteString(sqliteType(col.Type))

		if col.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
			// AUTOINCREMENT is only valid on INTEGER PRIMARY KEY.
			if col.Type == modeldesc.Integer {
				b.WriteString(" AUTOINCREMENT")
			}
		} else {
			if col.Unique {
				b.WriteString(" UNIQUE")
			}
			if col.NotNull {
				b.WriteString(" NOT NULL")
			}
		}

		if col.ForeignKey != "" {
			refTable, refColumn, _ := strings.Cut(col.ForeignKey, ".")
			fmt.Fprintf(&b, " REFERENCES %s(%s)", sqlIdent(refTable), sqlIdent(refColumn))
		}

		defs = append(defs, b.String())
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		sqlIdent(entity.Name), strings.Join(defs, ",\n  "))
}

// buildInsertSQL generates a parameterized single-row insert.
func buildInsertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = sqlIdent(col)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		sqlIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

func sqlIdent(id string) string {
	// SQLite supports "quoted identifiers"
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
