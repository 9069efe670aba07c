package materialize

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/tablesmith/internal/modeldesc"
)

// ColumnInfo describes one column of a materialized table.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	PrimaryKey bool   `json:"primary_key"`
}

// TableInfo describes one materialized table with its live row count.
type TableInfo struct {
	Name     string       `json:"name"`
	Columns  []ColumnInfo `json:"columns"`
	RowCount int          `json:"row_count"`
}

// Introspect reads the live structure of a materialized database.
func (b *Builder) Introspect(ctx context.Context, dbName string) ([]TableInfo, error) {
	path := b.DatabasePath(dbName)
	if _, err := os.Stat(path); err != nil {
		return nil, &DatabaseError{Name: dbName, Message: "database not found", Cause: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &DatabaseError{Name: dbName, Message: "failed to open database", Cause: err}
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, &DatabaseError{Name: dbName, Message: "failed to list tables", Cause: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &DatabaseError{Name: dbName, Message: "failed to list tables", Cause: err}
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &DatabaseError{Name: dbName, Message: "failed to list tables", Cause: err}
	}

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		info, err := introspectTable(ctx, db, name)
		if err != nil {
			return nil, &DatabaseError{Name: dbName, Message: fmt.Sprintf("failed to introspect table %s", name), Cause: err}
		}
		tables = append(tables, *info)
	}

	return tables, nil
}

// SchemaMap returns a simplified table-to-columns view using grammar
// type names instead of SQLite storage types.
func (b *Builder) SchemaMap(ctx context.Context, dbName string) (map[string]map[string]string, error) {
	tables, err := b.Introspect(ctx, dbName)
	if err != nil {
		return nil, err
	}

	schema := make(map[string]map[string]string, len(tables))
	for _, table := range tables {
		columns := make(map[string]string, len(table.Columns))
		for _, col := range table.Columns {
			columns[col.Name] = simplifyType(col.Type)
		}
		schema[table.Name] = columns
	}
	return schema, nil
}

func introspectTable(ctx context.Context, db *sql.DB, name string) (*TableInfo, error) {
	info := &TableInfo{Name: name}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", sqlIdent(name)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			colName   string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		info.Columns = append(info.Columns, ColumnInfo{
			Name:       colName,
			Type:       colType,
			NotNull:    notNull != 0,
			PrimaryKey: pk != 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var count int
	if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", sqlIdent(name))).Scan(&count); err != nil {
		return nil, err
	}
	info.RowCount = count

	return info, nil
}

// simplifyType maps a SQLite storage type back onto a grammar type name.
func simplifyType(storageType string) string {
	switch strings.ToUpper(storageType) {
	case "INTEGER":
		return modeldesc.Integer
	case "REAL":
		return modeldesc.Float
	case "DATE":
		return modeldesc.Date
	case "DATETIME":
		return modeldesc.Datetime
	default:
		return modeldesc.String
	}
}
