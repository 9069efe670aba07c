// Package materialize turns an approved model description into a real
// SQLite database and loads the parsed rows into it.
//
// Entities are created independently: a table that fails to parse or
// create is reported in the result without blocking the rest. Only a
// database-level failure marks the result unsuccessful.
package materialize

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/jonathan/tablesmith/internal/modeldesc"
	"github.com/jonathan/tablesmith/internal/types"
)

// Builder materializes schemas into SQLite files under a base directory.
type Builder struct {
	dir    string
	logger *zap.Logger
}

// NewBuilder creates a builder writing databases under dir.
func NewBuilder(dir string, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{dir: dir, logger: logger}
}

// DatabasePath returns the on-disk path for a database name. The .db
// extension is appended when missing.
func (b *Builder) DatabasePath(name string) string {
	if !strings.HasSuffix(name, ".db") {
		name += ".db"
	}
	return filepath.Join(b.dir, name)
}

// Materialize creates the database for a model description and inserts
// the parsed rows. Per-entity failures are collected in the result;
// the returned error is non-nil only for database-level failures.
func (b *Builder) Materialize(ctx context.Context, dbName, modelText string, files []*types.ParsedFile) (*types.MaterializationResult, error) {
	result := &types.MaterializationResult{
		Success:      true,
		DatabaseName: dbName,
		DatabasePath: b.DatabasePath(dbName),
		RowsInserted: make(map[string]int),
	}

	doc, err := modeldesc.Parse(modelText)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("invalid model description: %v", err))
		return result, &DatabaseError{Name: dbName, Message: "invalid model description", Cause: err}
	}
	for _, failure := range doc.Failures {
		result.Errors = append(result.Errors, fmt.Sprintf("skipped entity: %v", failure))
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return result, &DatabaseError{Name: dbName, Message: "failed to create database directory", Cause: err}
	}

	db, err := sql.Open("sqlite", result.DatabasePath)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return result, &DatabaseError{Name: dbName, Message: "failed to open database", Cause: err}
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		result.Success = false
		result.Errors = append(result.Errors, err.Error())
		return result, &DatabaseError{Name: dbName, Message: "failed to open database", Cause: err}
	}

	created := make([]modeldesc.Entity, 0, len(doc.Entities))
	for _, entity := range doc.Entities {
		ddl := buildCreateTableSQL(&entity)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			b.logger.Warn("table creation failed",
				zap.String("database", dbName),
				zap.String("table", entity.Name),
				zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("create table %s: %v", entity.Name, err))
			continue
		}
		created = append(created, entity)
		result.TablesCreated = append(result.TablesCreated, entity.Name)
	}

	tables := collectTables(files)
	for _, entity := range created {
		parsed, ok := tables[strings.ToLower(entity.Name)]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("no source data for table '%s'", entity.Name))
			continue
		}
		inserted := b.insertRows(ctx, db, &entity, parsed, result)
		result.RowsInserted[entity.Name] = inserted
	}

	b.logger.Info("database materialized",
		zap.String("database", dbName),
		zap.String("path", result.DatabasePath),
		zap.Int("tables", len(result.TablesCreated)))

	return result, nil
}

// insertRows loads one parsed table into its entity. Rows that fail to
// insert are skipped and reported as warnings.
func (b *Builder) insertRows(ctx context.Context, db *sql.DB, entity *modeldesc.Entity, table *types.ParsedTable, result *types.MaterializationResult) int {
	inserted := 0

	for i, row := range table.Rows {
		columns := make([]string, 0, len(entity.Columns))
		values := make([]any, 0, len(entity.Columns))

		for _, col := range entity.Columns {
			value, present := lookupValue(row, col.Name)
			// Absent columns and null autoincrement keys are left to the
			// database; explicit nulls are inserted as NULL.
			autoKey := col.PrimaryKey && col.Type == modeldesc.Integer
			if !present || (value == nil && autoKey) {
				continue
			}
			columns = append(columns, col.Name)
			values = append(values, coerceValue(value))
		}

		if len(columns) == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("table '%s' row %d: no matching columns", entity.Name, i+1))
			continue
		}

		query := buildInsertSQL(entity.Name, columns)
		if _, err := db.ExecContext(ctx, query, values...); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("table '%s' row %d: %v", entity.Name, i+1, err))
			continue
		}
		inserted++
	}

	return inserted
}

// lookupValue finds a row value by column name, falling back to a
// case-insensitive match.
func lookupValue(row types.Row, column string) (any, bool) {
	if value, ok := row[column]; ok {
		return value, true
	}
	lower := strings.ToLower(column)
	for key, value := range row {
		if strings.ToLower(key) == lower {
			return value, true
		}
	}
	return nil, false
}

// collectTables indexes all parsed tables by lowercased name. Later
// files win on name collisions.
func collectTables(files []*types.ParsedFile) map[string]*types.ParsedTable {
	tables := make(map[string]*types.ParsedTable)
	for _, file := range files {
		for i := range file.Tables {
			table := &file.Tables[i]
			tables[strings.ToLower(table.Name)] = table
		}
	}
	return tables
}

// ListDatabases returns the names of all databases under the base
// directory, sorted and without the .db extension.
func (b *Builder) ListDatabases() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".db"))
	}
	sort.Strings(names)
	return names, nil
}
