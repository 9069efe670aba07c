package materialize

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tablesmith/internal/modeldesc"
	"github.com/jonathan/tablesmith/internal/types"
)

const usersModel = "entity users\n  id: integer [pk, autoincrement]\n  email: string [unique, not null]\n  active: boolean\n"

func usersFile(rows []types.Row) *types.ParsedFile {
	return &types.ParsedFile{
		Filename: "users.csv",
		Format:   "csv",
		Tables: []types.ParsedTable{
			{Name: "users", RowCount: len(rows), Rows: rows},
		},
	}
}

func TestMaterialize_CreatesTablesAndInsertsRows(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	rows := []types.Row{
		{"email": "a@example.com", "active": true},
		{"email": "b@example.com", "active": false},
		{"email": "c@example.com", "active": true},
	}

	result, err := builder.Materialize(context.Background(), "crm", usersModel, []*types.ParsedFile{usersFile(rows)})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "crm", result.DatabaseName)
	assert.Equal(t, []string{"users"}, result.TablesCreated)
	assert.Equal(t, 3, result.RowsInserted["users"])
	assert.Empty(t, result.Errors)

	tables, err := builder.Introspect(context.Background(), "crm")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, 3, tables[0].RowCount)
}

func TestMaterialize_NotNullViolationSkipsRow(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	rows := make([]types.Row, 0, 10)
	for i := 0; i < 10; i++ {
		var email any = fmt.Sprintf("user%d@example.com", i)
		if i == 4 {
			email = nil
		}
		rows = append(rows, types.Row{"email": email, "active": true})
	}

	result, err := builder.Materialize(context.Background(), "partial", usersModel, []*types.ParsedFile{usersFile(rows)})
	require.NoError(t, err)

	assert.True(t, result.Success, "row-level failures do not fail materialization")
	assert.Equal(t, 9, result.RowsInserted["users"])
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "row 5")
}

func TestMaterialize_BadEntityFailsAlone(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	model := usersModel + "\nentity broken\n  nonsense line without a colon here\n"
	result, err := builder.Materialize(context.Background(), "mixed", model, []*types.ParsedFile{usersFile([]types.Row{{"email": "a@example.com"}})})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"users"}, result.TablesCreated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "broken")
}

func TestMaterialize_NoSourceData(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	result, err := builder.Materialize(context.Background(), "empty", usersModel, nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.RowsInserted["users"])
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no source data")
}

func TestMaterialize_Idempotent(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	_, err := builder.Materialize(context.Background(), "repeat", usersModel, nil)
	require.NoError(t, err)

	result, err := builder.Materialize(context.Background(), "repeat", usersModel, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors, "existing tables are not an error")
}

func TestMaterialize_InvalidModel(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	result, err := builder.Materialize(context.Background(), "bad", "\n\n", nil)
	require.Error(t, err)
	assert.False(t, result.Success)
}

func TestMaterialize_ForeignKeys(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	model := "entity users\n  id: integer [pk]\n  name: string\n\nentity orders\n  id: integer [pk]\n  user_id: integer [fk users.id]\n"
	files := []*types.ParsedFile{
		{
			Filename: "data.json",
			Format:   "json",
			Tables: []types.ParsedTable{
				{Name: "users", Rows: []types.Row{{"id": 1, "name": "Ada"}}},
				{Name: "orders", Rows: []types.Row{{"id": 10, "user_id": 1}}},
			},
		},
	}

	result, err := builder.Materialize(context.Background(), "shop", model, files)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, result.TablesCreated)
	assert.Equal(t, 1, result.RowsInserted["users"])
	assert.Equal(t, 1, result.RowsInserted["orders"])
}

func TestSchemaMap(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	model := "entity events\n  id: integer [pk]\n  happened_at: datetime\n  score: float\n  note: text\n"
	_, err := builder.Materialize(context.Background(), "metrics", model, nil)
	require.NoError(t, err)

	schema, err := builder.SchemaMap(context.Background(), "metrics")
	require.NoError(t, err)

	events := schema["events"]
	require.NotNil(t, events)
	assert.Equal(t, modeldesc.Integer, events["id"])
	assert.Equal(t, modeldesc.Datetime, events["happened_at"])
	assert.Equal(t, modeldesc.Float, events["score"])
	assert.Equal(t, modeldesc.String, events["note"])
}

func TestIntrospect_NotFound(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	_, err := builder.Introspect(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListDatabases(t *testing.T) {
	builder := NewBuilder(t.TempDir(), nil)

	names, err := builder.ListDatabases()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = builder.Materialize(context.Background(), "beta", usersModel, nil)
	require.NoError(t, err)
	_, err = builder.Materialize(context.Background(), "alpha", usersModel, nil)
	require.NoError(t, err)

	names, err = builder.ListDatabases()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestCoerceValue(t *testing.T) {
	assert.Nil(t, coerceValue(nil))
	assert.Equal(t, 1, coerceValue(true))
	assert.Equal(t, 0, coerceValue(false))
	assert.Equal(t, "hello", coerceValue("hello"))
	assert.Equal(t, 42, coerceValue(42))

	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01T12:30:00Z", coerceValue(ts))

	assert.JSONEq(t, `{"a":1}`, coerceValue(map[string]any{"a": 1}).(string))
	assert.JSONEq(t, `[1,2]`, coerceValue([]any{1, 2}).(string))
}

func TestBuildCreateTableSQL(t *testing.T) {
	entity := &modeldesc.Entity{
		Name: "orders",
		Columns: []modeldesc.Column{
			{Name: "id", Type: modeldesc.Integer, PrimaryKey: true, AutoIncrement: true},
			{Name: "user_id", Type: modeldesc.Integer, NotNull: true, ForeignKey: "users.id"},
			{Name: "total", Type: modeldesc.Float},
		},
	}

	ddl := buildCreateTableSQL(entity)
	assert.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "orders"`)
	assert.Contains(t, ddl, `"id" INTEGER PRIMARY KEY AUTOINCREMENT`)
	assert.Contains(t, ddl, `"user_id" INTEGER NOT NULL REFERENCES "users"("id")`)
	assert.Contains(t, ddl, `"total" REAL`)
}
