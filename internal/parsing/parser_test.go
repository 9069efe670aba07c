package parsing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/tablesmith/internal/types"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func findColumn(t *testing.T, table *types.ParsedTable, name string) *types.ParsedColumn {
	t.Helper()
	for i := range table.Columns {
		if table.Columns[i].Name == name {
			return &table.Columns[i]
		}
	}
	t.Fatalf("column %q not found in table %q", name, table.Name)
	return nil
}

func TestParse_CSV(t *testing.T) {
	path := writeTempFile(t, "users.csv", "id,name,active,signup\n1,Alice,true,2024-01-05\n2,Bob,false,2024-02-10\n3,,true,2024-03-15\n")

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "users.csv", file.Filename)
	assert.Equal(t, "csv", file.Format)
	assert.Equal(t, "utf-8", file.Metadata.Encoding)
	assert.Equal(t, ",", file.Metadata.Delimiter)
	require.Len(t, file.Tables, 1)

	table := file.Tables[0]
	assert.Equal(t, "users", table.Name)
	assert.Equal(t, 3, table.RowCount)
	require.Len(t, table.Columns, 4)

	id := findColumn(t, &table, "id")
	assert.Equal(t, types.TypeInteger, id.Type)
	assert.Equal(t, 3, id.UniqueCount)
	assert.Equal(t, 0, id.NullCount)
	assert.Equal(t, int64(1), table.Rows[0]["id"])

	name := findColumn(t, &table, "name")
	assert.Equal(t, types.TypeString, name.Type)
	assert.Equal(t, 1, name.NullCount)
	assert.Nil(t, table.Rows[2]["name"])

	active := findColumn(t, &table, "active")
	assert.Equal(t, types.TypeBoolean, active.Type)
	assert.Equal(t, true, table.Rows[0]["active"])

	signup := findColumn(t, &table, "signup")
	assert.Equal(t, types.TypeDatetime, signup.Type)
	assert.IsType(t, time.Time{}, table.Rows[0]["signup"])
}

func TestParse_CSV_ShortRowsPadWithNulls(t *testing.T) {
	path := writeTempFile(t, "short.csv", "a,b,c\n1,2,3\n4,5\n")

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	table := file.Tables[0]
	assert.Equal(t, 2, table.RowCount)
	assert.Nil(t, table.Rows[1]["c"])
	assert.Equal(t, 1, findColumn(t, &table, "c").NullCount)
}

func TestParse_TSV(t *testing.T) {
	path := writeTempFile(t, "scores.tsv", "player\tscore\nann\t9.5\nben\t7\n")

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "tsv", file.Format)
	assert.Equal(t, "\t", file.Metadata.Delimiter)
	table := file.Tables[0]
	assert.Equal(t, types.TypeFloat, findColumn(t, &table, "score").Type)
	assert.Equal(t, 9.5, table.Rows[0]["score"])
}

func TestParse_JSONArray(t *testing.T) {
	path := writeTempFile(t, "orders.json", `[
		{"id": 1, "total": 19.99},
		{"id": 2, "total": 5.00, "note": "rush"}
	]`)

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	require.Len(t, file.Tables, 1)
	table := file.Tables[0]
	assert.Equal(t, "orders", table.Name)
	assert.Equal(t, 2, table.RowCount)

	// Column union across records; missing keys become explicit nulls.
	note := findColumn(t, &table, "note")
	assert.Equal(t, 1, note.NullCount)
	assert.Nil(t, table.Rows[0]["note"])

	assert.Equal(t, types.TypeInteger, findColumn(t, &table, "id").Type)
	assert.Equal(t, int64(1), table.Rows[0]["id"])
}

func TestParse_JSONMultiTable(t *testing.T) {
	path := writeTempFile(t, "dump.json", `{
		"users": [{"id": 1}, {"id": 2}],
		"teams": [{"name": "red"}],
		"version": 3
	}`)

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	require.Len(t, file.Tables, 2)
	assert.Equal(t, "teams", file.Tables[0].Name)
	assert.Equal(t, "users", file.Tables[1].Name)
	assert.Equal(t, 2, file.Tables[1].RowCount)
}

func TestParse_JSONSingleObject(t *testing.T) {
	path := writeTempFile(t, "config.json", `{"host": "localhost", "port": 5432}`)

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	require.Len(t, file.Tables, 1)
	assert.Equal(t, "config", file.Tables[0].Name)
	assert.Equal(t, 1, file.Tables[0].RowCount)
}

func TestParse_JSONLines(t *testing.T) {
	path := writeTempFile(t, "events.jsonl", `{"event": "login", "user": 1}
{"event": "logout", "user": 1}
{"event": "login", "user": 2}
`)

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	require.Len(t, file.Tables, 1)
	assert.Equal(t, 3, file.Tables[0].RowCount)
}

func TestParse_JSONScalarRoot(t *testing.T) {
	path := writeTempFile(t, "bad.json", `42`)

	_, err := NewParser().Parse(path)
	var malformed *MalformedContentError
	require.ErrorAs(t, err, &malformed)
}

func TestParse_TXT_SniffsDelimiter(t *testing.T) {
	path := writeTempFile(t, "report.txt", "name|dept\nann|sales\nben|ops\n")

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "txt", file.Format)
	assert.Equal(t, "|", file.Metadata.Delimiter)
	table := file.Tables[0]
	assert.Equal(t, 2, table.RowCount)
	assert.Len(t, table.Columns, 2)
}

func TestParse_TXT_DegradesToTextColumn(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "alpha\n\nbeta\ngamma\n")

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "none", file.Metadata.Delimiter)
	table := file.Tables[0]
	require.Len(t, table.Columns, 1)
	assert.Equal(t, "text", table.Columns[0].Name)
	assert.Equal(t, 3, table.RowCount)
}

func TestParse_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.xlsx")

	workbook := excelize.NewFile()
	require.NoError(t, workbook.SetSheetName("Sheet1", "stock"))
	require.NoError(t, workbook.SetSheetRow("stock", "A1", &[]any{"sku", "qty"}))
	require.NoError(t, workbook.SetSheetRow("stock", "A2", &[]any{"W-100", 12}))
	require.NoError(t, workbook.SetSheetRow("stock", "A3", &[]any{"W-200", 7}))
	require.NoError(t, workbook.SaveAs(path))
	require.NoError(t, workbook.Close())

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "xlsx", file.Format)
	assert.Equal(t, []string{"stock"}, file.Metadata.SheetNames)
	require.Len(t, file.Tables, 1)

	table := file.Tables[0]
	assert.Equal(t, "stock", table.Name)
	assert.Equal(t, 2, table.RowCount)
	assert.Equal(t, types.TypeInteger, findColumn(t, &table, "qty").Type)
}

func TestParse_UTF8BOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,name\n1,caf\xc3\xa9\n")...)
	path := filepath.Join(t.TempDir(), "bom.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "utf-8-sig", file.Metadata.Encoding)
	table := file.Tables[0]
	assert.Equal(t, "café", table.Rows[0]["name"])
}

func TestParse_Windows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 but invalid standalone UTF-8.
	path := filepath.Join(t.TempDir(), "latin.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\ncaf\xe9\n"), 0o644))

	file, err := NewParser().Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "windows-1252", file.Metadata.Encoding)
	assert.Equal(t, "café", file.Tables[0].Rows[0]["name"])
}

func TestParse_MissingFile(t *testing.T) {
	_, err := NewParser().Parse("/nonexistent/data.csv")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestParse_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "data.parquet", "binary")

	_, err := NewParser().Parse(path)
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".parquet", unsupported.Extension)
}

func TestInferColumnType(t *testing.T) {
	tests := []struct {
		name     string
		values   []any
		expected types.ColumnType
	}{
		{"integers", []any{"1", "2", "30"}, types.TypeInteger},
		{"floats", []any{"1.5", "2"}, types.TypeFloat},
		{"booleans", []any{"true", "FALSE"}, types.TypeBoolean},
		{"dates", []any{"2024-01-05", "2024/02/10"}, types.TypeDatetime},
		{"mixed", []any{"1", "apple"}, types.TypeString},
		{"empty", nil, types.TypeString},
		{"json numbers", []any{float64(1), float64(2)}, types.TypeInteger},
		{"json fractions", []any{float64(1.5)}, types.TypeFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferColumnType(tt.values))
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	assert.Nil(t, normalizeValue("  ", types.TypeString))
	assert.Equal(t, int64(7), normalizeValue("7", types.TypeInteger))
	assert.Equal(t, int64(7), normalizeValue(float64(7), types.TypeInteger))
	assert.Equal(t, 2.5, normalizeValue("2.5", types.TypeFloat))
	assert.Equal(t, true, normalizeValue("True", types.TypeBoolean))

	normalized := normalizeValue("2024-01-05", types.TypeDatetime)
	parsed, ok := normalized.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())

	// Values that fail conversion pass through unchanged.
	assert.Equal(t, "n/a", normalizeValue("n/a", types.TypeInteger))
}

func TestBuildTable_SampleCap(t *testing.T) {
	rows := make([]types.Row, 0, 10)
	for i := 0; i < 10; i++ {
		rows = append(rows, types.Row{"v": strings.Repeat("x", i+1)})
	}

	table := buildTable("t", []string{"v"}, rows)
	require.Len(t, table.Columns, 1)
	assert.Len(t, table.Columns[0].SampleValues, maxSampleValues)
	assert.Equal(t, 10, table.Columns[0].UniqueCount)
}
