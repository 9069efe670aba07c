package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tablesmith/internal/types"
)

// tableOf builds a parsed table with per-column stats derived from the rows,
// mirroring what the parser produces.
func tableOf(name string, columns []types.ParsedColumn, rowCount int) types.ParsedTable {
	return types.ParsedTable{Name: name, Columns: columns, RowCount: rowCount}
}

func fileOf(filename string, tables ...types.ParsedTable) *types.ParsedFile {
	return &types.ParsedFile{Filename: filename, Format: "csv", Tables: tables}
}

func TestAnalyze_Totals(t *testing.T) {
	files := []*types.ParsedFile{
		fileOf("a.csv", tableOf("a", []types.ParsedColumn{
			{Name: "id", Type: types.TypeInteger, UniqueCount: 4},
		}, 4)),
		fileOf("b.csv", tableOf("b", []types.ParsedColumn{
			{Name: "x", Type: types.TypeString, UniqueCount: 2},
		}, 2)),
	}

	report := Analyze(files)
	assert.Equal(t, 2, report.TotalFiles)
	assert.Equal(t, 2, report.TotalTables)
	assert.Equal(t, 6, report.TotalRows)
	require.Len(t, report.FileSummaries, 2)
	assert.Equal(t, "a.csv", report.FileSummaries[0].Filename)
	assert.NotEmpty(t, report.Narrative)
}

func TestSuggestPrimaryKey_PrefersIntegerIDColumn(t *testing.T) {
	table := tableOf("users", []types.ParsedColumn{
		{Name: "email", Type: types.TypeString, UniqueCount: 5, NullCount: 0},
		{Name: "id", Type: types.TypeInteger, UniqueCount: 5, NullCount: 0},
	}, 5)

	suggestion, ok := suggestPrimaryKey(&table)
	require.True(t, ok)
	assert.Equal(t, "id", suggestion.Column)
	assert.Equal(t, types.ConfidenceHigh, suggestion.Confidence)
}

func TestSuggestPrimaryKey_UniqueStringColumnIsMediumConfidence(t *testing.T) {
	table := tableOf("users", []types.ParsedColumn{
		{Name: "email", Type: types.TypeString, UniqueCount: 5, NullCount: 0},
	}, 5)

	suggestion, ok := suggestPrimaryKey(&table)
	require.True(t, ok)
	assert.Equal(t, "email", suggestion.Column)
	assert.Equal(t, types.ConfidenceMedium, suggestion.Confidence)
}

func TestSuggestPrimaryKey_RejectsNullsAndDuplicates(t *testing.T) {
	table := tableOf("logs", []types.ParsedColumn{
		{Name: "id", Type: types.TypeInteger, UniqueCount: 4, NullCount: 1},
		{Name: "level", Type: types.TypeString, UniqueCount: 2, NullCount: 0},
	}, 5)

	_, ok := suggestPrimaryKey(&table)
	assert.False(t, ok)
}

func TestSuggestPrimaryKey_EmptyTable(t *testing.T) {
	table := tableOf("empty", []types.ParsedColumn{{Name: "id"}}, 0)
	_, ok := suggestPrimaryKey(&table)
	assert.False(t, ok)
}

func TestSuggestPrimaryKey_FKSuffixScoresBelowPlainID(t *testing.T) {
	table := tableOf("orders", []types.ParsedColumn{
		{Name: "order_id", Type: types.TypeInteger, UniqueCount: 3, NullCount: 0},
		{Name: "id", Type: types.TypeInteger, UniqueCount: 3, NullCount: 0},
	}, 3)

	// Equal scores keep the first qualifying candidate.
	suggestion, ok := suggestPrimaryKey(&table)
	require.True(t, ok)
	assert.Equal(t, "order_id", suggestion.Column)
}

func TestColumnSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     types.ParsedColumn
		expected float64
	}{
		{
			"identical name and type",
			types.ParsedColumn{Name: "mrn", Type: types.TypeString},
			types.ParsedColumn{Name: "mrn", Type: types.TypeString},
			1.0,
		},
		{
			"fk naming pattern",
			types.ParsedColumn{Name: "user_id", Type: types.TypeInteger},
			types.ParsedColumn{Name: "id", Type: types.TypeInteger},
			1.0,
		},
		{
			"substring with same type",
			types.ParsedColumn{Name: "name", Type: types.TypeString},
			types.ParsedColumn{Name: "username", Type: types.TypeString},
			0.5,
		},
		{
			"unrelated",
			types.ParsedColumn{Name: "price", Type: types.TypeFloat},
			types.ParsedColumn{Name: "city", Type: types.TypeString},
			0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, columnSimilarity(&tt.a, &tt.b), 1e-9)
		})
	}
}

func TestColumnSimilarity_Symmetric(t *testing.T) {
	a := types.ParsedColumn{Name: "user_id", Type: types.TypeInteger}
	b := types.ParsedColumn{Name: "id", Type: types.TypeInteger}
	assert.Equal(t, columnSimilarity(&a, &b), columnSimilarity(&b, &a))
}

func TestDetectRelationships(t *testing.T) {
	files := []*types.ParsedFile{
		fileOf("users.csv", tableOf("users", []types.ParsedColumn{
			{Name: "id", Type: types.TypeInteger, UniqueCount: 3},
			{Name: "city", Type: types.TypeString, UniqueCount: 3},
		}, 3)),
		fileOf("orders.csv", tableOf("orders", []types.ParsedColumn{
			{Name: "user_id", Type: types.TypeInteger, UniqueCount: 5},
			{Name: "total", Type: types.TypeFloat, UniqueCount: 5},
		}, 5)),
	}

	report := Analyze(files)
	require.Len(t, report.Relationships, 1)

	rel := report.Relationships[0]
	assert.Equal(t, "users", rel.FromTable)
	assert.Equal(t, "id", rel.FromColumn)
	assert.Equal(t, "orders", rel.ToTable)
	assert.Equal(t, "user_id", rel.ToColumn)
	assert.Equal(t, types.ConfidenceHigh, rel.Confidence)
	assert.Contains(t, rel.Reason, "foreign key naming pattern")
}

func TestDetectRelationships_FileOrderInsensitive(t *testing.T) {
	users := fileOf("users.csv", tableOf("users", []types.ParsedColumn{
		{Name: "id", Type: types.TypeInteger, UniqueCount: 3},
		{Name: "city", Type: types.TypeString, UniqueCount: 3},
	}, 3))
	orders := fileOf("orders.csv", tableOf("orders", []types.ParsedColumn{
		{Name: "user_id", Type: types.TypeInteger, UniqueCount: 5},
		{Name: "total", Type: types.TypeFloat, UniqueCount: 5},
	}, 5))

	forward := Analyze([]*types.ParsedFile{users, orders})
	reversed := Analyze([]*types.ParsedFile{orders, users})

	require.Len(t, forward.Relationships, 1)
	require.Len(t, reversed.Relationships, 1)

	// Candidate direction follows file order, but both orders must find
	// the same column pair with the same confidence and reasoning.
	endpoints := func(rel types.RelationshipCandidate) map[string]bool {
		return map[string]bool{
			rel.FromTable + "." + rel.FromColumn: true,
			rel.ToTable + "." + rel.ToColumn:     true,
		}
	}
	assert.Equal(t, endpoints(forward.Relationships[0]), endpoints(reversed.Relationships[0]))
	assert.Equal(t, forward.Relationships[0].Confidence, reversed.Relationships[0].Confidence)
	assert.Equal(t, forward.Relationships[0].Reason, reversed.Relationships[0].Reason)
}

func TestDetectRelationships_SingleTableSkipped(t *testing.T) {
	report := Analyze([]*types.ParsedFile{
		fileOf("only.csv", tableOf("only", []types.ParsedColumn{
			{Name: "id", Type: types.TypeInteger, UniqueCount: 2},
		}, 2)),
	})
	assert.Empty(t, report.Relationships)
}

func TestDetectQualityIssues_HighNullColumn(t *testing.T) {
	table := tableOf("t", []types.ParsedColumn{
		{Name: "id", Type: types.TypeInteger, UniqueCount: 10, NullCount: 0},
		{Name: "notes", Type: types.TypeString, UniqueCount: 2, NullCount: 6},
	}, 10)

	issues := detectQualityIssues(&table)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "notes")
	assert.Contains(t, issues[0], "60.0% null")
}

func TestDetectQualityIssues_LowUniqueness(t *testing.T) {
	table := tableOf("t", []types.ParsedColumn{
		{Name: "status", Type: types.TypeString, UniqueCount: 1, NullCount: 0},
		{Name: "region", Type: types.TypeString, UniqueCount: 1, NullCount: 0},
	}, 20)

	issues := detectQualityIssues(&table)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0], "duplicate rows")
	assert.Contains(t, issues[1], "No obvious primary key")
}

func TestDetectQualityIssues_CleanTable(t *testing.T) {
	table := tableOf("t", []types.ParsedColumn{
		{Name: "id", Type: types.TypeInteger, UniqueCount: 5, NullCount: 0},
	}, 5)

	assert.Empty(t, detectQualityIssues(&table))
}

func TestBuildNarrative_Sections(t *testing.T) {
	files := []*types.ParsedFile{
		fileOf("users.csv", tableOf("users", []types.ParsedColumn{
			{Name: "id", Type: types.TypeInteger, UniqueCount: 3},
			{Name: "name", Type: types.TypeString, UniqueCount: 3},
		}, 3)),
		fileOf("orders.csv", tableOf("orders", []types.ParsedColumn{
			{Name: "user_id", Type: types.TypeInteger, UniqueCount: 5},
		}, 5)),
	}

	report := Analyze(files)

	assert.Contains(t, report.Narrative, "Dataset contains 2 file(s) with 2 table(s) and a total of 8 rows.")
	assert.Contains(t, report.Narrative, "File Details:")
	assert.Contains(t, report.Narrative, "users.csv (csv) -> Table 'users': 3 rows, 2 columns")
	assert.Contains(t, report.Narrative, "Suggested Primary Keys:")
	assert.Contains(t, report.Narrative, "potential relationship(s):")
}

func TestBuildNarrative_TruncatesWideColumnLists(t *testing.T) {
	columns := make([]types.ParsedColumn, 0, 8)
	for i := 0; i < 8; i++ {
		columns = append(columns, types.ParsedColumn{
			Name: fmt.Sprintf("col_%d", i), Type: types.TypeString, UniqueCount: 1,
		})
	}
	report := Analyze([]*types.ParsedFile{fileOf("wide.csv", tableOf("wide", columns, 2))})

	assert.Contains(t, report.Narrative, "... and 3 more")
}

func TestAnalyze_Deterministic(t *testing.T) {
	files := []*types.ParsedFile{
		fileOf("users.csv", tableOf("users", []types.ParsedColumn{
			{Name: "id", Type: types.TypeInteger, UniqueCount: 3},
		}, 3)),
		fileOf("orders.csv", tableOf("orders", []types.ParsedColumn{
			{Name: "user_id", Type: types.TypeInteger, UniqueCount: 5},
		}, 5)),
	}

	first := Analyze(files)
	second := Analyze(files)
	assert.Equal(t, first.Narrative, second.Narrative)
	assert.Equal(t, first.Relationships, second.Relationships)
	assert.Equal(t, first.SuggestedPrimaryKeys, second.SuggestedPrimaryKeys)
}
