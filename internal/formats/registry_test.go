package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Extensions(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{".csv", FormatCSV},
		{"csv", FormatCSV},
		{".CSV", FormatCSV},
		{" .tsv ", FormatTSV},
		{".json", FormatJSON},
		{".jsonl", FormatJSON},
		{".xlsx", FormatXLSX},
		{".xls", FormatXLS},
		{".txt", FormatTXT},
		{".parquet", FormatUnknown},
		{"", FormatUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Resolve(tt.input), "input %q", tt.input)
	}
}

func TestResolve_MIMETypes(t *testing.T) {
	assert.Equal(t, FormatCSV, Resolve("text/csv"))
	assert.Equal(t, FormatJSON, Resolve("application/json"))
	assert.Equal(t, FormatXLSX, Resolve("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.Equal(t, FormatTXT, Resolve("text/plain"))
	assert.Equal(t, FormatUnknown, Resolve("application/pdf"))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(".csv"))
	assert.True(t, IsSupported("json"))
	assert.True(t, IsSupported(".XLSX"))
	assert.False(t, IsSupported(".pdf"))
	assert.False(t, IsSupported(""))
}

func TestMaxFileSize(t *testing.T) {
	assert.Equal(t, int64(100*megabyte), MaxFileSize(FormatCSV))
	assert.Equal(t, int64(50*megabyte), MaxFileSize(FormatXLSX))
	assert.Equal(t, defaultMaxFileSize, MaxFileSize(FormatUnknown))
}

func TestSupportedExtensions_Sorted(t *testing.T) {
	exts := SupportedExtensions()
	assert.Len(t, exts, 7)
	assert.Equal(t, []string{".csv", ".json", ".jsonl", ".tsv", ".txt", ".xls", ".xlsx"}, exts)
}
