package types

// ColumnType is the inferred logical type of a parsed column.
type ColumnType string

// Inferred column types. Inference resolves each column to the narrowest
// type that covers its whole non-null value domain, falling back to string.
const (
	TypeInteger  ColumnType = "integer"
	TypeFloat    ColumnType = "float"
	TypeBoolean  ColumnType = "boolean"
	TypeDatetime ColumnType = "datetime"
	TypeString   ColumnType = "string"
)

// Row is one record keyed by column name. Values are normalized to the
// column's inferred type where possible; missing fields are nil.
type Row map[string]any

// ParsedColumn carries per-column statistics gathered during parsing.
type ParsedColumn struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	NullCount    int        `json:"null_count"`
	UniqueCount  int        `json:"unique_count"`
	SampleValues []any      `json:"sample_values"`
}

// ParsedTable is one normalized table extracted from an input file.
// Immutable once produced by the parser.
type ParsedTable struct {
	Name     string         `json:"name"`
	Columns  []ParsedColumn `json:"columns"`
	RowCount int            `json:"row_count"`
	Rows     []Row          `json:"data"`
}

// FileMetadata records how a file was decoded.
type FileMetadata struct {
	Encoding      string   `json:"encoding,omitempty"`
	Delimiter     string   `json:"delimiter,omitempty"`
	SheetNames    []string `json:"sheet_names,omitempty"`
	FileSizeBytes int64    `json:"file_size_bytes"`
}

// ParsedFile is the parser output for one input file. A single file may
// yield several tables (one per sheet, or one per top-level JSON key).
type ParsedFile struct {
	Filename string        `json:"filename"`
	Format   string        `json:"format"`
	Tables   []ParsedTable `json:"tables"`
	Metadata FileMetadata  `json:"metadata"`
}
