package types

// Confidence grades a heuristic finding.
type Confidence string

// Confidence levels reported by the analyzer.
const (
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ColumnSummary is a per-column structural summary with percentages
// relative to the table's row count.
type ColumnSummary struct {
	Name             string     `json:"name"`
	Type             ColumnType `json:"type"`
	NullPercentage   float64    `json:"null_percentage"`
	UniquePercentage float64    `json:"unique_percentage"`
}

// TableSummary is a per-table structural summary.
type TableSummary struct {
	Name        string          `json:"name"`
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Columns     []ColumnSummary `json:"columns"`
}

// FileSummary groups the table summaries of one parsed file.
type FileSummary struct {
	Filename   string         `json:"filename"`
	Format     string         `json:"format"`
	TableCount int            `json:"table_count"`
	Tables     []TableSummary `json:"tables"`
}

// RelationshipCandidate is a heuristically detected cross-table link.
type RelationshipCandidate struct {
	FromFile   string     `json:"from_file"`
	FromTable  string     `json:"from_table"`
	FromColumn string     `json:"from_column"`
	ToFile     string     `json:"to_file"`
	ToTable    string     `json:"to_table"`
	ToColumn   string     `json:"to_column"`
	Confidence Confidence `json:"confidence"`
	Reason     string     `json:"reason"`
}

// PrimaryKeySuggestion names the best primary-key candidate for a table.
type PrimaryKeySuggestion struct {
	Column     string     `json:"column"`
	Confidence Confidence `json:"confidence"`
	Reason     string     `json:"reason"`
}

// QualityFinding flags a data-quality concern in one table.
type QualityFinding struct {
	File  string `json:"file"`
	Table string `json:"table"`
	Issue string `json:"issue"`
}

// AnalysisReport aggregates the analyzer's findings over all tables of a
// job. Produced once per job and read-only thereafter. Primary-key
// suggestions are keyed by "<filename>.<table>".
type AnalysisReport struct {
	TotalFiles           int                             `json:"total_files"`
	TotalTables          int                             `json:"total_tables"`
	TotalRows            int                             `json:"total_rows"`
	FileSummaries        []FileSummary                   `json:"file_summaries"`
	Relationships        []RelationshipCandidate         `json:"relationships"`
	SuggestedPrimaryKeys map[string]PrimaryKeySuggestion `json:"suggested_primary_keys"`
	DataQualityIssues    []QualityFinding                `json:"data_quality_issues"`
	Narrative            string                          `json:"natural_language_summary"`
}
