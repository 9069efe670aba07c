package types

// MaterializationResult reports the outcome of compiling a schema
// description and bulk-loading the parsed rows. Success means the physical
// database was created and loading ran to completion; per-entity and
// per-row failures are collected in Errors and Warnings without aborting
// sibling work.
type MaterializationResult struct {
	Success       bool           `json:"success"`
	DatabaseName  string         `json:"database_name"`
	DatabasePath  string         `json:"database_path"`
	TablesCreated []string       `json:"tables_created"`
	RowsInserted  map[string]int `json:"rows_inserted"`
	Errors        []string       `json:"errors"`
	Warnings      []string       `json:"warnings"`
}
