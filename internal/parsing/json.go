package parsing

import (
	"bufio"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/tablesmith/internal/formats"
	"github.com/jonathan/tablesmith/internal/types"
)

// parseJSON normalizes a structured-object file into tables:
//   - a top-level array of records becomes one table named after the file;
//   - a top-level object whose values are record arrays becomes one table
//     per such key (multi-entity files);
//   - any other object is wrapped as a single one-row table.
//
// Malformed top-level JSON is retried as line-delimited JSON before the
// file is rejected.
func (p *Parser) parseJSON(path string) (*types.ParsedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}

	encodingName, decoded, err := decodeBytes(raw)
	if err != nil {
		return nil, &MalformedContentError{Path: path, Message: "failed to decode text", Cause: err}
	}

	var top any
	if err := json.Unmarshal(decoded, &top); err != nil {
		lines, linesErr := parseJSONLines(decoded)
		if linesErr != nil {
			return nil, &MalformedContentError{Path: path, Message: "failed to parse JSON", Cause: err}
		}
		top = lines
	}

	var tables []types.ParsedTable
	switch value := top.(type) {
	case []any:
		table, err := recordsToTable(fileStem(path), value)
		if err != nil {
			return nil, &MalformedContentError{Path: path, Message: "failed to normalize JSON array", Cause: err}
		}
		tables = append(tables, table)
	case map[string]any:
		// Keys holding arrays of records each become an independent table.
		keys := sortedKeys(value)
		for _, key := range keys {
			records, ok := value[key].([]any)
			if !ok || len(records) == 0 {
				continue
			}
			if _, ok := records[0].(map[string]any); !ok {
				continue
			}
			table, err := recordsToTable(key, records)
			if err != nil {
				continue
			}
			tables = append(tables, table)
		}
		if len(tables) == 0 {
			table, err := recordsToTable(fileStem(path), []any{value})
			if err != nil {
				return nil, &MalformedContentError{Path: path, Message: "failed to normalize JSON object", Cause: err}
			}
			tables = append(tables, table)
		}
	default:
		return nil, &MalformedContentError{Path: path, Message: "JSON must be an array or object"}
	}

	return &types.ParsedFile{
		Filename: fileBase(path),
		Format:   string(formats.FormatJSON),
		Tables:   tables,
		Metadata: types.FileMetadata{
			Encoding:      encodingName,
			FileSizeBytes: int64(len(raw)),
		},
	}, nil
}

// parseJSONLines decodes one JSON value per non-blank line.
func parseJSONLines(data []byte) ([]any, error) {
	var records []any
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// recordsToTable flattens a slice of JSON records into a table. The column
// set is the union of keys across records, in first-seen order; records
// missing a key get a nil value.
func recordsToTable(name string, records []any) (types.ParsedTable, error) {
	var columnNames []string
	seen := make(map[string]struct{})
	rows := make([]types.Row, 0, len(records))

	for _, record := range records {
		obj, ok := record.(map[string]any)
		if !ok {
			// Scalar entries get a single "value" column.
			obj = map[string]any{"value": record}
		}
		row := make(types.Row, len(obj))
		for key, v := range obj {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columnNames = append(columnNames, key)
			}
			row[key] = v
		}
		rows = append(rows, row)
	}

	// Fill missing keys with explicit nulls.
	for _, row := range rows {
		for _, col := range columnNames {
			if _, ok := row[col]; !ok {
				row[col] = nil
			}
		}
	}

	return buildTable(name, columnNames, rows), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
