package parsing

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/jonathan/tablesmith/internal/formats"
	"github.com/jonathan/tablesmith/internal/types"
)

// parseDelimited reads a comma- or tab-separated file into one table named
// after the file stem. Text encoding is detected from a byte sample before
// decoding.
func (p *Parser) parseDelimited(path string, format formats.Format, delimiter rune) (*types.ParsedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}

	encodingName, decoded, err := decodeBytes(raw)
	if err != nil {
		return nil, &MalformedContentError{Path: path, Message: "failed to decode text", Cause: err}
	}

	table, err := parseDelimitedContent(string(decoded), fileStem(path), delimiter)
	if err != nil {
		return nil, &MalformedContentError{Path: path, Message: "failed to parse delimited content", Cause: err}
	}

	return &types.ParsedFile{
		Filename: fileBase(path),
		Format:   string(format),
		Tables:   []types.ParsedTable{table},
		Metadata: types.FileMetadata{
			Encoding:      encodingName,
			Delimiter:     string(delimiter),
			FileSizeBytes: int64(len(raw)),
		},
	}, nil
}

// parseDelimitedContent parses decoded delimited text into a table.
// The first record is the header; short rows pad with nil, long rows are
// rejected by the csv reader.
func parseDelimitedContent(content, tableName string, delimiter rune) (types.ParsedTable, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return types.ParsedTable{}, err
	}
	if len(records) == 0 {
		return buildTable(tableName, nil, nil), nil
	}

	header := records[0]
	rows := make([]types.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(types.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}

	return buildTable(tableName, header, rows), nil
}
