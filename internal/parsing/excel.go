package parsing

import (
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/tablesmith/internal/formats"
	"github.com/jonathan/tablesmith/internal/types"
)

// parseExcel reads a workbook into one table per non-empty sheet, with the
// sheet name as the table name. A workbook with no data in any sheet is
// malformed.
func (p *Parser) parseExcel(path string, format formats.Format) (*types.ParsedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &MalformedContentError{Path: path, Message: "failed to open workbook", Cause: err}
	}
	defer func() { _ = workbook.Close() }()

	sheetNames := workbook.GetSheetList()
	var tables []types.ParsedTable

	for _, sheet := range sheetNames {
		records, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, &MalformedContentError{Path: path, Message: "failed to read sheet " + sheet, Cause: err}
		}
		if len(records) < 1 || len(records[0]) == 0 {
			continue
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
		if len(rows) == 0 {
			continue
		}
		tables = append(tables, buildTable(sheet, header, rows))
	}

	if len(tables) == 0 {
		return nil, &MalformedContentError{Path: path, Message: "no data found in workbook"}
	}

	return &types.ParsedFile{
		Filename: fileBase(path),
		Format:   string(format),
		Tables:   tables,
		Metadata: types.FileMetadata{
			SheetNames:    sheetNames,
			FileSizeBytes: info.Size(),
		},
	}, nil
}
