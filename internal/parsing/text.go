package parsing

import (
	"os"
	"strings"

	"github.com/jonathan/tablesmith/internal/formats"
	"github.com/jonathan/tablesmith/internal/types"
)

// delimiterCandidates are tried in order when sniffing structure in a
// plain-text file.
var delimiterCandidates = []rune{',', '\t', '|', ';', ' '}

// sniffSampleLines bounds how many non-blank lines are checked per
// candidate delimiter.
const sniffSampleLines = 5

// parseText attempts delimiter sniffing over a plain-text file. A
// candidate wins when it appears in every sampled non-blank line and
// yields more than one column; otherwise the file degrades to a single
// "text" column with one row per non-blank line.
func (p *Parser) parseText(path string) (*types.ParsedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}

	encodingName, decoded, err := decodeBytes(raw)
	if err != nil {
		return nil, &MalformedContentError{Path: path, Message: "failed to decode text", Cause: err}
	}
	content := string(decoded)

	sample := sampleNonBlankLines(content, sniffSampleLines)
	for _, delimiter := range delimiterCandidates {
		if !appearsInAll(sample, delimiter) {
			continue
		}
		table, err := parseDelimitedContent(content, fileStem(path), delimiter)
		if err != nil || len(table.Columns) <= 1 {
			continue
		}
		return &types.ParsedFile{
			Filename: fileBase(path),
			Format:   string(formats.FormatTXT),
			Tables:   []types.ParsedTable{table},
			Metadata: types.FileMetadata{
				Encoding:      encodingName,
				Delimiter:     string(delimiter),
				FileSizeBytes: int64(len(raw)),
			},
		}, nil
	}

	// Degrade: one "text" column, one row per non-blank line.
	var rows []types.Row
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, types.Row{"text": line})
	}

	return &types.ParsedFile{
		Filename: fileBase(path),
		Format:   string(formats.FormatTXT),
		Tables:   []types.ParsedTable{buildTable(fileStem(path), []string{"text"}, rows)},
		Metadata: types.FileMetadata{
			Encoding:      encodingName,
			Delimiter:     "none",
			FileSizeBytes: int64(len(raw)),
		},
	}, nil
}

func sampleNonBlankLines(content string, n int) []string {
	var sample []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) == n {
			break
		}
	}
	return sample
}

func appearsInAll(lines []string, delimiter rune) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !strings.ContainsRune(line, delimiter) {
			return false
		}
	}
	return true
}
