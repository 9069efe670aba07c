package parsing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/tablesmith/internal/formats"
	"github.com/jonathan/tablesmith/internal/types"
)

// Parser reads a single file of a supported format and emits one or more
// normalized tables. Format resolution and size ceilings come from the
// formats registry and are enforced before any parsing work begins.
type Parser struct{}

// NewParser returns a ready-to-use parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the file at path and returns its normalized tables.
// Failure modes: NotFoundError, UnsupportedFormatError, SizeExceededError,
// MalformedContentError.
func (p *Parser) Parse(path string) (*types.ParsedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &NotFoundError{Path: path}
	}

	extension := strings.ToLower(filepath.Ext(path))
	format := formats.Resolve(extension)
	if format == formats.FormatUnknown {
		return nil, &UnsupportedFormatError{Extension: extension}
	}

	maxSize := formats.MaxFileSize(format)
	if info.Size() > maxSize {
		return nil, &SizeExceededError{Path: path, Size: info.Size(), MaxSize: maxSize}
	}

	switch format {
	case formats.FormatCSV:
		return p.parseDelimited(path, format, ',')
	case formats.FormatTSV:
		return p.parseDelimited(path, format, '\t')
	case formats.FormatJSON:
		return p.parseJSON(path)
	case formats.FormatXLSX, formats.FormatXLS:
		return p.parseExcel(path, format)
	case formats.FormatTXT:
		return p.parseText(path)
	default:
		return nil, &UnsupportedFormatError{Extension: extension}
	}
}

// fileStem returns the filename without directory or extension; used as
// the default table name for single-table formats.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileBase(path string) string {
	return filepath.Base(path)
}
