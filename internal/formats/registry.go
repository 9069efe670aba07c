// Package formats is the registry of supported input file formats and
// their per-format size ceilings.
package formats

import (
	"sort"
	"strings"
)

// Format identifies a supported input file format.
type Format string

// Supported formats. FormatUnknown is the sentinel for anything the
// registry does not recognize; lookups never fail.
const (
	FormatUnknown Format = ""
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatJSON    Format = "json"
	FormatXLSX    Format = "xlsx"
	FormatXLS     Format = "xls"
	FormatTXT     Format = "txt"
)

const megabyte = 1024 * 1024

// defaultMaxFileSize applies to formats without an explicit ceiling.
const defaultMaxFileSize int64 = 10 * megabyte

var extensionMap = map[string]Format{
	".csv":   FormatCSV,
	".tsv":   FormatTSV,
	".json":  FormatJSON,
	".jsonl": FormatJSON,
	".xlsx":  FormatXLSX,
	".xls":   FormatXLS,
	".txt":   FormatTXT,
}

var mimeTypeMap = map[string]Format{
	"text/csv":                 FormatCSV,
	"text/tab-separated-values": FormatTSV,
	"application/json":         FormatJSON,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": FormatXLSX,
	"application/vnd.ms-excel": FormatXLS,
	"text/plain":               FormatTXT,
}

// Spreadsheet formats are capped lower than delimited/text formats.
var maxFileSizes = map[Format]int64{
	FormatCSV:  100 * megabyte,
	FormatTSV:  100 * megabyte,
	FormatJSON: 100 * megabyte,
	FormatTXT:  100 * megabyte,
	FormatXLSX: 50 * megabyte,
	FormatXLS:  50 * megabyte,
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// IsSupported reports whether a file extension maps to a known format.
// The leading dot is optional and matching is case-insensitive.
func IsSupported(extension string) bool {
	_, ok := extensionMap[normalizeExtension(extension)]
	return ok
}

// Resolve maps a file extension or MIME type to its format, returning
// FormatUnknown when neither matches.
func Resolve(extensionOrMIME string) Format {
	if f, ok := extensionMap[normalizeExtension(extensionOrMIME)]; ok {
		return f
	}
	if f, ok := mimeTypeMap[strings.ToLower(strings.TrimSpace(extensionOrMIME))]; ok {
		return f
	}
	return FormatUnknown
}

// MaxFileSize returns the size ceiling in bytes for a format. The ceiling
// is enforced by the parser before any parsing work begins.
func MaxFileSize(f Format) int64 {
	if size, ok := maxFileSizes[f]; ok {
		return size
	}
	return defaultMaxFileSize
}

// SupportedExtensions lists every registered extension, sorted for
// stable display output.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionMap))
	for ext := range extensionMap {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
