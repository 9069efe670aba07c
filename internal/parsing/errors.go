// Package parsing reads supported input files and emits normalized tables
// with per-column type, null and uniqueness statistics.
package parsing

import "fmt"

// NotFoundError indicates the input file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// UnsupportedFormatError indicates the file extension is not registered.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Extension)
}

// SizeExceededError indicates the file is larger than its format's ceiling.
type SizeExceededError struct {
	Path    string
	Size    int64
	MaxSize int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("file size (%d bytes) exceeds maximum allowed (%d bytes): %s", e.Size, e.MaxSize, e.Path)
}

// MalformedContentError indicates the file failed to parse under every
// fallback strategy for its format.
type MalformedContentError struct {
	Path    string
	Message string
	Cause   error
}

func (e *MalformedContentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed content in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed content in %s: %s", e.Path, e.Message)
}

func (e *MalformedContentError) Unwrap() error {
	return e.Cause
}
