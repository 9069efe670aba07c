package parsing

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// encodingSampleSize bounds how many bytes are inspected before decoding.
const encodingSampleSize = 10 * 1024

// detectEncoding inspects a byte sample and picks a decoder. BOMs win,
// then valid UTF-8, then Windows-1252 as the latin fallback that accepts
// any byte sequence.
func detectEncoding(sample []byte) (string, encoding.Encoding) {
	switch {
	case bytes.HasPrefix(sample, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8-sig", unicode.UTF8BOM
	case bytes.HasPrefix(sample, []byte{0xFF, 0xFE}):
		return "utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bytes.HasPrefix(sample, []byte{0xFE, 0xFF}):
		return "utf-16be", unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case utf8.Valid(sample):
		return "utf-8", unicode.UTF8
	default:
		return "windows-1252", charmap.Windows1252
	}
}

// decodeBytes converts raw file bytes to UTF-8 using the detected
// encoding. The returned name is recorded in file metadata.
func decodeBytes(raw []byte) (string, []byte, error) {
	sample := raw
	if len(sample) > encodingSampleSize {
		sample = sample[:encodingSampleSize]
	}
	name, enc := detectEncoding(sample)
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return name, nil, err
	}
	return name, decoded, nil
}
