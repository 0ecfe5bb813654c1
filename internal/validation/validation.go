// Package validation checks user-supplied paths and sniffs the type of
// files handed to docgen, so a unit database passed as a fixture or a
// compressed document passed as HTML fails early with a clear error.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Limits on inputs read into memory.
const (
	// MaxFileSize is the maximum size of a fixture or document (256 MB).
	MaxFileSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrFileTooLarge     = errors.New("file too large")
	ErrTypeMismatch     = errors.New("file type mismatch")
)

// ValidatePath checks a path for length limits and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	return nil
}

// FileType is a file type docgen reads or writes.
type FileType string

const (
	FileTypeHTML     FileType = "html"
	FileTypeMarkdown FileType = "markdown"
	FileTypeXZ       FileType = "xz"
	FileTypeSQLite   FileType = "sqlite"
	FileTypeYAML     FileType = "yaml"
	FileTypeJSON     FileType = "json"

	FileTypeUnknown FileType = "unknown"
)

// magicBytes defines magic byte signatures for file type detection.
var magicBytes = []struct {
	fileType FileType
	magic    []byte
}{
	{FileTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{FileTypeSQLite, []byte("SQLite format 3\x00")},
}

// textTypes are the types recognized only by extension.
var textTypes = map[FileType]bool{
	FileTypeHTML:     true,
	FileTypeMarkdown: true,
	FileTypeYAML:     true,
	FileTypeJSON:     true,
}

// DetectFileType reads the head of r and checks it against the type the
// filename's extension claims. A ".xz" suffix after another extension,
// as in "doc.html.xz", claims xz. Binary content under a text extension is
// a mismatch.
func DetectFileType(r io.Reader, filename string) (FileType, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	buf = buf[:n]

	detected := detectFileTypeFromMagic(buf)
	expected := detectFileTypeFromExtension(filename)

	switch {
	case detected == expected:
		return detected, nil
	case detected != FileTypeUnknown:
		if expected == FileTypeUnknown {
			return detected, nil
		}
		return FileTypeUnknown, fmt.Errorf("%w: %s has a %s extension but %s content", ErrTypeMismatch, filename, expected, detected)
	case textTypes[expected]:
		if len(buf) == 0 || isLikelyText(buf) {
			return expected, nil
		}
		return FileTypeUnknown, fmt.Errorf("%w: %s has a %s extension but binary content", ErrTypeMismatch, filename, expected)
	case expected != FileTypeUnknown:
		return FileTypeUnknown, fmt.Errorf("%w: %s is not a valid %s file", ErrTypeMismatch, filename, expected)
	}
	return FileTypeUnknown, nil
}

// ReadFile validates path, rejects files over MaxFileSize and returns the
// content together with its detected type.
func ReadFile(path string) ([]byte, FileType, error) {
	if err := ValidatePath(path); err != nil {
		return nil, FileTypeUnknown, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, FileTypeUnknown, err
	}
	if info.Size() > MaxFileSize {
		return nil, FileTypeUnknown, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FileTypeUnknown, err
	}
	ft, err := DetectFileType(bytes.NewReader(data), path)
	if err != nil {
		return nil, FileTypeUnknown, err
	}
	return data, ft, nil
}

// detectFileTypeFromMagic detects file type from magic bytes.
func detectFileTypeFromMagic(buf []byte) FileType {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.fileType
		}
	}
	return FileTypeUnknown
}

// detectFileTypeFromExtension determines expected file type from filename extension.
func detectFileTypeFromExtension(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xz":
		return FileTypeXZ
	case ".db", ".sqlite", ".sqlite3":
		return FileTypeSQLite
	case ".html", ".htm", ".xhtml":
		return FileTypeHTML
	case ".md", ".markdown":
		return FileTypeMarkdown
	case ".yaml", ".yml":
		return FileTypeYAML
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// isLikelyText checks if the buffer contains likely text content.
// Returns true if the buffer appears to be text (UTF-8, ASCII).
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}

	// Check for null bytes (strong indicator of binary content)
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	// Count printable characters vs control characters
	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 {
			control++
		}
		// UTF-8 continuation bytes (0x80-0xBF) and start bytes (0xC0-0xFD) are neutral
	}

	// If more than 95% is printable, consider it text
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
