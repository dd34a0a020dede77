// Package acquire normalizes a bill text from the supported upload formats.
// Whatever the source, the output is one trimmed, non-empty string; the rest
// of the pipeline never sees bytes or file formats.
package acquire

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrEmptyDocument is returned when a source yields no usable text.
var ErrEmptyDocument = errors.New("acquire: document contains no text")

// mimeHandlers maps the accepted MIME types to their extractors.
var mimeHandlers = map[string]func([]byte) (string, error){
	"text/plain":      PlainText,
	"application/pdf": PDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": DOCX,
	"text/html": HTML,
}

// extHandlers resolves by file extension when the client sent a generic or
// missing content type (browsers often upload .txt as octet-stream).
var extHandlers = map[string]func([]byte) (string, error){
	".txt":  PlainText,
	".pdf":  PDF,
	".docx": DOCX,
	".html": HTML,
	".htm":  HTML,
}

// FromUpload dispatches on the declared MIME type, falling back to the file
// extension. Unsupported formats are rejected with a descriptive error.
func FromUpload(filename, mimeType string, data []byte) (string, error) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if h, ok := mimeHandlers[mt]; ok {
		return h(data)
	}
	if h, ok := extHandlers[strings.ToLower(filepath.Ext(filename))]; ok {
		return h(data)
	}
	return "", fmt.Errorf("acquire: unsupported file type %q (accepted: txt, pdf, docx, html)", mimeType)
}

// PlainText decodes bytes as UTF-8, falling back to Latin-1 when the bytes
// are not valid UTF-8 (legacy documents from government systems frequently
// are ISO 8859-1).
func PlainText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return Normalize(string(data))
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("acquire: latin-1 decode failed: %w", err)
	}
	return Normalize(string(decoded))
}

// Normalize trims surrounding whitespace and enforces the non-empty
// invariant every downstream stage relies on.
func Normalize(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
