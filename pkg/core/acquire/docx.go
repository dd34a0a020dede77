package acquire

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// DOCX extracts paragraph text and table text from a Word document,
// concatenated with newline separators in document order.
func DOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("acquire: failed to open Word document: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			if text := strings.TrimSpace(fmt.Sprint(item)); text != "" {
				lines = append(lines, text)
			}
		}
	}
	return Normalize(strings.Join(lines, "\n"))
}
