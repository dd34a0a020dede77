package report

import (
	"bytes"
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
)

// DOCX renders the canonical report text as a Word document: one heading
// followed by one paragraph per non-blank line.
func DOCX(text string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(Title).Size("36")

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			doc.AddParagraph().AddText(line)
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("report: Word encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
