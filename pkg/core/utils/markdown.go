// Package utils holds small text helpers shared across the pipeline.
package utils

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// CleanMarkdown strips an outer markdown code fence from a free-text model
// field. Models sometimes wrap even prose answers (justifications,
// suggestions) in a fence; the structured parser handles fenced JSON, this
// handles fenced text.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	if strings.HasPrefix(cleaned, "```markdown") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") && len(cleaned) > 6 {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// RenderMarkdown converts markdown to HTML for the results page. Model
// justifications and suggestions frequently carry markdown emphasis and
// lists; rendering them beats showing raw asterisks.
func RenderMarkdown(input string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(input), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
