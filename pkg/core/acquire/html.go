package acquire

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTML extracts the visible body text of an HTML page. Legislatures publish
// many bills as web pages, so this accepts a saved page directly.
func HTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("acquire: failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	body := doc.Find("body")
	text := body.Text()
	if body.Length() == 0 {
		text = doc.Text()
	}

	// Collapse the whitespace soup Text() leaves behind into clean lines.
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, strings.Join(strings.Fields(line), " "))
		}
	}
	return Normalize(strings.Join(lines, "\n"))
}
