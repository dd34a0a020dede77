package acquire

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text page by page, joining pages with newlines. A page whose
// extraction fails is skipped with a warning rather than failing the whole
// document; scanned-image pages simply contribute nothing.
func PDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("acquire: failed to open PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("[ACQUIRE] Warning: skipping PDF page %d: %v", i, err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return Normalize(strings.Join(pages, "\n"))
}
