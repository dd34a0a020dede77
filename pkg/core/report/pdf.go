package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// maxPDFLine bounds the characters placed per cell; absurdly long lines
// (a model dumping the whole bill into one field) would otherwise overflow
// the encoder.
const maxPDFLine = 400

// PDF renders the canonical report text as a portrait A4 document, one
// wrapped cell per source line. Core fonts are single-byte, so text goes
// through the cp1252 translator and anything outside that set becomes a
// placeholder character.
func PDF(text string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 12)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(text, "\n") {
		if runes := []rune(line); len(runes) > maxPDFLine {
			line = string(runes[:maxPDFLine])
		}
		doc.MultiCell(0, 10, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("report: PDF encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
