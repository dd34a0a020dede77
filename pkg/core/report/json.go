package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fiscal_impact/pkg/core/impact"
	"fiscal_impact/pkg/models"
)

// Export is the machine-readable form of a study: the structured objects
// duplicated as data rather than prose.
type Export struct {
	ExtractedData   models.Proposal        `json:"extracted_data"`
	LegalValidation models.LegalValidation `json:"legal_validation"`
	Suggestions     []string               `json:"suggestions"`
	FinancialImpact impact.Figures         `json:"financial_impact"`
}

// JSON serializes the structured study objects, pretty-printed with HTML
// escaping off so accented characters survive literally.
func JSON(p models.Proposal, v models.LegalValidation, s models.Suggestions, fig impact.Figures) ([]byte, error) {
	suggestions := s.Items
	if suggestions == nil {
		suggestions = []string{}
	}
	export := Export{
		ExtractedData:   p,
		LegalValidation: v,
		Suggestions:     suggestions,
		FinancialImpact: fig,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return nil, fmt.Errorf("report: JSON encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}
