// Package prompt holds the fixed prompt templates for the three analysis
// stages. Each template embeds the bill text and pins the exact JSON keys the
// response parser expects, so the reply shape stays stable across models.
package prompt

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"
)

// Template IDs for the three analysis stages.
const (
	DataExtraction       = "study.data_extraction"
	LegalValidation      = "study.legal_validation"
	AdjustmentSuggestion = "study.adjustment_suggestion"
)

// Template is a registered prompt with metadata.
type Template struct {
	ID          string
	Name        string
	Description string
	tmpl        *template.Template
}

var (
	registry map[string]*Template
	once     sync.Once
)

const dataExtractionText = `You are a legal and financial specialist supporting public administration in the
analysis of legislative bills that affect personnel expenses, as required by the
Fiscal Responsibility Law (LRF).

Your task is to analyze the bill text below and extract structured data for a
financial impact study, covering legal, operational and financial aspects.

Bill text:
{{.BillText}}

Extract the following information in JSON format. If an item is not found, use
"Não especificado":

` + "```json" + `
{
  "tipo_proposta": "",
  "reajuste_proposto": "",
  "abrangencia_temporal": "",
  "setor_afetado": "",
  "detalhes_adicionais": "",
  "quantitativo_envolvido": "",
  "fonte_orcamentaria": "",
  "condicionantes_legais": "",
  "natureza_juridica_da_medida": ""
}
` + "```"

const legalValidationText = `You are a legal advisor specialized in the Fiscal Responsibility Law (LRF).

Analyze the following bill and state whether it satisfies the legal
requirements for increasing personnel expenses:

Text:
{{.BillText}}

Answer in JSON format:
` + "```json" + `
{
  "cumpre_lrf": "Sim" or "Não",
  "justificativa": "A concise explanation of the reason."
}
` + "```"

const adjustmentSuggestionText = `Based on the following bill text, suggest adjustments or improvements to
ensure compliance with the LRF and financial feasibility:

Text:
{{.BillText}}

Answer in structured format:
` + "```json" + `
{
  "ajustes_sugeridos": [
    "...",
    "..."
  ]
}
` + "```"

func load() {
	registry = make(map[string]*Template)
	for _, t := range []struct {
		id, name, desc, text string
	}{
		{DataExtraction, "Data Extraction", "extracts structured proposal fields from a bill", dataExtractionText},
		{LegalValidation, "Legal Validation", "LRF compliance verdict with justification", legalValidationText},
		{AdjustmentSuggestion, "Adjustment Suggestions", "suggested changes for compliance and feasibility", adjustmentSuggestionText},
	} {
		registry[t.id] = &Template{
			ID:          t.id,
			Name:        t.name,
			Description: t.desc,
			tmpl:        template.Must(template.New(t.id).Parse(t.text)),
		}
	}
}

// Build renders the template identified by id with the given bill text.
func Build(id, billText string) (string, error) {
	once.Do(load)
	t, ok := registry[id]
	if !ok {
		return "", fmt.Errorf("prompt not found: %s", id)
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, struct{ BillText string }{BillText: billText}); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", id, err)
	}
	return buf.String(), nil
}

// IDs returns the registered template IDs in pipeline order.
func IDs() []string {
	return []string{DataExtraction, LegalValidation, AdjustmentSuggestion}
}
