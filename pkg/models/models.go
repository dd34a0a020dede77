// Package models defines the structured records produced by one analysis run.
// Each record is built once from the generic object a model reply decodes to,
// with the sentinel defaults applied at that single point. Consumers treat
// every record as read-only.
package models

import (
	"fmt"
	"strings"
)

// Sentinel values substituted for absent fields.
const (
	NotSpecified = "not specified"
	NotAvailable = "N/A"
)

// Proposal holds the structured fields extracted from a bill text.
// The JSON tags are the wire keys the extraction prompt asks the model for.
type Proposal struct {
	Type               string `json:"tipo_proposta"`
	ProposedAdjustment string `json:"reajuste_proposto"`
	TemporalScope      string `json:"abrangencia_temporal"`
	AffectedSector     string `json:"setor_afetado"`
	AdditionalDetails  string `json:"detalhes_adicionais"`
	QuantityInvolved   string `json:"quantitativo_envolvido"`
	BudgetSource       string `json:"fonte_orcamentaria"`
	LegalConditions    string `json:"condicionantes_legais"`
	LegalNature        string `json:"natureza_juridica_da_medida"`
}

// LegalValidation holds the compliance verdict for the Fiscal Responsibility
// Law (LRF) check. Verdict is whatever the model answered ("Sim"/"Não" or an
// unrecognized string); Justification is free text.
type LegalValidation struct {
	CompliesLRF   string `json:"cumpre_lrf"`
	Justification string `json:"justificativa"`
}

// Suggestions holds the ordered list of suggested adjustments. May be empty.
type Suggestions struct {
	Items []string `json:"ajustes_sugeridos"`
}

// ProposalFromObject builds a Proposal from a decoded reply object,
// substituting NotSpecified for every absent or blank field.
func ProposalFromObject(obj map[string]interface{}) Proposal {
	return Proposal{
		Type:               stringField(obj, "tipo_proposta", NotSpecified),
		ProposedAdjustment: stringField(obj, "reajuste_proposto", NotSpecified),
		TemporalScope:      stringField(obj, "abrangencia_temporal", NotSpecified),
		AffectedSector:     stringField(obj, "setor_afetado", NotSpecified),
		AdditionalDetails:  stringField(obj, "detalhes_adicionais", NotSpecified),
		QuantityInvolved:   stringField(obj, "quantitativo_envolvido", NotSpecified),
		BudgetSource:       stringField(obj, "fonte_orcamentaria", NotSpecified),
		LegalConditions:    stringField(obj, "condicionantes_legais", NotSpecified),
		LegalNature:        stringField(obj, "natureza_juridica_da_medida", NotSpecified),
	}
}

// LegalValidationFromObject builds a LegalValidation, defaulting both fields
// to NotAvailable when absent.
func LegalValidationFromObject(obj map[string]interface{}) LegalValidation {
	return LegalValidation{
		CompliesLRF:   stringField(obj, "cumpre_lrf", NotAvailable),
		Justification: stringField(obj, "justificativa", NotAvailable),
	}
}

// SuggestionsFromObject builds the suggestion list. Non-string entries are
// stringified, blank entries dropped.
func SuggestionsFromObject(obj map[string]interface{}) Suggestions {
	raw, ok := obj["ajustes_sugeridos"].([]interface{})
	if !ok {
		return Suggestions{}
	}
	items := make([]string, 0, len(raw))
	for _, entry := range raw {
		var s string
		if str, ok := entry.(string); ok {
			s = strings.TrimSpace(str)
		} else {
			s = strings.TrimSpace(fmt.Sprint(entry))
		}
		if s != "" {
			items = append(items, s)
		}
	}
	return Suggestions{Items: items}
}

// stringField reads a scalar field from a decoded object. Non-string scalars
// (the model occasionally answers a bare number) are stringified rather than
// dropped.
func stringField(obj map[string]interface{}, key, def string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return def
	}
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	case float64:
		s = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
	default:
		s = strings.TrimSpace(fmt.Sprint(t))
	}
	if s == "" {
		return def
	}
	return s
}
