package study

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fiscal_impact/pkg/core/agent"
	"fiscal_impact/pkg/core/llm"
	"fiscal_impact/pkg/models"
)

// scriptedProvider answers each prompt by matching a marker substring, so
// the three concurrent stage calls each get their own reply.
type scriptedProvider struct {
	extraction  string
	validation  string
	suggestions string
	err         error
}

func (p *scriptedProvider) CredentialEnv() string { return "SCRIPTED_API_KEY" }

func (p *scriptedProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	switch {
	case strings.Contains(prompt, "extract structured data"):
		return p.extraction, nil
	case strings.Contains(prompt, "legal advisor"):
		return p.validation, nil
	default:
		return p.suggestions, nil
	}
}

func newTestAnalyzer(p llm.Provider, opts Options) *Analyzer {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "gemini"})
	mgr.RegisterProvider("scripted", p)
	if err := mgr.SetGlobalProvider("scripted"); err != nil {
		panic(err)
	}
	return NewAnalyzer(mgr, opts)
}

func TestRun_ExtractedPercentage(t *testing.T) {
	a := newTestAnalyzer(&scriptedProvider{
		extraction:  "```json\n{\"reajuste_proposto\": \"7%\"}\n```",
		validation:  "```json\n{\"cumpre_lrf\": \"Sim\", \"justificativa\": \"Dentro do limite.\"}\n```",
		suggestions: "```json\n{\"ajustes_sugeridos\": [\"indicar fonte\"]}\n```",
	}, Options{})

	st, err := a.Run(context.Background(), "Projeto de lei: reajuste de 7%.", 1000000)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if st.Figures.Percentage != 7 {
		t.Errorf("Expected percentage 7, got %f", st.Figures.Percentage)
	}
	if st.Figures.Monthly != 70000 {
		t.Errorf("Expected monthly 70000, got %f", st.Figures.Monthly)
	}
	if st.Figures.Annual != 840000 {
		t.Errorf("Expected annual 840000, got %f", st.Figures.Annual)
	}
	if st.Validation.CompliesLRF != "Sim" {
		t.Errorf("Expected verdict Sim, got %q", st.Validation.CompliesLRF)
	}
	if len(st.Suggestions.Items) != 1 {
		t.Errorf("Expected 1 suggestion, got %v", st.Suggestions.Items)
	}
	if st.ID == "" || st.ReportText == "" {
		t.Error("Expected ID and report text to be populated")
	}
	if !st.ProposalParsed || !st.ValidationParsed || !st.SuggestionsParsed {
		t.Errorf("Expected all replies parsed: %+v", st)
	}
}

func TestRun_FallbackPercentage(t *testing.T) {
	a := newTestAnalyzer(&scriptedProvider{
		extraction:  "```json\n{\"reajuste_proposto\": \"a ser definido em regulamento\"}\n```",
		validation:  "```json\n{\"cumpre_lrf\": \"Não\"}\n```",
		suggestions: "```json\n{\"ajustes_sugeridos\": []}\n```",
	}, Options{})

	st, err := a.Run(context.Background(), "Projeto de lei sem percentual.", 500000)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if st.Figures.Percentage != DefaultFallbackPercent {
		t.Errorf("Expected fallback 5.0, got %f", st.Figures.Percentage)
	}
	if st.Figures.Monthly != 25000 {
		t.Errorf("Expected monthly 25000, got %f", st.Figures.Monthly)
	}
	if st.Figures.Annual != 300000 {
		t.Errorf("Expected annual 300000, got %f", st.Figures.Annual)
	}
}

func TestRun_ProseRepliesDefaultEverything(t *testing.T) {
	a := newTestAnalyzer(&scriptedProvider{
		extraction:  "I am sorry, I could not find structured data in this bill.",
		validation:  "The bill seems fine to me.",
		suggestions: "No structured output available.",
	}, Options{})

	st, err := a.Run(context.Background(), "Texto qualquer.", 500000)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if st.ProposalParsed || st.ValidationParsed || st.SuggestionsParsed {
		t.Errorf("Expected no reply to parse: %+v", st)
	}
	if st.Proposal.Type != models.NotSpecified {
		t.Errorf("Expected defaulted proposal, got %+v", st.Proposal)
	}
	if !strings.Contains(st.ReportText, models.NotSpecified) {
		t.Errorf("Expected defaults in report:\n%s", st.ReportText)
	}
	if !strings.Contains(st.ReportText, "No adjustments suggested.") {
		t.Errorf("Expected no-suggestions sentence:\n%s", st.ReportText)
	}
	// Prose reply still yields the fallback percentage and a full projection.
	if st.Figures.Percentage != DefaultFallbackPercent {
		t.Errorf("Expected fallback percentage, got %f", st.Figures.Percentage)
	}
}

func TestRun_EmptySuggestionsSentence(t *testing.T) {
	a := newTestAnalyzer(&scriptedProvider{
		extraction:  "```json\n{\"reajuste_proposto\": \"5%\"}\n```",
		validation:  "```json\n{\"cumpre_lrf\": \"Sim\"}\n```",
		suggestions: "```json\n{\"ajustes_sugeridos\": []}\n```",
	}, Options{})

	st, err := a.Run(context.Background(), "Projeto de lei.", 100000)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(st.ReportText, "- No adjustments suggested.") {
		t.Errorf("Expected fixed sentence for empty list:\n%s", st.ReportText)
	}
}

func TestRun_TransportFailureFailsRun(t *testing.T) {
	a := newTestAnalyzer(&scriptedProvider{err: errors.New("upstream unavailable")}, Options{})

	if _, err := a.Run(context.Background(), "Projeto de lei.", 100000); err == nil {
		t.Fatal("Expected transport failure to fail the run")
	}
}

func TestRun_EmptyBillTextRejected(t *testing.T) {
	a := newTestAnalyzer(&scriptedProvider{}, Options{})
	if _, err := a.Run(context.Background(), "   \n ", 100000); err == nil {
		t.Fatal("Expected empty bill text to be rejected")
	}
}

func TestRun_LenientParserOption(t *testing.T) {
	// Trailing comma: rejected strictly, repaired leniently.
	reply := "```json\n{\"reajuste_proposto\": \"10%\",}\n```"

	strict := newTestAnalyzer(&scriptedProvider{extraction: reply, validation: reply, suggestions: reply}, Options{})
	st, err := strict.Run(context.Background(), "Projeto.", 100000)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.ProposalParsed {
		t.Error("Strict mode should not parse a trailing comma")
	}
	if st.Figures.Percentage != DefaultFallbackPercent {
		t.Errorf("Expected fallback, got %f", st.Figures.Percentage)
	}

	lenient := newTestAnalyzer(&scriptedProvider{extraction: reply, validation: reply, suggestions: reply}, Options{LenientParser: true})
	st, err = lenient.Run(context.Background(), "Projeto.", 100000)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !st.ProposalParsed {
		t.Error("Lenient mode should repair a trailing comma")
	}
	if st.Figures.Percentage != 10 {
		t.Errorf("Expected 10%%, got %f", st.Figures.Percentage)
	}
}
