// Package study orchestrates one analysis run: three model calls, best-effort
// parsing, percentage extraction, impact calculation and report assembly.
// A run produces an explicit Study value; there is no ambient "last result"
// state in the pipeline itself.
package study

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fiscal_impact/pkg/core/agent"
	"fiscal_impact/pkg/core/extract"
	"fiscal_impact/pkg/core/impact"
	"fiscal_impact/pkg/core/parse"
	"fiscal_impact/pkg/core/prompt"
	"fiscal_impact/pkg/core/report"
	"fiscal_impact/pkg/core/utils"
	"fiscal_impact/pkg/models"
)

// DefaultFallbackPercent substitutes for the adjustment percentage when no
// "<number>%" token can be found in the extracted field.
const DefaultFallbackPercent = 5.0

// Options tunes a run. Zero value means strict parsing with the default
// fallback percentage.
type Options struct {
	FallbackPercent float64
	LenientParser   bool
}

// Study is the complete result of one analysis run, owned by the caller.
type Study struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Proposal    models.Proposal        `json:"proposal"`
	Validation  models.LegalValidation `json:"validation"`
	Suggestions models.Suggestions     `json:"suggestions"`
	Figures     impact.Figures         `json:"figures"`

	// Parsed flags record which replies decoded to an object. False means
	// the corresponding fields carry sentinel defaults.
	ProposalParsed    bool `json:"proposal_parsed"`
	ValidationParsed  bool `json:"validation_parsed"`
	SuggestionsParsed bool `json:"suggestions_parsed"`

	ReportText string `json:"report_text"`
}

// Analyzer runs the pipeline against whichever provider the agent manager
// has active.
type Analyzer struct {
	mgr  *agent.Manager
	opts Options
}

// NewAnalyzer creates an analyzer. A zero or negative fallback percentage is
// replaced by the default.
func NewAnalyzer(mgr *agent.Manager, opts Options) *Analyzer {
	if opts.FallbackPercent <= 0 {
		opts.FallbackPercent = DefaultFallbackPercent
	}
	return &Analyzer{mgr: mgr, opts: opts}
}

// Run executes one full analysis. billText must be non-empty (upstream
// acquisition guarantees this for uploads; the handler enforces it for typed
// text). Any transport failure or calculator failure fails the whole run.
//
// The three model calls are independent and issued concurrently; each reply
// is still parsed on its own, so one malformed reply only defaults its own
// section.
func (a *Analyzer) Run(ctx context.Context, billText string, baselineExpense float64) (*Study, error) {
	if strings.TrimSpace(billText) == "" {
		return nil, fmt.Errorf("study: bill text is empty")
	}

	start := time.Now()
	replies := make([]string, 3)
	ids := prompt.IDs()

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			p, err := prompt.Build(id, billText)
			if err != nil {
				return err
			}
			reply, err := a.mgr.ExecutePrompt(gctx, p, "", nil)
			if err != nil {
				return fmt.Errorf("model call %s failed: %w", id, err)
			}
			replies[i] = reply
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("study: %w", err)
	}

	parseObject := parse.Object
	if a.opts.LenientParser {
		parseObject = parse.ObjectLenient
	}

	proposalObj, proposalOK := parseObject(replies[0])
	validationObj, validationOK := parseObject(replies[1])
	suggestionsObj, suggestionsOK := parseObject(replies[2])
	if !proposalOK {
		log.Printf("[STUDY] Extraction reply was not parseable JSON, using defaults")
	}

	proposal := models.ProposalFromObject(proposalObj)
	validation := models.LegalValidationFromObject(validationObj)
	validation.Justification = utils.CleanMarkdown(validation.Justification)
	suggestions := models.SuggestionsFromObject(suggestionsObj)

	percent, found := extract.Percentage(proposal.ProposedAdjustment)
	if !found {
		percent = a.opts.FallbackPercent
		log.Printf("[STUDY] No percentage found in %q, falling back to %.1f%%", proposal.ProposedAdjustment, percent)
	}

	figures, err := impact.Calculate(baselineExpense, percent)
	if err != nil {
		// Refusing to render beats formatting an undefined number as
		// currency.
		return nil, fmt.Errorf("study: impact calculation failed: %w", err)
	}

	st := &Study{
		ID:                uuid.NewString(),
		CreatedAt:         time.Now().UTC(),
		Proposal:          proposal,
		Validation:        validation,
		Suggestions:       suggestions,
		Figures:           figures,
		ProposalParsed:    proposalOK,
		ValidationParsed:  validationOK,
		SuggestionsParsed: suggestionsOK,
		ReportText:        report.Text(proposal, validation, suggestions, figures),
	}
	log.Printf("[STUDY] Run %s complete in %s (parsed: proposal=%t validation=%t suggestions=%t)",
		st.ID, time.Since(start).Round(time.Millisecond), proposalOK, validationOK, suggestionsOK)
	return st, nil
}
