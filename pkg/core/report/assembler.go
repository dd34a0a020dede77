// Package report composes the canonical study text and serializes it to the
// downloadable formats. The plain text is the single source: PDF and Word are
// line-by-line re-renderings of it, while the JSON export serializes the
// structured objects instead.
package report

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"fiscal_impact/pkg/core/impact"
	"fiscal_impact/pkg/models"
)

// Title is the heading used by the Word export and the results page.
const Title = "Financial Impact Study"

// noSuggestions is the fixed sentence rendered when the model suggested
// nothing.
const noSuggestions = "No adjustments suggested."

// Text builds the canonical multi-section report. Identical inputs produce
// byte-identical output.
func Text(p models.Proposal, v models.LegalValidation, s models.Suggestions, fig impact.Figures) string {
	var b strings.Builder

	b.WriteString(Title + " - Proposed Salary Adjustment\n\n")

	b.WriteString("1. Proposal Description:\n")
	b.WriteString("- Type: " + p.Type + "\n")
	b.WriteString("- Affected Sector: " + p.AffectedSector + "\n")
	b.WriteString("- Additional Details: " + p.AdditionalDetails + "\n")
	b.WriteString(fmt.Sprintf("- Adjustment Percentage: %.2f%%\n", fig.Percentage))
	b.WriteString("- Temporal Scope: " + p.TemporalScope + "\n")
	b.WriteString("- Quantity Involved: " + p.QuantityInvolved + "\n")
	b.WriteString("- Budget Source: " + p.BudgetSource + "\n")
	b.WriteString("- Legal Conditions: " + p.LegalConditions + "\n")
	b.WriteString("- Legal Nature: " + p.LegalNature + "\n\n")

	b.WriteString("2. Calculation Results:\n")
	b.WriteString("- Current Personnel Expenses: " + Currency(fig.BaselineExpense) + "\n")
	b.WriteString("- Monthly Impact: " + Currency(fig.Monthly) + "\n")
	b.WriteString("- Annual Impact: " + Currency(fig.Annual) + "\n\n")

	b.WriteString("3. Legal Validation:\n")
	b.WriteString("- Complies with LRF? " + v.CompliesLRF + "\n")
	b.WriteString("- Justification: " + v.Justification + "\n\n")

	b.WriteString("4. Suggested Adjustments:\n")
	if len(s.Items) == 0 {
		b.WriteString("- " + noSuggestions + "\n")
	} else {
		for _, item := range s.Items {
			b.WriteString("- " + item + "\n")
		}
	}

	return b.String()
}

// Currency formats a monetary value with two decimals and thousands
// separators, e.g. "R$ 1,000,000.00".
func Currency(v float64) string {
	return "R$ " + humanize.FormatFloat("#,###.##", v)
}
