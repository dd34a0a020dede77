package web

import (
	"html/template"

	"fiscal_impact/pkg/core/report"
)

func reportCurrency(v float64) string { return report.Currency(v) }

var formTmpl = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Financial Impact Study</title>
  <style>
    body { font-family: sans-serif; max-width: 860px; margin: 2rem auto; color: #222; }
    textarea { width: 100%; height: 14rem; }
    input[type=number] { width: 14rem; }
    .error { color: #b00020; font-weight: bold; }
    label { display: block; margin-top: 1rem; font-weight: bold; }
    button { margin-top: 1rem; padding: 0.5rem 1.5rem; }
  </style>
</head>
<body>
  <h1>Financial Impact Study</h1>
  <p>Automatic analysis of legislative bills under the Fiscal Responsibility Law (LRF).</p>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="POST" action="/study" enctype="multipart/form-data">
    <label for="text">Bill text</label>
    <textarea id="text" name="text" placeholder="Paste the full bill text here"></textarea>
    <label for="document">Or upload the bill document (txt, pdf, docx, html)</label>
    <input id="document" name="document" type="file" accept=".txt,.pdf,.docx,.html,text/plain,application/pdf">
    <label for="baseline_expense">Current monthly personnel expense (R$)</label>
    <input id="baseline_expense" name="baseline_expense" type="number" step="10000" value="{{.BaselineExpense}}">
    <button type="submit">Analyze and generate study</button>
  </form>
</body>
</html>`))

var resultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Financial Impact Study - Result</title>
  <style>
    body { font-family: sans-serif; max-width: 860px; margin: 2rem auto; color: #222; }
    dl { display: grid; grid-template-columns: 16rem auto; row-gap: 0.3rem; }
    dt { font-weight: bold; }
    .figures { display: flex; gap: 2rem; }
    .figures div { border: 1px solid #ccc; padding: 1rem; border-radius: 6px; }
    .downloads a { margin-right: 1rem; }
  </style>
</head>
<body>
  <h1>Study Result</h1>

  <h2>1. Proposal Description</h2>
  <dl>
    <dt>Type</dt><dd>{{.Study.Proposal.Type}}</dd>
    <dt>Affected Sector</dt><dd>{{.Study.Proposal.AffectedSector}}</dd>
    <dt>Adjustment Percentage</dt><dd>{{.Percentage}}</dd>
    <dt>Temporal Scope</dt><dd>{{.Study.Proposal.TemporalScope}}</dd>
    <dt>Quantity Involved</dt><dd>{{.Study.Proposal.QuantityInvolved}}</dd>
    <dt>Budget Source</dt><dd>{{.Study.Proposal.BudgetSource}}</dd>
    <dt>Legal Conditions</dt><dd>{{.Study.Proposal.LegalConditions}}</dd>
    <dt>Legal Nature</dt><dd>{{.Study.Proposal.LegalNature}}</dd>
    <dt>Additional Details</dt><dd>{{.Study.Proposal.AdditionalDetails}}</dd>
  </dl>

  <h2>2. Financial Impact</h2>
  <div class="figures">
    <div><strong>Current Expense</strong><br>{{.Baseline}}</div>
    <div><strong>Monthly Impact</strong><br>{{.Monthly}}</div>
    <div><strong>Annual Impact</strong><br>{{.Annual}}</div>
  </div>

  <h2>3. Legal Validation</h2>
  <p><strong>Complies with LRF?</strong> {{.Verdict}}</p>
  <div>{{.JustificationHTML}}</div>

  <h2>4. Suggested Adjustments</h2>
  {{if .Study.Suggestions.Items}}
  <ol>
    {{range .Study.Suggestions.Items}}<li>{{.}}</li>{{end}}
  </ol>
  {{else}}
  <p>No adjustments suggested.</p>
  {{end}}

  <h2>Downloads</h2>
  <p class="downloads">
    <a href="/api/study/{{.Study.ID}}/export?format=pdf">PDF</a>
    <a href="/api/study/{{.Study.ID}}/export?format=docx">Word</a>
    <a href="/api/study/{{.Study.ID}}/export?format=json">JSON</a>
  </p>
  <p><a href="/">New analysis</a></p>
</body>
</html>`))
