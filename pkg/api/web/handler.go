// Package web serves the form-driven UI: a text/upload form and a
// server-rendered results page.
package web

import (
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"

	"fiscal_impact/pkg/core/acquire"
	"fiscal_impact/pkg/core/store"
	corestudy "fiscal_impact/pkg/core/study"
	"fiscal_impact/pkg/core/utils"
)

const defaultBaselineExpense = 10000000.0

// maxSubmitBytes caps the whole form submission, document included.
const maxSubmitBytes = 20 << 20

type Handler struct {
	Analyzer *corestudy.Analyzer
	Store    *store.SessionStore
}

func NewHandler(analyzer *corestudy.Analyzer, sessions *store.SessionStore) *Handler {
	return &Handler{Analyzer: analyzer, Store: sessions}
}

type formData struct {
	// BaselineExpense is pre-formatted; a float64 would render as 1e+07.
	BaselineExpense string
	Error           string
}

type resultData struct {
	Study             *corestudy.Study
	Baseline          string
	Monthly           string
	Annual            string
	Percentage        string
	JustificationHTML template.HTML
	Verdict           string
}

// HandleIndex serves the input form.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderForm(w, formData{BaselineExpense: formatBaseline(defaultBaselineExpense)})
}

// HandleSubmit runs the analysis from the HTML form and renders the results
// page. The bill comes from the uploaded document when one is attached,
// otherwise from the textarea. Errors re-render the form with a visible
// message; the user can simply re-submit.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBytes)

	text, err := h.billText(r)
	if err != nil {
		renderForm(w, formData{
			BaselineExpense: formatBaseline(defaultBaselineExpense),
			Error:           err.Error(),
		})
		return
	}

	baseline, err := strconv.ParseFloat(r.FormValue("baseline_expense"), 64)
	if err != nil {
		baseline = defaultBaselineExpense
	}
	if baseline < 0 {
		renderForm(w, formData{
			BaselineExpense: formatBaseline(defaultBaselineExpense),
			Error:           "The current monthly expense must be a non-negative number.",
		})
		return
	}

	st, err := h.Analyzer.Run(r.Context(), text, baseline)
	if err != nil {
		log.Printf("[WEB] Analysis failed: %v", err)
		renderForm(w, formData{
			BaselineExpense: formatBaseline(baseline),
			Error:           "Analysis failed. Check that the model service is reachable and try again.",
		})
		return
	}
	h.Store.Put(st)

	justification, err := utils.RenderMarkdown(st.Validation.Justification)
	if err != nil {
		justification = template.HTMLEscapeString(st.Validation.Justification)
	}

	data := resultData{
		Study:             st,
		Baseline:          currency(st.Figures.BaselineExpense),
		Monthly:           currency(st.Figures.Monthly),
		Annual:            currency(st.Figures.Annual),
		Percentage:        strconv.FormatFloat(st.Figures.Percentage, 'f', 2, 64) + "%",
		JustificationHTML: template.HTML(justification),
		Verdict:           st.Validation.CompliesLRF,
	}
	if err := resultTmpl.Execute(w, data); err != nil {
		log.Printf("[WEB] Result template failed: %v", err)
	}
}

// billText resolves the bill from the submitted form: an attached document
// takes precedence, the textarea is the manual fallback. Error text is shown
// to the user as-is.
func (h *Handler) billText(r *http.Request) (string, error) {
	file, header, err := r.FormFile("document")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			return "", errors.New("The uploaded document could not be read. Try again or paste the bill text.")
		}
		return acquire.FromUpload(header.Filename, header.Header.Get("Content-Type"), data)
	}

	text, err := acquire.Normalize(r.FormValue("text"))
	if err != nil {
		return "", errors.New("Please paste the bill text or attach a document before starting the analysis.")
	}
	return text, nil
}

func renderForm(w http.ResponseWriter, data formData) {
	if err := formTmpl.Execute(w, data); err != nil {
		log.Printf("[WEB] Form template failed: %v", err)
	}
}

func formatBaseline(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func currency(v float64) string {
	// Reuse the report formatting so the page and the PDF always agree.
	return reportCurrency(v)
}
