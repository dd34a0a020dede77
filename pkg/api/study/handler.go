// Package study exposes the analysis pipeline over HTTP.
package study

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"fiscal_impact/pkg/core/acquire"
	"fiscal_impact/pkg/core/report"
	"fiscal_impact/pkg/core/store"
	corestudy "fiscal_impact/pkg/core/study"
)

// maxUploadBytes caps uploaded documents at 20 MiB.
const maxUploadBytes = 20 << 20

// Handler holds the analysis dependencies.
type Handler struct {
	Analyzer *corestudy.Analyzer
	Store    *store.SessionStore
}

func NewHandler(analyzer *corestudy.Analyzer, sessions *store.SessionStore) *Handler {
	return &Handler{Analyzer: analyzer, Store: sessions}
}

type AnalyzeRequest struct {
	Text            string  `json:"text"`
	BaselineExpense float64 `json:"baseline_expense"`
}

type UploadResponse struct {
	Text  string `json:"text"`
	Chars int    `json:"chars"`
}

// HandleAnalyze runs the full pipeline for a typed or previously uploaded
// bill text and returns the complete study.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	text, err := acquire.Normalize(req.Text)
	if err != nil {
		http.Error(w, "bill text is required", http.StatusBadRequest)
		return
	}

	st, err := h.Analyzer.Run(r.Context(), text, req.BaselineExpense)
	if err != nil {
		// All run failures surface as one generic message; details go to
		// the log only.
		log.Printf("[STUDY-API] Analysis failed: %v", err)
		http.Error(w, "analysis failed, please try again", http.StatusBadGateway)
		return
	}
	h.Store.Put(st)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(st)
}

// HandleUpload normalizes an uploaded document (txt, pdf, docx, html) into
// bill text the client can review before analyzing.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	text, err := acquire.FromUpload(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		// Unsupported or unreadable files get the descriptive message so
		// the user can fall back to pasting the text manually.
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadResponse{Text: text, Chars: len(text)})
}

// HandleExport re-serves a stored study as pdf, docx or json.
// Route shape: GET /api/study/{id}/export?format=pdf
// The id "latest" resolves to the most recent study of this process.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	cors(w)

	var st *corestudy.Study
	var err error
	if id := r.PathValue("id"); id == "latest" {
		st, err = h.Store.Latest()
	} else {
		st, err = h.Store.Get(id)
	}
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "study not found", http.StatusNotFound)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "pdf":
		data, err := report.PDF(st.ReportText)
		if err != nil {
			log.Printf("[STUDY-API] PDF export failed: %v", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serveDownload(w, data, "application/pdf", "impact_report.pdf")
	case "docx":
		data, err := report.DOCX(st.ReportText)
		if err != nil {
			log.Printf("[STUDY-API] Word export failed: %v", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serveDownload(w, data,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"impact_report.docx")
	case "json":
		data, err := report.JSON(st.Proposal, st.Validation, st.Suggestions, st.Figures)
		if err != nil {
			log.Printf("[STUDY-API] JSON export failed: %v", err)
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}
		serveDownload(w, data, "application/json", "analysis_data.json")
	default:
		http.Error(w, fmt.Sprintf("unknown format %q (pdf, docx, json)", format), http.StatusBadRequest)
	}
}

func serveDownload(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
