package study

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fiscal_impact/pkg/core/agent"
	"fiscal_impact/pkg/core/store"
	corestudy "fiscal_impact/pkg/core/study"
)

type stubProvider struct {
	extraction  string
	validation  string
	suggestions string
}

func (p *stubProvider) CredentialEnv() string { return "STUB_API_KEY" }

func (p *stubProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	switch {
	case strings.Contains(prompt, "extract structured data"):
		return p.extraction, nil
	case strings.Contains(prompt, "legal advisor"):
		return p.validation, nil
	default:
		return p.suggestions, nil
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *store.SessionStore) {
	t.Helper()

	mgr := agent.NewManager(agent.Config{ActiveProvider: "gemini"})
	mgr.RegisterProvider("stub", &stubProvider{
		extraction:  "```json\n{\"reajuste_proposto\": \"7%\", \"setor_afetado\": \"Educação\"}\n```",
		validation:  "```json\n{\"cumpre_lrf\": \"Sim\", \"justificativa\": \"ok\"}\n```",
		suggestions: "```json\n{\"ajustes_sugeridos\": []}\n```",
	})
	if err := mgr.SetGlobalProvider("stub"); err != nil {
		t.Fatal(err)
	}

	sessions := store.NewSessionStore()
	h := NewHandler(corestudy.NewAnalyzer(mgr, corestudy.Options{}), sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/study/analyze", h.HandleAnalyze)
	mux.HandleFunc("/api/study/upload", h.HandleUpload)
	mux.HandleFunc("GET /api/study/{id}/export", h.HandleExport)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sessions
}

func TestHandleAnalyze(t *testing.T) {
	srv, sessions := newTestServer(t)

	body := `{"text": "Projeto de lei: reajuste de 7%.", "baseline_expense": 1000000}`
	resp, err := http.Post(srv.URL+"/api/study/analyze", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d", resp.StatusCode)
	}

	var st corestudy.Study
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.Figures.Monthly != 70000 || st.Figures.Annual != 840000 {
		t.Errorf("Figures = %+v", st.Figures)
	}
	if st.ID == "" {
		t.Error("Expected study ID in response")
	}
	if _, err := sessions.Get(st.ID); err != nil {
		t.Errorf("Study not stored: %v", err)
	}
}

func TestHandleAnalyze_EmptyText(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/study/analyze", "application/json",
		strings.NewReader(`{"text": "   ", "baseline_expense": 1000}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleExport(t *testing.T) {
	srv, _ := newTestServer(t)

	// Run one analysis first.
	resp, err := http.Post(srv.URL+"/api/study/analyze", "application/json",
		strings.NewReader(`{"text": "Projeto de lei.", "baseline_expense": 1000000}`))
	if err != nil {
		t.Fatal(err)
	}
	var st corestudy.Study
	json.NewDecoder(resp.Body).Decode(&st)
	resp.Body.Close()

	tests := []struct {
		format      string
		contentType string
		prefix      []byte
	}{
		{"pdf", "application/pdf", []byte("%PDF")},
		{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("PK")},
		{"json", "application/json", []byte("{")},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res, err := http.Get(srv.URL + "/api/study/" + st.ID + "/export?format=" + tt.format)
			if err != nil {
				t.Fatal(err)
			}
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				t.Fatalf("Status = %d", res.StatusCode)
			}
			if ct := res.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q", ct)
			}
			var buf bytes.Buffer
			buf.ReadFrom(res.Body)
			if !bytes.HasPrefix(buf.Bytes(), tt.prefix) {
				t.Errorf("Body does not start with %q", tt.prefix)
			}
		})
	}

	// Unknown study and unknown format
	res, _ := http.Get(srv.URL + "/api/study/nope/export?format=pdf")
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("Unknown study status = %d, want 404", res.StatusCode)
	}
	res, _ = http.Get(srv.URL + "/api/study/" + st.ID + "/export?format=csv")
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("Unknown format status = %d, want 400", res.StatusCode)
	}
}

func TestHandleExport_Latest(t *testing.T) {
	srv, _ := newTestServer(t)

	// Before any analysis, "latest" resolves to nothing.
	res, err := http.Get(srv.URL + "/api/study/latest/export?format=json")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("Empty-store latest status = %d, want 404", res.StatusCode)
	}

	resp, err := http.Post(srv.URL+"/api/study/analyze", "application/json",
		strings.NewReader(`{"text": "Projeto de lei.", "baseline_expense": 1000000}`))
	if err != nil {
		t.Fatal(err)
	}
	var st corestudy.Study
	json.NewDecoder(resp.Body).Decode(&st)
	resp.Body.Close()

	res, err = http.Get(srv.URL + "/api/study/latest/export?format=json")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Latest export status = %d", res.StatusCode)
	}
	var buf bytes.Buffer
	buf.ReadFrom(res.Body)
	if !bytes.Contains(buf.Bytes(), []byte("financial_impact")) {
		t.Errorf("Latest export missing study content:\n%s", buf.String())
	}
}

func TestHandleUpload(t *testing.T) {
	srv, _ := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "bill.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("Projeto de lei: reajuste de 7% aos servidores.\n"))
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/study/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d", resp.StatusCode)
	}
	var out UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Text, "reajuste de 7%") {
		t.Errorf("Text = %q", out.Text)
	}
}

func TestHandleUpload_UnsupportedType(t *testing.T) {
	srv, _ := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "image.png")
	fw.Write([]byte{0x89, 'P', 'N', 'G'})
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/study/upload", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", resp.StatusCode)
	}
}
