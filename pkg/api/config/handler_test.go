package config

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"fiscal_impact/pkg/core/agent"
)

func TestHandleConfig_ProviderStatuses(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "")

	mgr := agent.NewManager(agent.Config{
		ActiveProvider: "gemini",
		Providers: map[string]agent.ProviderConfig{
			"gemini": {Model: "gemini-2.0-flash"},
		},
	})
	h := NewHandler(mgr)

	rec := httptest.NewRecorder()
	h.HandleConfig(rec, httptest.NewRequest("GET", "/api/config", nil))

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ActiveProvider != "gemini" {
		t.Errorf("ActiveProvider = %q", resp.ActiveProvider)
	}

	byName := map[string]agent.Status{}
	for _, s := range resp.Providers {
		byName[s.Name] = s
	}
	gemini, ok := byName["gemini"]
	if !ok {
		t.Fatalf("gemini missing from providers: %v", resp.Providers)
	}
	if gemini.Model != "gemini-2.0-flash" || !gemini.CredentialSet || !gemini.Active {
		t.Errorf("gemini status = %+v", gemini)
	}
	openaiStatus, ok := byName["openai"]
	if !ok {
		t.Fatalf("openai missing from providers: %v", resp.Providers)
	}
	if openaiStatus.CredentialSet || openaiStatus.Active {
		t.Errorf("openai status = %+v, want inactive with no credential", openaiStatus)
	}
}

func TestHandleConfig_MethodNotAllowed(t *testing.T) {
	h := NewHandler(agent.NewManager(agent.Config{ActiveProvider: "gemini"}))
	rec := httptest.NewRecorder()
	h.HandleConfig(rec, httptest.NewRequest("POST", "/api/config", nil))
	if rec.Code != 405 {
		t.Errorf("POST /api/config status = %d, want 405", rec.Code)
	}
}

func TestHandleSwitch(t *testing.T) {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "gemini"})
	h := NewHandler(mgr)

	rec := httptest.NewRecorder()
	h.HandleSwitch(rec, httptest.NewRequest("POST", "/api/config/switch", strings.NewReader(`{"provider": "openai"}`)))
	if rec.Code != 200 {
		t.Fatalf("Switch status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp SwitchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ActiveProvider != "openai" {
		t.Errorf("SwitchResponse.ActiveProvider = %q", resp.ActiveProvider)
	}
	if mgr.GetActiveProvider() != "openai" {
		t.Errorf("Active = %q after switch", mgr.GetActiveProvider())
	}

	rec = httptest.NewRecorder()
	h.HandleSwitch(rec, httptest.NewRequest("POST", "/api/config/switch", strings.NewReader(`{"provider": "nope"}`)))
	if rec.Code != 400 {
		t.Errorf("Unknown provider status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleSwitch(rec, httptest.NewRequest("GET", "/api/config/switch", nil))
	if rec.Code != 405 {
		t.Errorf("GET switch status = %d, want 405", rec.Code)
	}
}
