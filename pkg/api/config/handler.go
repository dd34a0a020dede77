// Package config exposes provider inspection and switching over HTTP, so an
// operator can see which model backend will run the next study and flip to
// another without restarting.
package config

import (
	"encoding/json"
	"net/http"

	"fiscal_impact/pkg/core/agent"
)

// Response is the full provider picture: the active selection plus every
// registered backend with its model and credential state.
type Response struct {
	ActiveProvider string         `json:"active_provider"`
	Providers      []agent.Status `json:"providers"`
}

type SwitchRequest struct {
	Provider string `json:"provider"`
}

// SwitchResponse confirms which provider studies run on after a switch.
type SwitchResponse struct {
	ActiveProvider string `json:"active_provider"`
}

// Handler answers the provider endpoints from the shared agent manager.
type Handler struct {
	AgentMgr *agent.Manager
}

func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{AgentMgr: agentMgr}
}

// HandleConfig reports the active provider and the status of every
// registered one. A provider with credential_set=false would fail at run
// time, so the UI can warn before a switch.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		ActiveProvider: h.AgentMgr.GetActiveProvider(),
		Providers:      h.AgentMgr.Statuses(),
	})
}

// HandleSwitch changes the provider used by all subsequent studies.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.AgentMgr.SetGlobalProvider(req.Provider); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SwitchResponse{ActiveProvider: req.Provider})
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
