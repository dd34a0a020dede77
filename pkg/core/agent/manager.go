// Package agent selects which model provider serves the analysis, based on
// configuration, and can switch providers at runtime.
package agent

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"fiscal_impact/pkg/core/llm"
)

// Config mirrors the providers section of config/app.yaml.
type Config struct {
	ActiveProvider string                    `yaml:"active_provider"`
	Providers      map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig carries per-provider settings.
type ProviderConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Manager holds the provider instances and the active selection.
type Manager struct {
	mu        sync.RWMutex
	active    string
	providers map[string]llm.Provider
	models    map[string]string
}

// NewManager builds the provider set from config. Unknown active providers
// fall back to gemini, the backend the analysis was built against.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		active: cfg.ActiveProvider,
		providers: map[string]llm.Provider{
			"gemini": &llm.GeminiProvider{Model: cfg.Providers["gemini"].Model},
			"openai": &llm.OpenAIProvider{
				Model:   cfg.Providers["openai"].Model,
				BaseURL: cfg.Providers["openai"].BaseURL,
			},
		},
		models: map[string]string{
			"gemini": cfg.Providers["gemini"].Model,
			"openai": cfg.Providers["openai"].Model,
		},
	}
	if _, ok := m.providers[m.active]; !ok {
		if m.active != "" {
			log.Printf("[AGENT] Unknown provider %q in config, falling back to gemini", m.active)
		}
		m.active = "gemini"
	}
	return m
}

// RegisterProvider adds or replaces a provider instance. Used by tests to
// inject a scripted backend.
func (m *Manager) RegisterProvider(name string, p llm.Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[name] = p
}

// GetProvider returns the active provider.
func (m *Manager) GetProvider() llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers[m.active]
}

// GetActiveProvider returns the active provider's name.
func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Status describes one registered provider for the config API.
type Status struct {
	Name string `json:"name"`
	// Model is the configured model name; empty means the provider's
	// built-in default.
	Model         string `json:"model,omitempty"`
	CredentialSet bool   `json:"credential_set"`
	Active        bool   `json:"active"`
}

// Statuses reports every registered provider, sorted by name: its configured
// model, whether its API key is present in the environment, and whether it is
// the active selection.
func (m *Manager) Statuses() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	statuses := make([]Status, 0, len(m.providers))
	for name, p := range m.providers {
		statuses = append(statuses, Status{
			Name:          name,
			Model:         m.models[name],
			CredentialSet: os.Getenv(p.CredentialEnv()) != "",
			Active:        name == m.active,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

// SetGlobalProvider switches the active provider for all subsequent runs.
func (m *Manager) SetGlobalProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.active = name
	log.Printf("[AGENT] Global provider set to: %s", name)
	return nil
}

// ExecutePrompt sends one prompt through the active provider.
func (m *Manager) ExecutePrompt(ctx context.Context, promptText string, systemPrompt string, options map[string]interface{}) (string, error) {
	return m.GetProvider().GenerateResponse(ctx, promptText, systemPrompt, options)
}

// CheckCredential reports whether the active provider's API key is present in
// the environment. Startup treats a missing key as fatal.
func (m *Manager) CheckCredential() error {
	p := m.GetProvider()
	if os.Getenv(p.CredentialEnv()) == "" {
		return fmt.Errorf("missing credential: set %s (provider %q)", p.CredentialEnv(), m.GetActiveProvider())
	}
	return nil
}
