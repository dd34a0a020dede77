// Package llm abstracts the hosted model services the analysis calls into.
package llm

import (
	"context"
)

// Provider is the interface every model backend implements. One prompt in,
// one free-text reply out; the caller owns parsing.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// CredentialEnv names the environment variable holding this provider's
	// API key, so startup can refuse to run without it.
	CredentialEnv() string
}
