package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider calls Google's Gemini models through the official GenAI SDK.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.0-flash"
}

var _ Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) CredentialEnv() string { return "GEMINI_API_KEY" }

// GenerateResponse sends a generateContent request. Options: "model" (string)
// overrides the configured model, "json" (bool) forces a JSON MIME response.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv(p.CredentialEnv())
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := p.Model
	if model == "" {
		model = defaultGeminiModel
	}
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	// Low temperature: extraction should be repeatable, not creative.
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	}
	if val, ok := options["json"].(bool); ok && val {
		config.ResponseMIMEType = "application/json"
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
