package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider calls OpenAI or any OpenAI-compatible endpoint. Setting
// BaseURL points it at a compatible gateway (DeepSeek, Nebius, local vLLM).
type OpenAIProvider struct {
	Model   string
	BaseURL string
}

var _ Provider = (*OpenAIProvider)(nil)

func (p *OpenAIProvider) CredentialEnv() string { return "OPENAI_API_KEY" }

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := strings.TrimSpace(os.Getenv(p.CredentialEnv()))
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	model := p.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	cfg := openai.DefaultConfig(apiKey)
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	client := openai.NewClientWithConfig(cfg)

	messages := []openai.ChatCompletionMessage{}
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
