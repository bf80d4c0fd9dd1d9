package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openaiGenerator speaks the OpenAI chat-completion wire format.
// OpenRouter and Ollama share it and differ only in base endpoint
// and credential handling.
type openaiGenerator struct {
	client   *openai.Client
	provider string
	model    string
}

func newOpenAICompatible(provider, baseURL, apiKey, model string) *openaiGenerator {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &openaiGenerator{
		client:   openai.NewClientWithConfig(cfg),
		provider: provider,
		model:    model,
	}
}

func (g *openaiGenerator) Provider() string { return g.provider }
func (g *openaiGenerator) Model() string    { return g.model }

func (g *openaiGenerator) Generate(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(g.provider + ": empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
