package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// googleGenerator calls the Gemini generation API. The API takes a
// single prompt, so the system instruction is concatenated in front
// of the user prompt.
type googleGenerator struct {
	client *genai.Client
	model  string
}

func newGoogle(ctx context.Context, apiKey, model string) (*googleGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google client: %w", err)
	}
	return &googleGenerator{client: client, model: model}, nil
}

func (g *googleGenerator) Provider() string { return ProviderGoogle }
func (g *googleGenerator) Model() string    { return g.model }

func (g *googleGenerator) Generate(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(temperature)

	full := prompt
	if system != "" {
		full = system + "\n\n" + prompt
	}

	resp, err := model.GenerateContent(ctx, genai.Text(full))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("google: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
