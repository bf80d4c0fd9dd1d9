// Package llm provides a provider-uniform text generation gateway
// over Google Gemini, OpenRouter and Ollama backends. Construction
// validates required credentials eagerly; a missing key fails before
// any network call is made.
package llm

import (
	"context"
	"fmt"
	"os"

	"mourag/internal/domain"
)

const (
	ProviderGoogle     = "google"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	ollamaBaseURL     = "http://localhost:11434/v1"

	// Ollama ignores credentials but the OpenAI wire format requires
	// a non-empty key.
	ollamaAPIKey = "ollama"
)

// Config selects a provider variant and its model.
type Config struct {
	Provider string
	Model    string

	// GoogleKeyEnv and OpenRouterKeyEnv name the environment
	// variables holding the credentials. Empty means the defaults.
	GoogleKeyEnv     string
	OpenRouterKeyEnv string

	// OllamaBaseURL overrides the local Ollama endpoint.
	OllamaBaseURL string
}

// New builds the Generator for the configured provider.
func New(ctx context.Context, cfg Config) (domain.Generator, error) {
	switch cfg.Provider {
	case ProviderGoogle:
		key, err := requireEnv(cfg.GoogleKeyEnv, "GOOGLE_API_KEY")
		if err != nil {
			return nil, err
		}
		return newGoogle(ctx, key, cfg.Model)

	case ProviderOpenRouter:
		key, err := requireEnv(cfg.OpenRouterKeyEnv, "OPENROUTER_API_KEY")
		if err != nil {
			return nil, err
		}
		return newOpenAICompatible(ProviderOpenRouter, openRouterBaseURL, key, cfg.Model), nil

	case ProviderOllama:
		base := cfg.OllamaBaseURL
		if base == "" {
			base = ollamaBaseURL
		}
		return newOpenAICompatible(ProviderOllama, base, ollamaAPIKey, cfg.Model), nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, cfg.Provider)
	}
}

func requireEnv(name, fallback string) (string, error) {
	if name == "" {
		name = fallback
	}
	key := os.Getenv(name)
	if key == "" {
		return "", fmt.Errorf("%w: %s is not set", domain.ErrMissingCredential, name)
	}
	return key, nil
}
