// Package embedding wraps an OpenAI-compatible embeddings endpoint
// behind the domain Embedder interface. The endpoint may be a hosted
// API or a local model server; either way the capability is external
// and a failure to reach it is fatal to the calling stage.
package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"mourag/internal/domain"
)

// Client calls the /embeddings endpoint of an OpenAI-compatible
// server. All vectors produced by one client share the dimensionality
// reported by the model.
type Client struct {
	client *openai.Client
	model  string
}

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

func NewClient(cfg Config) *Client {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	return &Client{
		client: openai.NewClientWithConfig(c),
		model:  cfg.Model,
	}
}

var _ domain.Embedder = (*Client)(nil)

// Embed returns one vector per input text, preserving order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding model %s unavailable: %w", c.model, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding model returned %d vectors for %d inputs", len(resp.Data), len(texts))
	}
	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}

// EmbedOne embeds a single query string.
func (c *Client) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return vectors[0], nil
}
