package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"mourag/internal/domain"
	"mourag/internal/llm"
)

// PathsConfig locates the per-stage data directories. Each stage
// reads its predecessor's directory and writes its own.
type PathsConfig struct {
	Documents    string `yaml:"documents"`
	OCRResults   string `yaml:"ocr_results"`
	CleanedTexts string `yaml:"cleaned_texts"`
	ChunkedTexts string `yaml:"chunked_texts"`
	Database     string `yaml:"database"`
}

// ChunkerConfig configures how cleaned documents are split.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// EmbedderConfig points at the OpenAI-compatible embeddings endpoint.
type EmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// LLMConfig selects the generation provider and its per-provider
// default models.
type LLMConfig struct {
	Provider        string  `yaml:"provider"`
	GoogleModel     string  `yaml:"google_model"`
	OpenRouterModel string  `yaml:"openrouter_model"`
	OllamaModel     string  `yaml:"ollama_model"`
	OllamaBaseURL   string  `yaml:"ollama_base_url"`
	Temperature     float32 `yaml:"temperature"`
}

// CleanerConfig configures the OCR cleanup stage. The cleanup stage
// defaults to the google provider independently of the answer path,
// because its default model is a Gemini one.
type CleanerConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// QdrantConfig contains connection details for a Qdrant backend.
type QdrantConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// VectorStoreConfig selects the vector store backend.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// OCRConfig configures text extraction.
type OCRConfig struct {
	Languages string `yaml:"languages"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	Paths       PathsConfig       `yaml:"paths"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	LLM         LLMConfig         `yaml:"llm"`
	Cleaner     CleanerConfig     `yaml:"cleaner"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	OCR         OCRConfig         `yaml:"ocr"`
	K           int               `yaml:"k"`
}

// Load reads a config from path. A missing file yields the defaults;
// defaults also fill any field the file leaves empty. Environment
// variables override the built-in constants, matching the pipeline's
// documented variables (LLM_PROVIDER, EMBEDDING_MODEL, ...).
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// ModelFor returns the configured model for a provider tag.
func (c *AppConfig) ModelFor(provider string) string {
	switch provider {
	case llm.ProviderGoogle:
		return c.LLM.GoogleModel
	case llm.ProviderOpenRouter:
		return c.LLM.OpenRouterModel
	case llm.ProviderOllama:
		return c.LLM.OllamaModel
	}
	return ""
}

// LLMConfigFor assembles the gateway config for a provider tag.
func (c *AppConfig) LLMConfigFor(provider, model string) (llm.Config, error) {
	if provider == "" {
		provider = c.LLM.Provider
	}
	if model == "" {
		model = c.ModelFor(provider)
	}
	if model == "" {
		return llm.Config{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedProvider, provider)
	}
	return llm.Config{
		Provider:      provider,
		Model:         model,
		OllamaBaseURL: c.LLM.OllamaBaseURL,
	}, nil
}

func applyDefaults(cfg *AppConfig) {
	setIfEmpty(&cfg.Paths.Documents, envOr("DOCUMENTS_DIR", "documents"))
	setIfEmpty(&cfg.Paths.OCRResults, envOr("OCR_RESULTS_DIR", "ocr_results"))
	setIfEmpty(&cfg.Paths.CleanedTexts, envOr("CLEANSING_RESULTS_DIR", "cleaned_texts"))
	setIfEmpty(&cfg.Paths.ChunkedTexts, envOr("CHUNKED_RESULTS_DIR", "chunked_texts"))
	setIfEmpty(&cfg.Paths.Database, "db")

	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 1000
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 200
	}

	setIfEmpty(&cfg.Embedder.BaseURL, envOr("EMBEDDING_BASE_URL", "http://localhost:11434/v1"))
	setIfEmpty(&cfg.Embedder.Model, envOr("EMBEDDING_MODEL", "paraphrase-multilingual-mpnet-base-v2"))

	setIfEmpty(&cfg.LLM.Provider, envOr("LLM_PROVIDER", "openrouter"))
	setIfEmpty(&cfg.LLM.GoogleModel, envOr("LLM_MODEL_GOOGLE", "gemini-1.5-flash-latest"))
	setIfEmpty(&cfg.LLM.OpenRouterModel, envOr("LLM_MODEL_OPENROUTER", "meta-llama/llama-3-8b-instruct"))
	setIfEmpty(&cfg.LLM.OllamaModel, envOr("LLM_MODEL_OLLAMA", "gemma:2b"))
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = envFloatOr("MODEL_TEMPERATURE", 0.1)
	}

	setIfEmpty(&cfg.Cleaner.Provider, envOr("LLM_PROVIDER", llm.ProviderGoogle))
	setIfEmpty(&cfg.Cleaner.Model, envOr("CLEANSING_MODEL", "gemini-2.5-flash-lite"))
	// Cleaner temperature stays 0: cleanup must not get creative.

	setIfEmpty(&cfg.VectorStore.Type, "local")
	setIfEmpty(&cfg.OCR.Languages, "ind+eng")

	if cfg.K == 0 {
		cfg.K = envIntOr("K_RESULTS", 5)
	}
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envIntOr(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloatOr(name string, fallback float32) float32 {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}
