package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mourag/internal/llm"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "documents", cfg.Paths.Documents)
	assert.Equal(t, "db", cfg.Paths.Database)
	assert.Equal(t, 1000, cfg.Chunker.Size)
	assert.Equal(t, 200, cfg.Chunker.Overlap)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "gemma:2b", cfg.LLM.OllamaModel)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, "google", cfg.Cleaner.Provider)
	assert.Zero(t, cfg.Cleaner.Temperature)
	assert.Equal(t, "local", cfg.VectorStore.Type)
	assert.Equal(t, "ind+eng", cfg.OCR.Languages)
	assert.Equal(t, 5, cfg.K)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chunker:
  size: 500
  overlap: 50
llm:
  provider: ollama
vector_store:
  type: qdrant
  qdrant:
    url: http://localhost:6333
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Chunker.Size)
	assert.Equal(t, 50, cfg.Chunker.Overlap)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qdrant", cfg.VectorStore.Type)
	require.NotNil(t, cfg.VectorStore.Qdrant)
	assert.Equal(t, "http://localhost:6333", cfg.VectorStore.Qdrant.URL)
	// Untouched fields still get defaults.
	assert.Equal(t, "gemini-1.5-flash-latest", cfg.LLM.GoogleModel)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "google")
	t.Setenv("K_RESULTS", "3")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "google", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.K)
}

// The default cleaning model is a Gemini one, so the cleaner's
// provider default must pair with it even though the answer path
// defaults to openrouter.
func TestDefaultCleanerProviderMatchesModel(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	lc, err := cfg.LLMConfigFor(cfg.Cleaner.Provider, cfg.Cleaner.Model)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGoogle, lc.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", lc.Model)
}

func TestLLMConfigFor(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	lc, err := cfg.LLMConfigFor(llm.ProviderOllama, "")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOllama, lc.Provider)
	assert.Equal(t, "gemma:2b", lc.Model)

	lc, err = cfg.LLMConfigFor("", "custom-model")
	require.NoError(t, err)
	assert.Equal(t, "openrouter", lc.Provider)
	assert.Equal(t, "custom-model", lc.Model)

	_, err = cfg.LLMConfigFor("anthropic", "")
	require.Error(t, err)
}
