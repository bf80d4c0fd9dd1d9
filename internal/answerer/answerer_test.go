package answerer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mourag/internal/domain"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = f.vector
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeCollection struct {
	results []domain.SearchResult
}

func (f *fakeCollection) Name() string        { return "mous" }
func (f *fakeCollection) Count() (int, error) { return len(f.results), nil }

func (f *fakeCollection) BulkInsert(records []domain.IndexRecord) error { return nil }

func (f *fakeCollection) Query(vector []float32, k int) ([]domain.SearchResult, error) {
	if k < len(f.results) {
		return f.results[:k], nil
	}
	return f.results, nil
}

type fakeGenerator struct {
	lastSystem string
	lastPrompt string
	answer     string
	err        error
}

func (f *fakeGenerator) Generate(_ context.Context, system, prompt string, _ float32) (string, error) {
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeGenerator) Provider() string { return "ollama" }
func (f *fakeGenerator) Model() string    { return "gemma:2b" }

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAskBuildsBulletedContext(t *testing.T) {
	gen := &fakeGenerator{answer: "jawaban"}
	a := New(
		&fakeEmbedder{vector: []float32{1, 0}},
		&fakeCollection{results: []domain.SearchResult{
			{Document: "hello", Source: "f1", Distance: 0},
		}},
		gen, 0.1, testLogger())

	answer, err := a.Ask(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Equal(t, "jawaban", answer)
	assert.Contains(t, gen.lastPrompt, "- hello")
	assert.Contains(t, gen.lastPrompt, "q")
	assert.NotEmpty(t, gen.lastSystem)
}

func TestAskContextInRelevanceOrder(t *testing.T) {
	gen := &fakeGenerator{answer: "ok"}
	a := New(
		&fakeEmbedder{vector: []float32{1, 0}},
		&fakeCollection{results: []domain.SearchResult{
			{Document: "closest", Distance: 0.1},
			{Document: "further", Distance: 0.4},
		}},
		gen, 0.1, testLogger())

	_, err := a.Ask(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Less(t,
		strings.Index(gen.lastPrompt, "- closest"),
		strings.Index(gen.lastPrompt, "- further"))
}

func TestAskDegradesGenerationFailureToMessage(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	a := New(
		&fakeEmbedder{vector: []float32{1, 0}},
		&fakeCollection{results: []domain.SearchResult{{Document: "hello"}}},
		gen, 0.1, testLogger())

	answer, err := a.Ask(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Contains(t, answer, "OLLAMA")
	assert.Contains(t, answer, "connection refused")
}

func TestAskEmbeddingFailureIsFatal(t *testing.T) {
	a := New(
		&fakeEmbedder{err: errors.New("model load failed")},
		&fakeCollection{},
		&fakeGenerator{answer: "never"}, 0.1, testLogger())

	_, err := a.Ask(context.Background(), "q", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model load failed")
}

func TestAskEmptyCollection(t *testing.T) {
	gen := &fakeGenerator{answer: "tidak ada"}
	a := New(
		&fakeEmbedder{vector: []float32{1, 0}},
		&fakeCollection{},
		gen, 0.1, testLogger())

	answer, err := a.Ask(context.Background(), "q", 3)
	require.NoError(t, err)
	assert.Equal(t, "tidak ada", answer)
	// The prompt carries an empty context block, not an error.
	assert.Contains(t, gen.lastPrompt, "Kumpulan Konteks")
}
