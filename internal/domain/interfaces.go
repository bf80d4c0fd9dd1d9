package domain

import "context"

// Chunk is a bounded slice of a source document's text with overlap
// relative to its neighbours. Sequence IDs are 1-based and unique
// within a source file, in document order.
type Chunk struct {
	SourceFile string `json:"source_file"`
	SequenceID int    `json:"chunk_sequence_id"`
	Content    string `json:"content"`
}

// IndexRecord is one persisted entry of a collection. The ID is a
// random token generated at build time, never derived from content.
type IndexRecord struct {
	ID       string
	Vector   []float32
	Document string
	Source   string
}

// SearchResult is a retrieved record with its distance to the query
// vector. Smaller distance means more relevant.
type SearchResult struct {
	Document string
	Source   string
	Distance float32
}

// Embedder converts text into fixed-dimension vectors. All vectors
// produced by one embedder instance share the same dimensionality.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// Chunker splits a document's text into overlapping bounded segments.
type Chunker interface {
	Chunk(text, sourceFile string) []Chunk
}

// Generator is a provider-uniform text generation backend.
type Generator interface {
	// Generate produces text from a system instruction and a user
	// prompt. Providers without a separate system role concatenate
	// the two.
	Generate(ctx context.Context, system, prompt string, temperature float32) (string, error)
	// Provider returns the provider tag, used in log and error output.
	Provider() string
	// Model returns the configured model name.
	Model() string
}
