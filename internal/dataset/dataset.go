// Package dataset reads and writes the interchange files passed
// between pipeline stages: a chunks file per source prefix, and a
// parallel pair of embeddings and metadata files matched positionally.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mourag/internal/domain"
)

// ChunksPath returns the chunk file location for a source prefix.
func ChunksPath(dir, prefix string) string {
	return filepath.Join(dir, prefix+"_chunks.json")
}

// EmbeddingsPath returns the embeddings file location for a prefix.
func EmbeddingsPath(dir, prefix string) string {
	return filepath.Join(dir, prefix+"_embeddings.json")
}

// MetadataPath returns the metadata file location for a prefix. The
// metadata file is an ordered copy of the chunk records whose rows
// pair positionally with the embeddings file.
func MetadataPath(dir, prefix string) string {
	return filepath.Join(dir, prefix+"_metadata.json")
}

// SaveChunks writes chunk records as a JSON array, creating the
// directory if needed.
func SaveChunks(path string, chunks []domain.Chunk) error {
	return writeJSON(path, chunks)
}

// LoadChunks reads an ordered chunk array written by SaveChunks.
func LoadChunks(path string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	if err := readJSON(path, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// SaveEmbeddings writes one fixed-width vector row per chunk.
func SaveEmbeddings(path string, vectors [][]float32) error {
	return writeJSON(path, vectors)
}

// LoadEmbeddings reads the vector rows written by SaveEmbeddings.
func LoadEmbeddings(path string) ([][]float32, error) {
	var vectors [][]float32
	if err := readJSON(path, &vectors); err != nil {
		return nil, err
	}
	return vectors, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrSourceNotFound, path)
		}
		return err
	}
	return json.Unmarshal(data, v)
}
