// Package local is an on-disk vector store: one gob file per
// collection under a database directory, brute-force cosine search.
// It is the default backend and needs no external service.
package local

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"mourag/internal/domain"
	"mourag/internal/vectorstore"
)

type Store struct {
	root string
}

// NewStore opens the database directory, creating it if needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("vector store dir: %w", err)
	}
	return &Store{root: root}, nil
}

var _ vectorstore.Store = (*Store)(nil)

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+".gob")
}

func (s *Store) Open(name string) (vectorstore.Collection, error) {
	c := &Collection{name: name, path: s.path(name)}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) Delete(name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Collection keeps its records in memory and rewrites its file after
// every committed batch, so a failure mid-insert leaves the earlier
// batches durable.
type Collection struct {
	name    string
	path    string
	records []domain.IndexRecord
}

type collectionFile struct {
	Records []domain.IndexRecord
}

func (c *Collection) load() error {
	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	var file collectionFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return fmt.Errorf("collection %s: %w", c.name, err)
	}
	c.records = file.Records
	return nil
}

func (c *Collection) save() error {
	tmp := c.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(collectionFile{Records: c.records}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Count() (int, error) {
	return len(c.records), nil
}

func (c *Collection) BulkInsert(records []domain.IndexRecord) error {
	for start := 0; start < len(records); start += vectorstore.BatchSize {
		end := start + vectorstore.BatchSize
		if end > len(records) {
			end = len(records)
		}
		c.records = append(c.records, records[start:end]...)
		if err := c.save(); err != nil {
			return fmt.Errorf("collection %s: commit batch: %w", c.name, err)
		}
	}
	return nil
}

func (c *Collection) Query(vector []float32, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}
	results := make([]domain.SearchResult, 0, len(c.records))
	for _, r := range c.records {
		if len(r.Vector) != len(vector) {
			return nil, fmt.Errorf("collection %s: query vector has %d dimensions, stored vectors have %d",
				c.name, len(vector), len(r.Vector))
		}
		results = append(results, domain.SearchResult{
			Document: r.Document,
			Source:   r.Source,
			Distance: cosineDistance(vector, r.Vector),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// cosineDistance is 1 minus the cosine similarity, so identical
// directions give 0 and orthogonal vectors give 1. Both vectors must
// have the same length; Query checks that before calling.
func cosineDistance(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}
