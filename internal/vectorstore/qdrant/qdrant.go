// Package qdrant is a minimal REST client to a Qdrant server,
// exposing it behind the vectorstore collection API. It assumes
// cosine distance and creates collections on first insert.
package qdrant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mourag/internal/domain"
	"mourag/internal/vectorstore"
)

type Store struct {
	url    string
	apiKey string
	client *http.Client
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

var _ vectorstore.Store = (*Store)(nil)

func (s *Store) Open(name string) (vectorstore.Collection, error) {
	return &Collection{store: s, name: name}, nil
}

func (s *Store) Delete(name string) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, name), nil)
	if err != nil {
		return err
	}
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Deleting an absent collection is a no-op.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("qdrant DELETE %s failed: %s", name, resp.Status)
	}
	return nil
}

type Collection struct {
	store *Store
	name  string
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Count() (int, error) {
	var resp struct {
		Result struct {
			PointsCount int `json:"points_count"`
		} `json:"result"`
	}
	status, err := c.store.getJSON(fmt.Sprintf("%s/collections/%s", c.store.url, c.name), &resp)
	if err != nil {
		return 0, err
	}
	if status == http.StatusNotFound {
		return 0, nil
	}
	return resp.Result.PointsCount, nil
}

func (c *Collection) BulkInsert(records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := c.ensure(len(records[0].Vector)); err != nil {
		return err
	}
	for start := 0; start < len(records); start += vectorstore.BatchSize {
		end := start + vectorstore.BatchSize
		if end > len(records) {
			end = len(records)
		}
		points := make([]map[string]any, 0, end-start)
		for _, r := range records[start:end] {
			points = append(points, map[string]any{
				"id":     r.ID,
				"vector": r.Vector,
				"payload": map[string]any{
					"document": r.Document,
					"source":   r.Source,
				},
			})
		}
		body := map[string]any{"points": points}
		if err := c.store.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", c.store.url, c.name), body); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collection) Query(vector []float32, k int) ([]domain.SearchResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	status, err := c.store.postJSON(fmt.Sprintf("%s/collections/%s/points/search", c.store.url, c.name), req, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		res := domain.SearchResult{
			// Qdrant reports cosine similarity; convert to a distance
			// so smaller means more relevant, like the local backend.
			Distance: 1 - r.Score,
		}
		if v, ok := r.Payload["document"].(string); ok {
			res.Document = v
		}
		if v, ok := r.Payload["source"].(string); ok {
			res.Source = v
		}
		results = append(results, res)
	}
	return results, nil
}

// ensure creates the collection if missing. Qdrant returns OK when
// the collection already exists with the same schema.
func (c *Collection) ensure(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension: %d", dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return c.store.putJSON(fmt.Sprintf("%s/collections/%s", c.store.url, c.name), body)
}

func (s *Store) auth(req *http.Request) {
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}

func (s *Store) putJSON(url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(url string, body any, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (s *Store) getJSON(url string, out any) (int, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	s.auth(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("qdrant GET %s failed: %s", url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
