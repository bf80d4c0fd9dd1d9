// Package answerer implements the retrieval-and-answer flow: embed
// the question, fetch the nearest chunks, and prompt the language
// model with them as context.
package answerer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"mourag/internal/domain"
	"mourag/internal/vectorstore"
)

const systemPrompt = "Anda adalah asisten Q&A yang menjawab berdasarkan konteks."

const promptTemplate = `Berdasarkan kumpulan konteks di bawah ini, jawablah pertanyaan berikut.
Jawablah dengan jelas, ringkas, dan hanya berdasarkan informasi dari konteks yang diberikan.
Jika informasi tidak ditemukan dalam konteks, katakan "Maaf, informasi tersebut tidak ditemukan dalam dokumen saya."

Kumpulan Konteks:
---
%s
---

Pertanyaan:
%s`

type Answerer struct {
	embedder    domain.Embedder
	collection  vectorstore.Collection
	generator   domain.Generator
	temperature float32
	log         logrus.FieldLogger
}

func New(embedder domain.Embedder, collection vectorstore.Collection, generator domain.Generator, temperature float32, log logrus.FieldLogger) *Answerer {
	return &Answerer{
		embedder:    embedder,
		collection:  collection,
		generator:   generator,
		temperature: temperature,
		log:         log,
	}
}

// Ask answers a question from the collection's content. A failure
// while retrieving context is fatal: the pipeline never answers
// without context. A provider failure while generating is degraded to
// a visible message returned in place of the answer, since the
// chatbot's contract is to always return a string.
func (a *Answerer) Ask(ctx context.Context, query string, k int) (string, error) {
	a.log.WithFields(logrus.Fields{
		"collection": a.collection.Name(),
		"k":          k,
	}).Info("retrieving context")

	vector, err := a.embedder.EmbedOne(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	results, err := a.collection.Query(vector, k)
	if err != nil {
		return "", fmt.Errorf("query collection %s: %w", a.collection.Name(), err)
	}
	a.log.WithField("chunks", len(results)).Info("context retrieved")

	prompt := fmt.Sprintf(promptTemplate, buildContext(results), query)

	a.log.WithFields(logrus.Fields{
		"provider": a.generator.Provider(),
		"model":    a.generator.Model(),
	}).Info("generating answer")

	answer, err := a.generator.Generate(ctx, systemPrompt, prompt, a.temperature)
	if err != nil {
		a.log.WithFields(logrus.Fields{
			"provider": a.generator.Provider(),
			"model":    a.generator.Model(),
		}).WithError(err).Error("generation failed")
		return fmt.Sprintf("Terjadi kesalahan saat memanggil API %s: %v",
			strings.ToUpper(a.generator.Provider()), err), nil
	}
	return answer, nil
}

// buildContext joins the retrieved documents as a bulleted list in
// relevance order.
func buildContext(results []domain.SearchResult) string {
	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = "- " + r.Document
	}
	return strings.Join(lines, "\n")
}
