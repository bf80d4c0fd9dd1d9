// Package indexer builds a vector collection from the embeddings and
// metadata interchange files produced by the embed stage.
package indexer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mourag/internal/dataset"
	"mourag/internal/domain"
	"mourag/internal/vectorstore"
)

type Builder struct {
	store vectorstore.Store
	log   logrus.FieldLogger
}

func New(store vectorstore.Store, log logrus.FieldLogger) *Builder {
	return &Builder{store: store, log: log}
}

// Build opens (or recreates) the named collection and populates it
// from the embeddings and metadata files, paired positionally. A
// non-empty collection is left untouched: the check is emptiness, not
// content equality, so rebuilding changed sources requires force.
func (b *Builder) Build(collectionName, embeddingsPath, metadataPath string, forceRecreate bool) (vectorstore.Collection, error) {
	if forceRecreate {
		b.log.WithField("collection", collectionName).Info("dropping existing collection")
		if err := b.store.Delete(collectionName); err != nil {
			return nil, err
		}
	}

	collection, err := b.store.Open(collectionName)
	if err != nil {
		return nil, err
	}

	count, err := collection.Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		b.log.WithFields(logrus.Fields{
			"collection": collectionName,
			"records":    count,
		}).Info("collection already populated, skipping insert")
		return collection, nil
	}

	vectors, err := dataset.LoadEmbeddings(embeddingsPath)
	if err != nil {
		return nil, err
	}
	chunks, err := dataset.LoadChunks(metadataPath)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: %d embeddings, %d metadata records",
			domain.ErrDataMismatch, len(vectors), len(chunks))
	}
	if len(chunks) == 0 {
		b.log.WithField("collection", collectionName).Warn("no records to insert")
		return collection, nil
	}

	records := make([]domain.IndexRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = domain.IndexRecord{
			ID:       uuid.NewString(),
			Vector:   vectors[i],
			Document: chunk.Content,
			Source:   chunk.SourceFile,
		}
	}

	if err := collection.BulkInsert(records); err != nil {
		return nil, err
	}

	b.log.WithFields(logrus.Fields{
		"collection": collectionName,
		"records":    len(records),
	}).Info("collection populated")
	return collection, nil
}
