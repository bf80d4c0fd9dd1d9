package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mourag/internal/dataset"
	"mourag/internal/domain"
)

// embedBatchSize bounds how many chunks go into one embeddings
// request.
const embedBatchSize = 100

var embedCmd = &cobra.Command{
	Use:   "embed <folder>",
	Short: "Compute an embedding vector for every chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		chunks, err := dataset.LoadChunks(dataset.ChunksPath(cfg.Paths.ChunkedTexts, folder))
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"chunks": len(chunks),
			"model":  cfg.Embedder.Model,
		}).Info("embedding chunks")

		client := newEmbedder()
		ctx := cmd.Context()
		vectors := make([][]float32, 0, len(chunks))
		for start := 0; start < len(chunks); start += embedBatchSize {
			end := start + embedBatchSize
			if end > len(chunks) {
				end = len(chunks)
			}
			batch, err := client.Embed(ctx, contentsOf(chunks[start:end]))
			if err != nil {
				return err
			}
			vectors = append(vectors, batch...)
			log.WithFields(logrus.Fields{
				"done":  end,
				"total": len(chunks),
			}).Debug("embedded batch")
		}

		embPath := dataset.EmbeddingsPath(cfg.Paths.ChunkedTexts, folder)
		metaPath := dataset.MetadataPath(cfg.Paths.ChunkedTexts, folder)
		if err := dataset.SaveEmbeddings(embPath, vectors); err != nil {
			return err
		}
		if err := dataset.SaveChunks(metaPath, chunks); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"vectors":    len(vectors),
			"embeddings": embPath,
			"metadata":   metaPath,
		}).Info("embedding stage finished")
		return nil
	},
}

func contentsOf(chunks []domain.Chunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	return texts
}
