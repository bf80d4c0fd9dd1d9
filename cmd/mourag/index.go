package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mourag/internal/dataset"
	"mourag/internal/indexer"
)

var (
	indexForce bool
	indexQuery string
	indexK     int
)

var indexCmd = &cobra.Command{
	Use:   "index <folder>",
	Short: "Load embeddings into the vector store collection",
	Long: `index populates the vector store collection named after the folder
from the embeddings and metadata files the embed stage wrote. A
collection that already holds records is left untouched; pass --force
to drop and rebuild it.

With --query the command runs a similarity search against the freshly
indexed collection and prints the nearest chunks, which is useful for
checking retrieval quality before wiring up a model.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		store, err := openStore()
		if err != nil {
			return err
		}
		builder := indexer.New(store, log)
		collection, err := builder.Build(
			folder,
			dataset.EmbeddingsPath(cfg.Paths.ChunkedTexts, folder),
			dataset.MetadataPath(cfg.Paths.ChunkedTexts, folder),
			indexForce,
		)
		if err != nil {
			return err
		}

		if indexQuery == "" {
			return nil
		}

		k := indexK
		if k == 0 {
			k = cfg.K
		}
		vector, err := newEmbedder().EmbedOne(cmd.Context(), indexQuery)
		if err != nil {
			return err
		}
		results, err := collection.Query(vector, k)
		if err != nil {
			return err
		}
		for i, r := range results {
			fmt.Printf("%d. [%s] (distance %.4f)\n%s\n\n", i+1, r.Source, r.Distance, r.Document)
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().BoolVar(&indexForce, "force", false, "drop and rebuild the collection")
	indexCmd.Flags().StringVar(&indexQuery, "query", "", "run a similarity search after indexing")
	indexCmd.Flags().IntVar(&indexK, "k", 0, "number of results for --query (default from config)")
}
