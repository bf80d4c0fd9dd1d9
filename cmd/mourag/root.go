package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mourag/internal/config"
	"mourag/internal/embedding"
	"mourag/internal/vectorstore"
	"mourag/internal/vectorstore/local"
	"mourag/internal/vectorstore/qdrant"
)

var (
	cfgPath string
	verbose bool

	cfg *config.AppConfig
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "mourag",
	Short: "Question answering over scanned MoU documents",
	Long: `mourag turns a folder of scanned MoU PDFs into a searchable
knowledge base and answers questions about it.

The pipeline runs in stages, each reading the previous stage's output:

  ocr    extract raw text from the scanned PDFs
  clean  strip OCR artifacts with a language model
  chunk  split the cleaned texts into overlapping pieces
  embed  compute a vector per chunk
  index  load vectors and chunks into the vector store
  ask    answer questions from the indexed collection`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(ocrCmd, cleanCmd, chunkCmd, embedCmd, indexCmd, askCmd)
}

// openStore builds the configured vector store backend.
func openStore() (vectorstore.Store, error) {
	switch cfg.VectorStore.Type {
	case "local", "":
		return local.NewStore(cfg.Paths.Database)
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("vector store type is qdrant but no qdrant section is configured")
		}
		return qdrant.NewStore(qdrant.Config{
			URL:    cfg.VectorStore.Qdrant.URL,
			APIKey: cfg.VectorStore.Qdrant.APIKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}
}

// newEmbedder builds the embeddings client from the config. The API
// key is read from the configured environment variable; local model
// servers typically need none.
func newEmbedder() *embedding.Client {
	apiKey := ""
	if cfg.Embedder.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.Embedder.APIKeyEnv)
	}
	return embedding.NewClient(embedding.Config{
		BaseURL: cfg.Embedder.BaseURL,
		APIKey:  apiKey,
		Model:   cfg.Embedder.Model,
	})
}
