package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mourag/internal/chunker"
	"mourag/internal/dataset"
	"mourag/internal/domain"
)

var (
	chunkSize    int
	chunkOverlap int
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <folder>",
	Short: "Split cleaned texts into overlapping chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		size := chunkSize
		if size == 0 {
			size = cfg.Chunker.Size
		}
		overlap := chunkOverlap
		if overlap < 0 {
			overlap = cfg.Chunker.Overlap
		}

		inputDir := filepath.Join(cfg.Paths.CleanedTexts, folder)
		files, err := filepath.Glob(filepath.Join(inputDir, "*.txt"))
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no .txt files in %s", inputDir)
		}

		splitter := chunker.NewRecursiveSplitter(size, overlap)
		var chunks []domain.Chunk
		for _, f := range files {
			text, err := os.ReadFile(f)
			if err != nil {
				return err
			}
			fileChunks := splitter.Chunk(string(text), filepath.Base(f))
			log.WithFields(logrus.Fields{
				"file":   filepath.Base(f),
				"chunks": len(fileChunks),
			}).Info("chunked file")
			chunks = append(chunks, fileChunks...)
		}

		outPath := dataset.ChunksPath(cfg.Paths.ChunkedTexts, folder)
		if err := dataset.SaveChunks(outPath, chunks); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"chunks": len(chunks),
			"output": outPath,
		}).Info("chunking stage finished")
		return nil
	},
}

func init() {
	chunkCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "maximum chunk size in characters (default from config)")
	chunkCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", -1, "overlap between chunks in characters (default from config)")
}
