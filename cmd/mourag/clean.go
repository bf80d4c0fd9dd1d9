package main

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mourag/internal/cleaner"
	"mourag/internal/llm"
)

var (
	cleanProvider string
	cleanModel    string
)

var cleanCmd = &cobra.Command{
	Use:   "clean <folder>",
	Short: "Strip OCR artifacts from extracted texts with a language model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		provider := cleanProvider
		if provider == "" {
			provider = cfg.Cleaner.Provider
		}
		model := cleanModel
		if model == "" {
			model = cfg.Cleaner.Model
		}
		llmCfg, err := cfg.LLMConfigFor(provider, model)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		gen, err := llm.New(ctx, llmCfg)
		if err != nil {
			return err
		}

		c := cleaner.New(gen, cfg.Cleaner.Temperature, log)
		inputDir := filepath.Join(cfg.Paths.OCRResults, folder)
		outputDir := filepath.Join(cfg.Paths.CleanedTexts, folder)
		n, err := c.CleanFolder(ctx, inputDir, outputDir)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"files":  n,
			"output": outputDir,
		}).Info("cleaning stage finished")
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanProvider, "provider", "", "LLM provider for cleaning (google, openrouter, ollama)")
	cleanCmd.Flags().StringVar(&cleanModel, "model", "", "model override for cleaning")
}
