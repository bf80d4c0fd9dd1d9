package main

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mourag/internal/extractor"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr <folder>",
	Short: "Extract text from the scanned PDFs in a document folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]
		inputDir := filepath.Join(cfg.Paths.Documents, folder)
		outputDir := filepath.Join(cfg.Paths.OCRResults, folder)

		proc := extractor.New(cfg.OCR.Languages, log)
		n, err := proc.ProcessFolder(inputDir, outputDir)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"documents": n,
			"output":    outputDir,
		}).Info("OCR stage finished")
		return nil
	},
}
