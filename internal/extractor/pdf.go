// Package extractor converts scanned PDF documents to plain text by
// shelling out to poppler (pdftoppm) and tesseract. It is a thin
// wrapper over external binaries; the pipeline only depends on its
// text output.
package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// pageBreak separates page texts in the extracted output.
const pageBreak = "\n\n--- Akhir Halaman ---\n\n"

type Processor struct {
	languages string
	log       logrus.FieldLogger
}

// New creates a processor with the given tesseract language spec,
// e.g. "ind+eng".
func New(languages string, log logrus.FieldLogger) *Processor {
	if languages == "" {
		languages = "ind+eng"
	}
	return &Processor{languages: languages, log: log}
}

// ProcessFolder OCRs every PDF in inputDir and writes one .txt per
// document into outputDir. Per-document failures are logged and
// skipped. Returns the number of extracted documents.
func (p *Processor) ProcessFolder(inputDir, outputDir string) (int, error) {
	pdfs, err := filepath.Glob(filepath.Join(inputDir, "*.pdf"))
	if err != nil {
		return 0, err
	}
	if len(pdfs) == 0 {
		p.log.WithField("dir", inputDir).Warn("no PDF files found")
		return 0, nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, err
	}

	processed := 0
	for _, pdf := range pdfs {
		name := filepath.Base(pdf)
		p.log.WithField("file", name).Info("running OCR")

		text, err := p.ProcessFile(pdf)
		if err != nil {
			p.log.WithField("file", name).WithError(err).Error("OCR failed")
			continue
		}

		txtName := strings.TrimSuffix(name, filepath.Ext(name)) + ".txt"
		if err := os.WriteFile(filepath.Join(outputDir, txtName), []byte(text), 0o644); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

// ProcessFile renders a PDF's pages to images and OCRs them in page
// order.
func (p *Processor) ProcessFile(pdfPath string) (string, error) {
	tmp, err := os.MkdirTemp("", "mourag-ocr-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmp)

	cmd := exec.Command("pdftoppm", "-r", "300", "-png", pdfPath, filepath.Join(tmp, "page"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(out)))
	}

	pages, err := filepath.Glob(filepath.Join(tmp, "page*.png"))
	if err != nil {
		return "", err
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("no pages rendered from %s", filepath.Base(pdfPath))
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(pages)

	var sb strings.Builder
	for i, page := range pages {
		p.log.WithFields(logrus.Fields{
			"page":  i + 1,
			"pages": len(pages),
		}).Debug("OCR page")

		cmd := exec.Command("tesseract", page, "stdout", "-l", p.languages)
		out, err := cmd.Output()
		if err != nil {
			return "", fmt.Errorf("tesseract page %d: %w", i+1, err)
		}
		sb.Write(out)
		sb.WriteString(pageBreak)
	}
	return sb.String(), nil
}
