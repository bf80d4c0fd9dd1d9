// Package cleaner runs raw OCR output through the language model to
// strip scan artifacts (headers, stamps, page numbers) while keeping
// the agreement content intact.
package cleaner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"mourag/internal/domain"
)

const systemPrompt = "Anda adalah asisten ahli pembersih teks OCR untuk dokumen legal."

const cleaningPromptTemplate = `Anda adalah asisten ahli yang bertugas membersihkan teks yang diekstrak menggunakan OCR dari dokumen legal seperti Memorandum of Understanding (MoU). Tugas Anda adalah merapikan teks mentah di bawah ini.

Aturan Pembersihan:
1.  HAPUS semua elemen yang bukan bagian dari konten inti perjanjian, seperti header, footer, nomor halaman, logo, stempel, atau kop surat.
2.  PERTAHANKAN semua konten inti: judul, nomor surat, detail para pihak, semua pasal dan ayat, serta detail penandatanganan.
3.  PERBAIKI format teks agar mudah dibaca dengan normalisasi spasi dan baris baru.
4.  JANGAN menambahkan informasi apa pun yang tidak ada di teks asli.
5.  Output Anda HARUS HANYA berupa teks yang sudah bersih, tanpa penjelasan atau kalimat pembuka.

Teks Mentah Hasil OCR:
---
%s
---

Teks Bersih:`

type Cleaner struct {
	generator   domain.Generator
	temperature float32
	log         logrus.FieldLogger
}

func New(generator domain.Generator, temperature float32, log logrus.FieldLogger) *Cleaner {
	return &Cleaner{generator: generator, temperature: temperature, log: log}
}

// CleanText sends raw OCR text through the model. Unlike the answer
// path, a provider failure here is an error: a half-cleaned corpus is
// worse than a failed stage.
func (c *Cleaner) CleanText(ctx context.Context, rawText string) (string, error) {
	prompt := fmt.Sprintf(cleaningPromptTemplate, rawText)
	cleaned, err := c.generator.Generate(ctx, systemPrompt, prompt, c.temperature)
	if err != nil {
		return "", fmt.Errorf("clean text via %s: %w", c.generator.Provider(), err)
	}
	return strings.TrimSpace(cleaned), nil
}

// CleanFile reads a raw text file, cleans it, and writes the result.
func (c *Cleaner) CleanFile(ctx context.Context, inputPath, outputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	cleaned, err := c.CleanText(ctx, string(raw))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(cleaned), 0o644)
}

// CleanFolder cleans every .txt file in inputDir into outputDir.
// Per-file failures are logged and skipped so one bad document does
// not abort the whole corpus. Returns the number of cleaned files.
func (c *Cleaner) CleanFolder(ctx context.Context, inputDir, outputDir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(inputDir, "*.txt"))
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		c.log.WithField("dir", inputDir).Warn("no .txt files to clean")
		return 0, nil
	}

	cleaned := 0
	for _, f := range files {
		name := filepath.Base(f)
		c.log.WithFields(logrus.Fields{
			"file":     name,
			"provider": c.generator.Provider(),
			"model":    c.generator.Model(),
		}).Info("cleaning file")

		if err := c.CleanFile(ctx, f, filepath.Join(outputDir, name)); err != nil {
			c.log.WithField("file", name).WithError(err).Error("cleaning failed")
			continue
		}
		cleaned++
	}
	return cleaned, nil
}
