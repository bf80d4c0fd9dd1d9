package chunker

import (
	"strings"
	"unicode/utf8"

	"mourag/internal/domain"
)

// Default separators, most preferred first: paragraph break, line
// break, sentence end, word boundary. The empty string is the final
// fallback and means a hard character split.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// RecursiveSplitter splits text into chunks of at most chunkSize
// characters, preferring the largest separator that keeps pieces
// within bounds. Adjacent chunks overlap by roughly overlap
// characters of trailing context.
type RecursiveSplitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func NewRecursiveSplitter(chunkSize, overlap int) *RecursiveSplitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	return &RecursiveSplitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Chunk splits documentText and tags every piece with the source file
// and a 1-based sequence id. Text with no extractable content yields
// an empty result.
func (s *RecursiveSplitter) Chunk(documentText, sourceFile string) []domain.Chunk {
	var chunks []domain.Chunk
	for _, piece := range s.splitText(documentText, s.separators) {
		if piece == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			SourceFile: sourceFile,
			SequenceID: len(chunks) + 1,
			Content:    piece,
		})
	}
	return chunks
}

func (s *RecursiveSplitter) splitText(text string, separators []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sep := ""
	var rest []string
	for i, sp := range separators {
		if sp == "" {
			break
		}
		if strings.Contains(text, sp) {
			sep = sp
			rest = separators[i+1:]
			break
		}
	}
	if sep == "" {
		return s.hardSplit(text)
	}

	// SplitAfter keeps the separator attached to the preceding piece,
	// so re-joining pieces reproduces the original text.
	splits := strings.SplitAfter(text, sep)

	var out []string
	var fitting []string
	for _, piece := range splits {
		if utf8.RuneCountInString(piece) <= s.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			out = append(out, s.merge(fitting)...)
			fitting = nil
		}
		out = append(out, s.splitText(piece, rest)...)
	}
	if len(fitting) > 0 {
		out = append(out, s.merge(fitting)...)
	}
	return out
}

// merge greedily joins consecutive pieces up to chunkSize, then
// carries up to overlap characters of trailing pieces into the next
// chunk's window.
func (s *RecursiveSplitter) merge(pieces []string) []string {
	var docs []string
	var current []string
	total := 0

	flush := func() {
		if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
			docs = append(docs, doc)
		}
	}

	for _, p := range pieces {
		plen := utf8.RuneCountInString(p)
		if total+plen > s.chunkSize && len(current) > 0 {
			flush()
			for len(current) > 0 && (total > s.overlap || total+plen > s.chunkSize) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, p)
		total += plen
	}
	if len(current) > 0 {
		flush()
	}
	return docs
}

// hardSplit cuts text into fixed-size rune windows. The window step
// shrinks by the configured overlap so neighbours share context.
func (s *RecursiveSplitter) hardSplit(text string) []string {
	runes := []rune(text)
	step := s.chunkSize - s.overlap
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			out = append(out, piece)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}
