package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mourag/internal/domain"
)

func TestChunkShortSentences(t *testing.T) {
	s := NewRecursiveSplitter(5, 0)
	chunks := s.Chunk("A. B. C.", "doc.txt")

	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c.Content), 5)
		assert.NotEmpty(t, strings.TrimSpace(c.Content))
	}

	// No text may be lost: the concatenation keeps every sentence.
	joined := strings.Join(contents(chunks), " ")
	for _, want := range []string{"A.", "B.", "C."} {
		assert.Contains(t, joined, want)
	}
}

func TestChunkSequenceIDs(t *testing.T) {
	s := NewRecursiveSplitter(20, 5)
	text := strings.Repeat("Pasal satu mengatur hal pertama. ", 10)
	chunks := s.Chunk(text, "mou.txt")

	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		assert.Equal(t, i+1, c.SequenceID)
		assert.Equal(t, "mou.txt", c.SourceFile)
	}
}

func TestChunkRespectsMaxSize(t *testing.T) {
	s := NewRecursiveSplitter(50, 10)
	text := "Paragraf pertama tentang kerja sama.\n\nParagraf kedua tentang jangka waktu perjanjian dan perpanjangannya.\n\nParagraf ketiga."
	for _, c := range s.Chunk(text, "mou.txt") {
		assert.LessOrEqual(t, utf8.RuneCountInString(c.Content), 50)
		assert.NotEmpty(t, strings.TrimSpace(c.Content))
	}
}

func TestChunkOverlapCarriesContext(t *testing.T) {
	s := NewRecursiveSplitter(30, 12)
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliet"
	chunks := s.Chunk(text, "doc.txt")
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with words already seen at the
	// end of its predecessor.
	for i := 1; i < len(chunks); i++ {
		firstWord := strings.Fields(chunks[i].Content)[0]
		assert.Contains(t, chunks[i-1].Content, firstWord)
	}
}

func TestChunkIndivisibleToken(t *testing.T) {
	s := NewRecursiveSplitter(10, 0)
	long := strings.Repeat("x", 35)
	chunks := s.Chunk(long, "doc.txt")

	require.Len(t, chunks, 4)
	var rebuilt strings.Builder
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c.Content), 10)
		rebuilt.WriteString(c.Content)
	}
	assert.Equal(t, long, rebuilt.String())
}

func TestChunkEmptyInput(t *testing.T) {
	s := NewRecursiveSplitter(100, 20)
	assert.Empty(t, s.Chunk("", "doc.txt"))
	assert.Empty(t, s.Chunk("   \n\n  ", "doc.txt"))
}

func TestChunkPrefersParagraphBreaks(t *testing.T) {
	s := NewRecursiveSplitter(40, 0)
	text := "Bagian pertama dokumen.\n\nBagian kedua dokumen."
	chunks := s.Chunk(text, "doc.txt")

	require.Len(t, chunks, 2)
	assert.Equal(t, "Bagian pertama dokumen.", chunks[0].Content)
	assert.Equal(t, "Bagian kedua dokumen.", chunks[1].Content)
}

func contents(chunks []domain.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Content
	}
	return out
}
