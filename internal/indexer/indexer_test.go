package indexer

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mourag/internal/dataset"
	"mourag/internal/domain"
	"mourag/internal/vectorstore/local"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeSources(t *testing.T, dir string, vectors [][]float32, chunks []domain.Chunk) (string, string) {
	t.Helper()
	embPath := dataset.EmbeddingsPath(dir, "mous")
	metaPath := dataset.MetadataPath(dir, "mous")
	require.NoError(t, dataset.SaveEmbeddings(embPath, vectors))
	require.NoError(t, dataset.SaveChunks(metaPath, chunks))
	return embPath, metaPath
}

func TestBuildPopulatesCollection(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewStore(filepath.Join(dir, "db"))
	require.NoError(t, err)

	embPath, metaPath := writeSources(t, dir,
		[][]float32{{1, 0}, {0, 1}},
		[]domain.Chunk{
			{SourceFile: "f1", SequenceID: 1, Content: "x"},
			{SourceFile: "f1", SequenceID: 2, Content: "y"},
		})

	col, err := New(store, testLogger()).Build("mous", embPath, metaPath, false)
	require.NoError(t, err)

	n, err := col.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Round-trip: the exact vector comes back as the top result.
	results, err := col.Query([]float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "y", results[0].Document)
	assert.Equal(t, "f1", results[0].Source)
}

func TestBuildIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewStore(filepath.Join(dir, "db"))
	require.NoError(t, err)

	embPath, metaPath := writeSources(t, dir,
		[][]float32{{1, 0}},
		[]domain.Chunk{{SourceFile: "f1", SequenceID: 1, Content: "x"}})

	b := New(store, testLogger())
	_, err = b.Build("mous", embPath, metaPath, false)
	require.NoError(t, err)

	// Second build against the populated collection inserts nothing.
	col, err := b.Build("mous", embPath, metaPath, false)
	require.NoError(t, err)
	n, err := col.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBuildForceRecreate(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewStore(filepath.Join(dir, "db"))
	require.NoError(t, err)

	embPath, metaPath := writeSources(t, dir,
		[][]float32{{1, 0}, {0, 1}},
		[]domain.Chunk{
			{SourceFile: "f1", SequenceID: 1, Content: "x"},
			{SourceFile: "f1", SequenceID: 2, Content: "y"},
		})

	b := New(store, testLogger())
	_, err = b.Build("mous", embPath, metaPath, false)
	require.NoError(t, err)

	col, err := b.Build("mous", embPath, metaPath, true)
	require.NoError(t, err)
	n, err := col.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBuildLengthMismatchIsFatal(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewStore(filepath.Join(dir, "db"))
	require.NoError(t, err)

	embPath, metaPath := writeSources(t, dir,
		[][]float32{{1, 0}, {0, 1}},
		[]domain.Chunk{{SourceFile: "f1", SequenceID: 1, Content: "x"}})

	_, err = New(store, testLogger()).Build("mous", embPath, metaPath, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataMismatch)
}

func TestBuildMissingSourceIsFatal(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewStore(filepath.Join(dir, "db"))
	require.NoError(t, err)

	_, err = New(store, testLogger()).Build("mous",
		dataset.EmbeddingsPath(dir, "mous"), dataset.MetadataPath(dir, "mous"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestBuildAssignsUniqueIDs(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewStore(filepath.Join(dir, "db"))
	require.NoError(t, err)

	// Identical content still produces distinct records.
	embPath, metaPath := writeSources(t, dir,
		[][]float32{{1, 0}, {1, 0}, {1, 0}},
		[]domain.Chunk{
			{SourceFile: "f1", SequenceID: 1, Content: "same"},
			{SourceFile: "f1", SequenceID: 2, Content: "same"},
			{SourceFile: "f1", SequenceID: 3, Content: "same"},
		})

	col, err := New(store, testLogger()).Build("mous", embPath, metaPath, false)
	require.NoError(t, err)
	n, err := col.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
