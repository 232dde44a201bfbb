package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag-be/types"
)

func TestCombinePages(t *testing.T) {
	combined := CombinePages([]string{"first page text", "second page text"})
	assert.Contains(t, combined, "Page 1: first page text")
	assert.Contains(t, combined, "Page 2: second page text")
	assert.True(t, strings.Index(combined, "Page 1:") < strings.Index(combined, "Page 2:"))
}

func TestIngest(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}, dimension: 3}
	store := &fakeVectorStore{}
	svc := NewIngestService(embedder, store)

	pages := []string{"The first page talks about apples.", "The second page talks about oranges."}
	meta := types.DocumentMeta{
		Filename:      "fruit.pdf",
		SourceURL:     "http://localhost:9000/pdfs/fruit.pdf",
		PageCount:     2,
		ProcessedDate: "2026-08-28T10:00:00Z",
	}

	result, err := svc.Ingest(context.Background(), pages, meta)
	require.NoError(t, err)

	expectedChunks := ChunkText(CombinePages(pages), DefaultMaxChunkSize, DefaultChunkOverlap)
	assert.Equal(t, len(expectedChunks), result.VectorsCreated)
	assert.Equal(t, "fruit.pdf", result.Filename)
	require.Len(t, store.upserted, len(expectedChunks))
	assert.Equal(t, 1, store.upsertCalls)

	for i, rec := range store.upserted {
		assert.True(t, strings.HasPrefix(rec.ID, "fruit.pdf_"), "id %q lacks filename prefix", rec.ID)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, rec.Values)
		assert.Equal(t, "fruit.pdf", rec.Metadata.Filename)
		assert.Equal(t, "http://localhost:9000/pdfs/fruit.pdf", rec.Metadata.SourceURL)
		assert.Equal(t, 2, rec.Metadata.PageCount)
		assert.Equal(t, "2026-08-28T10:00:00Z", rec.Metadata.ProcessedDate)
		assert.Equal(t, i, rec.Metadata.ChunkIndex)
		assert.Equal(t, len(expectedChunks), rec.Metadata.TotalChunks)
		assert.Equal(t, expectedChunks[i], rec.Metadata.Content)
		assert.LessOrEqual(t, len(rec.Metadata.TextSnippet), snippetLength+3)
	}
}

func TestIngestMultiPageProducesMultipleChunks(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.5}, dimension: 1}
	store := &fakeVectorStore{}
	svc := NewIngestService(embedder, store)

	sentence := "This page carries a reasonably long filler sentence about nothing at all. "
	page := strings.TrimSpace(strings.Repeat(sentence, 11)) // ~830 chars per page
	pages := []string{page, page, page}

	result, err := svc.Ingest(context.Background(), pages, types.DocumentMeta{Filename: "long.pdf", PageCount: 3})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.VectorsCreated, 3)
	assert.Equal(t, len(ChunkText(CombinePages(pages), DefaultMaxChunkSize, DefaultChunkOverlap)), result.VectorsCreated)
}

func TestIngestUniqueIDsAcrossRuns(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.5}, dimension: 1}
	store := &fakeVectorStore{}
	svc := NewIngestService(embedder, store)

	pages := []string{"Same document ingested twice."}
	meta := types.DocumentMeta{Filename: "dup.pdf"}

	_, err := svc.Ingest(context.Background(), pages, meta)
	require.NoError(t, err)
	_, err = svc.Ingest(context.Background(), pages, meta)
	require.NoError(t, err)

	require.Len(t, store.upserted, 2)
	assert.NotEqual(t, store.upserted[0].ID, store.upserted[1].ID)
}

func TestIngestEmbedError(t *testing.T) {
	embedder := &fakeEmbedder{err: assert.AnError}
	store := &fakeVectorStore{}
	svc := NewIngestService(embedder, store)

	_, err := svc.Ingest(context.Background(), []string{"some text."}, types.DocumentMeta{Filename: "x.pdf"})
	require.Error(t, err)
	assert.Zero(t, store.upsertCalls)
}

func TestIngestEmptyPages(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.5}, dimension: 1}
	store := &fakeVectorStore{}
	svc := NewIngestService(embedder, store)

	result, err := svc.Ingest(context.Background(), []string{"", ""}, types.DocumentMeta{Filename: "scan.pdf"})
	require.NoError(t, err)
	// Page markers alone still chunk; no failure on image-only PDFs.
	assert.Equal(t, len(store.upserted), result.VectorsCreated)
}
