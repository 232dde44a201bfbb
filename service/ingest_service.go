package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pdf-rag-be/database"
	"pdf-rag-be/types"
	"pdf-rag-be/utils"
)

const snippetLength = 100

// IngestService turns extracted page text into stored vectors: combine pages,
// chunk, embed, batched upsert. There is no compensating delete: a failure
// mid-run leaves already-upserted batches in the index and the caller marks
// the document as errored.
type IngestService struct {
	embedder Embedder
	vectorDB database.VectorStore
}

func NewIngestService(embedder Embedder, vectorDB database.VectorStore) *IngestService {
	return &IngestService{
		embedder: embedder,
		vectorDB: vectorDB,
	}
}

// CombinePages prefixes every page with a readable page marker and joins them
// with blank lines, so retrieved chunks keep their page context.
func CombinePages(pages []string) string {
	var b strings.Builder
	for i, pageText := range pages {
		fmt.Fprintf(&b, "Page %d: %s\n\n", i+1, pageText)
	}
	return b.String()
}

func (s *IngestService) Ingest(ctx context.Context, pages []string, meta types.DocumentMeta) (*types.IngestResult, error) {
	combined := CombinePages(pages)
	chunks := ChunkText(combined, DefaultMaxChunkSize, DefaultChunkOverlap)

	records := make([]types.VectorRecord, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		// The random suffix keeps ids unique across repeated ingestion runs
		// of the same document.
		vectorID := fmt.Sprintf("%s_%d_%s", meta.Filename, i, uuid.New().String())

		records = append(records, types.VectorRecord{
			ID:     vectorID,
			Values: embedding,
			Metadata: types.ChunkMetadata{
				Filename:      meta.Filename,
				SourceURL:     meta.SourceURL,
				PageCount:     meta.PageCount,
				ProcessedDate: meta.ProcessedDate,
				ChunkIndex:    i,
				TotalChunks:   len(chunks),
				TextSnippet:   utils.TruncateString(chunk, snippetLength),
				Content:       chunk,
			},
		})
	}

	if err := s.vectorDB.BatchUpsert(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to store vectors: %w", err)
	}

	return &types.IngestResult{
		VectorsCreated: len(records),
		Filename:       meta.Filename,
	}, nil
}
