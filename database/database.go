package database

import (
	"context"

	"pdf-rag-be/types"
)

// VectorStore defines the vector index operations used by ingestion and
// retrieval.
type VectorStore interface {
	// BatchUpsert stores records in sub-batches of at most 100 vectors,
	// submitted sequentially. Batches already submitted stay stored when a
	// later batch fails.
	BatchUpsert(ctx context.Context, records []types.VectorRecord) error
	// Query returns the topK nearest chunks by cosine similarity, optionally
	// restricted to one filename. An empty index yields an empty slice, not
	// an error.
	Query(ctx context.Context, vector []float32, topK int, filenameFilter string) ([]types.RetrievedChunk, error)
}
