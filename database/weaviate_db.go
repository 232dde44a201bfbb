package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"pdf-rag-be/types"
)

// BATCH_SIZE is the upsert sub-batch limit imposed by the vector store.
const BATCH_SIZE = 100

var (
	CHUNK_CLASS        = "DocumentChunk"
	CHUNK_CLASS_OBJECT = &models.Class{
		Class: CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "vectorId", DataType: []string{"text"}},
			{Name: "filename", DataType: []string{"text"}},
			{Name: "sourceUrl", DataType: []string{"text"}},
			{Name: "pageCount", DataType: []string{"int"}},
			{Name: "processedDate", DataType: []string{"text"}},
			{Name: "chunkIndex", DataType: []string{"int"}},
			{Name: "totalChunks", DataType: []string{"int"}},
			{Name: "textSnippet", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
		},
		// Vectors are produced by the external embedder; the index never
		// vectorizes on its own.
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
		VectorIndexConfig: map[string]interface{}{
			"distance": "cosine",
		},
	}
)

// WeaviateStore wraps the managed vector index. The chunk class is created
// idempotently at construction so upserts and queries never hit a missing
// schema.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(host, apiKey string) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host = strings.TrimPrefix(host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: apiKey,
		}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasChunkClass := false
	for _, class := range schema.Classes {
		if class.Class == CHUNK_CLASS {
			hasChunkClass = true
			break
		}
	}
	// Create DocumentChunk class if it doesn't exist
	if !hasChunkClass {
		err = client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create DocumentChunk class: %v", err)
		}
	}
	return &WeaviateStore{
		client: client,
	}, nil
}

// ReInit drops and recreates the chunk class. All stored vectors are lost.
func (s *WeaviateStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(CHUNK_CLASS).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete DocumentChunk class: %v", err)
	}

	err = s.client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create DocumentChunk class: %v", err)
	}
	return nil
}

// BatchUpsert submits records in sequential sub-batches of BATCH_SIZE. There
// is no rollback: batches stored before a failure stay stored.
func (s *WeaviateStore) BatchUpsert(ctx context.Context, records []types.VectorRecord) error {
	for _, batch := range SplitBatches(records, BATCH_SIZE) {
		batcher := s.client.Batch().ObjectsBatcher()
		for _, rec := range batch {
			batcher = batcher.WithObjects(&models.Object{
				Class:      CHUNK_CLASS,
				Properties: chunkProperties(rec),
				Vector:     rec.Values,
			})
		}
		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to upsert batch of %d vectors: %w", len(batch), err)
		}
	}
	return nil
}

// Query runs a nearVector search ordered by descending certainty. A non-empty
// filenameFilter restricts hits to vectors whose filename property equals it.
func (s *WeaviateStore) Query(ctx context.Context, vector []float32, topK int, filenameFilter string) ([]types.RetrievedChunk, error) {
	fields := []graphql.Field{
		{Name: "vectorId"},
		{Name: "filename"},
		{Name: "sourceUrl"},
		{Name: "pageCount"},
		{Name: "processedDate"},
		{Name: "chunkIndex"},
		{Name: "totalChunks"},
		{Name: "textSnippet"},
		{Name: "content"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "certainty"}, {Name: "id"}}},
	}

	nearVector := s.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector)

	getBuilder := s.client.GraphQL().Get().
		WithClassName(CHUNK_CLASS).
		WithFields(fields...).
		WithNearVector(nearVector)
	if topK > 0 {
		getBuilder = getBuilder.WithLimit(topK)
	}
	if filenameFilter != "" {
		getBuilder = getBuilder.WithWhere(filters.Where().
			WithPath([]string{"filename"}).
			WithOperator(filters.Equal).
			WithValueString(filenameFilter))
	}

	result, err := getBuilder.Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("query failed: %v", result.Errors[0].Message)
	}

	var chunks []types.RetrievedChunk
	if data, ok := result.Data["Get"].(map[string]interface{})[CHUNK_CLASS].([]interface{}); ok {
		for _, item := range data {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			metadata := types.ChunkMetadata{
				Filename:      parseString(obj["filename"]),
				SourceURL:     parseString(obj["sourceUrl"]),
				PageCount:     parseInt(obj["pageCount"]),
				ProcessedDate: parseString(obj["processedDate"]),
				ChunkIndex:    parseInt(obj["chunkIndex"]),
				TotalChunks:   parseInt(obj["totalChunks"]),
				TextSnippet:   parseString(obj["textSnippet"]),
				Content:       parseString(obj["content"]),
			}
			chunk := types.RetrievedChunk{
				Text:     metadata.Content,
				Filename: metadata.Filename,
				Metadata: metadata,
			}
			if additional, ok := obj["_additional"].(map[string]interface{}); ok {
				if certainty, ok := additional["certainty"].(float64); ok {
					chunk.Score = float32(certainty)
				}
			}
			chunks = append(chunks, chunk)
		}
	}

	return chunks, nil
}

// SplitBatches cuts records into consecutive slices of at most size elements,
// preserving order.
func SplitBatches(records []types.VectorRecord, size int) [][]types.VectorRecord {
	if size <= 0 || len(records) == 0 {
		return nil
	}
	var batches [][]types.VectorRecord
	for i := 0; i < len(records); i += size {
		end := i + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[i:end])
	}
	return batches
}

func chunkProperties(rec types.VectorRecord) map[string]interface{} {
	return map[string]interface{}{
		"vectorId":      rec.ID,
		"filename":      rec.Metadata.Filename,
		"sourceUrl":     rec.Metadata.SourceURL,
		"pageCount":     rec.Metadata.PageCount,
		"processedDate": rec.Metadata.ProcessedDate,
		"chunkIndex":    rec.Metadata.ChunkIndex,
		"totalChunks":   rec.Metadata.TotalChunks,
		"textSnippet":   rec.Metadata.TextSnippet,
		"content":       rec.Metadata.Content,
	}
}

// Helper functions
func parseString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func parseInt(v interface{}) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}
