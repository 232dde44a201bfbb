package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// queryPrefix aligns query vectors with passage vectors for asymmetric
// embedding models (bge family). Passages are embedded without it.
const queryPrefix = "Represent this sentence for searching relevant passages: "

// Embedder converts text into a fixed-dimension vector. The same model must
// serve both ingestion and queries or similarity scores are meaningless.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

type EmbeddingService struct {
	client    *openai.Client
	model     string
	dimension int
}

// NewEmbeddingService talks to any OpenAI-compatible embeddings endpoint.
func NewEmbeddingService(baseURL, apiKey, model string, dimension int) *EmbeddingService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &EmbeddingService{
		client:    client,
		model:     model,
		dimension: dimension,
	}
}

func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding returned")
	}
	vector := resp.Data[0].Embedding
	if s.dimension > 0 && len(vector) != s.dimension {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vector), s.dimension)
	}
	return vector, nil
}

func (s *EmbeddingService) Dimension() int {
	return s.dimension
}

// PrepareQuery prefixes a search query with the retrieval instruction the
// embedding model expects.
func PrepareQuery(query string) string {
	return queryPrefix + query
}
