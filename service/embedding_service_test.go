package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareQuery(t *testing.T) {
	prepared := PrepareQuery("what is chunking")
	assert.Equal(t, "Represent this sentence for searching relevant passages: what is chunking", prepared)
}

func fakeEmbeddingServer(t *testing.T, dims int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vector := make([]float32, dims)
		for i := range vector {
			vector[i] = 0.01
		}
		resp := map[string]interface{}{
			"object": "list",
			"data": []map[string]interface{}{
				{"object": "embedding", "index": 0, "embedding": vector},
			},
			"model": "bge-small-en-v1.5",
			"usage": map[string]int{"prompt_tokens": 4, "total_tokens": 4},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func TestEmbed(t *testing.T) {
	srv := fakeEmbeddingServer(t, 384)
	defer srv.Close()

	svc := NewEmbeddingService(srv.URL, "test-key", "bge-small-en-v1.5", 384)
	vector, err := svc.Embed(context.Background(), "some passage text")
	require.NoError(t, err)
	assert.Len(t, vector, 384)
	assert.Equal(t, 384, svc.Dimension())
}

func TestEmbedDimensionMismatch(t *testing.T) {
	srv := fakeEmbeddingServer(t, 768)
	defer srv.Close()

	svc := NewEmbeddingService(srv.URL, "test-key", "bge-small-en-v1.5", 384)
	_, err := svc.Embed(context.Background(), "some passage text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}
