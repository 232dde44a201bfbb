package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-rag-be/types"
)

func retrievedChunks() []types.RetrievedChunk {
	return []types.RetrievedChunk{
		{
			Text:     "Apples are red or green fruits.",
			Filename: "fruit.pdf",
			Score:    0.91,
			Metadata: types.ChunkMetadata{
				Filename:    "fruit.pdf",
				TextSnippet: "Apples are red or green fruits.",
				SourceURL:   "http://localhost:9000/pdfs/fruit.pdf",
				PageCount:   2,
				ChunkIndex:  0,
			},
		},
		{
			Text:     "Oranges are citrus fruits.",
			Filename: "fruit.pdf",
			Score:    0.85,
			Metadata: types.ChunkMetadata{
				Filename:    "fruit.pdf",
				TextSnippet: "Oranges are citrus fruits.",
				ChunkIndex:  3,
			},
		},
	}
}

func TestRetrievePrefixesQuery(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	store := &fakeVectorStore{queryResult: retrievedChunks()}
	svc := NewRAGService(embedder, store, &fakeAI{})

	chunks, err := svc.Retrieve(context.Background(), "what color are apples", 5, "fruit.pdf")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)

	require.Len(t, embedder.embedded, 1)
	assert.Equal(t, queryPrefix+"what color are apples", embedder.embedded[0])
	assert.Equal(t, 5, store.lastTopK)
	assert.Equal(t, "fruit.pdf", store.lastFilter)
}

func TestRetrieveEmbedError(t *testing.T) {
	embedder := &fakeEmbedder{err: assert.AnError}
	svc := NewRAGService(embedder, &fakeVectorStore{}, &fakeAI{})

	_, err := svc.Retrieve(context.Background(), "anything", DefaultTopK, "")
	require.Error(t, err)
}

func TestAskNoDocuments(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	store := &fakeVectorStore{}
	ai := &fakeAI{answer: "should never be used"}
	svc := NewRAGService(embedder, store, ai)

	resp, err := svc.Ask(context.Background(), "what is this about", "empty.pdf")
	require.NoError(t, err)

	assert.Contains(t, resp.Answer, "couldn't find any relevant documents")
	assert.Contains(t, resp.Answer, "from 'empty.pdf'")
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
	assert.Zero(t, ai.chatCalls, "generation must not run without retrieved chunks")
}

func TestAskNoDocumentsWithoutFilter(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	svc := NewRAGService(embedder, &fakeVectorStore{}, &fakeAI{})

	resp, err := svc.Ask(context.Background(), "anything", "")
	require.NoError(t, err)
	assert.NotContains(t, resp.Answer, "from '")
}

func TestAsk(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	store := &fakeVectorStore{queryResult: retrievedChunks()}
	ai := &fakeAI{answer: "Apples are red or green."}
	svc := NewRAGService(embedder, store, ai)

	resp, err := svc.Ask(context.Background(), "what color are apples", "")
	require.NoError(t, err)
	assert.Equal(t, "Apples are red or green.", resp.Answer)

	require.Len(t, resp.Sources, 2)
	assert.Equal(t, "fruit.pdf", resp.Sources[0].Filename)
	assert.Equal(t, float32(0.91), resp.Sources[0].Score)
	assert.Equal(t, "http://localhost:9000/pdfs/fruit.pdf", resp.Sources[0].SourceURL)
	assert.Equal(t, 2, resp.Sources[0].PageCount)
	assert.Equal(t, 0, resp.Sources[0].ChunkIndex)
	assert.Equal(t, 3, resp.Sources[1].ChunkIndex)

	// The prompt carries both the chunk text and the question.
	require.Len(t, ai.lastMessages, 2)
	assert.Equal(t, "system", ai.lastMessages[0].Role)
	assert.Contains(t, ai.lastMessages[1].Content, "Document: fruit.pdf")
	assert.Contains(t, ai.lastMessages[1].Content, "Apples are red or green fruits.")
	assert.Contains(t, ai.lastMessages[1].Content, "what color are apples")
}

func TestAskGenerationFailureBecomesFallbackAnswer(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	store := &fakeVectorStore{queryResult: retrievedChunks()}
	ai := &fakeAI{chatErr: assert.AnError}
	svc := NewRAGService(embedder, store, ai)

	resp, err := svc.Ask(context.Background(), "what color are apples", "")
	require.NoError(t, err, "generation failures must not surface as errors")
	assert.Contains(t, resp.Answer, "Sorry, I encountered an error while generating the answer")
	assert.Len(t, resp.Sources, 2)
}

func TestAskRetrievalFailurePropagates(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	store := &fakeVectorStore{queryErr: assert.AnError}
	svc := NewRAGService(embedder, store, &fakeAI{})

	_, err := svc.Ask(context.Background(), "anything", "")
	require.Error(t, err)
}

func TestAskStream(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	store := &fakeVectorStore{queryResult: retrievedChunks()}
	ai := &fakeAI{streamChunks: []string{"Apples ", "are ", "red."}}
	svc := NewRAGService(embedder, store, ai)

	var received []string
	sources, err := svc.AskStream(context.Background(), "what color are apples", "", func(chunk string) {
		received = append(received, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apples ", "are ", "red."}, received)
	assert.Len(t, sources, 2)
}

func TestAskStreamNoDocuments(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}, dimension: 1}
	svc := NewRAGService(embedder, &fakeVectorStore{}, &fakeAI{})

	var received []string
	sources, err := svc.AskStream(context.Background(), "anything", "missing.pdf", func(chunk string) {
		received = append(received, chunk)
	})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Contains(t, received[0], "from 'missing.pdf'")
	assert.Empty(t, sources)
}
