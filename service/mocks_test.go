package service

import (
	"context"

	"pdf-rag-be/types"
)

// fakeEmbedder returns a fixed vector and records every text it embeds.
type fakeEmbedder struct {
	vector    []float32
	err       error
	embedded  []string
	dimension int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedded = append(f.embedded, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) Dimension() int {
	return f.dimension
}

// fakeVectorStore records upserted vectors and serves canned query results.
type fakeVectorStore struct {
	upserted    []types.VectorRecord
	upsertCalls int
	upsertErr   error

	queryResult []types.RetrievedChunk
	queryErr    error
	lastTopK    int
	lastFilter  string
	lastVector  []float32
}

func (f *fakeVectorStore) BatchUpsert(ctx context.Context, records []types.VectorRecord) error {
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, records...)
	return nil
}

func (f *fakeVectorStore) Query(ctx context.Context, vector []float32, topK int, filenameFilter string) ([]types.RetrievedChunk, error) {
	f.lastVector = vector
	f.lastTopK = topK
	f.lastFilter = filenameFilter
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryResult, nil
}

// fakeAI returns a canned answer and records the messages it was given.
type fakeAI struct {
	answer       string
	chatErr      error
	streamErr    error
	streamChunks []string
	lastMessages []types.Message
	chatCalls    int
}

func (f *fakeAI) Chat(ctx context.Context, messages []types.Message) (string, error) {
	f.chatCalls++
	f.lastMessages = messages
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.answer, nil
}

func (f *fakeAI) ChatStream(ctx context.Context, messages []types.Message, handler types.StreamHandler) error {
	f.lastMessages = messages
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, chunk := range f.streamChunks {
		handler(chunk)
	}
	return nil
}
