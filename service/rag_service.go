package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"pdf-rag-be/database"
	"pdf-rag-be/types"
)

const DefaultTopK = 3

const answerSystemPrompt = "You are an expert document analyst. ALWAYS format your responses with clear paragraph breaks using double line breaks (\\n\\n) between paragraphs. Use bullet points for lists. Add blank lines before and after lists. Break long explanations into multiple short paragraphs with proper spacing. Never write everything in one single paragraph."

const answerPromptTemplate = `Based on the following context from uploaded documents, please answer the question in a comprehensive and well-structured format.

Context:
%s

Question: %s

CRITICAL FORMATTING REQUIREMENTS:
- Break your response into multiple short paragraphs (2-4 sentences each)
- Add TWO line breaks (\n\n) between different paragraphs
- Use bullet points (•) or numbered lists (1., 2., 3.) when listing multiple items
- Add blank lines before and after bullet point lists
- Use clear section headers when discussing different aspects
- Start each new topic or section with a line break

CONTENT REQUIREMENTS:
- Provide detailed explanations with specific examples from the documents
- Include relevant details, numbers, dates, and names mentioned in the context
- Organize information logically with clear flow between topics
- If discussing multiple aspects, address each one separately with proper spacing

Please provide a detailed, well-formatted response with clear paragraph breaks and proper line spacing:`

// RAGService answers questions over the vectorized documents: embed the
// query, fetch the top-k nearest chunks, and hand them to the generation
// backend as context.
type RAGService struct {
	embedder Embedder
	vectorDB database.VectorStore
	ai       AIService
}

func NewRAGService(embedder Embedder, vectorDB database.VectorStore, ai AIService) *RAGService {
	return &RAGService{
		embedder: embedder,
		vectorDB: vectorDB,
		ai:       ai,
	}
}

// Retrieve returns the topK most similar chunks for the query, optionally
// restricted to one document. No matches is not an error.
func (s *RAGService) Retrieve(ctx context.Context, query string, topK int, filenameFilter string) ([]types.RetrievedChunk, error) {
	prepared := PrepareQuery(query)
	vector, err := s.embedder.Embed(ctx, prepared)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := s.vectorDB.Query(ctx, vector, topK, filenameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to query vector store: %w", err)
	}
	return chunks, nil
}

// GenerateAnswer asks the generation backend to answer from the retrieved
// chunks. Generation failures are swallowed into a readable fallback answer
// instead of propagating.
func (s *RAGService) GenerateAnswer(ctx context.Context, query string, documents []types.RetrievedChunk) string {
	answer, err := s.ai.Chat(ctx, buildAnswerMessages(query, documents))
	if err != nil {
		log.Printf("Error generating answer: %v", err)
		return fmt.Sprintf("Sorry, I encountered an error while generating the answer: %v", err)
	}
	return answer
}

// Ask is the full question-answering flow. Zero retrieved chunks short-
// circuits to a fixed message without touching the generation backend.
func (s *RAGService) Ask(ctx context.Context, question, filename string) (*types.AskResponse, error) {
	documents, err := s.Retrieve(ctx, question, DefaultTopK, filename)
	if err != nil {
		return nil, err
	}

	if len(documents) == 0 {
		return &types.AskResponse{
			Answer:  noDocumentsMessage(filename),
			Sources: []types.SourceInfo{},
		}, nil
	}

	answer := s.GenerateAnswer(ctx, question, documents)

	return &types.AskResponse{
		Answer:  answer,
		Sources: buildSources(documents),
	}, nil
}

// AskStream is Ask with the answer streamed through handler token by token.
// The returned sources cover the same retrieved chunks the stream was
// generated from.
func (s *RAGService) AskStream(ctx context.Context, question, filename string, handler types.StreamHandler) ([]types.SourceInfo, error) {
	documents, err := s.Retrieve(ctx, question, DefaultTopK, filename)
	if err != nil {
		return nil, err
	}

	if len(documents) == 0 {
		handler(noDocumentsMessage(filename))
		return []types.SourceInfo{}, nil
	}

	if err := s.ai.ChatStream(ctx, buildAnswerMessages(question, documents), handler); err != nil {
		return nil, err
	}
	return buildSources(documents), nil
}

func buildAnswerMessages(query string, documents []types.RetrievedChunk) []types.Message {
	parts := make([]string, 0, len(documents))
	for _, doc := range documents {
		parts = append(parts, fmt.Sprintf("Document: %s\nContent: %s", doc.Filename, doc.Text))
	}
	contextBlock := strings.Join(parts, "\n\n")

	return []types.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(answerPromptTemplate, contextBlock, query)},
	}
}

func buildSources(documents []types.RetrievedChunk) []types.SourceInfo {
	sources := make([]types.SourceInfo, 0, len(documents))
	for _, doc := range documents {
		sources = append(sources, types.SourceInfo{
			Filename:    doc.Filename,
			TextSnippet: doc.Metadata.TextSnippet,
			Score:       doc.Score,
			SourceURL:   doc.Metadata.SourceURL,
			PageCount:   doc.Metadata.PageCount,
			ChunkIndex:  doc.Metadata.ChunkIndex,
		})
	}
	return sources
}

func noDocumentsMessage(filename string) string {
	filterMsg := ""
	if filename != "" {
		filterMsg = fmt.Sprintf(" from '%s'", filename)
	}
	return fmt.Sprintf("I couldn't find any relevant documents%s to answer your question. Please make sure you have uploaded and vectorized some PDF documents first.", filterMsg)
}
