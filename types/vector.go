package types

// ChunkMetadata is the flat metadata stored alongside each vector. Content
// holds the full chunk text so generation never works from a truncated
// preview; TextSnippet is the 100-character preview exposed in sources.
type ChunkMetadata struct {
	Filename      string `json:"filename"`
	SourceURL     string `json:"source_url"`
	PageCount     int    `json:"page_count"`
	ProcessedDate string `json:"processed_date"`
	ChunkIndex    int    `json:"chunk_index"`
	TotalChunks   int    `json:"total_chunks"`
	TextSnippet   string `json:"text_snippet"`
	Content       string `json:"content"`
}

// VectorRecord is one embedded chunk bound for the vector store. The ID is
// filename + chunk index + a random suffix so repeated ingestion of the same
// document never collides.
type VectorRecord struct {
	ID       string
	Values   []float32
	Metadata ChunkMetadata
}

// RetrievedChunk is one similarity-search hit. Score is cosine certainty,
// higher is more relevant.
type RetrievedChunk struct {
	Text     string
	Filename string
	Score    float32
	Metadata ChunkMetadata
}

// IngestResult summarises one ingestion run.
type IngestResult struct {
	VectorsCreated int    `json:"vectors_created"`
	Filename       string `json:"filename"`
}
