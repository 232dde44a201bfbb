package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	Filename      string `json:"filename"`
	DocumentID    string `json:"document_id"`
	StorageURL    string `json:"url"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	Status        string `json:"database_status"`
}

type FileListResponse struct {
	Files         []*Document `json:"files"`
	Count         int         `json:"count"`
	TotalFiles    int         `json:"total_files"`
	SearchTerm    string      `json:"search_term,omitempty"`
	ShowingRecent int         `json:"showing_recent,omitempty"`
}

type ExtractResponse struct {
	Filename    string   `json:"filename"`
	PageCount   int      `json:"page_count"`
	TextContent []string `json:"text_content"`
}

type VectorizeResponse struct {
	Filename       string `json:"filename"`
	VectorsCreated int    `json:"vectors_created"`
	PageCount      int    `json:"page_count"`
	TextLength     int    `json:"text_length"`
	ChunkCount     int    `json:"chunk_count"`
}

// SourceInfo is one entry of the sources list returned next to an answer.
type SourceInfo struct {
	Filename    string  `json:"filename"`
	TextSnippet string  `json:"text_snippet"`
	Score       float32 `json:"score"`
	SourceURL   string  `json:"source_url,omitempty"`
	PageCount   int     `json:"page_count,omitempty"`
	ChunkIndex  int     `json:"chunk_index"`
}

type AskResponse struct {
	Answer  string       `json:"answer"`
	Sources []SourceInfo `json:"sources"`
}
