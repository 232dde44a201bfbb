package types

const (
	DOC_STATUS_UPLOADED   = "uploaded"
	DOC_STATUS_PROCESSING = "processing"
	DOC_STATUS_VECTORIZED = "vectorized"
	DOC_STATUS_ERROR      = "error"
)

// Document is the registry record for an uploaded PDF. Status moves
// uploaded -> processing -> vectorized, or to error with the message attached.
type Document struct {
	ID           string `bson:"_id" json:"id"`
	Filename     string `bson:"filename" json:"filename"`
	FileSize     int64  `bson:"file_size" json:"file_size"`
	MimeType     string `bson:"mime_type" json:"mime_type"`
	StoragePath  string `bson:"storage_path" json:"storage_path"`
	StorageURL   string `bson:"storage_url" json:"storage_url"`
	Status       string `bson:"status" json:"status"`
	ErrorMessage string `bson:"error_message,omitempty" json:"error_message,omitempty"`
	PageCount    int    `bson:"page_count,omitempty" json:"page_count,omitempty"`
	TextLength   int    `bson:"text_length,omitempty" json:"text_length,omitempty"`
	ChunkCount   int    `bson:"chunk_count,omitempty" json:"chunk_count,omitempty"`
	UploadedAt   int64  `bson:"uploaded_at" json:"uploaded_at"`
	VectorizedAt int64  `bson:"vectorized_at,omitempty" json:"vectorized_at,omitempty"`
}

// DocumentMeta is the caller-supplied metadata attached to every vector
// produced from one document.
type DocumentMeta struct {
	Filename      string `json:"filename"`
	SourceURL     string `json:"source_url"`
	PageCount     int    `json:"page_count"`
	ProcessedDate string `json:"processed_date"`
}

// DocumentStatistics aggregates the registry by status.
type DocumentStatistics struct {
	TotalDocuments int     `json:"total_documents"`
	Uploaded       int     `json:"uploaded"`
	Processing     int     `json:"processing"`
	Vectorized     int     `json:"vectorized"`
	Error          int     `json:"error"`
	TotalSizeMB    float64 `json:"total_size_mb"`
}
