package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pdf-rag-be/repository"
	"pdf-rag-be/service"
	"pdf-rag-be/types"
	"pdf-rag-be/utils"
)

const maxUploadSize = 50 << 20 // 50MB

type UploadHandler struct {
	storage service.ObjectStorage
	docRepo repository.DocumentRepository
}

func NewUploadHandler(storage service.ObjectStorage, docRepo repository.DocumentRepository) *UploadHandler {
	return &UploadHandler{
		storage: storage,
		docRepo: docRepo,
	}
}

// UploadDocumentHandler accepts one PDF file via multipart form, stores its
// bytes in object storage and registers the document as uploaded.
func (h *UploadHandler) UploadDocumentHandler(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid file",
		})
		return
	}
	defer file.Close()

	filename := utils.SanitizeFilename(header.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Only PDF files are allowed. Please upload a .pdf file.",
		})
		return
	}

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "File too large",
		})
		return
	}

	existing, err := h.docRepo.Get(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: fmt.Sprintf("Document '%s' already exists in the system.", filename),
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Failed to read uploaded file",
		})
		return
	}

	if err := h.storage.EnsureBucket(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	if err := h.storage.Upload(c.Request.Context(), filename, data, "application/pdf"); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	doc := &types.Document{
		ID:          uuid.New().String(),
		Filename:    filename,
		FileSize:    int64(len(data)),
		MimeType:    "application/pdf",
		StoragePath: filename,
		StorageURL:  h.storage.PublicURL(filename),
		Status:      types.DOC_STATUS_UPLOADED,
		UploadedAt:  time.Now().Unix(),
	}
	if err := h.docRepo.Create(c.Request.Context(), doc); err != nil {
		// Bytes are already stored; a failed registry insert leaves an
		// orphan object that a later re-upload simply overwrites.
		log.Printf("Error registering document '%s': %v", filename, err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status:  "success",
		Message: fmt.Sprintf("Successfully uploaded %s", filename),
		Data: types.UploadResponse{
			Filename:      filename,
			DocumentID:    doc.ID,
			StorageURL:    doc.StorageURL,
			FileSizeBytes: doc.FileSize,
			Status:        doc.Status,
		},
	})
}
