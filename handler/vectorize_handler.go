package handler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pdf-rag-be/repository"
	"pdf-rag-be/service"
	"pdf-rag-be/types"
)

type VectorizeHandler struct {
	storage service.ObjectStorage
	pdf     *service.PDFService
	ingest  *service.IngestService
	docRepo repository.DocumentRepository
}

func NewVectorizeHandler(
	storage service.ObjectStorage,
	pdf *service.PDFService,
	ingest *service.IngestService,
	docRepo repository.DocumentRepository,
) *VectorizeHandler {
	return &VectorizeHandler{
		storage: storage,
		pdf:     pdf,
		ingest:  ingest,
		docRepo: docRepo,
	}
}

// ExtractHandler downloads a stored PDF and returns its per-page text
// without touching the vector index or the document status.
func (h *VectorizeHandler) ExtractHandler(c *gin.Context) {
	filename := c.Param("filename")
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Only PDF files are allowed. Please upload a .pdf file.",
		})
		return
	}

	doc, err := h.docRepo.Get(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: fmt.Sprintf("Document '%s' not found", filename),
		})
		return
	}

	data, err := h.storage.Download(c.Request.Context(), doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: fmt.Sprintf("Stored file for '%s' is missing: %v", filename, err),
		})
		return
	}

	pages, err := h.pdf.ExtractPages(data, filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.ExtractResponse{
			Filename:    filename,
			PageCount:   len(pages),
			TextContent: pages,
		},
	})
}

// VectorizeHandler runs the full pipeline for one stored document: mark it
// processing, extract per-page text, embed and upsert the chunks, then mark
// it vectorized. Any failure marks the document as errored instead.
func (h *VectorizeHandler) VectorizeHandler(c *gin.Context) {
	filename := c.Param("filename")
	ctx := c.Request.Context()

	doc, err := h.docRepo.Get(ctx, filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: fmt.Sprintf("Document '%s' not found", filename),
		})
		return
	}

	if err := h.docRepo.UpdateStatus(ctx, filename, types.DOC_STATUS_PROCESSING, nil); err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	data, err := h.storage.Download(ctx, doc.StoragePath)
	if err != nil {
		h.markError(ctx, filename, err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	pages, err := h.pdf.ExtractPages(data, filename)
	if err != nil {
		h.markError(ctx, filename, err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	textLength := 0
	for _, page := range pages {
		textLength += len(page)
	}

	meta := types.DocumentMeta{
		Filename:      filename,
		SourceURL:     h.storage.PublicURL(doc.StoragePath),
		PageCount:     len(pages),
		ProcessedDate: time.Now().Format(time.RFC3339),
	}

	result, err := h.ingest.Ingest(ctx, pages, meta)
	if err != nil {
		h.markError(ctx, filename, err)
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	if err := h.docRepo.UpdateStatus(ctx, filename, types.DOC_STATUS_VECTORIZED, map[string]interface{}{
		"vectorized_at": time.Now().Unix(),
		"page_count":    len(pages),
		"text_length":   textLength,
		"chunk_count":   result.VectorsCreated,
	}); err != nil {
		// Vectors are stored; only the registry row is stale.
		log.Printf("Error marking '%s' as vectorized: %v", filename, err)
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status:  "success",
		Message: fmt.Sprintf("Successfully vectorized %s", filename),
		Data: types.VectorizeResponse{
			Filename:       filename,
			VectorsCreated: result.VectorsCreated,
			PageCount:      len(pages),
			TextLength:     textLength,
			ChunkCount:     result.VectorsCreated,
		},
	})
}

// markError flips the document to error status best effort. The pipeline
// failure is what the caller sees, not a failure of this bookkeeping.
func (h *VectorizeHandler) markError(ctx context.Context, filename string, cause error) {
	if err := h.docRepo.UpdateStatus(ctx, filename, types.DOC_STATUS_ERROR, map[string]interface{}{
		"error_message": cause.Error(),
	}); err != nil {
		log.Printf("Error marking '%s' as errored: %v", filename, err)
	}
}
