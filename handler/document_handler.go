package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pdf-rag-be/repository"
	"pdf-rag-be/types"
)

const defaultListLimit = 50

type DocumentHandler struct {
	docRepo repository.DocumentRepository
}

func NewDocumentHandler(docRepo repository.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{
		docRepo: docRepo,
	}
}

// ListFilesHandler returns registered documents newest first. `search`
// filters by case-insensitive substring match on the filename and `limit`
// caps the returned slice.
func (h *DocumentHandler) ListFilesHandler(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  "error",
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}
	search := strings.TrimSpace(c.Query("search"))

	docs, err := h.docRepo.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	if search != "" {
		filtered := make([]*types.Document, 0, len(docs))
		lowered := strings.ToLower(search)
		for _, doc := range docs {
			if strings.Contains(strings.ToLower(doc.Filename), lowered) {
				filtered = append(filtered, doc)
			}
		}
		docs = filtered
	}

	total := len(docs)
	if len(docs) > limit {
		docs = docs[:limit]
	}
	if docs == nil {
		docs = []*types.Document{}
	}

	resp := types.FileListResponse{
		Files:      docs,
		Count:      len(docs),
		TotalFiles: total,
		SearchTerm: search,
	}
	if search == "" && total > limit {
		resp.ShowingRecent = limit
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   resp,
	})
}

// DeleteFileHandler removes the registry entry of a document. The stored
// bytes and the vectors remain untouched.
func (h *DocumentHandler) DeleteFileHandler(c *gin.Context) {
	filename := c.Param("filename")

	deleted, err := h.docRepo.Delete(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  "error",
			Message: fmt.Sprintf("Document '%s' not found", filename),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status:  "success",
		Message: fmt.Sprintf("Deleted document '%s'", filename),
	})
}

func (h *DocumentHandler) StatisticsHandler(c *gin.Context) {
	stats, err := h.docRepo.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   stats,
	})
}
