package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pdf-rag-be/service"
	"pdf-rag-be/types"
)

type AskHandler struct {
	rag *service.RAGService
}

func NewAskHandler(rag *service.RAGService) *AskHandler {
	return &AskHandler{
		rag: rag,
	}
}

// AskHandler answers a question over the vectorized documents, optionally
// restricted to one filename.
func (h *AskHandler) AskHandler(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Question text is required",
		})
		return
	}

	resp, err := h.rag.Ask(c.Request.Context(), req.Text, req.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  "error",
			Message: "Error generating answer: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
