package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/service"
)

// GenerateHandler handles the metadata generation endpoint.
type GenerateHandler struct {
	generate *service.GenerateService
}

// NewGenerateHandler creates a new generate handler.
// Parameters:
//   - generate: generation pipeline service.
// Returns:
//   - *GenerateHandler: initialized handler.
func NewGenerateHandler(generate *service.GenerateService) *GenerateHandler {
	return &GenerateHandler{generate: generate}
}

type generateRequest struct {
	Filename      string `json:"filename" binding:"required"`
	Transcription string `json:"transcription" binding:"required"`
}

// Generate handles POST /api/v1/generate.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename et transcription requis"})
		return
	}

	result, err := h.generate.Generate(c.Request.Context(), req.Filename, req.Transcription)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
