package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/service"
)

// PdfHandler handles the reference document endpoints.
type PdfHandler struct {
	pdfs *service.PdfService
}

// NewPdfHandler creates a new pdf handler.
// Parameters:
//   - pdfs: reference document service.
// Returns:
//   - *PdfHandler: initialized handler.
func NewPdfHandler(pdfs *service.PdfService) *PdfHandler {
	return &PdfHandler{pdfs: pdfs}
}

// List handles GET /api/v1/pdfs.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PdfHandler) List(c *gin.Context) {
	pdfs, err := h.pdfs.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pdfs": pdfs})
}

// Upload handles POST /api/v1/pdfs. The document arrives as the multipart
// form field "file".
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PdfHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fichier requis"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture du fichier impossible: " + err.Error()})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxPdfSizeBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture du fichier impossible: " + err.Error()})
		return
	}

	pdf, err := h.pdfs.Upload(c.Request.Context(), file.Filename, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pdf)
}

// Delete handles DELETE /api/v1/pdfs/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PdfHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return
	}

	if err := h.pdfs.Remove(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
