package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/service"
)

// ExportHandler handles the spreadsheet export endpoint.
type ExportHandler struct {
	export *service.ExportService
}

// NewExportHandler creates a new export handler.
// Parameters:
//   - export: export rendering service.
// Returns:
//   - *ExportHandler: initialized handler.
func NewExportHandler(export *service.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// Export handles GET /api/v1/export?format=tsv|xlsx.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes file download response).
func (h *ExportHandler) Export(c *gin.Context) {
	file, err := h.export.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
