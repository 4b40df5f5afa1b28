package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/service"
)

// ThemeHandler handles the collection partitioning endpoint.
type ThemeHandler struct {
	themes *service.ThemeService
}

// NewThemeHandler creates a new theme handler.
// Parameters:
//   - themes: theme partitioning service.
// Returns:
//   - *ThemeHandler: initialized handler.
func NewThemeHandler(themes *service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

type themeAssignRequest struct {
	NumThemes int `json:"num_themes"`
}

// Assign handles POST /api/v1/themes/assign.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ThemeHandler) Assign(c *gin.Context) {
	var req themeAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "num_themes requis"})
		return
	}

	result, err := h.themes.Assign(c.Request.Context(), req.NumThemes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
