package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/service"
)

// SettingsHandler handles the settings endpoints.
type SettingsHandler struct {
	settings service.SettingsStore
}

// NewSettingsHandler creates a new settings handler.
// Parameters:
//   - settings: settings row access.
// Returns:
//   - *SettingsHandler: initialized handler.
func NewSettingsHandler(settings service.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/v1/settings, creating the row with defaults on first
// access.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type settingsUpdateRequest struct {
	TitleMinChars   *int      `json:"title_min_chars"`
	TitleMaxChars   *int      `json:"title_max_chars"`
	DescMinChars    *int      `json:"desc_min_chars"`
	DescMaxChars    *int      `json:"desc_max_chars"`
	Instructions    *string   `json:"instructions"`
	PhotographerURL *string   `json:"photographer_url"`
	Themes          *[]string `json:"themes"`
	FixedThemes     *[]string `json:"fixed_themes"`
}

// Update handles PUT /api/v1/settings. Only the fields present in the body
// are written. Sending themes overwrites the assigned catalog; the next
// theme assignment overwrites it again.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide: " + err.Error()})
		return
	}

	fields := make(map[string]interface{})
	if req.TitleMinChars != nil {
		fields["title_min_chars"] = *req.TitleMinChars
	}
	if req.TitleMaxChars != nil {
		fields["title_max_chars"] = *req.TitleMaxChars
	}
	if req.DescMinChars != nil {
		fields["desc_min_chars"] = *req.DescMinChars
	}
	if req.DescMaxChars != nil {
		fields["desc_max_chars"] = *req.DescMaxChars
	}
	if req.Instructions != nil {
		fields["instructions"] = *req.Instructions
	}
	if req.PhotographerURL != nil {
		fields["photographer_url"] = *req.PhotographerURL
	}
	if req.Themes != nil {
		fields["themes"] = domain.StringList(*req.Themes)
	}
	if req.FixedThemes != nil {
		fields["fixed_themes"] = domain.StringList(*req.FixedThemes)
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun champ à mettre à jour"})
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
