package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/service"
)

// PhotoHandler handles photo catalog and per-photo endpoints.
type PhotoHandler struct {
	photos *service.PhotoService
}

// NewPhotoHandler creates a new photo handler.
// Parameters:
//   - photos: photo catalog service.
// Returns:
//   - *PhotoHandler: initialized handler.
func NewPhotoHandler(photos *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// List handles GET /api/v1/photos.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PhotoHandler) List(c *gin.Context) {
	entries, err := h.photos.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"photos": entries,
		"total":  len(entries),
	})
}

// Get handles GET /api/v1/photos/:filename.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PhotoHandler) Get(c *gin.Context) {
	photo, err := h.photos.Get(c.Request.Context(), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

type photoUpdateRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Transcription *string `json:"transcription"`
	Theme         *string `json:"theme"`
	FixedTheme    *string `json:"fixed_theme"`
}

// Update handles PUT /api/v1/photos/:filename. Only the fields present in
// the body are written; absent fields keep their stored value.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PhotoHandler) Update(c *gin.Context) {
	var req photoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide: " + err.Error()})
		return
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Transcription != nil {
		fields["transcription"] = *req.Transcription
	}
	if req.Theme != nil {
		fields["theme"] = *req.Theme
	}
	if req.FixedTheme != nil {
		fields["fixed_theme"] = *req.FixedTheme
	}

	photo, err := h.photos.Update(c.Request.Context(), c.Param("filename"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photo)
}

// Image handles GET /api/v1/photos/:filename/image, serving the raw bytes.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes binary response).
func (h *PhotoHandler) Image(c *gin.Context) {
	data, contentType, err := h.photos.ImageBytes(c.Request.Context(), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}

// GetAudio handles GET /api/v1/photos/:filename/audio.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes binary response).
func (h *PhotoHandler) GetAudio(c *gin.Context) {
	data, contentType, err := h.photos.AudioBytes(c.Request.Context(), c.Param("filename"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

// PostAudio handles POST /api/v1/photos/:filename/audio, replacing the
// photo's voice note with the raw request body.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PhotoHandler) PostAudio(c *gin.Context) {
	// Read one byte past the cap so the service can tell an oversized body
	// from one at exactly the limit and reject it instead of truncating.
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, service.MaxAudioSizeBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture du corps impossible: " + err.Error()})
		return
	}

	key, err := h.photos.SaveAudio(c.Request.Context(), c.Param("filename"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "audio_key": key})
}

// Usage handles GET /api/v1/usage.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PhotoHandler) Usage(c *gin.Context) {
	in, out, cost, err := h.photos.UsageTotals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"input_tokens":   in,
		"output_tokens":  out,
		"estimated_cost": cost,
	})
}
