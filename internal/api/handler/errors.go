package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/logger"
)

// respondError maps a service error to an HTTP status and writes it as a
// JSON error body. Messages pass through verbatim so the frontend can show
// them.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyCollection):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrAssetNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logger.CtxError(c.Request.Context(), "Request failed: method=%s, path=%s, error=%v",
			c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
