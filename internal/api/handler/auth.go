package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/api/middleware"
	"github.com/nicopeltier/title4pix/internal/config"
)

// sessionMaxAge keeps a login valid for seven days.
const sessionMaxAge = 7 * 24 * 60 * 60

// AuthHandler handles the shared-password login gate.
type AuthHandler struct {
	cfg config.AuthConfig
}

// NewAuthHandler creates a new auth handler.
// Parameters:
//   - cfg: password and session token configuration.
// Returns:
//   - *AuthHandler: initialized handler.
func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login. A correct password sets the
// session cookie; anything else answers 401.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Password)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe incorrect"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, h.cfg.SessionToken, sessionMaxAge, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout handles DELETE /api/v1/auth/logout by expiring the session cookie.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
