package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "t4p_session"

// SessionAuth returns a middleware that rejects requests whose session
// cookie does not carry the expected token. An empty expected token locks
// the API entirely rather than failing open.
// Parameters:
//   - sessionToken: the opaque value a logged-in session must present.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func SessionAuth(sessionToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || sessionToken == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(sessionToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Non autorisé"})
			return
		}
		c.Next()
	}
}
