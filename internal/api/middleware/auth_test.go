package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthTestRouter(sessionToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionAuth(sessionToken))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	tests := []struct {
		name       string
		expected   string
		cookie     string
		sendCookie bool
		wantStatus int
	}{
		{name: "valid session", expected: "tok-123", cookie: "tok-123", sendCookie: true, wantStatus: http.StatusOK},
		{name: "wrong token", expected: "tok-123", cookie: "tok-456", sendCookie: true, wantStatus: http.StatusUnauthorized},
		{name: "missing cookie", expected: "tok-123", sendCookie: false, wantStatus: http.StatusUnauthorized},
		{name: "empty expected token locks out", expected: "", cookie: "", sendCookie: true, wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthTestRouter(tc.expected)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.sendCookie {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}
