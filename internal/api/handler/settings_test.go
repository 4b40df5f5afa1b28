package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/domain"
)

type memSettingsStore struct {
	settings   *domain.Settings
	lastFields map[string]interface{}
}

func (m *memSettingsStore) Find(ctx context.Context) (*domain.Settings, error) {
	return m.settings, nil
}

func (m *memSettingsStore) Get(ctx context.Context) (*domain.Settings, error) {
	if m.settings == nil {
		m.settings = domain.DefaultSettings()
	}
	return m.settings, nil
}

func (m *memSettingsStore) Update(ctx context.Context, fields map[string]interface{}) (*domain.Settings, error) {
	m.lastFields = fields
	return m.Get(ctx)
}

func (m *memSettingsStore) SetThemes(ctx context.Context, themes []string) error {
	if _, err := m.Get(ctx); err != nil {
		return err
	}
	m.settings.Themes = domain.StringList(themes)
	return nil
}

func newSettingsTestRouter() (*gin.Engine, *memSettingsStore) {
	gin.SetMode(gin.TestMode)
	store := &memSettingsStore{}
	h := NewSettingsHandler(store)

	r := gin.New()
	r.PUT("/settings", h.Update)
	return r, store
}

func putSettings(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSettingsUpdatePartialFields(t *testing.T) {
	r, store := newSettingsTestRouter()

	w := putSettings(t, r, `{"title_min_chars": 10, "instructions": "Ton sobre"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := store.lastFields["title_min_chars"]; got != 10 {
		t.Errorf("title_min_chars = %v, want 10", got)
	}
	if got := store.lastFields["instructions"]; got != "Ton sobre" {
		t.Errorf("instructions = %v, want %q", got, "Ton sobre")
	}
	if _, ok := store.lastFields["title_max_chars"]; ok {
		t.Error("absent field was written")
	}
}

// The theme catalog is writable here too, even though each assignment run
// overwrites it wholesale.
func TestSettingsUpdateAcceptsThemes(t *testing.T) {
	r, store := newSettingsTestRouter()

	w := putSettings(t, r, `{"themes": ["Nature", "Ville"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	got, ok := store.lastFields["themes"].(domain.StringList)
	if !ok {
		t.Fatalf("themes field = %T, want domain.StringList", store.lastFields["themes"])
	}
	if len(got) != 2 || got[0] != "Nature" || got[1] != "Ville" {
		t.Errorf("themes = %v, want [Nature Ville]", got)
	}
}

func TestSettingsUpdateRejectsEmptyBody(t *testing.T) {
	r, store := newSettingsTestRouter()

	w := putSettings(t, r, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if store.lastFields != nil {
		t.Errorf("store written despite empty body: %v", store.lastFields)
	}
}
