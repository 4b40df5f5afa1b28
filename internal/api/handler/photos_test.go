package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/service"
	"github.com/nicopeltier/title4pix/internal/usage"
)

type memObjectStore struct {
	objects map[string][]byte
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: make(map[string][]byte)}
}

func (m *memObjectStore) EnsureBucket(ctx context.Context) error { return nil }

func (m *memObjectStore) ListByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range m.objects {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *memObjectStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memObjectStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("NoSuchKey: %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memObjectStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

type memPhotoStore struct {
	records map[string]*domain.Photo
}

func newMemPhotoStore() *memPhotoStore {
	return &memPhotoStore{records: make(map[string]*domain.Photo)}
}

func (m *memPhotoStore) FindByFilename(ctx context.Context, filename string) (*domain.Photo, error) {
	return m.records[filename], nil
}

func (m *memPhotoStore) ListMeta(ctx context.Context, filenames []string) ([]domain.PhotoMeta, error) {
	var meta []domain.PhotoMeta
	for _, name := range filenames {
		if p, ok := m.records[name]; ok {
			meta = append(meta, domain.PhotoMeta{Filename: p.Filename, Title: p.Title, Description: p.Description})
		}
	}
	return meta, nil
}

func (m *memPhotoStore) UpsertFields(ctx context.Context, filename string, fields map[string]interface{}) (*domain.Photo, error) {
	photo, ok := m.records[filename]
	if !ok {
		photo = &domain.Photo{Filename: filename}
		m.records[filename] = photo
	}
	if v, ok := fields["audio_key"].(string); ok {
		photo.AudioKey = v
	}
	if v, ok := fields["title"].(string); ok {
		photo.Title = v
	}
	return photo, nil
}

func (m *memPhotoStore) TotalUsage(ctx context.Context) (int64, int64, error) {
	var in, out int64
	for _, p := range m.records {
		in += p.InputTokens
		out += p.OutputTokens
	}
	return in, out, nil
}

func newAudioTestRouter() (*gin.Engine, *memObjectStore, *memPhotoStore) {
	gin.SetMode(gin.TestMode)
	objects := newMemObjectStore()
	store := newMemPhotoStore()
	svc := service.NewPhotoService(store, objects, usage.Pricing{InputPerMillion: 3.0, OutputPerMillion: 15.0, FXRate: 1.0}, nil)
	h := NewPhotoHandler(svc)

	r := gin.New()
	r.POST("/photos/:filename/audio", h.PostAudio)
	return r, objects, store
}

func TestPostAudioStoresRecording(t *testing.T) {
	r, objects, store := newAudioTestRouter()
	objects.objects["photos/dune.jpg"] = []byte("img")

	body := bytes.NewReader([]byte("webm bytes"))
	req := httptest.NewRequest(http.MethodPost, "/photos/dune.jpg/audio", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if got := string(objects.objects["audio/dune.webm"]); got != "webm bytes" {
		t.Errorf("stored recording = %q, want %q", got, "webm bytes")
	}
	if store.records["dune.jpg"].AudioKey != "audio/dune.webm" {
		t.Errorf("audio key = %q, want %q", store.records["dune.jpg"].AudioKey, "audio/dune.webm")
	}
}

// A body over the size cap must get a 400, not a 200 with a silently
// truncated recording in the bucket.
func TestPostAudioRejectsOversizedBody(t *testing.T) {
	r, objects, _ := newAudioTestRouter()
	objects.objects["photos/dune.jpg"] = []byte("img")

	body := bytes.NewReader(make([]byte, service.MaxAudioSizeBytes+4096))
	req := httptest.NewRequest(http.MethodPost, "/photos/dune.jpg/audio", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
	}
	if _, ok := objects.objects["audio/dune.webm"]; ok {
		t.Error("truncated recording was stored")
	}
}
