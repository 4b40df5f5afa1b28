package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/nicopeltier/title4pix/internal/ai"
	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/usage"
)

// errNoSuchKey matches what S3-compatible services return for missing keys.
var errNoSuchKey = errors.New("NoSuchKey: the specified key does not exist")

// fakeStorage is an in-memory ObjectStorage for tests.
type fakeStorage struct {
	objects map[string][]byte
	deleted []string
	failOn  map[string]error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects: make(map[string][]byte),
		failOn:  make(map[string]error),
	}
}

func (f *fakeStorage) EnsureBucket(_ context.Context) error {
	return nil
}

func (f *fakeStorage) ListByPrefix(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if err := f.failOn[key]; err != nil {
		return err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	if err := f.failOn[key]; err != nil {
		return nil, err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errNoSuchKey
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	if err := f.failOn[key]; err != nil {
		return err
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

// fakePhotoStore is an in-memory photo record store covering every store
// interface the services consume.
type fakePhotoStore struct {
	records map[string]*domain.Photo
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{records: make(map[string]*domain.Photo)}
}

func (f *fakePhotoStore) get(filename string) *domain.Photo {
	if p, ok := f.records[filename]; ok {
		return p
	}
	p := &domain.Photo{Filename: filename}
	f.records[filename] = p
	return p
}

func (f *fakePhotoStore) FindByFilename(_ context.Context, filename string) (*domain.Photo, error) {
	p, ok := f.records[filename]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePhotoStore) ListMeta(_ context.Context, filenames []string) ([]domain.PhotoMeta, error) {
	var meta []domain.PhotoMeta
	for _, name := range filenames {
		if p, ok := f.records[name]; ok {
			meta = append(meta, domain.PhotoMeta{Filename: p.Filename, Title: p.Title, Description: p.Description})
		}
	}
	return meta, nil
}

func (f *fakePhotoStore) ListByFilenames(_ context.Context, filenames []string) ([]domain.Photo, error) {
	var photos []domain.Photo
	for _, name := range filenames {
		if p, ok := f.records[name]; ok {
			photos = append(photos, *p)
		}
	}
	return photos, nil
}

func (f *fakePhotoStore) UpsertFields(_ context.Context, filename string, fields map[string]interface{}) (*domain.Photo, error) {
	p := f.get(filename)
	for key, value := range fields {
		str := value.(string)
		switch key {
		case "title":
			p.Title = str
		case "description":
			p.Description = str
		case "transcription":
			p.Transcription = str
		case "theme":
			p.Theme = str
		case "fixed_theme":
			p.FixedTheme = str
		case "audio_key":
			p.AudioKey = str
		}
	}
	copied := *p
	return &copied, nil
}

func (f *fakePhotoStore) ApplyGeneration(_ context.Context, filename, title, description, transcription string, deltaInput, deltaOutput int64) (*domain.Photo, error) {
	p := f.get(filename)
	p.Title = title
	p.Description = description
	p.Transcription = transcription
	p.InputTokens, p.OutputTokens = usage.Accumulate(p.InputTokens, p.OutputTokens, deltaInput, deltaOutput)
	copied := *p
	return &copied, nil
}

func (f *fakePhotoStore) BatchAssignThemes(_ context.Context, assignments map[string]string) error {
	for filename, theme := range assignments {
		f.get(filename).Theme = theme
	}
	return nil
}

func (f *fakePhotoStore) BatchIncrementUsage(_ context.Context, filenames []string, perInput, perOutput int64) error {
	for _, name := range filenames {
		p := f.get(name)
		p.InputTokens, p.OutputTokens = usage.Accumulate(p.InputTokens, p.OutputTokens, perInput, perOutput)
	}
	return nil
}

func (f *fakePhotoStore) TotalUsage(_ context.Context) (int64, int64, error) {
	var in, out int64
	for _, p := range f.records {
		in += p.InputTokens
		out += p.OutputTokens
	}
	return in, out, nil
}

// fakeSettingsStore holds one optional settings row.
type fakeSettingsStore struct {
	settings    *domain.Settings
	savedThemes []string
}

func (f *fakeSettingsStore) Find(_ context.Context) (*domain.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsStore) Get(_ context.Context) (*domain.Settings, error) {
	if f.settings == nil {
		f.settings = domain.DefaultSettings()
	}
	return f.settings, nil
}

func (f *fakeSettingsStore) Update(_ context.Context, fields map[string]interface{}) (*domain.Settings, error) {
	if _, err := f.Get(context.Background()); err != nil {
		return nil, err
	}
	if themes, ok := fields["themes"].(domain.StringList); ok {
		f.settings.Themes = themes
	}
	return f.settings, nil
}

func (f *fakeSettingsStore) SetThemes(_ context.Context, themes []string) error {
	f.savedThemes = themes
	if f.settings != nil {
		f.settings.Themes = domain.StringList(themes)
	}
	return nil
}

// fakePdfRegistry holds document records in memory.
type fakePdfRegistry struct {
	pdfs   []domain.Pdf
	nextID uint
}

func (f *fakePdfRegistry) List(_ context.Context) ([]domain.Pdf, error) {
	return append([]domain.Pdf{}, f.pdfs...), nil
}

func (f *fakePdfRegistry) Count(_ context.Context) (int64, error) {
	return int64(len(f.pdfs)), nil
}

func (f *fakePdfRegistry) Create(_ context.Context, pdf *domain.Pdf) error {
	f.nextID++
	pdf.ID = f.nextID
	f.pdfs = append(f.pdfs, *pdf)
	return nil
}

func (f *fakePdfRegistry) FindByID(_ context.Context, id uint) (*domain.Pdf, error) {
	for i := range f.pdfs {
		if f.pdfs[i].ID == id {
			copied := f.pdfs[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePdfRegistry) Delete(_ context.Context, id uint) error {
	for i := range f.pdfs {
		if f.pdfs[i].ID == id {
			f.pdfs = append(f.pdfs[:i], f.pdfs[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeCompleter returns a canned response and captures the request.
type fakeCompleter struct {
	response ai.Response
	err      error
	lastReq  ai.Request
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.Request) (ai.Response, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return ai.Response{}, f.err
	}
	return f.response, nil
}
