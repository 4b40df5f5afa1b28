package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/logger"
	"github.com/nicopeltier/title4pix/internal/storage"
	"github.com/nicopeltier/title4pix/internal/usage"
)

const (
	// PhotoPrefix is the object storage prefix under which the collection lives.
	PhotoPrefix = "photos/"
	// AudioPrefix is the object storage prefix for voice note recordings.
	AudioPrefix = "audio/"

	// MaxAudioSizeBytes caps voice note uploads.
	MaxAudioSizeBytes = 25 * 1024 * 1024
)

// imageExtensions lists the file extensions treated as photos when scanning
// the storage bucket. Anything else under the prefix is ignored.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
}

// imageMimeTypes maps photo extensions to content types for serving.
var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

// PhotoStore is the subset of photo persistence the catalog operations need.
type PhotoStore interface {
	FindByFilename(ctx context.Context, filename string) (*domain.Photo, error)
	ListMeta(ctx context.Context, filenames []string) ([]domain.PhotoMeta, error)
	UpsertFields(ctx context.Context, filename string, fields map[string]interface{}) (*domain.Photo, error)
	TotalUsage(ctx context.Context) (int64, int64, error)
}

// PhotoService exposes the photo catalog: bucket listing joined with stored
// metadata, image bytes, voice note recordings, and collection usage totals.
type PhotoService struct {
	photos  PhotoStore
	storage storage.ObjectStorage
	pricing usage.Pricing
	logger  *logger.Logger
}

// NewPhotoService creates a new PhotoService.
// Parameters:
//   - photos: photo record store.
//   - objectStorage: bucket holding images and recordings.
//   - pricing: token pricing used for cost estimates.
//   - log: logger instance.
//
// Returns:
//   - *PhotoService: initialized service.
func NewPhotoService(photos PhotoStore, objectStorage storage.ObjectStorage, pricing usage.Pricing, log *logger.Logger) *PhotoService {
	return &PhotoService{
		photos:  photos,
		storage: objectStorage,
		pricing: pricing,
		logger:  log,
	}
}

// ListFilenames scans the bucket for photos and returns their filenames in
// case-insensitive alphabetical order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//
// Returns:
//   - []string: sorted photo filenames, without the prefix.
//   - error: non-nil if the bucket listing fails.
func (s *PhotoService) ListFilenames(ctx context.Context) ([]string, error) {
	keys, err := s.storage.ListByPrefix(ctx, PhotoPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	filenames := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, PhotoPrefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		if imageExtensions[strings.ToLower(path.Ext(name))] {
			filenames = append(filenames, name)
		}
	}
	sort.Slice(filenames, func(i, j int) bool {
		return strings.ToLower(filenames[i]) < strings.ToLower(filenames[j])
	})
	return filenames, nil
}

// Catalog lists the collection with per-photo completion flags, joining the
// bucket listing with stored metadata. Photos with no record yet appear with
// both flags false.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//
// Returns:
//   - []domain.CatalogEntry: one entry per photo, 1-based positions.
//   - error: non-nil if the listing or the metadata lookup fails.
func (s *PhotoService) Catalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	filenames, err := s.ListFilenames(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := s.photos.ListMeta(ctx, filenames)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo metadata: %w", err)
	}
	byName := make(map[string]domain.PhotoMeta, len(meta))
	for _, m := range meta {
		byName[m.Filename] = m
	}

	entries := make([]domain.CatalogEntry, len(filenames))
	for i, name := range filenames {
		m := byName[name]
		entries[i] = domain.CatalogEntry{
			Index:          i + 1,
			Filename:       name,
			HasTitle:       m.Title != "",
			HasDescription: m.Description != "",
		}
	}
	return entries, nil
}

// Get retrieves the full stored record for one photo, verifying the photo
// exists in the bucket. A photo with no record yet returns an empty record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: photo filename, without prefix.
//
// Returns:
//   - *domain.Photo: the record, zero-valued fields when never written.
//   - error: domain.ErrAssetNotFound if the photo is not in the bucket.
func (s *PhotoService) Get(ctx context.Context, filename string) (*domain.Photo, error) {
	if err := s.checkExists(ctx, filename); err != nil {
		return nil, err
	}
	photo, err := s.photos.FindByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		photo = &domain.Photo{Filename: filename}
	}
	return photo, nil
}

// Update applies manual edits to a photo's stored fields.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: photo filename, without prefix.
//   - fields: column-name keyed string values; must be non-empty.
//
// Returns:
//   - *domain.Photo: the record after the write.
//   - error: domain.ErrInvalidInput on an empty field set,
//     domain.ErrAssetNotFound if the photo is not in the bucket.
func (s *PhotoService) Update(ctx context.Context, filename string, fields map[string]interface{}) (*domain.Photo, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	if err := s.checkExists(ctx, filename); err != nil {
		return nil, err
	}
	return s.photos.UpsertFields(ctx, filename, fields)
}

// ImageBytes downloads a photo's raw bytes for AI calls or serving.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: photo filename, without prefix.
//
// Returns:
//   - []byte: the image data.
//   - string: the image content type.
//   - error: domain.ErrAssetNotFound if the photo is not in the bucket.
func (s *PhotoService) ImageBytes(ctx context.Context, filename string) ([]byte, string, error) {
	data, err := readObject(ctx, s.storage, PhotoPrefix+filename)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, "", fmt.Errorf("%w: photo %s", domain.ErrAssetNotFound, filename)
		}
		return nil, "", fmt.Errorf("failed to download photo %s: %w", filename, err)
	}
	return data, MimeTypeFor(filename), nil
}

// AudioBytes downloads a photo's voice note recording.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: photo filename the recording is attached to.
//
// Returns:
//   - []byte: the recording data.
//   - string: the recording content type.
//   - error: domain.ErrAssetNotFound if no recording is stored.
func (s *PhotoService) AudioBytes(ctx context.Context, filename string) ([]byte, string, error) {
	photo, err := s.photos.FindByFilename(ctx, filename)
	if err != nil {
		return nil, "", err
	}
	if photo == nil || photo.AudioKey == "" {
		return nil, "", fmt.Errorf("%w: no recording for %s", domain.ErrAssetNotFound, filename)
	}
	data, err := readObject(ctx, s.storage, photo.AudioKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, "", fmt.Errorf("%w: recording for %s", domain.ErrAssetNotFound, filename)
		}
		return nil, "", fmt.Errorf("failed to download recording for %s: %w", filename, err)
	}
	return data, "audio/webm", nil
}

// SaveAudio stores a voice note recording for a photo, replacing any
// previous one. The old object is deleted best effort; a stale object in the
// bucket is harmless since the record points at the new key.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: photo filename the recording belongs to.
//   - data: recording bytes, webm encoded.
//
// Returns:
//   - string: the stored object key.
//   - error: domain.ErrInvalidInput on empty or oversized data,
//     domain.ErrAssetNotFound if the photo is not in the bucket.
func (s *PhotoService) SaveAudio(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty recording", domain.ErrInvalidInput)
	}
	if len(data) > MaxAudioSizeBytes {
		return "", fmt.Errorf("%w: recording exceeds %d bytes", domain.ErrInvalidInput, MaxAudioSizeBytes)
	}
	if err := s.checkExists(ctx, filename); err != nil {
		return "", err
	}

	photo, err := s.photos.FindByFilename(ctx, filename)
	if err != nil {
		return "", err
	}
	var oldKey string
	if photo != nil {
		oldKey = photo.AudioKey
	}

	base := strings.TrimSuffix(filename, path.Ext(filename))
	key := AudioPrefix + base + ".webm"
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "audio/webm"); err != nil {
		return "", fmt.Errorf("failed to upload recording for %s: %w", filename, err)
	}
	if _, err := s.photos.UpsertFields(ctx, filename, map[string]interface{}{"audio_key": key}); err != nil {
		return "", err
	}

	if oldKey != "" && oldKey != key {
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			logger.CtxWarn(ctx, "Failed to delete previous recording: key=%s, error=%v", oldKey, err)
		}
	}
	return key, nil
}

// UsageTotals aggregates the collection's cumulative token spend and an
// estimated cost at the configured pricing.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//
// Returns:
//   - int64: total input tokens.
//   - int64: total output tokens.
//   - float64: estimated cost in the configured currency.
//   - error: non-nil if the aggregation fails.
func (s *PhotoService) UsageTotals(ctx context.Context) (int64, int64, float64, error) {
	in, out, err := s.photos.TotalUsage(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	return in, out, usage.EstimateCost(in, out, s.pricing), nil
}

func (s *PhotoService) checkExists(ctx context.Context, filename string) error {
	exists, err := s.storage.Exists(ctx, PhotoPrefix+filename)
	if err != nil {
		return fmt.Errorf("failed to check photo %s: %w", filename, err)
	}
	if !exists {
		return fmt.Errorf("%w: photo %s", domain.ErrAssetNotFound, filename)
	}
	return nil
}

// readObject downloads an object fully into memory.
func readObject(ctx context.Context, store storage.ObjectStorage, key string) ([]byte, error) {
	rc, err := store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// MimeTypeFor maps a photo filename to its content type. Unknown extensions
// fall back to octet-stream; the catalog filter keeps them out of the AI
// paths anyway.
func MimeTypeFor(filename string) string {
	if mime, ok := imageMimeTypes[strings.ToLower(path.Ext(filename))]; ok {
		return mime
	}
	return "application/octet-stream"
}
