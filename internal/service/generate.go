package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nicopeltier/title4pix/internal/ai"
	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/logger"
	"github.com/nicopeltier/title4pix/internal/storage"
)

// PdfPrefix is the object storage prefix for reference documents.
const PdfPrefix = "pdfs/"

// GenerationStore is the subset of photo persistence the generation
// pipeline needs.
type GenerationStore interface {
	ApplyGeneration(ctx context.Context, filename, title, description, transcription string, deltaInput, deltaOutput int64) (*domain.Photo, error)
}

// SettingsStore provides access to the settings row.
type SettingsStore interface {
	Find(ctx context.Context) (*domain.Settings, error)
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, fields map[string]interface{}) (*domain.Settings, error)
	SetThemes(ctx context.Context, themes []string) error
}

// PdfStore provides access to the reference document registry.
type PdfStore interface {
	List(ctx context.Context) ([]domain.Pdf, error)
}

// GenerateService runs the title and description pipeline: it assembles the
// model request from the photo, its transcript, the configured style, and
// the reference documents, then persists the result with its token cost.
type GenerateService struct {
	store     GenerationStore
	settings  SettingsStore
	pdfs      PdfStore
	completer ai.Completer
	storage   storage.ObjectStorage
	logger    *logger.Logger
}

// NewGenerateService creates a new GenerateService.
// Parameters:
//   - store: photo record store for persisting results.
//   - settings: settings row access.
//   - pdfs: reference document registry.
//   - completer: model client.
//   - objectStorage: bucket holding images and documents.
//   - log: logger instance.
//
// Returns:
//   - *GenerateService: initialized service.
func NewGenerateService(
	store GenerationStore,
	settings SettingsStore,
	pdfs PdfStore,
	completer ai.Completer,
	objectStorage storage.ObjectStorage,
	log *logger.Logger,
) *GenerateService {
	return &GenerateService{
		store:     store,
		settings:  settings,
		pdfs:      pdfs,
		completer: completer,
		storage:   objectStorage,
		logger:    log,
	}
}

// GenerateResult is the outcome of one generation call. The top-level token
// pair carries the record's cumulative totals, the running numbers a caller
// displays; this call's own spend sits in the call_ fields.
type GenerateResult struct {
	Photo            *domain.Photo `json:"photo"`
	InputTokens      int64         `json:"input_tokens"`
	OutputTokens     int64         `json:"output_tokens"`
	CallInputTokens  int64         `json:"call_input_tokens"`
	CallOutputTokens int64         `json:"call_output_tokens"`
}

// Generate produces a title and description for one photo from its voice
// transcript and persists them. Token usage accumulates onto the record, so
// regenerating a photo keeps its full spend history.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: photo filename, without prefix.
//   - transcription: the voice note transcript.
//
// Returns:
//   - *GenerateResult: the updated record and this call's usage.
//   - error: domain.ErrInvalidInput on empty inputs,
//     domain.ErrConfigurationMissing when settings were never created,
//     domain.ErrAssetNotFound when the photo is not in the bucket,
//     domain.ErrMalformedResponse when the model reply cannot be decoded.
func (s *GenerateService) Generate(ctx context.Context, filename, transcription string) (*GenerateResult, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	ctx = logger.WithField(ctx, logger.FieldPhoto, filename)

	settings, err := s.settings.Find(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("%w: settings not initialized", domain.ErrConfigurationMissing)
	}

	imgData, err := readObject(ctx, s.storage, PhotoPrefix+filename)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: photo %s", domain.ErrAssetNotFound, filename)
		}
		return nil, fmt.Errorf("failed to download photo %s: %w", filename, err)
	}

	docs, err := s.loadReferenceDocuments(ctx)
	if err != nil {
		return nil, err
	}

	req, err := ai.BuildGenerateRequest(transcription, ai.Image{
		Data:     imgData,
		MimeType: MimeTypeFor(filename),
	}, ai.GenerationSettings{
		TitleMinChars:   settings.TitleMinChars,
		TitleMaxChars:   settings.TitleMaxChars,
		DescMinChars:    settings.DescMinChars,
		DescMaxChars:    settings.DescMaxChars,
		Instructions:    settings.Instructions,
		PhotographerURL: settings.PhotographerURL,
	}, docs)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.completer.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generation call failed for %s: %w", filename, err)
	}

	result, err := ai.DecodeGeneration(resp.Text)
	if err != nil {
		return nil, err
	}

	photo, err := s.store.ApplyGeneration(ctx, filename, result.Title, result.Description, transcription, resp.InputTokens, resp.OutputTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to persist generation for %s: %w", filename, err)
	}

	logger.CtxInfo(ctx, "Generated metadata: photo=%s, input_tokens=%d, output_tokens=%d, duration=%s",
		filename, resp.InputTokens, resp.OutputTokens, time.Since(start))

	return &GenerateResult{
		Photo:            photo,
		InputTokens:      photo.InputTokens,
		OutputTokens:     photo.OutputTokens,
		CallInputTokens:  resp.InputTokens,
		CallOutputTokens: resp.OutputTokens,
	}, nil
}

// loadReferenceDocuments downloads every registered document. One that has
// gone missing from the bucket is skipped with a warning rather than failing
// the whole call.
func (s *GenerateService) loadReferenceDocuments(ctx context.Context) ([]ai.Document, error) {
	records, err := s.pdfs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reference documents: %w", err)
	}

	docs := make([]ai.Document, 0, len(records))
	for _, rec := range records {
		data, err := readObject(ctx, s.storage, PdfPrefix+rec.StoredFilename)
		if err != nil {
			logger.CtxWarn(ctx, "Skipping unreadable reference document: file=%s, error=%v", rec.StoredFilename, err)
			continue
		}
		docs = append(docs, ai.Document{Name: rec.OriginalFilename, Data: data})
	}
	return docs, nil
}
