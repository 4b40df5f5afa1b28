package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nicopeltier/title4pix/internal/ai"
	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/logger"
	"github.com/nicopeltier/title4pix/internal/usage"
)

// ThemeStore is the subset of photo persistence the theme partitioner needs.
type ThemeStore interface {
	ListMeta(ctx context.Context, filenames []string) ([]domain.PhotoMeta, error)
	BatchAssignThemes(ctx context.Context, assignments map[string]string) error
	BatchIncrementUsage(ctx context.Context, filenames []string, perInput, perOutput int64) error
}

// ThemeService partitions the whole collection into a requested number of
// themes with a single model call, then spreads that call's token cost
// evenly over the photos it classified.
type ThemeService struct {
	store     ThemeStore
	settings  SettingsStore
	photos    *PhotoService
	completer ai.Completer
	logger    *logger.Logger
}

// NewThemeService creates a new ThemeService.
// Parameters:
//   - store: photo record store for assignments and usage increments.
//   - settings: settings row access for persisting the theme catalog.
//   - photos: catalog service used to enumerate the collection.
//   - completer: model client.
//   - log: logger instance.
//
// Returns:
//   - *ThemeService: initialized service.
func NewThemeService(store ThemeStore, settings SettingsStore, photos *PhotoService, completer ai.Completer, log *logger.Logger) *ThemeService {
	return &ThemeService{
		store:     store,
		settings:  settings,
		photos:    photos,
		completer: completer,
		logger:    log,
	}
}

// ThemeAssignResult is the outcome of one partitioning run.
type ThemeAssignResult struct {
	Themes       []string          `json:"themes"`
	Assignments  map[string]string `json:"assignments"`
	InputTokens  int64             `json:"input_tokens"`
	OutputTokens int64             `json:"output_tokens"`
	PerPhotoIn   int64             `json:"per_photo_input_tokens"`
	PerPhotoOut  int64             `json:"per_photo_output_tokens"`
}

// Assign partitions the collection into numThemes themes. The assignment and
// the usage increments are written in separate transactions, so a usage
// write failure leaves the assignment in place; the error reports it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - numThemes: requested partition size, between 1 and 20.
//
// Returns:
//   - *ThemeAssignResult: the catalog, per-photo labels, and token usage.
//   - error: domain.ErrInvalidInput on an out-of-range count,
//     domain.ErrEmptyCollection when the bucket holds no photos,
//     domain.ErrMalformedResponse when the model reply cannot be decoded.
func (s *ThemeService) Assign(ctx context.Context, numThemes int) (*ThemeAssignResult, error) {
	if numThemes < 1 || numThemes > ai.MaxThemes {
		return nil, fmt.Errorf("%w: theme count must be between 1 and %d", domain.ErrInvalidInput, ai.MaxThemes)
	}

	filenames, err := s.photos.ListFilenames(ctx)
	if err != nil {
		return nil, err
	}
	if len(filenames) == 0 {
		return nil, fmt.Errorf("%w: no photos to classify", domain.ErrEmptyCollection)
	}
	ctx = logger.WithField(ctx, logger.FieldCount, len(filenames))

	meta, err := s.store.ListMeta(ctx, filenames)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo metadata: %w", err)
	}
	byName := make(map[string]domain.PhotoMeta, len(meta))
	for _, m := range meta {
		byName[m.Filename] = m
	}
	photos := make([]domain.PhotoMeta, len(filenames))
	for i, name := range filenames {
		m := byName[name]
		m.Filename = name
		photos[i] = m
	}

	req, err := ai.BuildThemeRequest(photos, numThemes)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.completer.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("theme call failed: %w", err)
	}

	result, err := ai.DecodeThemeAssignment(resp.Text)
	if err != nil {
		return nil, err
	}

	// Every photo gets a row: model-omitted photos are written with an empty
	// label rather than keeping a stale one from a previous run.
	assignments := make(map[string]string, len(filenames))
	for _, name := range filenames {
		assignments[name] = ""
	}
	for name, theme := range result.Assignments {
		if _, ok := assignments[name]; !ok {
			logger.CtxWarn(ctx, "Dropping assignment for unknown photo: photo=%s, theme=%s", name, theme)
			continue
		}
		assignments[name] = theme
	}

	if err := s.store.BatchAssignThemes(ctx, assignments); err != nil {
		return nil, fmt.Errorf("failed to persist theme assignments: %w", err)
	}

	perIn, perOut := usage.Amortize(resp.InputTokens, resp.OutputTokens, len(filenames))
	if err := s.store.BatchIncrementUsage(ctx, filenames, perIn, perOut); err != nil {
		return nil, fmt.Errorf("themes assigned but usage accounting failed: %w", err)
	}

	if err := s.settings.SetThemes(ctx, result.Themes); err != nil {
		return nil, fmt.Errorf("themes assigned but catalog save failed: %w", err)
	}

	logger.CtxInfo(ctx, "Assigned themes: photos=%d, themes=%d, input_tokens=%d, output_tokens=%d, duration=%s",
		len(filenames), len(result.Themes), resp.InputTokens, resp.OutputTokens, time.Since(start))

	return &ThemeAssignResult{
		Themes:       result.Themes,
		Assignments:  assignments,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
		PerPhotoIn:   perIn,
		PerPhotoOut:  perOut,
	}, nil
}
