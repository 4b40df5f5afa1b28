package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nicopeltier/title4pix/internal/domain"
)

// PhotoRepository persists per-photo metadata records keyed by filename.
// Every write path has upsert semantics: an absent filename creates the
// record with defaults for unspecified fields.
type PhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new PhotoRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *PhotoRepository: repository instance bound to db.
func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// FindByFilename retrieves a photo record, or nil without error when none
// exists yet (records are created implicitly on first write).
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: record key.
// Returns:
//   - *domain.Photo: the record, or nil if absent.
//   - error: non-nil if the lookup fails.
func (r *PhotoRepository) FindByFilename(ctx context.Context, filename string) (*domain.Photo, error) {
	var photo domain.Photo
	err := r.db.WithContext(ctx).First(&photo, "filename = ?", filename).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListMeta retrieves filename/title/description triples for the given
// filenames. Filenames without a record are simply absent from the result;
// callers fill in empty strings.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filenames: keys to look up.
// Returns:
//   - []domain.PhotoMeta: metadata for the records that exist.
//   - error: non-nil if the query fails.
func (r *PhotoRepository) ListMeta(ctx context.Context, filenames []string) ([]domain.PhotoMeta, error) {
	if len(filenames) == 0 {
		return []domain.PhotoMeta{}, nil
	}
	var meta []domain.PhotoMeta
	if err := r.db.WithContext(ctx).
		Model(&domain.Photo{}).
		Select("filename", "title", "description").
		Where("filename IN ?", filenames).
		Find(&meta).Error; err != nil {
		return nil, err
	}
	return meta, nil
}

// ListByFilenames retrieves full records for the given filenames. Filenames
// without a record are absent from the result.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filenames: keys to look up.
// Returns:
//   - []domain.Photo: the records that exist.
//   - error: non-nil if the query fails.
func (r *PhotoRepository) ListByFilenames(ctx context.Context, filenames []string) ([]domain.Photo, error) {
	if len(filenames) == 0 {
		return []domain.Photo{}, nil
	}
	var photos []domain.Photo
	if err := r.db.WithContext(ctx).Where("filename IN ?", filenames).Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// UpsertFields creates or updates a photo record with a partial field set.
// Only title, description, transcription, theme, fixed_theme, and audio_key
// may be set this way; token counters go through the usage paths below.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: record key.
//   - fields: column-name keyed values to apply.
// Returns:
//   - *domain.Photo: the record after the write.
//   - error: non-nil on unknown fields or write failure.
func (r *PhotoRepository) UpsertFields(ctx context.Context, filename string, fields map[string]interface{}) (*domain.Photo, error) {
	photo := domain.Photo{Filename: filename}
	for key, value := range fields {
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q: expected string value", key)
		}
		switch key {
		case "title":
			photo.Title = str
		case "description":
			photo.Description = str
		case "transcription":
			photo.Transcription = str
		case "theme":
			photo.Theme = str
		case "fixed_theme":
			photo.FixedTheme = str
		case "audio_key":
			photo.AudioKey = str
		default:
			return nil, fmt.Errorf("field %q is not updatable", key)
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertPhoto(tx, filename, &photo, fields)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByFilename(ctx, filename)
}

// ApplyGeneration persists one generation call's outcome: title, description,
// and transcription overwritten, token counters incremented. Counters are
// never overwritten, so the record keeps its total spend.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: record key.
//   - title, description, transcription: this call's values.
//   - deltaInput, deltaOutput: this call's token usage.
// Returns:
//   - *domain.Photo: the record after the write, with cumulative totals.
//   - error: non-nil if the write fails.
func (r *PhotoRepository) ApplyGeneration(ctx context.Context, filename, title, description, transcription string, deltaInput, deltaOutput int64) (*domain.Photo, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		photo := domain.Photo{
			Filename:      filename,
			Title:         title,
			Description:   description,
			Transcription: transcription,
			InputTokens:   deltaInput,
			OutputTokens:  deltaOutput,
		}
		return upsertPhoto(tx, filename, &photo, map[string]interface{}{
			"title":         title,
			"description":   description,
			"transcription": transcription,
			"input_tokens":  gorm.Expr("input_tokens + ?", deltaInput),
			"output_tokens": gorm.Expr("output_tokens + ?", deltaOutput),
		})
	})
	if err != nil {
		return nil, err
	}
	return r.FindByFilename(ctx, filename)
}

// BatchAssignThemes writes one theme assignment over the whole collection as
// a single transaction: either every photo's theme field is updated or none
// is. Filenames without a record are created.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - assignments: filename to assigned label, empty string for unassigned.
// Returns:
//   - error: non-nil if any write fails; the transaction rolls back.
func (r *PhotoRepository) BatchAssignThemes(ctx context.Context, assignments map[string]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for filename, theme := range assignments {
			photo := domain.Photo{Filename: filename, Theme: theme}
			if err := upsertPhoto(tx, filename, &photo, map[string]interface{}{"theme": theme}); err != nil {
				return err
			}
		}
		return nil
	})
}

// BatchIncrementUsage adds the amortized per-photo share of a batched call's
// cost to every record, as a single transaction.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filenames: every photo the call classified.
//   - perInput, perOutput: amortized token amounts per photo.
// Returns:
//   - error: non-nil if any write fails; the transaction rolls back.
func (r *PhotoRepository) BatchIncrementUsage(ctx context.Context, filenames []string, perInput, perOutput int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, filename := range filenames {
			photo := domain.Photo{Filename: filename, InputTokens: perInput, OutputTokens: perOutput}
			err := upsertPhoto(tx, filename, &photo, map[string]interface{}{
				"input_tokens":  gorm.Expr("input_tokens + ?", perInput),
				"output_tokens": gorm.Expr("output_tokens + ?", perOutput),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// TotalUsage sums the cumulative token counters over the whole collection.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: total input tokens.
//   - int64: total output tokens.
//   - error: non-nil if the query fails.
func (r *PhotoRepository) TotalUsage(ctx context.Context) (int64, int64, error) {
	var totals struct {
		InputTotal  int64
		OutputTotal int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Photo{}).
		Select("COALESCE(SUM(input_tokens), 0) AS input_total, COALESCE(SUM(output_tokens), 0) AS output_total").
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.InputTotal, totals.OutputTotal, nil
}

// upsertPhoto updates an existing row with the given column assignments, or
// inserts created when no row exists. Concurrent writers to the same
// filename resolve last-writer-wins; that race is accepted.
func upsertPhoto(tx *gorm.DB, filename string, created *domain.Photo, updates map[string]interface{}) error {
	res := tx.Model(&domain.Photo{}).Where("filename = ?", filename).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return tx.Create(created).Error
}
