package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nicopeltier/title4pix/internal/domain"
)

// SettingsRepository manages the single settings row (id 1) that holds
// generation bounds, custom instructions, and the theme catalogs.
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SettingsRepository: repository instance bound to db.
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves the settings row, creating it with defaults on first access.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.Settings: the settings row, never nil on success.
//   - error: non-nil if the lookup or bootstrap fails.
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := r.Find(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	defaults := domain.DefaultSettings()
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		// Lost a bootstrap race with another request; the row exists now.
		return r.Find(ctx)
	}
	return defaults, nil
}

// Find retrieves the settings row without bootstrapping it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *domain.Settings: the row, or nil when it has never been created.
//   - error: non-nil if the lookup fails.
func (r *SettingsRepository) Find(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", domain.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update applies a partial field set to the settings row, bootstrapping
// defaults first if needed.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fields: column-name keyed values to apply.
// Returns:
//   - *domain.Settings: the row after the write.
//   - error: non-nil if the write fails.
func (r *SettingsRepository) Update(ctx context.Context, fields map[string]interface{}) (*domain.Settings, error) {
	if _, err := r.Get(ctx); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Settings{}).
		Where("id = ?", domain.SettingsID).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx)
}

// SetThemes overwrites the generated theme catalog on the settings row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - themes: the new catalog, replacing any previous one.
// Returns:
//   - error: non-nil if the write fails.
func (r *SettingsRepository) SetThemes(ctx context.Context, themes []string) error {
	_, err := r.Update(ctx, map[string]interface{}{"themes": domain.StringList(themes)})
	return err
}
