package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nicopeltier/title4pix/internal/domain"
)

// PdfRepository manages the registry of reference documents attached to
// generation calls.
type PdfRepository struct {
	db *gorm.DB
}

// NewPdfRepository creates a new PdfRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *PdfRepository: repository instance bound to db.
func NewPdfRepository(db *gorm.DB) *PdfRepository {
	return &PdfRepository{db: db}
}

// List retrieves all registered documents, newest first.
func (r *PdfRepository) List(ctx context.Context) ([]domain.Pdf, error) {
	var pdfs []domain.Pdf
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&pdfs).Error; err != nil {
		return nil, err
	}
	return pdfs, nil
}

// Count returns the number of registered documents.
func (r *PdfRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Pdf{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create registers a document record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - pdf: record to insert; ID is assigned by the database.
// Returns:
//   - error: non-nil if the insert fails.
func (r *PdfRepository) Create(ctx context.Context, pdf *domain.Pdf) error {
	return r.db.WithContext(ctx).Create(pdf).Error
}

// FindByID retrieves a document record, or nil without error when absent.
func (r *PdfRepository) FindByID(ctx context.Context, id uint) (*domain.Pdf, error) {
	var pdf domain.Pdf
	err := r.db.WithContext(ctx).First(&pdf, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pdf, nil
}

// Delete removes a document record by id.
func (r *PdfRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Pdf{}, id).Error
}
