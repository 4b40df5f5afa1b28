package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/logger"
	"github.com/nicopeltier/title4pix/internal/storage"
)

// MaxPdfSizeBytes caps reference document uploads.
const MaxPdfSizeBytes = 20 * 1024 * 1024

// PdfRegistry is the persistence surface for the reference document service.
type PdfRegistry interface {
	List(ctx context.Context) ([]domain.Pdf, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, pdf *domain.Pdf) error
	FindByID(ctx context.Context, id uint) (*domain.Pdf, error)
	Delete(ctx context.Context, id uint) error
}

// PdfService manages the reference documents attached to every generation
// call: upload, listing, and removal, capped at domain.MaxReferencePdfs.
type PdfService struct {
	registry PdfRegistry
	storage  storage.ObjectStorage
	logger   *logger.Logger
}

// NewPdfService creates a new PdfService.
// Parameters:
//   - registry: document record store.
//   - objectStorage: bucket holding the document bytes.
//   - log: logger instance.
//
// Returns:
//   - *PdfService: initialized service.
func NewPdfService(registry PdfRegistry, objectStorage storage.ObjectStorage, log *logger.Logger) *PdfService {
	return &PdfService{
		registry: registry,
		storage:  objectStorage,
		logger:   log,
	}
}

// List returns the registered documents, newest first.
func (s *PdfService) List(ctx context.Context) ([]domain.Pdf, error) {
	return s.registry.List(ctx)
}

// Upload stores a reference document and registers it. The stored name is
// randomized so re-uploading the same file never collides.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - originalFilename: the name the document was uploaded under.
//   - data: document bytes.
//
// Returns:
//   - *domain.Pdf: the registered record.
//   - error: domain.ErrInvalidInput on empty or oversized data, or when the
//     registry is full.
func (s *PdfService) Upload(ctx context.Context, originalFilename string, data []byte) (*domain.Pdf, error) {
	if strings.TrimSpace(originalFilename) == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}
	if len(data) > MaxPdfSizeBytes {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", domain.ErrInvalidInput, MaxPdfSizeBytes)
	}

	count, err := s.registry.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxReferencePdfs {
		return nil, fmt.Errorf("%w: maximum of %d documents reached, remove one first", domain.ErrInvalidInput, domain.MaxReferencePdfs)
	}

	storedFilename := uuid.New().String() + ".pdf"
	if err := s.storage.Upload(ctx, PdfPrefix+storedFilename, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	pdf := &domain.Pdf{
		OriginalFilename: originalFilename,
		StoredFilename:   storedFilename,
	}
	if err := s.registry.Create(ctx, pdf); err != nil {
		// Registration failed; drop the orphaned object best effort.
		if delErr := s.storage.Delete(ctx, PdfPrefix+storedFilename); delErr != nil {
			logger.CtxWarn(ctx, "Failed to clean up orphaned document: key=%s, error=%v", storedFilename, delErr)
		}
		return nil, fmt.Errorf("failed to register document: %w", err)
	}

	logger.CtxInfo(ctx, "Registered reference document: name=%s, stored=%s, size=%d", originalFilename, storedFilename, len(data))
	return pdf, nil
}

// Remove deletes a document's record and its stored bytes. The object
// delete is best effort; the blob may already be gone.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: record id.
//
// Returns:
//   - error: domain.ErrAssetNotFound when the record does not exist.
func (s *PdfService) Remove(ctx context.Context, id uint) error {
	pdf, err := s.registry.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if pdf == nil {
		return fmt.Errorf("%w: document %d", domain.ErrAssetNotFound, id)
	}

	if err := s.storage.Delete(ctx, PdfPrefix+pdf.StoredFilename); err != nil {
		logger.CtxWarn(ctx, "Failed to delete document object: key=%s, error=%v", pdf.StoredFilename, err)
	}
	return s.registry.Delete(ctx, id)
}
