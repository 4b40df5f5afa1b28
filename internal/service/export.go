package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nicopeltier/title4pix/internal/domain"
)

// Export formats.
const (
	ExportFormatTSV  = "tsv"
	ExportFormatXLSX = "xlsx"
)

// exportHeader lists the spreadsheet columns, in order.
var exportHeader = []string{"Nom du fichier", "Titre", "Descriptif", "Thème"}

// ExportStore is the subset of photo persistence the exporter needs.
type ExportStore interface {
	ListByFilenames(ctx context.Context, filenames []string) ([]domain.Photo, error)
}

// ExportService renders the collection's metadata as a downloadable
// spreadsheet, one row per photo in catalog order.
type ExportService struct {
	store  ExportStore
	photos *PhotoService
}

// NewExportService creates a new ExportService.
// Parameters:
//   - store: photo record store.
//   - photos: catalog service used to enumerate the collection.
//
// Returns:
//   - *ExportService: initialized service.
func NewExportService(store ExportStore, photos *PhotoService) *ExportService {
	return &ExportService{store: store, photos: photos}
}

// ExportFile is a rendered export ready to serve.
type ExportFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Export renders the collection in the requested format. Photos with no
// record yet export with empty metadata cells.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - format: "tsv" or "xlsx"; anything else defaults to TSV.
//
// Returns:
//   - *ExportFile: the rendered document.
//   - error: non-nil if the listing or rendering fails.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportFile, error) {
	filenames, err := s.photos.ListFilenames(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListByFilenames(ctx, filenames)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo metadata: %w", err)
	}
	byName := make(map[string]domain.Photo, len(records))
	for _, rec := range records {
		byName[rec.Filename] = rec
	}

	rows := make([][]string, len(filenames))
	for i, name := range filenames {
		rec := byName[name]
		rows[i] = []string{name, rec.Title, rec.Description, rec.Theme}
	}

	if format == ExportFormatXLSX {
		return renderXLSX(rows)
	}
	return renderTSV(rows)
}

// renderTSV renders rows as tab separated values. Tabs and newlines inside
// cell values are flattened to spaces so every photo stays on one line.
func renderTSV(rows [][]string) (*ExportFile, error) {
	flatten := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(exportHeader, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		cells[0] = row[0]
		for i := 1; i < len(row); i++ {
			cells[i] = flatten.Replace(row[i])
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}

	return &ExportFile{
		Data:        []byte(strings.Join(lines, "\n")),
		ContentType: "text/tab-separated-values; charset=utf-8",
		Filename:    "title4pix-export.tsv",
	}, nil
}

// renderXLSX renders rows as a single-sheet workbook.
func renderXLSX(rows [][]string) (*ExportFile, error) {
	const sheet = "Photos"

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return &ExportFile{
		Data:        buf.Bytes(),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    "title4pix-export.xlsx",
	}, nil
}
