package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/usage"
)

func newExportFixture() (*ExportService, *fakePhotoStore, *fakeStorage) {
	store := newFakePhotoStore()
	objects := newFakeStorage()
	photos := NewPhotoService(store, objects, usage.Pricing{}, nil)
	return NewExportService(store, photos), store, objects
}

func TestExportTSV(t *testing.T) {
	svc, store, objects := newExportFixture()
	objects.objects["photos/b.jpg"] = []byte("b")
	objects.objects["photos/a.jpg"] = []byte("a")
	store.records["a.jpg"] = &domain.Photo{
		Filename:    "a.jpg",
		Title:       "Titre\tavec tab",
		Description: "Ligne une\nligne deux",
		Theme:       "Paysages",
	}

	file, err := svc.Export(context.Background(), ExportFormatTSV)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if file.Filename != "title4pix-export.tsv" {
		t.Errorf("filename = %q", file.Filename)
	}
	if !strings.HasPrefix(file.ContentType, "text/tab-separated-values") {
		t.Errorf("content type = %q", file.ContentType)
	}

	lines := strings.Split(string(file.Data), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3\n%s", len(lines), file.Data)
	}
	if lines[0] != "Nom du fichier\tTitre\tDescriptif\tThème" {
		t.Errorf("header = %q", lines[0])
	}
	// Tabs and newlines inside cells are flattened to spaces.
	if lines[1] != "a.jpg\tTitre avec tab\tLigne une ligne deux\tPaysages" {
		t.Errorf("row = %q", lines[1])
	}
	// A photo with no record exports empty cells.
	if lines[2] != "b.jpg\t\t\t" {
		t.Errorf("empty row = %q", lines[2])
	}
}

func TestExportDefaultsToTSV(t *testing.T) {
	svc, _, objects := newExportFixture()
	objects.objects["photos/a.jpg"] = []byte("a")

	file, err := svc.Export(context.Background(), "csv")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasSuffix(file.Filename, ".tsv") {
		t.Errorf("filename = %q, want a .tsv file", file.Filename)
	}
}

func TestExportXLSX(t *testing.T) {
	svc, store, objects := newExportFixture()
	objects.objects["photos/a.jpg"] = []byte("a")
	store.records["a.jpg"] = &domain.Photo{Filename: "a.jpg", Title: "Titre", Theme: "Paysages"}

	file, err := svc.Export(context.Background(), ExportFormatXLSX)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if file.Filename != "title4pix-export.xlsx" {
		t.Errorf("filename = %q", file.Filename)
	}
	if file.ContentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", file.ContentType)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(file.Data, []byte("PK")) {
		t.Error("workbook does not look like a zip archive")
	}
}
