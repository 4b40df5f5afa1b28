package domain

import "time"

// MaxReferencePdfs is the maximum number of reference documents supplied as
// model context on each generation call.
const MaxReferencePdfs = 5

// Pdf is the registration record of one reference document (typically an
// artist statement). OriginalFilename is the display name shown to the
// photographer and to the model; StoredFilename is the object-storage key
// suffix under the pdfs/ prefix. Content is fetched fresh per generation call.
type Pdf struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	OriginalFilename string    `gorm:"type:text;not null" json:"original_filename"`
	StoredFilename   string    `gorm:"type:text;not null" json:"stored_filename"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName returns the database table name for Pdf.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Pdf) TableName() string {
	return "pdf_files"
}
