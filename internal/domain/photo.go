package domain

import "time"

// Photo represents the authored metadata of one photograph.
// The record is keyed by the object-storage filename, not a surrogate ID:
// the image itself lives in object storage and may exist before any metadata
// does, so records are created implicitly on first write (upsert semantics).
//
// InputTokens and OutputTokens are cumulative: every generation or theme
// assignment adds to them, so they reflect the total model spend attributed
// to this photo, never the cost of the latest call alone.
type Photo struct {
	Filename      string    `gorm:"type:text;primaryKey" json:"filename"`
	Title         string    `gorm:"type:text" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Transcription string    `gorm:"type:text" json:"transcription"`
	Theme         string    `gorm:"type:text" json:"theme"`
	FixedTheme    string    `gorm:"type:text" json:"fixed_theme"`
	AudioKey      string    `gorm:"type:text" json:"audio_key,omitempty"`
	InputTokens   int64     `json:"input_tokens"`
	OutputTokens  int64     `json:"output_tokens"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for Photo.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Photo) TableName() string {
	return "photos"
}

// PhotoMeta is the title/description pair handed to the theme classifier.
// Absent metadata is carried as empty strings rather than omitted so the
// classifier still sees every photo in the collection.
type PhotoMeta struct {
	Filename    string `json:"filename"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CatalogEntry is one row of the photo catalog listing: the stable index of
// the photo within the case-insensitively sorted collection plus flags
// telling the UI whether metadata has been authored yet.
type CatalogEntry struct {
	Index          int    `json:"index"`
	Filename       string `json:"filename"`
	HasTitle       bool   `json:"has_title"`
	HasDescription bool   `json:"has_description"`
}
