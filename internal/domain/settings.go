package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SettingsID is the fixed primary key of the singleton Settings row.
const SettingsID = 1

// Default character bounds applied when the singleton is created on first access.
const (
	DefaultTitleMinChars = 20
	DefaultTitleMaxChars = 80
	DefaultDescMinChars  = 100
	DefaultDescMaxChars  = 500
)

// StringList is a custom type for storing string lists as JSON text in the database.
type StringList []string

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the slice.
//   - error: non-nil if marshaling fails.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringList")
		}
		bytes = []byte(str)
	}
	if len(bytes) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Settings is the singleton configuration record steering metadata generation.
// Exactly one row exists (SettingsID); it is created with defaults on first
// access. The character bounds are forwarded verbatim to the model prompt;
// min <= max is expected from the UI but deliberately not enforced here.
//
// Themes holds the currently valid AI-assigned labels and is overwritten
// wholesale by each theme assignment. FixedThemes is an independent,
// manually curated namespace and is never touched by the AI.
type Settings struct {
	ID              int        `gorm:"primaryKey" json:"id"`
	TitleMinChars   int        `json:"title_min_chars"`
	TitleMaxChars   int        `json:"title_max_chars"`
	DescMinChars    int        `json:"desc_min_chars"`
	DescMaxChars    int        `json:"desc_max_chars"`
	Instructions    string     `gorm:"type:text" json:"instructions"`
	PhotographerURL string     `gorm:"type:text" json:"photographer_url"`
	Themes          StringList `gorm:"type:text" json:"themes"`
	FixedThemes     StringList `gorm:"type:text" json:"fixed_themes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Settings.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the Settings row created on first access.
// Parameters: none.
// Returns:
//   - *Settings: singleton populated with seed defaults.
func DefaultSettings() *Settings {
	return &Settings{
		ID:            SettingsID,
		TitleMinChars: DefaultTitleMinChars,
		TitleMaxChars: DefaultTitleMaxChars,
		DescMinChars:  DefaultDescMinChars,
		DescMaxChars:  DefaultDescMaxChars,
		Themes:        StringList{},
		FixedThemes:   StringList{},
	}
}
