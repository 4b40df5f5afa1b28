package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicopeltier/title4pix/internal/domain"
)

// GenerationResult is the decoded output of a single-photo generation call.
type GenerationResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ThemeResult is the decoded output of a theme assignment call: the ordered
// label list as returned by the model and the filename-to-label map folded
// from its assignment list.
type ThemeResult struct {
	Themes      []string
	Assignments map[string]string
}

// DecodeGeneration validates a generation response against the expected
// {title, description} object. Validation is strict: a payload that does not
// parse, is not an object, or omits either key fails with
// domain.ErrMalformedResponse. No partial recovery or default filling is
// attempted; the caller decides whether to retry or report.
// Parameters:
//   - text: raw text returned by the model.
// Returns:
//   - GenerationResult: the decoded pair.
//   - error: domain.ErrMalformedResponse on any shape violation.
func DecodeGeneration(text string) (GenerationResult, error) {
	var raw struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return GenerationResult{}, fmt.Errorf("%w: %s", domain.ErrMalformedResponse, err)
	}
	if raw.Title == nil {
		return GenerationResult{}, fmt.Errorf("%w: missing key %q", domain.ErrMalformedResponse, "title")
	}
	if raw.Description == nil {
		return GenerationResult{}, fmt.Errorf("%w: missing key %q", domain.ErrMalformedResponse, "description")
	}
	return GenerationResult{Title: *raw.Title, Description: *raw.Description}, nil
}

// DecodeThemeAssignment validates a theme assignment response against the
// expected {themes[], assignments[{filename, theme}]} object and folds the
// assignment list into a filename lookup. A filename listed more than once
// resolves to its last occurrence; duplicates are not treated as an error.
// Parameters:
//   - text: raw text returned by the model.
// Returns:
//   - ThemeResult: labels in response order plus the assignment map.
//   - error: domain.ErrMalformedResponse on any shape violation.
func DecodeThemeAssignment(text string) (ThemeResult, error) {
	var raw struct {
		Themes      *[]string `json:"themes"`
		Assignments *[]struct {
			Filename string `json:"filename"`
			Theme    string `json:"theme"`
		} `json:"assignments"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return ThemeResult{}, fmt.Errorf("%w: %s", domain.ErrMalformedResponse, err)
	}
	if raw.Themes == nil {
		return ThemeResult{}, fmt.Errorf("%w: missing key %q", domain.ErrMalformedResponse, "themes")
	}
	if raw.Assignments == nil {
		return ThemeResult{}, fmt.Errorf("%w: missing key %q", domain.ErrMalformedResponse, "assignments")
	}

	assignments := make(map[string]string, len(*raw.Assignments))
	for _, a := range *raw.Assignments {
		assignments[a.Filename] = a.Theme
	}

	return ThemeResult{Themes: *raw.Themes, Assignments: assignments}, nil
}
