package ai

import (
	"errors"
	"testing"

	"github.com/nicopeltier/title4pix/internal/domain"
)

func TestDecodeGeneration(t *testing.T) {
	got, err := DecodeGeneration(`{"title":"A","description":"B"}`)
	if err != nil {
		t.Fatalf("DecodeGeneration() error = %v", err)
	}
	if got.Title != "A" || got.Description != "B" {
		t.Errorf("DecodeGeneration() = %+v, want {A B}", got)
	}

	// Leading/trailing whitespace around the object is tolerated.
	if _, err := DecodeGeneration("\n {\"title\":\"A\",\"description\":\"B\"} \n"); err != nil {
		t.Errorf("whitespace-wrapped payload rejected: %v", err)
	}

	// Empty strings are valid values; only absent keys fail.
	got, err = DecodeGeneration(`{"title":"","description":""}`)
	if err != nil {
		t.Fatalf("empty-string values rejected: %v", err)
	}
	if got.Title != "" || got.Description != "" {
		t.Errorf("DecodeGeneration() = %+v, want empty strings", got)
	}
}

func TestDecodeGenerationMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "Voici le titre : Horizon"},
		{name: "not an object", payload: `["title", "description"]`},
		{name: "null", payload: "null"},
		{name: "missing description", payload: `{"title":"A"}`},
		{name: "missing title", payload: `{"description":"B"}`},
		{name: "empty payload", payload: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeGeneration(tc.payload); !errors.Is(err, domain.ErrMalformedResponse) {
				t.Errorf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestDecodeThemeAssignment(t *testing.T) {
	payload := `{
		"themes": ["Nature", "Ville"],
		"assignments": [
			{"filename": "a.jpg", "theme": "Nature"},
			{"filename": "b.jpg", "theme": "Nature"},
			{"filename": "c.jpg", "theme": "Ville"}
		]
	}`

	got, err := DecodeThemeAssignment(payload)
	if err != nil {
		t.Fatalf("DecodeThemeAssignment() error = %v", err)
	}

	if len(got.Themes) != 2 || got.Themes[0] != "Nature" || got.Themes[1] != "Ville" {
		t.Errorf("Themes = %v, want [Nature Ville] in response order", got.Themes)
	}
	want := map[string]string{"a.jpg": "Nature", "b.jpg": "Nature", "c.jpg": "Ville"}
	for filename, theme := range want {
		if got.Assignments[filename] != theme {
			t.Errorf("Assignments[%s] = %q, want %q", filename, got.Assignments[filename], theme)
		}
	}
}

// A filename listed twice resolves to its last occurrence, deterministically.
func TestDecodeThemeAssignmentDuplicateFilename(t *testing.T) {
	payload := `{
		"themes": ["Nature", "Ville"],
		"assignments": [
			{"filename": "a.jpg", "theme": "Nature"},
			{"filename": "a.jpg", "theme": "Ville"}
		]
	}`

	got, err := DecodeThemeAssignment(payload)
	if err != nil {
		t.Fatalf("DecodeThemeAssignment() error = %v", err)
	}
	if got.Assignments["a.jpg"] != "Ville" {
		t.Errorf("Assignments[a.jpg] = %q, want last occurrence %q", got.Assignments["a.jpg"], "Ville")
	}
}

func TestDecodeThemeAssignmentMalformed(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "aucun thème"},
		{name: "missing assignments", payload: `{"themes":["Nature"]}`},
		{name: "missing themes", payload: `{"assignments":[]}`},
		{name: "assignment not objects", payload: `{"themes":[],"assignments":["a.jpg"]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeThemeAssignment(tc.payload); !errors.Is(err, domain.ErrMalformedResponse) {
				t.Errorf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}
