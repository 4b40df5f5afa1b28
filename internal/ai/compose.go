package ai

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/prompts"
)

const (
	generateMaxTokens = 1024
	themeMaxTokens    = 16384

	// MaxThemes bounds the requested label count for one assignment call.
	MaxThemes = 20
)

// BuildGenerateRequest composes the single-photo generation call: a cached
// system block (role, optional site line, optional custom instructions,
// strict character bounds, expected JSON shape) and a user turn ordered as
// reference documents, then the image, then the transcript instruction.
// Block order is deterministic so identical settings reproduce identical
// cache prefixes across calls.
// Parameters:
//   - transcript: the photographer's voice transcript; must be non-empty.
//   - img: image bytes and mime type; bytes must be non-empty.
//   - settings: character bounds and steering fields.
//   - docs: zero to five reference documents, already fetched.
// Returns:
//   - Request: composed request ready for dispatch.
//   - error: domain.ErrInvalidInput if transcript or image bytes are empty.
func BuildGenerateRequest(transcript string, img Image, settings GenerationSettings, docs []Document) (Request, error) {
	if strings.TrimSpace(transcript) == "" {
		return Request{}, fmt.Errorf("%w: transcript is empty", domain.ErrInvalidInput)
	}
	if len(img.Data) == 0 {
		return Request{}, fmt.Errorf("%w: image bytes are empty", domain.ErrInvalidInput)
	}

	systemParts := []string{prompts.GenerationRole}
	if settings.PhotographerURL != "" {
		systemParts = append(systemParts, prompts.GenerationSiteLine+settings.PhotographerURL)
	}
	if settings.Instructions != "" {
		systemParts = append(systemParts, prompts.GenerationInstructionsHeader+settings.Instructions)
	}
	systemParts = append(systemParts,
		fmt.Sprintf(prompts.GenerationConstraints,
			settings.TitleMinChars, settings.TitleMaxChars,
			settings.DescMinChars, settings.DescMaxChars),
		prompts.GenerationOutputShape,
	)

	system := []anthropic.TextBlockParam{{
		Text:         strings.Join(systemParts, "\n\n"),
		CacheControl: anthropic.NewCacheControlEphemeralParam(),
	}}

	user := make([]anthropic.ContentBlockParamUnion, 0, len(docs)+2)
	for _, doc := range docs {
		user = append(user, anthropic.ContentBlockParamUnion{
			OfDocument: &anthropic.DocumentBlockParam{
				Source: anthropic.DocumentBlockParamSourceUnion{
					OfBase64: &anthropic.Base64PDFSourceParam{
						Data: base64.StdEncoding.EncodeToString(doc.Data),
					},
				},
				Title:        anthropic.String(doc.Name),
				CacheControl: anthropic.NewCacheControlEphemeralParam(),
			},
		})
	}
	user = append(user,
		anthropic.NewImageBlockBase64(img.MimeType, base64.StdEncoding.EncodeToString(img.Data)),
		anthropic.NewTextBlock(fmt.Sprintf(prompts.GenerationUserInstruction, transcript)),
	)

	return Request{System: system, User: user, MaxTokens: generateMaxTokens}, nil
}

// BuildThemeRequest composes the collection-wide classification call asking
// for exactly numThemes labels and a complete per-filename assignment. Every
// photo appears in the listed collection; ones without metadata are flagged
// explicitly so the model assigns them a fallback label instead of dropping
// them.
// Parameters:
//   - photos: filename plus existing metadata for the whole collection.
//   - numThemes: requested label count, 1 to MaxThemes inclusive.
// Returns:
//   - Request: composed request ready for dispatch.
//   - error: domain.ErrInvalidInput if numThemes is out of range or the
//     photo list is empty.
func BuildThemeRequest(photos []domain.PhotoMeta, numThemes int) (Request, error) {
	if numThemes < 1 || numThemes > MaxThemes {
		return Request{}, fmt.Errorf("%w: numThemes must be between 1 and %d, got %d", domain.ErrInvalidInput, MaxThemes, numThemes)
	}
	if len(photos) == 0 {
		return Request{}, fmt.Errorf("%w: no photos to classify", domain.ErrInvalidInput)
	}

	var list strings.Builder
	for _, p := range photos {
		fmt.Fprintf(&list, "- [%s]\n", p.Filename)
		if p.Title != "" {
			fmt.Fprintf(&list, "  Titre : %s\n", p.Title)
		}
		if p.Description != "" {
			fmt.Fprintf(&list, "  Descriptif : %s\n", p.Description)
		}
		if p.Title == "" && p.Description == "" {
			list.WriteString(prompts.ThemeNoMetadata + "\n")
		}
	}

	system := []anthropic.TextBlockParam{{
		Text:         fmt.Sprintf(prompts.ThemeRole, numThemes, numThemes) + "\n\n" + prompts.ThemeOutputShape,
		CacheControl: anthropic.NewCacheControlEphemeralParam(),
	}}

	userText := fmt.Sprintf(prompts.ThemeUserHeader, len(photos)) + "\n" +
		list.String() +
		fmt.Sprintf(prompts.ThemeUserFooter, numThemes)

	return Request{
		System:    system,
		User:      []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(userText)},
		MaxTokens: themeMaxTokens,
	}, nil
}
