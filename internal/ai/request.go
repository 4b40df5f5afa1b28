// Package ai builds, dispatches, and decodes the model requests behind
// metadata generation and theme assignment. Request construction and response
// validation are pure; only Client touches the network.
package ai

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
)

// Request is one composed model call, ready for dispatch. System carries the
// instruction blocks (cache-eligible), User the ordered content blocks of the
// single user turn.
type Request struct {
	System    []anthropic.TextBlockParam
	User      []anthropic.ContentBlockParamUnion
	MaxTokens int64
}

// Response reduces the provider reply to what the pipeline consumes: the text
// payload and the billed token counts.
type Response struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

// Completer dispatches one composed request to the generative model.
// Implemented by Client; faked in tests.
type Completer interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Image is one photo's raw bytes plus its declared mime type. The model
// endpoint requires inline content, so bytes are embedded base64 per call.
type Image struct {
	Data     []byte
	MimeType string
}

// Document is one reference document (PDF) supplied as context on a
// generation call, tagged with its display name.
type Document struct {
	Name string
	Data []byte
}

// GenerationSettings is the slice of the Settings singleton the composer
// needs: character bounds and the optional steering fields.
type GenerationSettings struct {
	TitleMinChars   int
	TitleMaxChars   int
	DescMinChars    int
	DescMaxChars    int
	Instructions    string
	PhotographerURL string
}
