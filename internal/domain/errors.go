package domain

import "errors"

// Error taxonomy surfaced by the metadata pipeline. Every error propagates to
// the immediate caller unmodified: there are no automatic retries and no
// fallback values for AI-derived fields. Handlers map these to HTTP statuses.
var (
	// ErrInvalidInput reports a caller-supplied argument violating a stated
	// precondition (empty transcript, blank filename, theme count out of range).
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigurationMissing reports an absent Settings singleton where one
	// is required.
	ErrConfigurationMissing = errors.New("settings not configured")

	// ErrAssetNotFound reports referenced photo or document bytes being
	// unavailable in object storage.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrEmptyCollection reports a theme assignment requested over zero photos.
	ErrEmptyCollection = errors.New("photo collection is empty")

	// ErrGenerationFailed reports a failed model call or a response carrying
	// no usable text block.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrMalformedResponse reports a model response failing strict shape
	// validation. The call fails closed; no partial recovery is attempted.
	ErrMalformedResponse = errors.New("malformed model response")
)
