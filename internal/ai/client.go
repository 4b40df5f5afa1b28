package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nicopeltier/title4pix/internal/domain"
	"github.com/nicopeltier/title4pix/internal/logger"
)

// ClientConfig holds configuration for the Anthropic client.
type ClientConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client dispatches composed requests to the Anthropic Messages API.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClient creates a Client for the configured model.
// Parameters:
//   - cfg: API key, model name, and optional per-call timeout.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *ClientConfig) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5"
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  anthropic.Model(model),
	}
}

// Complete dispatches one request and reduces the reply to its text payload
// and token counts. Transport failures and replies without a text block both
// surface as domain.ErrGenerationFailed carrying the provider's message; no
// retry is attempted here.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - req: composed request from one of the Build functions.
// Returns:
//   - Response: text payload plus billed token counts.
//   - error: domain.ErrGenerationFailed on dispatch or empty-content failure.
func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(req.User...)},
	})
	if err != nil {
		return Response{}, fmt.Errorf("%w: %s", domain.ErrGenerationFailed, err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return Response{}, fmt.Errorf("%w: no text block in model response", domain.ErrGenerationFailed)
	}

	logger.FromContext(ctx).WithFields(logger.Fields{
		logger.FieldComponent:    "ai",
		logger.FieldDurationMs:   time.Since(start).Milliseconds(),
		logger.FieldInputTokens:  message.Usage.InputTokens,
		logger.FieldOutputTokens: message.Usage.OutputTokens,
	}).Debug("model call completed")

	return Response{
		Text:         text,
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
	}, nil
}
