// ABOUTME: Claude oracle adapter over the Anthropic Go SDK's Messages API.
// ABOUTME: Concatenates text blocks from the response and maps SDK failures to oracle errors.

package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const claudeDefaultModel = "claude-3-5-sonnet-20241022"

// ClaudeOracle generates itineraries with an Anthropic Claude model.
type ClaudeOracle struct {
	client    *anthropic.Client
	model     string
	available bool
}

// ClaudeOption configures a ClaudeOracle.
type ClaudeOption func(*ClaudeOracle)

// WithClaudeModel overrides the default model.
func WithClaudeModel(model string) ClaudeOption {
	return func(o *ClaudeOracle) {
		if model != "" {
			o.model = model
		}
	}
}

// NewClaudeOracle creates the adapter. An empty or placeholder API key
// leaves it unavailable rather than failing construction.
func NewClaudeOracle(apiKey string, opts ...ClaudeOption) *ClaudeOracle {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	o := &ClaudeOracle{
		client:    &client,
		model:     claudeDefaultModel,
		available: keyUsable(apiKey),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *ClaudeOracle) Key() string  { return "claude" }
func (o *ClaudeOracle) Name() string { return "Claude 3.5 Sonnet" }

func (o *ClaudeOracle) Available() bool { return o.available }

// Generate requests a complete itinerary from the Messages API.
func (o *ClaudeOracle) Generate(ctx context.Context, prompt string) (string, error) {
	if !o.available {
		return "", &UnavailableError{OracleError{
			Provider: o.Key(),
			Message:  "Claude is not configured. Please add your Anthropic API key to enable Claude comparison.",
		}}
	}

	msg, err := o.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(o.model),
		MaxTokens: 2000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", o.translateError(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", &EmptyResponseError{OracleError{Provider: o.Key(), Message: "no text content in response"}}
	}
	return text.String(), nil
}

func (o *ClaudeOracle) translateError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		base := OracleError{Provider: o.Key(), Message: "API request rejected", Cause: err}
		switch apierr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthenticationError{base}
		case http.StatusTooManyRequests:
			return &RateLimitError{base}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{OracleError{Provider: o.Key(), Message: "request timed out", Cause: err}}
	}
	return &OracleError{Provider: o.Key(), Message: "request failed", Cause: err}
}
