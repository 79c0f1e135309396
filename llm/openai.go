// ABOUTME: OpenAI oracle adapter over the official Go SDK's chat completions API.
// ABOUTME: Translates SDK failures into the oracle error hierarchy.

package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIDefaultModel = "gpt-3.5-turbo"

// placeholder API keys from .env.example should behave like no key at all.
const placeholderKeyPrefix = "your_"

// OpenAIOracle generates itineraries with an OpenAI chat model.
type OpenAIOracle struct {
	client    openai.Client
	model     string
	baseURL   string
	available bool
}

// OpenAIOption configures an OpenAIOracle.
type OpenAIOption func(*OpenAIOracle)

// WithOpenAIModel overrides the default model.
func WithOpenAIModel(model string) OpenAIOption {
	return func(o *OpenAIOracle) {
		if model != "" {
			o.model = model
		}
	}
}

// WithOpenAIBaseURL points the adapter at an OpenAI-compatible endpoint.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(o *OpenAIOracle) {
		o.baseURL = url
	}
}

// NewOpenAIOracle creates the adapter. An empty or placeholder API key
// leaves it unavailable rather than failing construction.
func NewOpenAIOracle(apiKey string, opts ...OpenAIOption) *OpenAIOracle {
	o := &OpenAIOracle{
		model:     openAIDefaultModel,
		available: keyUsable(apiKey),
	}
	for _, opt := range opts {
		opt(o)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if o.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(o.baseURL))
	}
	o.client = openai.NewClient(reqOpts...)
	return o
}

func (o *OpenAIOracle) Key() string  { return "openai" }
func (o *OpenAIOracle) Name() string { return "OpenAI GPT-3.5 Turbo" }

func (o *OpenAIOracle) Available() bool { return o.available }

// Generate requests a complete itinerary from the chat completions API.
func (o *OpenAIOracle) Generate(ctx context.Context, prompt string) (string, error) {
	if !o.available {
		return "", &UnavailableError{OracleError{
			Provider: o.Key(),
			Message:  "OpenAI is not configured. Please add your API key to continue.",
		}}
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(2000),
		Temperature:         openai.Float(0.8),
	})
	if err != nil {
		return "", o.translateError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &EmptyResponseError{OracleError{Provider: o.Key(), Message: "empty completion"}}
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAIOracle) translateError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		base := OracleError{Provider: o.Key(), Message: "API request rejected", Cause: err}
		switch apierr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthenticationError{base}
		case http.StatusTooManyRequests:
			return &RateLimitError{base}
		case http.StatusNotFound:
			return &UnavailableError{OracleError{
				Provider: o.Key(),
				Message:  "The requested model is currently unavailable. Please try again later.",
				Cause:    err,
			}}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{OracleError{Provider: o.Key(), Message: "request timed out", Cause: err}}
	}
	return &OracleError{Provider: o.Key(), Message: "request failed", Cause: err}
}

// keyUsable reports whether an API key looks real: non-empty and not a
// copied .env.example placeholder.
func keyUsable(apiKey string) bool {
	return apiKey != "" && !strings.HasPrefix(apiKey, placeholderKeyPrefix)
}
