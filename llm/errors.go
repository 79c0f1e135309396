// ABOUTME: Error hierarchy for oracle provider failures.
// ABOUTME: Typed errors carry the provider key and map to user-facing messages for the comparison stream.

package llm

import (
	"context"
	"errors"
	"fmt"
)

// OracleError is the base error type for provider failures. Specific
// failure classes embed it.
type OracleError struct {
	Provider string
	Message  string
	Cause    error
}

func (e *OracleError) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// AuthenticationError is a rejected or missing API key.
type AuthenticationError struct {
	OracleError
}

// RateLimitError is a 429 from the provider.
type RateLimitError struct {
	OracleError
}

// TimeoutError is a provider call that exceeded its deadline.
type TimeoutError struct {
	OracleError
}

// UnavailableError is a provider that is not configured or not reachable.
type UnavailableError struct {
	OracleError
}

// EmptyResponseError is a provider call that completed without content.
type EmptyResponseError struct {
	OracleError
}

// UserMessage translates a provider failure into the text shown inside
// that oracle's panel. Unknown errors get a generic message rather than
// leaking internals to the UI.
func UserMessage(err error) string {
	var (
		auth    *AuthenticationError
		rate    *RateLimitError
		timeout *TimeoutError
		unavail *UnavailableError
		empty   *EmptyResponseError
		base    *OracleError
	)

	switch {
	case errors.As(err, &auth):
		return fmt.Sprintf("Invalid %s API key. Please check your credentials in the .env file.", providerLabel(auth.Provider))
	case errors.As(err, &rate):
		return fmt.Sprintf("Too many requests to %s right now. Wait a moment or try another oracle.", providerLabel(rate.Provider))
	case errors.As(err, &timeout):
		return "The oracle is taking too long to respond. Please try again with a shorter quest."
	case errors.As(err, &unavail):
		return unavail.Message
	case errors.As(err, &empty):
		return "The oracle returned an empty response. Try rephrasing your quest."
	case errors.Is(err, context.DeadlineExceeded):
		return "The oracle is taking too long to respond. Please try again with a shorter quest."
	case errors.As(err, &base):
		return fmt.Sprintf("The %s oracle encountered an unexpected issue. Please try again.", providerLabel(base.Provider))
	default:
		return "The oracle encountered an unexpected issue. Please try again."
	}
}

func providerLabel(key string) string {
	switch key {
	case "openai":
		return "OpenAI"
	case "claude":
		return "Claude"
	case "ollama":
		return "Ollama"
	default:
		return key
	}
}
