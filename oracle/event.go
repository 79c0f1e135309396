// ABOUTME: Stream event model for the oracle comparison protocol.
// ABOUTME: Decodes one data: payload into a discriminated event instead of ad hoc field checks at each call site.

package oracle

import (
	"encoding/json"
	"fmt"
)

// EventKind discriminates the variants of the comparison stream protocol.
type EventKind int

const (
	// EventFatal is a stream-wide failure not tied to any one oracle.
	EventFatal EventKind = iota
	// EventProviders announces which panels to create, in order.
	EventProviders
	// EventResult carries one oracle's complete itinerary text.
	EventResult
	// EventProviderError marks one oracle as failed without affecting the rest.
	EventProviderError
	// EventDone signals that no further events will arrive.
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventFatal:
		return "fatal"
	case EventProviders:
		return "providers"
	case EventResult:
		return "result"
	case EventProviderError:
		return "provider_error"
	case EventDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event is one decoded record of the comparison stream. Only the fields
// relevant to Kind are populated.
type Event struct {
	Kind      EventKind
	Providers []string // EventProviders
	Provider  string   // EventResult, EventProviderError
	Result    string   // EventResult
	Message   string   // EventFatal, EventProviderError
}

// rawEvent mirrors the wire shape. The variant is discriminated by field
// presence, so optional fields are pointers to distinguish absent from empty.
type rawEvent struct {
	Error     *string  `json:"error"`
	Providers []string `json:"providers"`
	Provider  string   `json:"provider"`
	Result    *string  `json:"result"`
	Done      bool     `json:"done"`
}

// DecodeEvent parses one prefix-stripped payload into an Event. Payloads
// that are not valid JSON, or that match none of the known shapes, return
// an error; callers skip such records and keep consuming.
func DecodeEvent(payload string) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return Event{}, fmt.Errorf("decoding event payload: %w", err)
	}

	switch {
	case raw.Error != nil && raw.Provider == "":
		return Event{Kind: EventFatal, Message: *raw.Error}, nil
	case len(raw.Providers) > 0:
		return Event{Kind: EventProviders, Providers: raw.Providers}, nil
	case raw.Provider != "" && raw.Result != nil:
		return Event{Kind: EventResult, Provider: raw.Provider, Result: *raw.Result}, nil
	case raw.Provider != "" && raw.Error != nil:
		return Event{Kind: EventProviderError, Provider: raw.Provider, Message: *raw.Error}, nil
	case raw.Done:
		return Event{Kind: EventDone}, nil
	default:
		return Event{}, fmt.Errorf("event payload matches no known shape: %s", payload)
	}
}
