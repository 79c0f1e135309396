// ABOUTME: HTTP client for the comparison stream and the booking endpoint.
// ABOUTME: Validates requests before any network call and wires stream teardown into the consumer's finalizer.

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Endpoint paths served by the journeys web server.
const (
	ComparePath = "/generate-comparison"
	BookingPath = "/generate-booking-response"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client. The client must not
// set an overall request timeout: comparison responses stream for up to
// the consumer timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// Client talks to a journeys server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare posts the request and consumes the resulting event stream to
// completion. The returned board holds the final panel states; it is
// returned even when the comparison failed so callers can render whatever
// was reached. Cancelling ctx closes the underlying connection.
func (c *Client) Compare(ctx context.Context, req ComparisonRequest, opts ...ConsumerOption) (*Board, error) {
	if err := req.Validate(); err != nil {
		return NewBoard(), fmt.Errorf("invalid comparison request: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return NewBoard(), fmt.Errorf("encoding comparison request: %w", err)
	}

	// A child context lets the consumer's finalizer tear the connection
	// down when the timeout fires mid-read.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ComparePath, bytes.NewReader(body))
	if err != nil {
		return NewBoard(), fmt.Errorf("creating comparison request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return NewBoard(), &FatalError{Message: fmt.Sprintf("comparison request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewBoard(), &FatalError{Message: fmt.Sprintf("comparison request failed: %s", resp.Status)}
	}

	consumer := NewConsumer(append(opts, withShutdown(cancel))...)
	return consumer.Run(ctx, resp.Body)
}

// Book posts a booking request for the chosen oracle's itinerary and
// returns its farewell message.
func (c *Client) Book(ctx context.Context, req BookingRequest) (BookingConfirmation, error) {
	if err := req.Validate(); err != nil {
		return BookingConfirmation{}, fmt.Errorf("invalid booking request: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return BookingConfirmation{}, fmt.Errorf("encoding booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+BookingPath, bytes.NewReader(body))
	if err != nil {
		return BookingConfirmation{}, fmt.Errorf("creating booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return BookingConfirmation{}, fmt.Errorf("booking request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Message   string `json:"message"`
		Provider  string `json:"provider"`
		Reference string `json:"reference"`
		Error     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return BookingConfirmation{}, fmt.Errorf("decoding booking response (status %s): %w", resp.Status, err)
	}
	if payload.Error != "" {
		return BookingConfirmation{}, fmt.Errorf("booking failed: %s", payload.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return BookingConfirmation{}, fmt.Errorf("booking failed: %s", resp.Status)
	}

	return BookingConfirmation{
		Message:   payload.Message,
		Provider:  payload.Provider,
		Reference: payload.Reference,
	}, nil
}
