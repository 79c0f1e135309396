// ABOUTME: Streaming comparison consumer: reads framed events, drives the panel board, and finalizes once.
// ABOUTME: Finalization is triggered by done, stream end, or timeout, whichever fires first.

package oracle

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nyghtowl/mystical-journeys/oracle/sse"
)

// DefaultTimeout bounds a comparison from stream start to finalization.
const DefaultTimeout = 60 * time.Second

// FinalizeReason records which trigger finalized the comparison.
type FinalizeReason int

const (
	// FinalizeNone means the comparison has not finalized yet.
	FinalizeNone FinalizeReason = iota
	// FinalizeDone is an explicit done signal from the server.
	FinalizeDone
	// FinalizeStreamEnd is stream exhaustion without a done signal.
	FinalizeStreamEnd
	// FinalizeTimeout is the timeout elapsing before any other trigger.
	FinalizeTimeout
)

func (r FinalizeReason) String() string {
	switch r {
	case FinalizeDone:
		return "done"
	case FinalizeStreamEnd:
		return "stream_end"
	case FinalizeTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// FatalError is a stream-wide failure: either a top-level error event or a
// transport failure before streaming could begin.
type FatalError struct {
	Message string
}

func (e *FatalError) Error() string {
	return e.Message
}

// credentialHints are the substrings used to heuristically distinguish a
// missing-credentials failure from a generic one.
var credentialHints = []string{"api key", "credential", "not configured", "unauthorized"}

// IsCredentialError reports whether a failure message looks like a
// missing or invalid credentials condition.
func IsCredentialError(message string) bool {
	lower := strings.ToLower(message)
	for _, hint := range credentialHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithTimeout overrides the comparison timeout.
func WithTimeout(d time.Duration) ConsumerOption {
	return func(c *Consumer) {
		c.timeout = d
	}
}

// WithPanelObserver registers a callback invoked with a snapshot after
// every panel mutation, letting a UI re-render incrementally.
func WithPanelObserver(fn func(Panel)) ConsumerOption {
	return func(c *Consumer) {
		c.observe = fn
	}
}

// withShutdown registers a hook invoked once at finalization. The HTTP
// client uses it to tear down the underlying connection when the timeout
// fires while the reader is still blocked.
func withShutdown(fn func()) ConsumerOption {
	return func(c *Consumer) {
		c.shutdown = fn
	}
}

// Consumer runs one comparison: it frames the stream, dispatches events in
// arrival order, and guarantees exactly one finalization. A Consumer is
// single-use; create a new one per comparison.
type Consumer struct {
	board    *Board
	timeout  time.Duration
	observe  func(Panel)
	shutdown func()

	// finalized is checked-and-set atomically because the timeout timer
	// fires on a separate goroutine from the reader loop.
	finalized atomic.Bool
	reason    atomic.Int32
}

// NewConsumer creates a Consumer with the default 60 second timeout.
func NewConsumer(opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		board:   NewBoard(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Board returns the panel state store driven by this consumer.
func (c *Consumer) Board() *Board {
	return c.board
}

// Reason returns which trigger finalized the comparison, or FinalizeNone.
func (c *Consumer) Reason() FinalizeReason {
	return FinalizeReason(c.reason.Load())
}

// Run consumes the stream until done, stream end, timeout, or a fatal
// event. The board is always returned, even on error, so callers can show
// whatever terminal state was reached. Events arriving after finalization
// are ignored.
func (c *Consumer) Run(ctx context.Context, stream io.Reader) (*Board, error) {
	timer := time.AfterFunc(c.timeout, func() {
		c.finalize(FinalizeTimeout)
	})
	defer timer.Stop()

	scanner := sse.NewScanner(stream)
	for {
		if c.finalized.Load() {
			return c.board, nil
		}

		payload, err := scanner.Next()
		if err == io.EOF {
			c.finalize(FinalizeStreamEnd)
			return c.board, nil
		}
		if err != nil {
			if c.finalized.Load() || ctx.Err() != nil {
				// Read failure caused by our own teardown, not the server.
				c.finalize(FinalizeStreamEnd)
				return c.board, nil
			}
			c.finalize(FinalizeStreamEnd)
			return c.board, fmt.Errorf("reading comparison stream: %w", err)
		}

		evt, err := DecodeEvent(payload)
		if err != nil {
			// One malformed record never aborts the stream.
			log.Printf("comparison consumer: skipping event: %v", err)
			continue
		}

		if done, fatalErr := c.dispatch(evt); done {
			return c.board, fatalErr
		}
	}
}

// dispatch applies one event to the board. It reports whether consumption
// should stop, and a fatal error if the stream failed as a whole.
func (c *Consumer) dispatch(evt Event) (stop bool, err error) {
	if c.finalized.Load() {
		return true, nil
	}

	switch evt.Kind {
	case EventProviders:
		c.board.CreatePanels(evt.Providers)
		c.notifyAll()
	case EventResult:
		c.board.SetComplete(evt.Provider, evt.Result)
		c.notify(evt.Provider)
	case EventProviderError:
		c.board.SetError(evt.Provider, evt.Message)
		c.notify(evt.Provider)
	case EventDone:
		c.finalize(FinalizeDone)
		return true, nil
	case EventFatal:
		c.finalize(FinalizeStreamEnd)
		return true, &FatalError{Message: evt.Message}
	}
	return false, nil
}

// finalize runs the completion routine at most once, regardless of which
// trigger fires first. A timeout additionally moves still-loading panels
// into their timed-out terminal state.
func (c *Consumer) finalize(reason FinalizeReason) {
	if !c.finalized.CompareAndSwap(false, true) {
		return
	}
	c.reason.Store(int32(reason))
	if reason == FinalizeTimeout {
		c.board.MarkTimedOut()
		c.notifyAll()
	}
	if c.shutdown != nil {
		c.shutdown()
	}
}

func (c *Consumer) notify(key string) {
	if c.observe == nil {
		return
	}
	if p, ok := c.board.Panel(key); ok {
		c.observe(p)
	}
}

func (c *Consumer) notifyAll() {
	if c.observe == nil {
		return
	}
	for _, p := range c.board.Panels() {
		c.observe(p)
	}
}
