// ABOUTME: Tests for the streaming comparison consumer and its triple-trigger finalizer.
// ABOUTME: Covers done, stream-end, timeout, fatal errors, malformed lines, and late-event handling.

package oracle

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func frame(payloads ...string) string {
	var b strings.Builder
	for _, p := range payloads {
		b.WriteString("data: ")
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	return b.String()
}

func TestConsumerFinalizesOnDone(t *testing.T) {
	stream := frame(
		`{"providers":["openai","claude"]}`,
		`{"provider":"openai","result":"Day 1: set out"}`,
		`{"provider":"claude","error":"Error: rate limited"}`,
		`{"done":true}`,
	)

	c := NewConsumer()
	board, err := c.Run(context.Background(), strings.NewReader(stream))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Reason() != FinalizeDone {
		t.Fatalf("expected finalize reason done, got %v", c.Reason())
	}
	if board.Len() != 2 {
		t.Fatalf("expected 2 panels, got %d", board.Len())
	}

	p, _ := board.Panel("openai")
	if p.Status != PanelComplete {
		t.Errorf("expected openai complete, got %v", p.Status)
	}
	p, _ = board.Panel("claude")
	if p.Status != PanelError {
		t.Errorf("expected claude error, got %v", p.Status)
	}
	if p.Message != "rate limited" {
		t.Errorf("expected stripped message %q, got %q", "rate limited", p.Message)
	}
}

func TestConsumerStopsReadingAfterDone(t *testing.T) {
	// Events after done must not be consumed.
	stream := frame(
		`{"providers":["openai"]}`,
		`{"done":true}`,
		`{"provider":"openai","result":"too late"}`,
	)

	c := NewConsumer()
	board, err := c.Run(context.Background(), strings.NewReader(stream))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := board.Panel("openai")
	if p.Status != PanelLoading {
		t.Errorf("expected event after done to be ignored, got %v", p.Status)
	}
}

func TestConsumerFinalizesOnStreamEnd(t *testing.T) {
	stream := frame(
		`{"providers":["openai"]}`,
		`{"provider":"openai","result":"Day 1: a start"}`,
	)

	c := NewConsumer()
	_, err := c.Run(context.Background(), strings.NewReader(stream))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Reason() != FinalizeStreamEnd {
		t.Errorf("expected finalize reason stream_end, got %v", c.Reason())
	}
}

func TestConsumerPanelsLoadingImmediatelyAfterAnnounce(t *testing.T) {
	var seen []string
	c := NewConsumer(WithPanelObserver(func(p Panel) {
		seen = append(seen, p.Key+":"+p.Status.String())
	}))

	stream := frame(
		`{"providers":["openai","claude"]}`,
		`{"provider":"openai","result":"done"}`,
	)
	if _, err := c.Run(context.Background(), strings.NewReader(stream)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) < 3 {
		t.Fatalf("expected loading notifications before the result, got %v", seen)
	}
	if seen[0] != "openai:loading" || seen[1] != "claude:loading" {
		t.Errorf("expected both panels loading right after announcement, got %v", seen[:2])
	}
}

func TestConsumerFatalErrorAbortsWithoutPanels(t *testing.T) {
	stream := frame(`{"error":"No API key"}`, `{"providers":["openai"]}`)

	c := NewConsumer()
	board, err := c.Run(context.Background(), strings.NewReader(stream))

	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected FatalError, got %v", err)
	}
	if fatal.Message != "No API key" {
		t.Errorf("expected message %q, got %q", "No API key", fatal.Message)
	}
	if board.Len() != 0 {
		t.Errorf("expected no panels created or mutated, got %d", board.Len())
	}
	if !IsCredentialError(fatal.Message) {
		t.Error("expected message to be recognized as a credentials condition")
	}
}

func TestConsumerSkipsMalformedLines(t *testing.T) {
	stream := "data: {not-json\n\n" + frame(
		`{"providers":["openai"]}`,
		`{"provider":"openai","result":"still fine"}`,
		`{"done":true}`,
	)

	c := NewConsumer()
	board, err := c.Run(context.Background(), strings.NewReader(stream))
	if err != nil {
		t.Fatalf("expected malformed line to be skipped, got %v", err)
	}
	p, _ := board.Panel("openai")
	if p.Status != PanelComplete {
		t.Errorf("expected later valid events processed, got %v", p.Status)
	}
}

func TestConsumerTimeoutFinalizesOnce(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	c := NewConsumer(WithTimeout(30 * time.Millisecond))

	go func() {
		_, _ = pw.Write([]byte(frame(`{"providers":["openai","claude"]}`)))
		// Stay silent past the timeout, then send a late done.
		time.Sleep(120 * time.Millisecond)
		_, _ = pw.Write([]byte(frame(`{"done":true}`)))
	}()

	board, err := c.Run(context.Background(), pr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Reason() != FinalizeTimeout {
		t.Fatalf("expected finalize reason timeout, got %v", c.Reason())
	}
	for _, p := range board.Panels() {
		if p.Status != PanelTimedOut {
			t.Errorf("panel %q: expected timed out, got %v", p.Key, p.Status)
		}
	}
}

func TestConsumerTimeoutInvokesShutdown(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	released := make(chan struct{})
	c := NewConsumer(WithTimeout(20*time.Millisecond), withShutdown(func() {
		close(released)
		_ = pr.Close()
	}))

	done := make(chan struct{})
	go func() {
		_, _ = c.Run(context.Background(), pr)
		close(done)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown hook to fire at timeout")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return once the stream was torn down")
	}
}

func TestConsumerReasonBeforeFinalize(t *testing.T) {
	c := NewConsumer()
	if c.Reason() != FinalizeNone {
		t.Errorf("expected no reason before Run, got %v", c.Reason())
	}
}
