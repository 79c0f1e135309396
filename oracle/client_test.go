// ABOUTME: Tests for the comparison HTTP client against httptest servers.
// ABOUTME: Covers the end-to-end scenario, pre-network validation, transport failures, and booking responses.

package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func eldaraRequest() ComparisonRequest {
	return ComparisonRequest{
		Destination: "Eldara",
		Days:        7,
		Budget:      "moderate",
		Interests:   []string{"forests"},
		Providers:   []string{"openai", "claude"},
	}
}

func streamHandler(t *testing.T, payloads ...string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req ComparisonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, p := range payloads {
			fmt.Fprintf(w, "data: %s\n\n", p)
		}
	}
}

func TestClientCompareEndToEnd(t *testing.T) {
	srv := httptest.NewServer(streamHandler(t,
		`{"providers":["openai","claude"]}`,
		`{"provider":"openai","result":"Day 1: ..."}`,
		`{"provider":"claude","error":"Error: rate limited"}`,
		`{"done":true}`,
	))
	defer srv.Close()

	board, err := NewClient(srv.URL).Compare(context.Background(), eldaraRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if board.Len() != 2 {
		t.Fatalf("expected 2 panels, got %d", board.Len())
	}
	p, _ := board.Panel("openai")
	if p.Status != PanelComplete {
		t.Errorf("expected openai complete, got %v", p.Status)
	}
	if !strings.Contains(string(p.Content), "<h3>") {
		t.Errorf("expected formatted content with heading, got %q", p.Content)
	}
	p, _ = board.Panel("claude")
	if p.Status != PanelError {
		t.Errorf("expected claude error, got %v", p.Status)
	}
	if p.Message != "rate limited" {
		t.Errorf("expected prefix stripped, got %q", p.Message)
	}
}

func TestClientCompareRejectsInvalidRequestBeforeNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	req := eldaraRequest()
	req.Days = 99
	if _, err := NewClient(srv.URL).Compare(context.Background(), req); err == nil {
		t.Fatal("expected validation error")
	}
	if hits != 0 {
		t.Errorf("expected no network call for invalid request, got %d", hits)
	}
}

func TestClientCompareNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	board, err := NewClient(srv.URL).Compare(context.Background(), eldaraRequest())
	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected FatalError, got %v", err)
	}
	if board == nil || board.Len() != 0 {
		t.Error("expected an empty board so the caller can still show the results view")
	}
}

func TestClientCompareFatalStreamError(t *testing.T) {
	srv := httptest.NewServer(streamHandler(t, `{"error":"No available oracles selected"}`))
	defer srv.Close()

	_, err := NewClient(srv.URL).Compare(context.Background(), eldaraRequest())
	var fatal *FatalError
	if !errors.As(err, &fatal) {
		t.Fatalf("expected FatalError, got %v", err)
	}
}

func TestClientBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req BookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode booking request: %v", err)
		}
		if req.Provider != "openai" {
			t.Errorf("expected provider openai, got %q", req.Provider)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message":   "May your quest be ever sparkling!",
			"provider":  "openai",
			"reference": "01JC0000000000000000000000",
		})
	}))
	defer srv.Close()

	conf, err := NewClient(srv.URL).Book(context.Background(), BookingRequest{
		Provider:  "openai",
		Itinerary: "Day 1: depart",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Message == "" || conf.Reference == "" {
		t.Errorf("expected populated confirmation, got %+v", conf)
	}
}

func TestClientBookServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "Selected oracle is not available"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Book(context.Background(), BookingRequest{
		Provider:  "ollama",
		Itinerary: "Day 1: depart",
	})
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Fatalf("expected server error surfaced, got %v", err)
	}
}

func TestClientBookRejectsInvalidRequest(t *testing.T) {
	if _, err := NewClient("http://unused").Book(context.Background(), BookingRequest{}); err == nil {
		t.Fatal("expected validation error")
	}
}
