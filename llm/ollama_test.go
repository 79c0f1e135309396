// ABOUTME: Tests for the Ollama adapter against a local httptest server.
// ABOUTME: Covers probing, NDJSON stream reassembly, and failure mapping.

package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaProbe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"service up", http.StatusOK, true},
		{"service erroring", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/tags" {
					t.Errorf("expected probe to hit /api/tags, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			o := NewOllamaOracle(srv.URL, "")
			if got := o.Probe(context.Background()); got != tt.want {
				t.Errorf("expected probe %v, got %v", tt.want, got)
			}
			if o.Available() != tt.want {
				t.Errorf("expected Available %v after probe", tt.want)
			}
		})
	}
}

func TestOllamaProbeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	o := NewOllamaOracle(srv.URL, "")
	if o.Probe(context.Background()) {
		t.Error("expected probe against closed server to fail")
	}
}

func TestOllamaGenerateAccumulatesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected /api/generate, got %s", r.URL.Path)
		}
		fmt.Fprintln(w, `{"response":"Day 1: ","done":false}`)
		fmt.Fprintln(w, `not json at all`)
		fmt.Fprintln(w, `{"response":"visit the crystal caves.","done":false}`)
		fmt.Fprintln(w, `{"response":"","done":true}`)
		fmt.Fprintln(w, `{"response":"after done, ignored","done":false}`)
	}))
	defer srv.Close()

	o := NewOllamaOracle(srv.URL, "deepseek-r1:8b")
	o.available = true

	got, err := o.Generate(context.Background(), "plan a trip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Day 1: visit the crystal caves."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestOllamaGenerateWhenNotAvailable(t *testing.T) {
	o := NewOllamaOracle("http://localhost:11434", "")

	_, err := o.Generate(context.Background(), "plan a trip")
	var unavail *UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if !strings.Contains(unavail.Message, "ollama serve") {
		t.Errorf("expected start instructions in message, got %q", unavail.Message)
	}
}

func TestOllamaGenerateModelMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	o := NewOllamaOracle(srv.URL, "no-such-model")
	o.available = true

	_, err := o.Generate(context.Background(), "plan a trip")
	var unavail *UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected UnavailableError for missing model, got %v", err)
	}
	if !strings.Contains(unavail.Message, "ollama pull") {
		t.Errorf("expected pull instructions in message, got %q", unavail.Message)
	}
}

func TestOllamaGenerateEmptyStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"","done":true}`)
	}))
	defer srv.Close()

	o := NewOllamaOracle(srv.URL, "")
	o.available = true

	_, err := o.Generate(context.Background(), "plan a trip")
	var empty *EmptyResponseError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyResponseError, got %v", err)
	}
}

func TestOllamaGenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	o := NewOllamaOracle(addr, "")
	o.available = true

	_, err := o.Generate(context.Background(), "plan a trip")
	var unavail *UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected UnavailableError for refused connection, got %v", err)
	}
}
