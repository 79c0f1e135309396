// ABOUTME: Tests for the OpenAI adapter's construction and offline behavior.
// ABOUTME: Generate against a live API is not tested here; error translation is exercised via the unavailable path.

package llm

import (
	"context"
	"errors"
	"testing"
)

func TestKeyUsable(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"real key", "sk-proj-abc123", true},
		{"empty key", "", false},
		{"placeholder from env example", "your_openai_api_key_here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyUsable(tt.key); got != tt.want {
				t.Errorf("keyUsable(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestOpenAIUnavailableWithoutKey(t *testing.T) {
	o := NewOpenAIOracle("")
	if o.Available() {
		t.Error("expected adapter without key to be unavailable")
	}

	_, err := o.Generate(context.Background(), "plan a trip")
	var unavail *UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}

func TestOpenAIModelOverride(t *testing.T) {
	o := NewOpenAIOracle("sk-test", WithOpenAIModel("gpt-4o-mini"))
	if o.model != "gpt-4o-mini" {
		t.Errorf("expected model override, got %q", o.model)
	}

	o = NewOpenAIOracle("sk-test", WithOpenAIModel(""))
	if o.model != openAIDefaultModel {
		t.Errorf("expected default model for empty override, got %q", o.model)
	}
}

func TestClaudeUnavailableWithoutKey(t *testing.T) {
	o := NewClaudeOracle("your_anthropic_api_key_here")
	if o.Available() {
		t.Error("expected adapter with placeholder key to be unavailable")
	}

	_, err := o.Generate(context.Background(), "plan a trip")
	var unavail *UnavailableError
	if !errors.As(err, &unavail) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}
