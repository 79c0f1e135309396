// ABOUTME: Local Ollama oracle adapter over its HTTP generate API.
// ABOUTME: Reads the NDJSON response stream line by line and reassembles the full itinerary text.

package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	ollamaDefaultBaseURL = "http://localhost:11434"
	ollamaDefaultModel   = "deepseek-r1:8b"
	ollamaProbeTimeout   = 5 * time.Second
)

// OllamaOracle generates itineraries with a locally running Ollama model.
type OllamaOracle struct {
	baseURL    string
	model      string
	httpClient *http.Client
	available  bool
}

// NewOllamaOracle creates the adapter. Empty arguments fall back to the
// conventional local defaults. Call Probe to establish availability.
func NewOllamaOracle(baseURL, model string) *OllamaOracle {
	if baseURL == "" {
		baseURL = ollamaDefaultBaseURL
	}
	if model == "" {
		model = ollamaDefaultModel
	}
	return &OllamaOracle{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
	}
}

func (o *OllamaOracle) Key() string  { return "ollama" }
func (o *OllamaOracle) Name() string { return "Ollama DeepSeek-R1" }

func (o *OllamaOracle) Available() bool { return o.available }

// Probe checks whether the local Ollama service is reachable and records
// the result. It is bounded by a short timeout so startup never hangs on
// a machine without Ollama.
func (o *OllamaOracle) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, ollamaProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		o.available = false
		return false
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.available = false
		return false
	}
	defer resp.Body.Close()

	o.available = resp.StatusCode == http.StatusOK
	return o.available
}

// Generate posts to /api/generate and accumulates the streamed response
// fragments into the complete itinerary text.
func (o *OllamaOracle) Generate(ctx context.Context, prompt string) (string, error) {
	if !o.available {
		return "", &UnavailableError{OracleError{
			Provider: o.Key(),
			Message:  "Ollama is not running locally. Start it with 'ollama serve' to enable local AI.",
		}}
	}

	body, err := json.Marshal(map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": true,
	})
	if err != nil {
		return "", fmt.Errorf("encoding generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{OracleError{Provider: o.Key(), Message: "request timed out", Cause: err}}
		}
		return "", &UnavailableError{OracleError{
			Provider: o.Key(),
			Message:  "Cannot connect to the local AI service. Please make sure Ollama is running.",
			Cause:    err,
		}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return "", &UnavailableError{OracleError{
				Provider: o.Key(),
				Message:  "The local AI model is not installed. Pull it with 'ollama pull' and try again.",
			}}
		}
		return "", &OracleError{
			Provider: o.Key(),
			Message:  fmt.Sprintf("generate request failed with status %d", resp.StatusCode),
		}
	}

	// The response is one JSON object per line; fragments accumulate
	// until a line reports done.
	var text strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk struct {
			Response string `json:"response"`
			Done     bool   `json:"done"`
		}
		if err := json.Unmarshal(line, &chunk); err != nil {
			// Malformed lines are common mid-stream; skip them.
			continue
		}
		text.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return "", &TimeoutError{OracleError{Provider: o.Key(), Message: "response stream timed out", Cause: err}}
		}
		return "", fmt.Errorf("reading generate response: %w", err)
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", &EmptyResponseError{OracleError{Provider: o.Key(), Message: "local model completed without content"}}
	}
	return text.String(), nil
}
