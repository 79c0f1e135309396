// ABOUTME: SSE handler that fans a quest out to the selected oracles concurrently.
// ABOUTME: Results stream back in completion order; one slow or failing oracle never blocks the rest.

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nyghtowl/mystical-journeys/config"
	"github.com/nyghtowl/mystical-journeys/llm"
	"github.com/nyghtowl/mystical-journeys/oracle"
	"github.com/nyghtowl/mystical-journeys/oracle/sse"
)

type providerOutcome struct {
	key    string
	result string
	err    error
}

// handleComparison streams itineraries from every selected oracle as
// data-only SSE records. The stream always ends with a done event unless
// the overall deadline forces it closed first.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	var req oracle.ComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Days == 0 {
		req.Days = oracle.DefaultDays
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	comparisonID := uuid.NewString()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	out := sse.NewWriter(w)

	selected := s.registry.FilterAvailable(req.Providers)
	if len(selected) == 0 {
		out.WriteJSON(map[string]string{"error": "No available oracles selected"})
		return
	}

	prompt := config.ItineraryPrompt(
		req.Destination,
		durationText(req.Days),
		req.Budget,
		strings.Join(req.Interests, ", "),
	)

	keys := make([]string, len(selected))
	for i, p := range selected {
		keys[i] = p.Key()
	}
	log.Printf("comparison started id=%s destination=%q days=%d oracles=%v",
		comparisonID, req.Destination, req.Days, keys)

	ctx, cancel := context.WithTimeout(r.Context(), s.compareTimeout)
	defer cancel()

	outcomes := make(chan providerOutcome, len(selected))
	for _, p := range selected {
		go func(p llm.Provider) {
			genCtx, genCancel := context.WithTimeout(ctx, s.generateTimeout)
			defer genCancel()
			result, err := p.Generate(genCtx, prompt)
			outcomes <- providerOutcome{key: p.Key(), result: result, err: err}
		}(p)
	}

	// Announce the panel set before any result so the frontend can show
	// every oracle as loading immediately.
	if err := out.WriteJSON(map[string]any{"providers": keys}); err != nil {
		log.Printf("comparison write failed id=%s: %v", comparisonID, err)
		return
	}

	pending := len(selected)
	for pending > 0 {
		select {
		case o := <-outcomes:
			pending--
			var event map[string]string
			if o.err != nil {
				log.Printf("oracle failed id=%s oracle=%s: %v", comparisonID, o.key, o.err)
				event = map[string]string{
					"provider": o.key,
					"error":    "Error: " + llm.UserMessage(o.err),
				}
			} else {
				event = map[string]string{"provider": o.key, "result": o.result}
			}
			if err := out.WriteJSON(event); err != nil {
				log.Printf("comparison write failed id=%s: %v", comparisonID, err)
				return
			}
		case <-ctx.Done():
			// Deadline hit with oracles still working. The generate
			// contexts are children of ctx, so the goroutines unwind on
			// their own; the stream just ends here.
			log.Printf("comparison deadline id=%s pending=%d", comparisonID, pending)
			return
		}
	}

	out.WriteJSON(map[string]bool{"done": true})
	log.Printf("comparison finished id=%s", comparisonID)
}

func durationText(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
