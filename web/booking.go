// ABOUTME: Booking endpoint: the chosen oracle sends the traveler a whimsical farewell.
// ABOUTME: No real transaction happens; a ULID reference makes the confirmation feel like a receipt.

package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/oklog/ulid/v2"

	"github.com/nyghtowl/mystical-journeys/config"
	"github.com/nyghtowl/mystical-journeys/oracle"
)

// handleBooking asks the selected oracle for a short farewell about the
// itinerary the traveler picked.
func (s *Server) handleBooking(w http.ResponseWriter, r *http.Request) {
	var req oracle.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	provider, ok := s.registry.Get(req.Provider)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid provider selected"})
		return
	}
	if !provider.Available() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Selected provider is not available"})
		return
	}

	// The farewell prompt deliberately ignores the itinerary body; parsing
	// rendered HTML back into a prompt caused more failures than it was
	// worth.
	ctx, cancel := context.WithTimeout(r.Context(), s.generateTimeout)
	defer cancel()

	message, err := provider.Generate(ctx, config.BookingFarewellPrompt())
	if err != nil {
		log.Printf("booking farewell failed oracle=%s: %v", req.Provider, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "The oracle seems to have vanished into the mist...",
		})
		return
	}

	writeJSON(w, http.StatusOK, oracle.BookingConfirmation{
		Message:   message,
		Provider:  req.Provider,
		Reference: ulid.Make().String(),
	})
}
