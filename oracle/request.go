// ABOUTME: Request types for the comparison and booking endpoints with validation.
// ABOUTME: Invalid requests are rejected here, before any network call is made.

package oracle

import (
	"errors"
	"fmt"
)

// Quest duration limits enforced on ComparisonRequest.Days.
const (
	MinDays     = 1
	MaxDays     = 30
	DefaultDays = 5
)

// ComparisonRequest is the single JSON document posted to start a
// comparison. It is immutable after submission.
type ComparisonRequest struct {
	Destination string   `json:"destination"`
	Days        int      `json:"days"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
	Providers   []string `json:"providers"`
}

// Validate checks the request against the field constraints. It returns
// the first violation found.
func (r ComparisonRequest) Validate() error {
	if r.Destination == "" {
		return errors.New("destination must not be empty")
	}
	if r.Days < MinDays || r.Days > MaxDays {
		return fmt.Errorf("days must be between %d and %d, got %d", MinDays, MaxDays, r.Days)
	}
	if r.Budget == "" {
		return errors.New("budget must not be empty")
	}
	if len(r.Interests) == 0 {
		return errors.New("at least one interest is required")
	}
	if len(r.Providers) == 0 {
		return errors.New("at least one oracle must be selected")
	}
	return nil
}

// BookingRequest asks the chosen oracle for a farewell message about the
// selected itinerary. No transaction happens; the booking is a mocked
// text response.
type BookingRequest struct {
	Provider  string `json:"provider"`
	Itinerary string `json:"itinerary"`
}

// Validate checks that both fields are present.
func (r BookingRequest) Validate() error {
	if r.Provider == "" {
		return errors.New("provider must not be empty")
	}
	if r.Itinerary == "" {
		return errors.New("itinerary must not be empty")
	}
	return nil
}

// BookingConfirmation is the booking endpoint's success response.
type BookingConfirmation struct {
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Reference string `json:"reference,omitempty"`
}
