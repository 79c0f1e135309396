// ABOUTME: Provider interface and registry for the travel oracle fan-out.
// ABOUTME: A registry preserves the canonical oracle order and filters requests down to available providers.

package llm

import "context"

// Provider is one travel oracle. Generate returns the complete itinerary
// text for a prompt; it blocks until the oracle finishes or ctx is done.
type Provider interface {
	// Key is the wire identifier used in stream events and requests.
	Key() string
	// Name is the human-readable model name shown in the UI.
	Name() string
	// Available reports whether the provider is configured and reachable.
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Registry holds the configured providers in canonical order.
type Registry struct {
	order []string
	byKey map[string]Provider
}

// NewRegistry creates a Registry from the given providers, preserving
// their order. Later duplicates of a key are ignored.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{byKey: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if _, exists := r.byKey[p.Key()]; exists {
			continue
		}
		r.byKey[p.Key()] = p
		r.order = append(r.order, p.Key())
	}
	return r
}

// Get returns the provider registered under key.
func (r *Registry) Get(key string) (Provider, bool) {
	p, ok := r.byKey[key]
	return p, ok
}

// Keys returns all registered keys in canonical order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

// All returns all registered providers in canonical order.
func (r *Registry) All() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byKey[key])
	}
	return out
}

// FilterAvailable returns the providers for the requested keys that are
// registered and available, preserving the request order. Unknown and
// unavailable keys are dropped silently so one bad selection never sinks
// the comparison.
func (r *Registry) FilterAvailable(keys []string) []Provider {
	var out []Provider
	for _, key := range keys {
		p, ok := r.byKey[key]
		if !ok || !p.Available() {
			continue
		}
		out = append(out, p)
	}
	return out
}
