// ABOUTME: Panel state store for the oracle comparison view.
// ABOUTME: Holds per-provider state as an explicit mapping; rendering is a pure projection over it.

package oracle

import (
	"html/template"
	"strings"
	"sync"
)

// PanelStatus is the lifecycle state of one oracle's panel.
type PanelStatus int

const (
	// PanelLoading is the initial state of every announced panel.
	PanelLoading PanelStatus = iota
	// PanelComplete holds a finished itinerary.
	PanelComplete
	// PanelError holds a per-oracle failure message.
	PanelError
	// PanelTimedOut marks panels still loading when the comparison timed out.
	PanelTimedOut
)

func (s PanelStatus) String() string {
	switch s {
	case PanelLoading:
		return "loading"
	case PanelComplete:
		return "complete"
	case PanelError:
		return "error"
	case PanelTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// errorPrefix is the legacy wire convention for oracle failures; it is
// stripped before display.
const errorPrefix = "Error: "

// Panel is the state of one oracle's response.
type Panel struct {
	Key     string        // wire identifier
	Name    string        // display name
	Status  PanelStatus   `json:"status"`
	Raw     string        // itinerary text as received, kept for booking
	Content template.HTML // rendered itinerary markup
	Message string        // failure message, prefix stripped
}

// Board is the set of panels for one comparison, in announcement order.
//
// Updates for a key after a terminal state overwrite it: last write wins.
// Board methods are safe for concurrent use because the timeout trigger can
// fire from a timer goroutine while the reader loop is dispatching.
type Board struct {
	mu     sync.Mutex
	order  []string
	panels map[string]*Panel
}

// NewBoard creates an empty Board.
func NewBoard() *Board {
	return &Board{panels: make(map[string]*Panel)}
}

// CreatePanels creates a loading panel for each key in the given order.
// Keys that already have a panel are left untouched, so re-announcement
// never duplicates entries.
func (b *Board) CreatePanels(keys []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, key := range keys {
		if _, exists := b.panels[key]; exists {
			continue
		}
		b.panels[key] = &Panel{
			Key:    key,
			Name:   DisplayName(key),
			Status: PanelLoading,
		}
		b.order = append(b.order, key)
	}
}

// SetComplete transitions the panel for key to complete with the rendered
// itinerary. Unknown keys are a no-op.
func (b *Board) SetComplete(key, content string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.panels[key]
	if !ok {
		return
	}
	p.Status = PanelComplete
	p.Raw = content
	p.Content = FormatItinerary(content)
	p.Message = ""
}

// SetError transitions the panel for key to the error state. Unknown keys
// are a no-op. A leading "Error: " is stripped from the message.
func (b *Board) SetError(key, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.panels[key]
	if !ok {
		return
	}
	p.Status = PanelError
	p.Message = strings.TrimPrefix(message, errorPrefix)
	p.Raw = ""
	p.Content = ""
}

// MarkTimedOut moves every panel still loading into the timed-out state so
// the final view never shows an indefinite spinner.
func (b *Board) MarkTimedOut() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.panels {
		if p.Status == PanelLoading {
			p.Status = PanelTimedOut
		}
	}
}

// Panel returns a snapshot of the panel for key.
func (b *Board) Panel(key string) (Panel, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.panels[key]
	if !ok {
		return Panel{}, false
	}
	return *p, true
}

// Panels returns snapshots of all panels in announcement order.
func (b *Board) Panels() []Panel {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Panel, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, *b.panels[key])
	}
	return out
}

// Len returns the number of panels.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Columns returns the column count hint for the comparison layout: two
// oracles side by side, three in a row, anything else flows freely (0).
func (b *Board) Columns() int {
	switch b.Len() {
	case 2:
		return 2
	case 3:
		return 3
	default:
		return 0
	}
}
