// ABOUTME: Mock oracle that fabricates structured itineraries from lorem ipsum text.
// ABOUTME: Always available; useful for demos and development without any API keys.

package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"
)

var dayCountPattern = regexp.MustCompile(`(\d+)[- ]day`)

// LoremOracle is a mock provider that needs no external service. It
// builds an itinerary in the same shape real oracles produce so the
// rendering pipeline can be exercised end to end.
type LoremOracle struct {
	generator *loremgen.Lorem
	delay     time.Duration
}

// NewLoremOracle creates the mock oracle. A non-zero delay simulates
// the latency of a real model call.
func NewLoremOracle(delay time.Duration) *LoremOracle {
	return &LoremOracle{
		generator: loremgen.New(),
		delay:     delay,
	}
}

func (l *LoremOracle) Key() string     { return "lorem" }
func (l *LoremOracle) Name() string    { return "Lorem Oracle" }
func (l *LoremOracle) Available() bool { return true }

// Generate fabricates a day-by-day itinerary. The day count is pulled
// from the prompt so the output matches what the caller asked for.
func (l *LoremOracle) Generate(ctx context.Context, prompt string) (string, error) {
	if l.delay > 0 {
		select {
		case <-time.After(l.delay):
		case <-ctx.Done():
			return "", &TimeoutError{OracleError{Provider: l.Key(), Message: "mock generation interrupted", Cause: ctx.Err()}}
		}
	}

	days := 5
	if m := dayCountPattern.FindStringSubmatch(prompt); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			days = n
		}
	}

	var sb strings.Builder
	for day := 1; day <= days; day++ {
		fmt.Fprintf(&sb, "**Day %d: %s**\n", day, titleCase(l.generator.Word(4, 9))+" "+titleCase(l.generator.Word(4, 9)))
		fmt.Fprintf(&sb, "• Morning: %s\n", l.generator.Sentence(6, 12))
		fmt.Fprintf(&sb, "• Afternoon: %s\n", l.generator.Sentence(6, 12))
		fmt.Fprintf(&sb, "• Evening: %s\n", l.generator.Sentence(6, 12))
		fmt.Fprintf(&sb, "• Estimated cost: %d gold pieces\n\n", 40+day*17%120)
	}
	fmt.Fprintf(&sb, "**Total Estimated Cost:** %d gold pieces for the full journey.\n", 150+days*90)

	return sb.String(), nil
}

func titleCase(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
