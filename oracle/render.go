// ABOUTME: Pure itinerary text to HTML transform using goldmark.
// ABOUTME: Promotes "Day N" section labels to headings and normalizes bullet characters before conversion.

package oracle

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

// dayHeading matches itinerary section labels like "Day 2: Underworld
// Exploration", with or without surrounding ** emphasis.
var dayHeading = regexp.MustCompile(`^\s*(?:\*\*)?\s*(Day\s+\d+[^*\n]*?)\s*(?:\*\*)?\s*$`)

// FormatItinerary converts raw itinerary text into display markup. Day
// section labels become headings, **bold** and *italic* emphasis is
// rendered with the delimiters removed, blank lines become paragraph
// breaks, and bullet characters become list items. The transform is pure:
// the same input always yields the same markup.
func FormatItinerary(text string) template.HTML {
	md := preprocess(text)

	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}

// preprocess rewrites the oracle's plain-text conventions into markdown
// goldmark understands.
func preprocess(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := dayHeading.FindStringSubmatch(line); m != nil {
			// A heading needs a blank line before it to terminate any
			// open paragraph.
			if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) != "" {
				out = append(out, "")
			}
			out = append(out, "### "+m[1])
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") {
			out = append(out, "- "+strings.TrimSpace(strings.TrimPrefix(trimmed, "•")))
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
