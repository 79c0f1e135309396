// ABOUTME: Line framing for the data:-prefixed JSON event stream emitted by the comparison endpoint.
// ABOUTME: Scanner consumes the stream incrementally on the client side; Writer produces it on the server side.

package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DataPrefix marks a line as carrying an event payload. Lines without it
// (blank separators, keep-alive comments) are not events.
const DataPrefix = "data: "

// Scanner reads data: records from a byte stream. Records may span read
// boundaries; the scanner accumulates raw bytes and only interprets them
// once a full line is available, so a multi-byte rune split across reads
// is reassembled rather than corrupted.
type Scanner struct {
	reader *bufio.Reader
	done   bool
}

// NewScanner creates a Scanner over the given reader.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReaderSize(r, 4096)}
}

// Next returns the payload of the next data: record with the prefix
// stripped. Lines that do not carry the prefix are discarded. Returns
// io.EOF when the stream ends; a trailing line with no terminator is
// discarded rather than surfaced as a partial record.
func (s *Scanner) Next() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for {
		line, err := s.readLine()
		if err != nil {
			if err == io.EOF {
				s.done = true
			}
			return "", err
		}
		if !strings.HasPrefix(line, DataPrefix) {
			continue
		}
		return line[len(DataPrefix):], nil
	}
}

// readLine reads one newline-terminated line, stripping the terminator and
// an optional preceding CR. An unterminated tail at EOF is dropped.
func (s *Scanner) readLine() (string, error) {
	var line strings.Builder
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			if err == io.EOF {
				// Whatever accumulated never saw its newline; the record
				// is incomplete and must not be dispatched.
				return "", io.EOF
			}
			return "", err
		}
		if b == '\n' {
			out := line.String()
			return strings.TrimSuffix(out, "\r"), nil
		}
		line.WriteByte(b)
	}
}

// Writer emits data: records to an HTTP response, flushing after each one
// so they reach the client as soon as they are produced.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter creates a Writer. If w implements http.Flusher, each record is
// flushed immediately after writing.
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// WriteJSON marshals v and writes it as a single data: record followed by
// a blank separator line.
func (w *Writer) WriteJSON(v any) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	if _, err := fmt.Fprintf(w.w, "%s%s\n\n", DataPrefix, encoded); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	if w.flusher != nil {
		w.flusher.Flush()
	}
	return nil
}
