// Package output writes events as CloudEvents JSON, one document per event.
//
// Keys are sorted at every level. Pretty mode indents by four spaces; JSON Lines
// mode writes one compact object per line.
package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/chaoss/grimoirelab-chronicler/internal/core/event"
	perr "github.com/chaoss/grimoirelab-chronicler/internal/platform/errors"
)

// Format selects the rendering of each event
type Format string

// formats
const (
	FormatPretty   Format = "pretty"
	FormatJSONLine Format = "jsonl"
)

// FormatFor maps the json-line switch to a Format
func FormatFor(jsonLine bool) Format {
	if jsonLine {
		return FormatJSONLine
	}
	return FormatPretty
}

// ContentType is the media type of a stream in format f
func (f Format) ContentType() string {
	if f == FormatJSONLine {
		return "application/x-ndjson"
	}
	return "application/json"
}

// Writer renders events to an underlying stream. It buffers; call Flush
type Writer struct {
	bw     *bufio.Writer
	format Format
	n      int
}

// NewWriter returns a Writer over w
func NewWriter(w io.Writer, f Format) *Writer {
	return &Writer{bw: bufio.NewWriter(w), format: f}
}

// Write renders one event followed by a newline
func (w *Writer) Write(ev event.Event) error {
	b, err := Encode(ev, w.format)
	if err != nil {
		return err
	}
	if _, err := w.bw.Write(b); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "write event")
	}
	w.n++
	return nil
}

// Flush pushes buffered events to the underlying stream
func (w *Writer) Flush() error {
	return perr.WrapIf(w.bw.Flush(), perr.ErrorCodeIO, "flush events")
}

// Count is the number of events written so far
func (w *Writer) Count() int { return w.n }

// Encode renders v in format f with a trailing newline and no HTML escaping.
// Keys come out sorted because events marshal their fields in key order; the
// document is encoded once and never re-parsed
func Encode(v any, f Format) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f != FormatJSONLine {
		enc.SetIndent("", "    ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode event")
	}
	return buf.Bytes(), nil
}
