// Package output provides consistent CLI output formatting: a dual-mode
// writer that renders either plain text or JSON depending on the --json
// flag, following the teacher's internal/output package shape.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Writer formats command output as either human-readable text or JSON.
type Writer struct {
	out  io.Writer
	json bool
}

// New creates a text-mode Writer over out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WithJSON returns a copy of w configured for JSON output.
func (w *Writer) WithJSON(json bool) *Writer {
	return &Writer{out: w.out, json: json}
}

// Status prints a status line with a leading icon, ignored entirely in
// JSON mode (JSON mode only ever emits the final Result payload).
func (w *Writer) Status(icon, msg string) {
	if w.json {
		return
	}
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "  %s\n", msg)
	}
}

// Statusf is Status with fmt.Sprintf-style formatting.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success status line.
func (w *Writer) Success(msg string) { w.Status("✓", msg) }

// Warning prints a warning status line.
func (w *Writer) Warning(msg string) { w.Status("!", msg) }

// Error prints an error status line.
func (w *Writer) Error(msg string) { w.Status("✗", msg) }

// Result emits the final structured payload: pretty-printed JSON in JSON
// mode, or the supplied plain renderer otherwise.
func (w *Writer) Result(v any, plain func(io.Writer, any)) {
	if w.json {
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(v)
		return
	}
	plain(w.out, v)
}

// Raw writes s unconditionally, regardless of output mode — used for the
// assembler's markdown digest, which is its own rendering.
func (w *Writer) Raw(s string) {
	_, _ = fmt.Fprint(w.out, s)
}
