// Package output provides consistent CLI output: status lines, grouped
// option listings and JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/optindex/pkg/indexer"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Writer provides formatted output for CLI.
type Writer struct {
	out      io.Writer
	useColor bool
}

// New creates a new output Writer without colour.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// WithColor enables or disables styled headings.
func (w *Writer) WithColor(on bool) *Writer {
	w.useColor = on
	return w
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Code prints an indented block surrounded by blank lines.
func (w *Writer) Code(content string) {
	_, _ = fmt.Fprintln(w.out)
	for _, line := range strings.Split(content, "\n") {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	_, _ = fmt.Fprintln(w.out)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Sections prints a grouped result: each heading on its own line with
// its members indented beneath, ids alongside.
func (w *Writer) Sections(res indexer.Result) {
	if len(res.Sections) == 0 {
		w.Status("", "no matching options")
		return
	}
	for _, s := range res.Sections {
		_, _ = fmt.Fprintln(w.out, w.style(headingStyle, s.Heading))
		for _, m := range s.Members {
			line := "  " + m.Label + "  " + w.style(dimStyle, "("+m.ID+")")
			if m.Description != "" {
				line += "  " + w.style(dimStyle, m.Description)
			}
			_, _ = fmt.Fprintln(w.out, line)
		}
	}
}

// Rail prints the letter rail on one line, dimming letters with no section.
func (w *Writer) Rail(entries []indexer.RailEntry) {
	parts := make([]string, len(entries))
	for i, e := range entries {
		if e.Enabled {
			parts[i] = w.style(headingStyle, e.Letter)
		} else if w.useColor {
			parts[i] = dimStyle.Render(e.Letter)
		} else {
			parts[i] = "·"
		}
	}
	_, _ = fmt.Fprintln(w.out, strings.Join(parts, " "))
}

// JSON writes v as indented JSON followed by a newline.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (w *Writer) style(s lipgloss.Style, text string) string {
	if !w.useColor {
		return text
	}
	return s.Render(text)
}
