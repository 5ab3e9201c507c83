// Package render serializes process and port query results as
// human-readable text or JSON documents. It treats "owner unknown" and
// "field absent" as first-class renderable values, never errors.
package render

import (
	"encoding/json"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles is the palette for human-readable output. The zero value
// renders everything unstyled.
type Styles struct {
	Title lipgloss.Style // section headers
	Label lipgloss.Style // field labels
	Good  lipgloss.Style // resolved names, all-clear notes
	Warn  lipgloss.Style // security warnings
}

// NewStyles returns the output palette. With enabled false the zero
// palette comes back and everything renders plain. With enabled true
// the styles carry ANSI colors even when stdout is not a terminal, so
// a forced-color config survives piping.
func NewStyles(enabled bool) Styles {
	if !enabled {
		return Styles{}
	}
	r := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI))
	return Styles{
		Title: r.NewStyle().Bold(true),
		Label: r.NewStyle().Foreground(lipgloss.Color("6")),
		Good:  r.NewStyle().Foreground(lipgloss.Color("2")),
		Warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
