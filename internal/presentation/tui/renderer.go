package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// Renderer turns Markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a Renderer for w. Terminals get glamour's auto-detected
// light or dark style wrapped to the terminal width; anything else gets the
// colourless notty style so piped output stays readable.
func NewRenderer(w io.Writer) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("notty")}
	if IsTerminal(w) {
		opts = []glamour.TermRendererOption{
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(Width(w)),
		}
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// Plain is a Renderer that returns the Markdown untouched.
func Plain(markdown string) (string, error) {
	return markdown, nil
}
