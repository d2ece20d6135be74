package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
// Output wraps at the terminal width when stdout is a terminal. When it is
// not, markdown is passed through unchanged so it stays pipeable.
func NewRenderer() func(string) (string, error) {
	if !IsTerminal(os.Stdout) {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
