package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ostia ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"           _   _       ", "#818cf8"},
		{"   ___ ___| |_(_) __ _ ", "#a78bfa"},
		{"  / _ / __| __| |/ _` |", "#c084fc"},
		{" | (_)\\__ \\ |_| | (_| |", "#e879f9"},
		{"  \\___|___/\\__|_|\\__,_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
