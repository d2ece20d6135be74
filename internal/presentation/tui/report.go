package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/pkg/domain"
)

// Report renders a markdown summary of a learning run.
func Report(model *domain.Model, stats ostia.Stats) string {
	var sb strings.Builder

	title := model.Name
	if title == "" {
		title = "transducer"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if model.ID != "" {
		fmt.Fprintf(&sb, "Model `%s`\n\n", model.ID)
	}

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	rows := []struct {
		name  string
		value any
	}{
		{"Samples", stats.Samples},
		{"Prefix tree states", stats.PTTStates},
		{"Learned states", stats.RedStates},
		{"Fold attempts", stats.FoldAttempts},
		{"Merges", stats.Merges},
		{"Promotions", stats.Promotions},
		{"Merge time", stats.Duration},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %v |\n", r.name, r.value)
	}

	if len(model.InputAlphabet) > 0 {
		fmt.Fprintf(&sb, "\n**Input alphabet** (%d): `%s`\n", len(model.InputAlphabet), strings.Join(model.InputAlphabet, " "))
		fmt.Fprintf(&sb, "\n**Output alphabet** (%d): `%s`\n", len(model.OutputAlphabet), strings.Join(model.OutputAlphabet, " "))
	} else {
		fmt.Fprintf(&sb, "\n**Alphabet size**: %d\n", model.AlphabetSize)
	}
	return sb.String()
}

// Result colours the outcome of one transduction: green when defined,
// red otherwise.
func Result(input, output string, ok bool) string {
	p := termenv.ColorProfile()
	if !ok {
		return fmt.Sprintf("%s -> %s", input, termenv.String("undefined").Foreground(p.Color("#fb7185")))
	}
	return fmt.Sprintf("%s -> %s", input, termenv.String(output).Foreground(p.Color("#4ade80")))
}
