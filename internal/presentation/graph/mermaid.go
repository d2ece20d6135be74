package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/ostia/pkg/domain"
)

// Overlay highlights the states visited while reading one input.
type Overlay struct {
	Visited []int
	Current int
}

// Trace walks input through model and returns the overlay of the states it
// passes. The walk stops at the first missing edge; ok reports whether the
// whole input was read.
func Trace(model *domain.Model, input domain.Sequence) (overlay *Overlay, ok bool) {
	cur := 0
	overlay = &Overlay{Visited: []int{cur}}
	for _, sym := range input {
		next := -1
		for _, t := range model.States[cur].Transitions {
			if t.Symbol == sym {
				next = t.Target
				break
			}
		}
		if next < 0 {
			overlay.Current = cur
			return overlay, false
		}
		cur = next
		overlay.Visited = append(overlay.Visited, cur)
	}
	overlay.Current = cur
	return overlay, true
}

// GenerateMermaid produces a Mermaid flowchart of a learned transducer.
// Shapes:
// - Root: ((Circle)), or (((Double circle))) when accepting
// - Accepting: ([Stadium]) labelled with the final output
// - Other states: [Rectangle]
//
// Edges are labelled "input / output". Symbols are shown as tokens when the
// model carries alphabets. Overlay styles are applied if provided.
func GenerateMermaid(model *domain.Model, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	l := newLabeler(model)
	for id, st := range model.States {
		safeID := stateID(id)

		opener, closer := "[", "]"
		switch {
		case id == 0 && st.Accepting:
			opener, closer = "(((", ")))"
		case id == 0:
			opener, closer = "((", "))"
		case st.Accepting:
			opener, closer = "([", "])"
		}

		label := safeID
		if st.Accepting {
			label = fmt.Sprintf("%s <br/> ⇥ %s", safeID, l.output(st.Final))
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer)

		for _, t := range st.Transitions {
			edge := fmt.Sprintf("%s / %s", l.input(t.Symbol), l.output(t.Output))
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, escape(edge), stateID(t.Target))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// black text stays readable on both light and dark themes
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.Visited {
			if id == overlay.Current || seen[id] || id < 0 || id >= len(model.States) {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", stateID(id))
		}
		fmt.Fprintf(&sb, "    class %s current;\n", stateID(overlay.Current))
	}

	return sb.String()
}

func stateID(id int) string {
	return "q" + strconv.Itoa(id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

type labeler struct {
	in, out []string
	sep     string
}

func newLabeler(model *domain.Model) labeler {
	l := labeler{in: model.InputAlphabet, out: model.OutputAlphabet}
	if model.AlphabetMode == "words" {
		l.sep = " "
	}
	return l
}

func (l labeler) input(sym domain.Symbol) string {
	if int(sym) < len(l.in) {
		return l.in[sym]
	}
	return strconv.Itoa(int(sym))
}

func (l labeler) output(seq domain.Sequence) string {
	if len(seq) == 0 {
		return "ε"
	}
	if l.out == nil {
		return seq.String()
	}
	parts := make([]string, len(seq))
	for i, sym := range seq {
		if int(sym) >= 0 && int(sym) < len(l.out) {
			parts[i] = l.out[sym]
		} else {
			parts[i] = strconv.Itoa(int(sym))
		}
	}
	return strings.Join(parts, l.sep)
}
