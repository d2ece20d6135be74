package automaton

import "github.com/aretw0/ostia/pkg/domain"

// Apply runs input from the root and returns the concatenated edge outputs
// followed by the final output of the state reached. The second result is
// false when an edge is missing or the last state is not accepting.
func (a *Arena) Apply(input domain.Sequence) (domain.Sequence, bool) {
	out := domain.Sequence{}
	cur := a.Root()
	for _, sym := range input {
		t := a.Transition(cur, sym)
		if t == nil {
			return nil, false
		}
		out = t.Output.AppendTo(out)
		cur = t.Target
	}
	s := a.State(cur)
	if !s.Accepting {
		return nil, false
	}
	return s.Final.AppendTo(out), true
}
