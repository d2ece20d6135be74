package automaton

import (
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
)

// StateID addresses a state slot in an Arena.
type StateID int

// Transition is an outgoing edge: the target state and the output emitted when taking it.
type Transition struct {
	Target StateID
	Output output.Fragment
}

// State is a node of the transducer. Transitions is indexed by input symbol
// and holds nil where no edge exists. Final is meaningful only when Accepting.
type State struct {
	Transitions []*Transition
	Final       output.Fragment
	Accepting   bool
}

// NewState returns a non-accepting state without transitions.
func NewState(alphabetSize int) *State {
	return &State{Transitions: make([]*Transition, alphabetSize)}
}

// Copy returns a state with its own transition table. Targets are shared
// since states are re-pointed, never cloned, through a copy.
func (s *State) Copy() *State {
	c := &State{
		Transitions: make([]*Transition, len(s.Transitions)),
		Final:       s.Final,
		Accepting:   s.Accepting,
	}
	for i, t := range s.Transitions {
		if t != nil {
			c.Transitions[i] = &Transition{Target: t.Target, Output: t.Output}
		}
	}
	return c
}

// Prepend pushes prefix in front of every outgoing edge output and in front
// of the final output when the state is accepting. A non-accepting state
// stays non-accepting.
func (s *State) Prepend(prefix output.Fragment) {
	if prefix.IsEmpty() {
		return
	}
	for _, t := range s.Transitions {
		if t != nil {
			t.Output = output.Concat(prefix, t.Output)
		}
	}
	if s.Accepting {
		s.Final = output.Concat(prefix, s.Final)
	}
}

// SetFinal marks the state accepting with the given final output.
func (s *State) SetFinal(f output.Fragment) {
	s.Final = f
	s.Accepting = true
}

// Symbols returns the input symbols that have an outgoing edge, in ascending order.
func (s *State) Symbols() []domain.Symbol {
	var out []domain.Symbol
	for i, t := range s.Transitions {
		if t != nil {
			out = append(out, domain.Symbol(i))
		}
	}
	return out
}

// Degree returns the number of outgoing edges.
func (s *State) Degree() int {
	n := 0
	for _, t := range s.Transitions {
		if t != nil {
			n++
		}
	}
	return n
}
