package automaton

import (
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
)

// Arena owns every state of one transducer under construction.
// It is not safe for concurrent use.
type Arena struct {
	alphabetSize int
	states       []*State
}

// New creates an arena over an alphabet of the given size holding a single
// non-accepting root state.
func New(alphabetSize int) *Arena {
	a := &Arena{alphabetSize: alphabetSize}
	a.Add()
	return a
}

// Root returns the start state.
func (a *Arena) Root() StateID { return 0 }

// AlphabetSize returns the number of input symbols.
func (a *Arena) AlphabetSize() int { return a.alphabetSize }

// Len returns the number of slots ever allocated, including unreachable ones.
func (a *Arena) Len() int { return len(a.states) }

// Add allocates a fresh non-accepting state and returns its ID.
func (a *Arena) Add() StateID {
	a.states = append(a.states, NewState(a.alphabetSize))
	return StateID(len(a.states) - 1)
}

// State returns the live contents of slot id.
func (a *Arena) State(id StateID) *State {
	Invariant(int(id) >= 0 && int(id) < len(a.states), "State", "unknown state %d", id)
	return a.states[id]
}

// Transition returns the edge leaving id on sym, or nil.
func (a *Arena) Transition(id StateID, sym domain.Symbol) *Transition {
	s := a.State(id)
	if int(sym) < 0 || int(sym) >= len(s.Transitions) {
		return nil
	}
	return s.Transitions[sym]
}

// Become replaces the transition table and final output of slot id with
// those of replacement. The replacement must not be referenced anywhere else.
func (a *Arena) Become(id StateID, replacement *State) {
	dst := a.State(id)
	Invariant(dst != replacement, "Become", "state %d cannot become itself", id)
	dst.Transitions = replacement.Transitions
	dst.Final = replacement.Final
	dst.Accepting = replacement.Accepting
}

// Reachable returns every state reachable from the root in breadth-first
// order, visiting edges in ascending symbol order.
func (a *Arena) Reachable() []StateID {
	seen := make([]bool, len(a.states))
	order := []StateID{a.Root()}
	seen[a.Root()] = true
	for i := 0; i < len(order); i++ {
		for _, t := range a.State(order[i]).Transitions {
			if t != nil && !seen[t.Target] {
				seen[t.Target] = true
				order = append(order, t.Target)
			}
		}
	}
	return order
}

// Fragments calls fn for every output fragment reachable from the root.
func (a *Arena) Fragments(fn func(id StateID, f output.Fragment)) {
	for _, id := range a.Reachable() {
		s := a.State(id)
		for _, t := range s.Transitions {
			if t != nil {
				fn(id, t.Output)
			}
		}
		if s.Accepting {
			fn(id, s.Final)
		}
	}
}
