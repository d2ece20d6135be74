package automaton

import "github.com/aretw0/ostia/pkg/domain"

// Blue names a frontier state by the edge that reaches it rather than by its
// ID, because the edge may be redirected while folds are committed.
type Blue struct {
	Parent StateID
	Symbol domain.Symbol
}

// Resolve dereferences the edge at the moment of use.
func (b Blue) Resolve(a *Arena) StateID {
	t := a.Transition(b.Parent, b.Symbol)
	Invariant(t != nil, "Blue.Resolve", "no edge from %d on %d", b.Parent, b.Symbol)
	return t.Target
}

// Children returns a Blue reference for every outgoing edge of parent, in symbol order.
func Children(a *Arena, parent StateID) []Blue {
	var out []Blue
	for i, t := range a.State(parent).Transitions {
		if t != nil {
			out = append(out, Blue{Parent: parent, Symbol: domain.Symbol(i)})
		}
	}
	return out
}
