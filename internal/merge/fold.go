package merge

import (
	"github.com/aretw0/ostia/internal/automaton"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
)

// txn is one speculative fold. Every state it touches is cloned into pending
// and the arena is only written by commit.
type txn struct {
	arena   *automaton.Arena
	pending map[automaton.StateID]*automaton.State
	order   []automaton.StateID
	folded  map[automaton.StateID]bool
	reached []automaton.Blue
}

func newTxn(a *automaton.Arena) *txn {
	return &txn{
		arena:   a,
		pending: make(map[automaton.StateID]*automaton.State),
		folded:  make(map[automaton.StateID]bool),
	}
}

// clone returns the speculative copy of id, creating it on first use.
func (t *txn) clone(id automaton.StateID) *automaton.State {
	if s, ok := t.pending[id]; ok {
		return s
	}
	s := t.arena.State(id).Copy()
	t.pending[id] = s
	t.order = append(t.order, id)
	return s
}

// fold unifies the subtree reached by blueParent --sym--> into red. pushback
// is output that the caller stripped from the incoming blue edge and that
// must be emitted before anything the blue state produces.
func (t *txn) fold(red automaton.StateID, pushback output.Fragment, blueParent automaton.StateID, sym domain.Symbol) bool {
	incoming := t.arena.Transition(blueParent, sym)
	automaton.Invariant(incoming != nil, "fold", "no edge from %d on %d", blueParent, sym)
	blue := incoming.Target
	automaton.Invariant(blue != red, "fold", "state %d folded into itself", blue)
	automaton.Invariant(!t.folded[blue], "fold", "state %d re-entered while being folded", blue)
	_, registered := t.pending[blue]
	automaton.Invariant(!registered, "fold", "state %d registered twice", blue)

	mergedRed := t.clone(red)
	mergedBlue := t.arena.State(blue).Copy()
	t.clone(blueParent).Transitions[sym].Target = red
	t.pending[blue] = mergedBlue
	t.order = append(t.order, blue)
	t.folded[blue] = true

	mergedBlue.Prepend(pushback)
	if mergedBlue.Accepting {
		if !mergedRed.Accepting {
			mergedRed.SetFinal(mergedBlue.Final)
		} else if !output.Equal(mergedRed.Final, mergedBlue.Final) {
			return false
		}
	}

	for i, tb := range mergedBlue.Transitions {
		if tb == nil {
			continue
		}
		tr := mergedRed.Transitions[i]
		if tr == nil {
			mergedRed.Transitions[i] = &automaton.Transition{Target: tb.Target, Output: tb.Output}
			t.reached = append(t.reached, automaton.Blue{Parent: red, Symbol: domain.Symbol(i)})
			continue
		}
		common, restRed, restBlue := output.CommonPrefix(tr.Output, tb.Output)
		if !restRed.IsEmpty() {
			return false
		}
		tb.Output = common
		if !t.fold(tr.Target, restBlue, blue, domain.Symbol(i)) {
			return false
		}
	}
	return true
}

// commit applies every speculative copy in the order it was created.
func (t *txn) commit() []automaton.Blue {
	for _, id := range t.order {
		t.arena.Become(id, t.pending[id])
	}
	return t.reached
}

// Fold tries to merge the state reached by b into red. On success the arena
// is updated and the newly exposed frontier edges are returned; on failure
// the arena is left exactly as it was.
func Fold(a *automaton.Arena, red automaton.StateID, b automaton.Blue) ([]automaton.Blue, bool) {
	t := newTxn(a)
	if !t.fold(red, output.Empty, b.Parent, b.Symbol) {
		return nil, false
	}
	reached := t.commit()
	if automaton.DebugChecks {
		a.Fragments(func(id automaton.StateID, f output.Fragment) {
			automaton.Invariant(!output.HasCycle(f), "Fold", "cyclic output on state %d", id)
		})
	}
	return reached, true
}
