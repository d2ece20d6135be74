// Package validator checks structural and behavioural properties of a
// transducer arena: tree shape, onward form, fragment acyclicity, and
// agreement with a sample.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/ostia/internal/automaton"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
)

func report(errors []string) error {
	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

// CheckTree verifies that every reachable state other than the root has
// exactly one incoming edge and the root has none, i.e. each state is reached
// by a unique labelled path.
func CheckTree(a *automaton.Arena) error {
	incoming := make(map[automaton.StateID]int)
	for _, id := range a.Reachable() {
		for _, t := range a.State(id).Transitions {
			if t != nil {
				incoming[t.Target]++
			}
		}
	}

	var errors []string
	for _, id := range a.Reachable() {
		want := 1
		if id == a.Root() {
			want = 0
		}
		if incoming[id] != want {
			errors = append(errors, fmt.Sprintf("state %d has %d incoming edges, want %d", id, incoming[id], want))
		}
	}
	return report(errors)
}

// CheckOnward verifies that no output symbol could be moved onto an earlier
// edge: for every reachable non-root state, the outputs of its edges and its
// final output (when accepting) do not all start with the same symbol.
func CheckOnward(a *automaton.Arena) error {
	var errors []string
	for _, id := range a.Reachable() {
		if id == a.Root() {
			continue
		}
		s := a.State(id)
		var outs []output.Fragment
		for _, t := range s.Transitions {
			if t != nil {
				outs = append(outs, t.Output)
			}
		}
		if s.Accepting {
			outs = append(outs, s.Final)
		}
		if sym, shared := sharedLead(outs); shared {
			errors = append(errors, fmt.Sprintf("state %d: every output starts with symbol %d", id, sym))
		}
	}
	return report(errors)
}

func sharedLead(outs []output.Fragment) (domain.Symbol, bool) {
	if len(outs) == 0 {
		return 0, false
	}
	lead, ok := outs[0].First()
	if !ok {
		return 0, false
	}
	for _, f := range outs[1:] {
		sym, ok := f.First()
		if !ok || sym != lead {
			return 0, false
		}
	}
	return lead, true
}

// CheckAcyclic walks every output fragment reachable from the root and
// reports any chain that revisits a cell.
func CheckAcyclic(a *automaton.Arena) error {
	var errors []string
	a.Fragments(func(id automaton.StateID, f output.Fragment) {
		if output.HasCycle(f) {
			errors = append(errors, fmt.Sprintf("state %d: cyclic output fragment", id))
		}
	})
	return report(errors)
}

// CheckSamples verifies that the transducer maps every sample input to the
// recorded output.
func CheckSamples(a *automaton.Arena, samples []domain.Sample) error {
	var errors []string
	for i, s := range samples {
		got, ok := a.Apply(s.Input)
		switch {
		case !ok:
			errors = append(errors, fmt.Sprintf("sample %d: input [%v] is not recognized", i, s.Input))
		case !got.Equal(s.Output):
			errors = append(errors, fmt.Sprintf("sample %d: input [%v] yields [%v], want [%v]", i, s.Input, got, s.Output))
		}
	}
	return report(errors)
}
