package automaton

import (
	"fmt"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
)

// Export renumbers the reachable states in breadth-first order and returns
// their records. Unreachable slots are dropped.
func (a *Arena) Export() []domain.StateRecord {
	order := a.Reachable()
	index := make(map[StateID]int, len(order))
	for i, id := range order {
		index[id] = i
	}

	records := make([]domain.StateRecord, len(order))
	for i, id := range order {
		s := a.State(id)
		rec := domain.StateRecord{Accepting: s.Accepting}
		if s.Accepting {
			rec.Final = s.Final.Sequence()
		}
		for sym, t := range s.Transitions {
			if t == nil {
				continue
			}
			rec.Transitions = append(rec.Transitions, domain.TransitionRecord{
				Symbol: domain.Symbol(sym),
				Target: index[t.Target],
				Output: t.Output.Sequence(),
			})
		}
		records[i] = rec
	}
	return records
}

// Import rebuilds an arena from exported records. State 0 is the root.
func Import(alphabetSize int, records []domain.StateRecord) (*Arena, error) {
	if alphabetSize <= 0 {
		return nil, domain.ErrInvalidAlphabetSize
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no states", domain.ErrInvalidModel)
	}

	a := &Arena{alphabetSize: alphabetSize, states: make([]*State, len(records))}
	for i, rec := range records {
		s := NewState(alphabetSize)
		if rec.Accepting {
			s.SetFinal(output.FromSequence(rec.Final))
		}
		for _, tr := range rec.Transitions {
			if int(tr.Symbol) < 0 || int(tr.Symbol) >= alphabetSize {
				return nil, fmt.Errorf("%w: state %d has edge on symbol %d outside alphabet of size %d",
					domain.ErrInvalidModel, i, tr.Symbol, alphabetSize)
			}
			if tr.Target < 0 || tr.Target >= len(records) {
				return nil, fmt.Errorf("%w: state %d has edge to unknown state %d", domain.ErrInvalidModel, i, tr.Target)
			}
			if s.Transitions[tr.Symbol] != nil {
				return nil, fmt.Errorf("%w: state %d has two edges on symbol %d", domain.ErrInvalidModel, i, tr.Symbol)
			}
			s.Transitions[tr.Symbol] = &Transition{Target: StateID(tr.Target), Output: output.FromSequence(tr.Output)}
		}
		a.states[i] = s
	}
	return a, nil
}
