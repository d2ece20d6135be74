package domain

import "time"

// Model is the persisted form of a learned transducer.
// States are numbered in breadth-first order from the root, which is state 0.
type Model struct {
	ID             string        `json:"id" yaml:"id"`
	Name           string        `json:"name,omitempty" yaml:"name,omitempty"`
	AlphabetSize   int           `json:"alphabet_size" yaml:"alphabet_size"`
	InputAlphabet  []string      `json:"input_alphabet,omitempty" yaml:"input_alphabet,omitempty"`
	OutputAlphabet []string      `json:"output_alphabet,omitempty" yaml:"output_alphabet,omitempty"`
	AlphabetMode   string        `json:"alphabet_mode,omitempty" yaml:"alphabet_mode,omitempty"`
	States         []StateRecord `json:"states" yaml:"states"`
	CreatedAt      time.Time     `json:"created_at" yaml:"created_at"`
	// Sealed carries the encrypted model when it was saved through an
	// encrypting store. Only ID and CreatedAt are readable alongside it.
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}

// StateRecord is one state of a Model.
type StateRecord struct {
	Final       Sequence           `json:"final,omitempty" yaml:"final,omitempty"`
	Accepting   bool               `json:"accepting" yaml:"accepting"`
	Transitions []TransitionRecord `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// TransitionRecord is one outgoing edge of a StateRecord.
type TransitionRecord struct {
	Symbol Symbol   `json:"symbol" yaml:"symbol"`
	Target int      `json:"target" yaml:"target"`
	Output Sequence `json:"output,omitempty" yaml:"output,omitempty"`
}

// Clone returns a deep copy of m. Nil slices stay nil.
func (m *Model) Clone() *Model {
	c := *m
	c.InputAlphabet = append([]string(nil), m.InputAlphabet...)
	c.OutputAlphabet = append([]string(nil), m.OutputAlphabet...)
	if m.States == nil {
		return &c
	}
	c.States = make([]StateRecord, len(m.States))
	for i, s := range m.States {
		c.States[i] = StateRecord{
			Final:     append(Sequence(nil), s.Final...),
			Accepting: s.Accepting,
		}
		if s.Transitions == nil {
			continue
		}
		c.States[i].Transitions = make([]TransitionRecord, len(s.Transitions))
		for j, tr := range s.Transitions {
			tr.Output = append(Sequence(nil), tr.Output...)
			c.States[i].Transitions[j] = tr
		}
	}
	return &c
}
