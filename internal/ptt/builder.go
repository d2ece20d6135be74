// Package ptt builds the onward prefix-tree transducer for a sample.
package ptt

import (
	"github.com/aretw0/ostia/internal/automaton"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
)

// Builder inserts samples one at a time into a tree-shaped transducer kept in
// onward form: every output symbol is emitted on the earliest edge shared by
// all samples that produce it.
type Builder struct {
	arena   *automaton.Arena
	samples int
}

// New returns a builder over an alphabet of alphabetSize input symbols.
func New(alphabetSize int) (*Builder, error) {
	if alphabetSize <= 0 {
		return nil, domain.ErrInvalidAlphabetSize
	}
	return &Builder{arena: automaton.New(alphabetSize)}, nil
}

// Arena returns the tree built so far.
func (b *Builder) Arena() *automaton.Arena { return b.arena }

// Samples returns the number of samples inserted successfully.
func (b *Builder) Samples() int { return b.samples }

// Insert adds one sample. It returns an *AlphabetRangeError, leaving the tree
// untouched, when an input symbol is out of range, and a *SampleConflictError
// when the input was already recorded with a different output.
func (b *Builder) Insert(s domain.Sample) error {
	size := b.arena.AlphabetSize()
	for i, sym := range s.Input {
		if int(sym) < 0 || int(sym) >= size {
			return &domain.AlphabetRangeError{Symbol: sym, Position: i, Size: size}
		}
	}

	carry := output.FromSequence(s.Output)
	cur := b.arena.Root()
	for _, sym := range s.Input {
		st := b.arena.State(cur)
		edge := st.Transitions[sym]
		if edge == nil {
			next := b.arena.Add()
			st.Transitions[sym] = &automaton.Transition{Target: next, Output: carry}
			carry = output.Empty
			cur = next
			continue
		}

		// informant = x, edge = y:
		// edge <- lcp(x,y), pushback <- lcp^-1 y, informant <- lcp^-1 x
		common, pushback, rest := output.CommonPrefix(edge.Output, carry)
		edge.Output = common
		b.arena.State(edge.Target).Prepend(pushback)
		carry = rest
		cur = edge.Target
	}

	last := b.arena.State(cur)
	if last.Accepting {
		if !output.Equal(last.Final, carry) {
			recorded, _ := b.arena.Apply(s.Input)
			return &domain.SampleConflictError{Input: s.Input, Recorded: recorded, Got: s.Output}
		}
	} else {
		last.SetFinal(carry)
	}
	b.samples++
	return nil
}
