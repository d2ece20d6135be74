package sample

import (
	"github.com/aretw0/ostia/pkg/alphabet"
	"github.com/aretw0/ostia/pkg/domain"
)

// Builder assembles a Set in code.
//
//	set := sample.New("plural").
//		Pair("cat", "cats").
//		Pair("box", "boxes").
//		Build()
type Builder struct {
	set Set
}

// New starts a character-level set.
func New(name string) *Builder {
	return &Builder{set: Set{Name: name, Alphabet: alphabet.Chars}}
}

// Words switches the set to whitespace-separated tokens.
func (b *Builder) Words() *Builder {
	b.set.Alphabet = alphabet.Words
	return b
}

// Pair adds a string observation.
func (b *Builder) Pair(input, output string) *Builder {
	b.set.Pairs = append(b.set.Pairs, Pair{Input: input, Output: output})
	return b
}

// Symbols adds a raw symbol observation.
func (b *Builder) Symbols(input, output domain.Sequence) *Builder {
	b.set.Symbols = append(b.set.Symbols, domain.Sample{Input: input, Output: output})
	return b
}

// AlphabetSize fixes the input alphabet size of a symbol set.
func (b *Builder) AlphabetSize(n int) *Builder {
	b.set.Size = n
	return b
}

// Build returns a copy of the set assembled so far.
func (b *Builder) Build() *Set {
	set := b.set
	set.Pairs = append([]Pair(nil), b.set.Pairs...)
	set.Symbols = append([]domain.Sample(nil), b.set.Symbols...)
	return &set
}
