// Package sample describes training sets: string pairs tokenised through an
// alphabet, or raw symbol sequences.
package sample

import (
	"errors"
	"fmt"

	"github.com/aretw0/ostia/pkg/alphabet"
	"github.com/aretw0/ostia/pkg/domain"
)

// Pair is one string-level observation.
type Pair struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`
}

// Set is a named training set. Exactly one of Pairs and Symbols is used.
type Set struct {
	Name     string          `yaml:"name,omitempty" json:"name,omitempty"`
	Alphabet alphabet.Mode   `yaml:"alphabet,omitempty" json:"alphabet,omitempty"`
	Size     int             `yaml:"alphabet_size,omitempty" json:"alphabet_size,omitempty"`
	Pairs    []Pair          `yaml:"samples,omitempty" json:"samples,omitempty"`
	Symbols  []domain.Sample `yaml:"symbols,omitempty" json:"symbols,omitempty"`
}

// Encoded is a Set ready to be learned.
type Encoded struct {
	Samples      []domain.Sample
	AlphabetSize int
	// Input and Output are nil for symbol sets.
	Input  *alphabet.Alphabet
	Output *alphabet.Alphabet
}

// ErrEmptySet is returned when a set holds no samples at all.
var ErrEmptySet = errors.New("sample set is empty")

// Len returns the number of samples.
func (s *Set) Len() int { return len(s.Pairs) + len(s.Symbols) }

// Encode tokenises the set. String pairs build fresh alphabets in order of
// first appearance, which are frozen before returning.
func (s *Set) Encode() (*Encoded, error) {
	switch {
	case len(s.Pairs) > 0 && len(s.Symbols) > 0:
		return nil, fmt.Errorf("set %q mixes string samples and symbol samples", s.Name)
	case len(s.Symbols) > 0:
		return s.encodeSymbols()
	case len(s.Pairs) > 0:
		return s.encodePairs()
	}
	return nil, ErrEmptySet
}

func (s *Set) encodePairs() (*Encoded, error) {
	mode, err := alphabet.ParseMode(string(s.Alphabet))
	if err != nil {
		return nil, err
	}
	in, out := alphabet.New(mode), alphabet.New(mode)
	enc := &Encoded{Samples: make([]domain.Sample, len(s.Pairs)), Input: in, Output: out}
	for i, p := range s.Pairs {
		// open alphabets never fail to encode
		input, _ := in.Encode(p.Input)
		output, _ := out.Encode(p.Output)
		enc.Samples[i] = domain.Sample{Input: input, Output: output}
	}
	in.Freeze()
	out.Freeze()
	enc.AlphabetSize = max(in.Size(), 1)
	return enc, nil
}

func (s *Set) encodeSymbols() (*Encoded, error) {
	size := s.Size
	if size == 0 {
		for _, smp := range s.Symbols {
			for _, sym := range smp.Input {
				size = max(size, int(sym)+1)
			}
		}
		size = max(size, 1)
	}
	if size < 0 {
		return nil, domain.ErrInvalidAlphabetSize
	}
	return &Encoded{Samples: s.Symbols, AlphabetSize: size}, nil
}
