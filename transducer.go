package ostia

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/ostia/internal/automaton"
	"github.com/aretw0/ostia/internal/validator"
	"github.com/aretw0/ostia/pkg/alphabet"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/sample"
)

// ErrNoAlphabet is returned by Translate on a transducer learned from raw symbols.
var ErrNoAlphabet = errors.New("transducer has no string alphabet")

// Transducer is a learned subsequential transducer. It is read-only once
// returned, and safe for concurrent use.
type Transducer struct {
	arena     *automaton.Arena
	input     *alphabet.Alphabet
	output    *alphabet.Alphabet
	id        string
	name      string
	createdAt time.Time
}

// ID returns the identifier assigned when the transducer was learned.
func (t *Transducer) ID() string { return t.id }

// Name returns the label given by WithName or the sample set.
func (t *Transducer) Name() string { return t.name }

// AlphabetSize returns the number of input symbols.
func (t *Transducer) AlphabetSize() int { return t.arena.AlphabetSize() }

// States returns the number of states reachable from the root.
func (t *Transducer) States() int { return len(t.arena.Reachable()) }

// Alphabets returns the string alphabets, or nil for symbol transducers.
func (t *Transducer) Alphabets() (input, output *alphabet.Alphabet) { return t.input, t.output }

// Apply runs input through the transducer. The second result is false when
// the transduction is undefined for input.
func (t *Transducer) Apply(input domain.Sequence) (domain.Sequence, bool) {
	return t.arena.Apply(input)
}

// Translate applies the transducer to a string using its alphabets.
// Tokens never seen while learning yield domain.ErrUnknownToken.
func (t *Transducer) Translate(input string) (string, error) {
	if t.input == nil || t.output == nil {
		return "", ErrNoAlphabet
	}
	seq, err := t.input.Encode(input)
	if err != nil {
		return "", err
	}
	out, ok := t.arena.Apply(seq)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUndefinedTransduction, input)
	}
	return t.output.Decode(out)
}

// Verify reports every sample the transducer does not reproduce, and any
// output fragment that fails the acyclicity check.
func (t *Transducer) Verify(samples []domain.Sample) error {
	if err := validator.CheckAcyclic(t.arena); err != nil {
		return err
	}
	return validator.CheckSamples(t.arena, samples)
}

// VerifySet is Verify for a sample set, encoding string pairs with the
// transducer's own alphabets.
func (t *Transducer) VerifySet(set *sample.Set) error {
	if len(set.Symbols) > 0 {
		return t.Verify(set.Symbols)
	}
	if len(set.Pairs) == 0 {
		return sample.ErrEmptySet
	}
	if t.input == nil || t.output == nil {
		return ErrNoAlphabet
	}
	samples := make([]domain.Sample, 0, len(set.Pairs))
	for i, p := range set.Pairs {
		in, err := t.input.Encode(p.Input)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		out, err := t.output.Encode(p.Output)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		samples = append(samples, domain.Sample{Input: in, Output: out})
	}
	return t.Verify(samples)
}

// Model returns the persisted form of the transducer, with states renumbered
// breadth-first from the root.
func (t *Transducer) Model() *domain.Model {
	m := &domain.Model{
		ID:           t.id,
		Name:         t.name,
		AlphabetSize: t.arena.AlphabetSize(),
		States:       t.arena.Export(),
		CreatedAt:    t.createdAt,
	}
	if t.input != nil {
		m.AlphabetMode = string(t.input.Mode())
		m.InputAlphabet = t.input.Tokens()
		m.OutputAlphabet = t.output.Tokens()
	}
	return m
}

// FromModel rebuilds a transducer from its persisted form.
func FromModel(m *domain.Model) (*Transducer, error) {
	arena, err := automaton.Import(m.AlphabetSize, m.States)
	if err != nil {
		return nil, err
	}
	t := &Transducer{arena: arena, id: m.ID, name: m.Name, createdAt: m.CreatedAt}
	if len(m.InputAlphabet) == 0 && len(m.OutputAlphabet) == 0 {
		return t, nil
	}

	mode, err := alphabet.ParseMode(m.AlphabetMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidModel, err)
	}
	if len(m.InputAlphabet) > m.AlphabetSize {
		return nil, fmt.Errorf("%w: %d input tokens for alphabet size %d", domain.ErrInvalidModel, len(m.InputAlphabet), m.AlphabetSize)
	}
	if t.input, err = alphabet.FromTokens(mode, m.InputAlphabet); err != nil {
		return nil, fmt.Errorf("%w: input alphabet: %v", domain.ErrInvalidModel, err)
	}
	if t.output, err = alphabet.FromTokens(mode, m.OutputAlphabet); err != nil {
		return nil, fmt.Errorf("%w: output alphabet: %v", domain.ErrInvalidModel, err)
	}
	return t, nil
}
