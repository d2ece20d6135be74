// Package alphabet maps string tokens to the dense integer symbols the
// learner works with, and back.
package alphabet

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/ostia/pkg/domain"
)

// Mode selects how a string is split into tokens.
type Mode string

const (
	// Chars treats every rune as a token.
	Chars Mode = "chars"
	// Words splits on whitespace.
	Words Mode = "words"
)

// ParseMode validates a mode name. The empty string selects Chars.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Chars:
		return Chars, nil
	case Words:
		return Words, nil
	}
	return "", fmt.Errorf("unknown alphabet mode %q (want %q or %q)", s, Chars, Words)
}

// Alphabet assigns symbols to tokens in order of first appearance.
// An open alphabet grows on Encode; a frozen one rejects unknown tokens.
type Alphabet struct {
	mode   Mode
	tokens []string
	index  map[string]domain.Symbol
	frozen bool
}

// New returns an empty, open alphabet.
func New(mode Mode) *Alphabet {
	return &Alphabet{mode: mode, index: make(map[string]domain.Symbol)}
}

// FromTokens returns a frozen alphabet whose symbol i is tokens[i].
func FromTokens(mode Mode, tokens []string) (*Alphabet, error) {
	a := New(mode)
	for _, tok := range tokens {
		if _, dup := a.index[tok]; dup {
			return nil, fmt.Errorf("duplicate token %q", tok)
		}
		if err := a.checkToken(tok); err != nil {
			return nil, err
		}
		a.add(tok)
	}
	a.frozen = true
	return a, nil
}

func (a *Alphabet) checkToken(tok string) error {
	switch a.mode {
	case Words:
		if tok == "" || strings.ContainsFunc(tok, unicode.IsSpace) {
			return fmt.Errorf("token %q is not a single word", tok)
		}
	default:
		if utf8.RuneCountInString(tok) != 1 {
			return fmt.Errorf("token %q is not a single character", tok)
		}
	}
	return nil
}

func (a *Alphabet) add(tok string) domain.Symbol {
	sym := domain.Symbol(len(a.tokens))
	a.tokens = append(a.tokens, tok)
	a.index[tok] = sym
	return sym
}

// Mode returns the tokenisation mode.
func (a *Alphabet) Mode() Mode { return a.mode }

// Size returns the number of known tokens.
func (a *Alphabet) Size() int { return len(a.tokens) }

// Tokens returns the known tokens in symbol order.
func (a *Alphabet) Tokens() []string { return append([]string(nil), a.tokens...) }

// Freeze stops the alphabet from growing.
func (a *Alphabet) Freeze() { a.frozen = true }

// Frozen reports whether Encode may add tokens.
func (a *Alphabet) Frozen() bool { return a.frozen }

// Split breaks s into tokens according to the mode.
func (a *Alphabet) Split(s string) []string {
	if a.mode == Words {
		return strings.Fields(s)
	}
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// Join is the inverse of Split.
func (a *Alphabet) Join(tokens []string) string {
	if a.mode == Words {
		return strings.Join(tokens, " ")
	}
	return strings.Join(tokens, "")
}

// Encode converts s to a symbol sequence.
func (a *Alphabet) Encode(s string) (domain.Sequence, error) {
	tokens := a.Split(s)
	seq := make(domain.Sequence, len(tokens))
	for i, tok := range tokens {
		sym, ok := a.index[tok]
		if !ok {
			if a.frozen {
				return nil, fmt.Errorf("%w %q at position %d", domain.ErrUnknownToken, tok, i)
			}
			sym = a.add(tok)
		}
		seq[i] = sym
	}
	return seq, nil
}

// Decode converts a symbol sequence back to a string.
func (a *Alphabet) Decode(seq domain.Sequence) (string, error) {
	tokens := make([]string, len(seq))
	for i, sym := range seq {
		if int(sym) < 0 || int(sym) >= len(a.tokens) {
			return "", &domain.AlphabetRangeError{Symbol: sym, Position: i, Size: len(a.tokens)}
		}
		tokens[i] = a.tokens[sym]
	}
	return a.Join(tokens), nil
}
