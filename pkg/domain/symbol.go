package domain

import (
	"strconv"
	"strings"
)

// Symbol is an index into a fixed alphabet.
type Symbol int

// Sequence is an ordered list of symbols. Callers treat it as immutable.
type Sequence []Symbol

// Seq is shorthand for building a Sequence from ints.
func Seq(symbols ...int) Sequence {
	out := make(Sequence, len(symbols))
	for i, s := range symbols {
		out[i] = Symbol(s)
	}
	return out
}

// Equal reports whether both sequences have the same length and symbols.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the sequence as space separated indices, e.g. "0 1 1".
func (s Sequence) String() string {
	var sb strings.Builder
	for i, sym := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(sym)))
	}
	return sb.String()
}

// Sample is a single (input, output) observation of the target function.
type Sample struct {
	Input  Sequence `json:"input" yaml:"input"`
	Output Sequence `json:"output" yaml:"output"`
}
