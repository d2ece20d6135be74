package domain

import (
	"errors"
	"fmt"
)

// ErrSampleConflict is returned when one input sequence is observed with two different outputs.
var ErrSampleConflict = errors.New("sample conflict")

// ErrAlphabetRange is returned when a sample symbol is outside [0, alphabetSize).
var ErrAlphabetRange = errors.New("symbol outside alphabet")

// ErrInvalidAlphabetSize is returned when the alphabet size is not positive.
var ErrInvalidAlphabetSize = errors.New("alphabet size must be positive")

// ErrUndefinedTransduction is returned when a transducer has no output for an input.
var ErrUndefinedTransduction = errors.New("transduction undefined for input")

// ErrModelNotFound is returned when a model ID cannot be found in the store.
var ErrModelNotFound = errors.New("model not found")

// ErrInvalidModel is returned when a persisted model does not describe a well-formed transducer.
var ErrInvalidModel = errors.New("invalid model")

// ErrUnknownToken is returned when a frozen alphabet is asked to encode a token it does not know.
var ErrUnknownToken = errors.New("unknown token")

// SampleConflictError describes two incompatible outputs recorded for the same input.
type SampleConflictError struct {
	Input    Sequence
	Recorded Sequence
	Got      Sequence
}

func (e *SampleConflictError) Error() string {
	return fmt.Sprintf("%v: input [%v] maps to [%v] and [%v]", ErrSampleConflict, e.Input, e.Recorded, e.Got)
}

func (e *SampleConflictError) Unwrap() error { return ErrSampleConflict }

// AlphabetRangeError describes an input symbol that does not fit the alphabet.
type AlphabetRangeError struct {
	Symbol   Symbol
	Position int
	Size     int
}

func (e *AlphabetRangeError) Error() string {
	return fmt.Sprintf("%v: symbol %d at position %d, alphabet size %d", ErrAlphabetRange, e.Symbol, e.Position, e.Size)
}

func (e *AlphabetRangeError) Unwrap() error { return ErrAlphabetRange }
