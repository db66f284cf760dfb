package automaton

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is matched by every *MalformedInputError.
	ErrMalformedInput = errors.New("malformed input")

	// ErrIO is matched by every *IOError.
	ErrIO = errors.New("i/o error")
)

// MalformedInputError Reports an automaton description that cannot be turned into a valid DFA: counts that
// don't match the data, tokens that are not integers or symbols, symbols missing from the alphabet,
// out-of-range states, or a transition table that is not total and deterministic.
// Line is the 1-based input line, or 0 when the error does not come from a text source.
type MalformedInputError struct {
	Line int
	Msg  string
}

func malformed(line int, format string, args ...any) *MalformedInputError {
	return &MalformedInputError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input: line %d: %s", e.Line, e.Msg)
	}
	return "malformed input: " + e.Msg
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// IOError Wraps a failure to open, read or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
