// Package nfa implements the Lore automaton: a shift-reduce compiler that
// turns a pattern into a small Thompson NFA, and an online Matcher that
// consumes one rune at a time with bounded work per rune and no
// backtracking, while resolving alternatives and repetitions with the same
// priority a backtracking engine would use.
package nfa

import (
	"errors"
	"fmt"
)

// Compile errors. A *CompileError wraps exactly one of these.
var (
	// ErrMissingParen indicates a group that was never closed.
	ErrMissingParen = errors.New("missing closing )")

	// ErrUnexpectedParen indicates a `)` with no open group.
	ErrUnexpectedParen = errors.New("unexpected )")

	// ErrMissingRepeatArgument indicates a quantifier with nothing to repeat.
	ErrMissingRepeatArgument = errors.New("missing argument to repetition operator")

	// ErrMissingBracket indicates an unterminated character class.
	ErrMissingBracket = errors.New("missing closing ]")

	// ErrInvalidEscape indicates an escape sequence with no meaning.
	ErrInvalidEscape = errors.New("invalid escape sequence")

	// ErrTrailingEscape indicates a pattern ending in the escape character.
	ErrTrailingEscape = errors.New("trailing escape character")

	// ErrInvalidRange indicates a class range whose endpoint is not a single character.
	ErrInvalidRange = errors.New("invalid character class range")

	// ErrTooComplex indicates the pattern needs more states than allowed.
	ErrTooComplex = errors.New("pattern too complex")
)

// ErrInvalidNFA is returned by NewMatcher for a nil or unbuilt NFA.
var ErrInvalidNFA = errors.New("matcher requires a successfully compiled NFA")

// CompileError reports a malformed pattern together with the byte offset of
// the character that triggered the failure.
type CompileError struct {
	Pattern string
	Offset  int
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("error parsing regexp: %v at offset %d in %q", e.Err, e.Offset, e.Pattern)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}
