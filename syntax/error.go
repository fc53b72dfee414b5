package syntax

import (
	"errors"
	"fmt"
)

// Parse error kinds. A *ParseError unwraps to one of these, so callers can
// branch with errors.Is.
var (
	// ErrUnexpectedToken indicates a token that cannot start an atom, a ')'
	// without an open group, or input left over after a complete pattern.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnterminatedGroup indicates a '(' that reached end of input
	// without its matching ')'.
	ErrUnterminatedGroup = errors.New("unterminated group")
)

// LexError reports a character the lexer does not recognize.
type LexError struct {
	Char rune // offending character
	Pos  int  // byte offset in the pattern
}

// Error implements the error interface
func (e *LexError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
}

// ParseError reports a grammar violation.
type ParseError struct {
	Kind  error // ErrUnexpectedToken or ErrUnterminatedGroup
	Pos   int   // offset of the offending token, or of the unclosed '('
	Token Token // token the parser stopped at
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if errors.Is(e.Kind, ErrUnterminatedGroup) {
		return fmt.Sprintf("%v: group opened at position %d is never closed", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%v %s at position %d", e.Kind, e.Token, e.Pos)
}

// Unwrap returns the error kind
func (e *ParseError) Unwrap() error {
	return e.Kind
}
