// Package nfa builds Thompson NFAs from tinydfa syntax trees.
//
// Each syntax node is translated into a fragment with exactly one start and
// one accept state. Fragments are composed by appending one arena to another
// and offsetting every edge target of the appended part, so the final NFA is
// a single flat slice of states addressed by StateID.
package nfa

import (
	"errors"
	"fmt"
)

// ErrTooComplex indicates the syntax tree is nested deeper than
// CompilerConfig.MaxRecursionDepth allows.
var ErrTooComplex = errors.New("pattern too complex")

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError reports a structural defect found by NFA.Validate.
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
