// Package literal extracts literal byte strings from tinydfa syntax trees.
//
// The primary use case is prefiltering: if every input a pattern accepts
// must contain one of a few literals (e.g. "hello" in h(e|a)llo.*), a
// substring search can reject most non-matching inputs before the DFA runs.
//
// Key concepts:
//   - A Literal is a concrete byte sequence
//   - A Seq is a set of alternative literals
//   - Exact sets list the whole language of a finite pattern
//   - Required sets list strings of which every accepted input contains one
package literal

import (
	"bytes"
	"slices"
	"strconv"
	"strings"
)

// Literal represents a literal byte sequence extracted from a pattern.
// The Complete flag indicates whether the literal is an entire accepted
// input (true) or only a substring every accepted input contains (false).
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal is a whole accepted input.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a set of alternative literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Println(seq.Len()) // Output: 2
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// MinLen returns the length of the shortest literal, or 0 for an empty
// sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	shortest := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		shortest = min(shortest, lit.Len())
	}
	return shortest
}

// HasEmpty reports whether the sequence contains the empty literal.
func (s *Seq) HasEmpty() bool {
	for _, lit := range s.literalsOrNil() {
		if lit.Len() == 0 {
			return true
		}
	}
	return false
}

// Bytes returns the byte strings of all literals in order.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, 0, s.Len())
	for _, lit := range s.literalsOrNil() {
		out = append(out, lit.Bytes)
	}
	return out
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{
			Bytes:    bytes.Clone(lit.Bytes),
			Complete: lit.Complete,
		}
	}
	return &Seq{literals: cloned}
}

// Minimize removes duplicates and every literal that contains another
// literal of the set as a substring. Any input containing the longer
// literal also contains the shorter one, so the set still covers the same
// inputs. The survivors are kept in order of increasing length.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("ab"), false),
//	    literal.NewLiteral([]byte("xaby"), false),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1 (only "ab" remains)
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	slices.SortStableFunc(s.literals, func(a, b Literal) int {
		return a.Len() - b.Len()
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.Contains(current.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}
	s.literals = kept
}

// String renders the sequence as a bracketed list of quoted literals.
func (s *Seq) String() string {
	parts := make([]string, 0, s.Len())
	for _, lit := range s.literalsOrNil() {
		parts = append(parts, strconv.Quote(string(lit.Bytes)))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (s *Seq) literalsOrNil() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// add appends lit unless an equal literal is already present.
func (s *Seq) add(lit Literal) {
	for _, existing := range s.literals {
		if bytes.Equal(existing.Bytes, lit.Bytes) {
			return
		}
	}
	s.literals = append(s.literals, lit)
}
