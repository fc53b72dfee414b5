package nfa

import (
	"fmt"
	"strings"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// LabelKind identifies what an edge consumes.
type LabelKind uint8

const (
	// LabelEpsilon consumes no input
	LabelEpsilon LabelKind = iota

	// LabelByte consumes exactly the byte stored in the label
	LabelByte

	// LabelAnyByte consumes any one of the 256 byte values
	LabelAnyByte
)

// Label is the condition attached to an edge.
type Label struct {
	Kind LabelKind
	Byte byte // LabelByte only
}

// Epsilon returns the label of an edge that consumes no input.
func Epsilon() Label { return Label{Kind: LabelEpsilon} }

// Byte returns the label of an edge that consumes b.
func Byte(b byte) Label { return Label{Kind: LabelByte, Byte: b} }

// AnyByte returns the label of an edge that consumes any byte.
func AnyByte() Label { return Label{Kind: LabelAnyByte} }

// IsEpsilon returns true if the label consumes no input
func (l Label) IsEpsilon() bool {
	return l.Kind == LabelEpsilon
}

// Matches reports whether an edge with this label can consume b.
// Epsilon labels never match a byte.
func (l Label) Matches(b byte) bool {
	switch l.Kind {
	case LabelByte:
		return l.Byte == b
	case LabelAnyByte:
		return true
	default:
		return false
	}
}

// String returns a human-readable representation of the label
func (l Label) String() string {
	switch l.Kind {
	case LabelEpsilon:
		return "ε"
	case LabelByte:
		return fmt.Sprintf("%q", l.Byte)
	case LabelAnyByte:
		return "any"
	default:
		return fmt.Sprintf("Label(%d)", l.Kind)
	}
}

// Edge is a labelled transition to another state.
type Edge struct {
	Label Label
	To    StateID
}

// State is a single NFA state owning its outgoing edges in insertion order.
type State struct {
	edges []Edge
}

// Edges returns the outgoing edges of the state.
// The returned slice must not be modified.
func (s *State) Edges() []Edge {
	return s.edges
}

// NFA is a Thompson NFA stored as a flat arena of states.
//
// An NFA has exactly one start and one accept state, and the accept state
// has no outgoing edges. It is produced by Compiler and consumed by subset
// construction; nothing mutates it after Build.
type NFA struct {
	states []State
	start  StateID
	accept StateID

	// byteClasses groups bytes that no edge distinguishes, so consumers can
	// evaluate one representative per class instead of all 256 bytes.
	byteClasses ByteClasses
}

// Start returns the start state ID
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the accept state ID
func (n *NFA) Accept() StateID {
	return n.accept
}

// IsAccept returns true if id is the accept state
func (n *NFA) IsAccept(id StateID) bool {
	return id == n.accept
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// ByteClasses returns the byte equivalence classes of the NFA.
func (n *NFA) ByteClasses() *ByteClasses {
	return &n.byteClasses
}

// Validate checks that start, accept and every edge target are in range
// and that the accept state is a sink.
func (n *NFA) Validate() error {
	if int(n.start) >= len(n.states) {
		return &BuildError{Message: "start state out of bounds", StateID: n.start}
	}
	if int(n.accept) >= len(n.states) {
		return &BuildError{Message: "accept state out of bounds", StateID: n.accept}
	}
	if len(n.states[n.accept].edges) != 0 {
		return &BuildError{Message: "accept state has outgoing edges", StateID: n.accept}
	}
	for i, s := range n.states {
		for j, e := range s.edges {
			if int(e.To) >= len(n.states) {
				return &BuildError{
					Message: fmt.Sprintf("edge %d targets missing state %d", j, e.To),
					StateID: StateID(i),
				}
			}
		}
	}
	return nil
}

// String returns a multi-line dump of the NFA, one state per line.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA(start=%d, accept=%d, states=%d)\n", n.start, n.accept, len(n.states))
	for i, s := range n.states {
		fmt.Fprintf(&b, "  %d:", i)
		for _, e := range s.edges {
			fmt.Fprintf(&b, " %s->%d", e.Label, e.To)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
