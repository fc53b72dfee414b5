// Package dfa implements dense deterministic finite automata for tinydfa.
//
// A DFA is built from a Thompson NFA by subset construction (Determinize),
// optionally reduced to the coarsest equivalent automaton by partition
// refinement (Minimize), and then executed by Match with one table lookup
// per input byte.
//
// Every state owns a 256-entry transition row. A DeadState entry means the
// state has no transition on that byte and the input is rejected there;
// there is no explicit dead state in the table.
//
// A DFA is immutable once built and safe for concurrent use.
package dfa

import (
	"fmt"
	"strings"

	"github.com/coregx/tinydfa/nfa"
)

// StateID uniquely identifies a DFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// DeadState marks an absent transition. It is never a valid state index.
const DeadState StateID = 0xFFFFFFFF

// DFA is a dense, fully built deterministic automaton.
type DFA struct {
	trans     [][256]StateID
	start     StateID
	accepting []bool

	// classes partitions the bytes so that every row maps all bytes of a
	// class to the same target.
	classes nfa.ByteClasses

	// accel holds escape bytes per state; nil for states that are not
	// accelerated. Empty non-nil means the state loops on every byte.
	accel      [][]byte
	accelerate bool
}

// newDFA returns an empty DFA sharing the given byte classes.
func newDFA(classes nfa.ByteClasses, accelerate bool) *DFA {
	return &DFA{
		classes:    classes,
		accelerate: accelerate,
	}
}

// addState appends a state with no transitions and returns its ID.
func (d *DFA) addState(accepting bool) StateID {
	var row [256]StateID
	for i := range row {
		row[i] = DeadState
	}
	d.trans = append(d.trans, row)
	d.accepting = append(d.accepting, accepting)
	return StateID(len(d.trans) - 1)
}

// Start returns the start state ID
func (d *DFA) Start() StateID {
	return d.start
}

// States returns the number of states.
func (d *DFA) States() int {
	return len(d.trans)
}

// IsAccepting returns true if id is an accepting state
func (d *DFA) IsAccepting(id StateID) bool {
	return int(id) < len(d.accepting) && d.accepting[id]
}

// Next returns the target of id on b, or DeadState if there is none.
func (d *DFA) Next(id StateID, b byte) StateID {
	return d.trans[id][b]
}

// ByteClasses returns the byte equivalence classes shared by every row.
func (d *DFA) ByteClasses() *nfa.ByteClasses {
	return &d.classes
}

// Accelerated reports whether id is an accelerated state and returns its
// escape bytes: the bytes on which it leaves itself. An accelerated state
// with no escape bytes loops on every byte.
func (d *DFA) Accelerated(id StateID) ([]byte, bool) {
	if d.accel == nil || int(id) >= len(d.accel) {
		return nil, false
	}
	escapes := d.accel[id]
	return escapes, escapes != nil
}

// Match reports whether the DFA accepts the entire input.
//
// The walk starts at the start state and follows one transition per byte.
// A missing transition rejects immediately. Runs in O(len(input)) with no
// allocation and never mutates the DFA.
func (d *DFA) Match(input []byte) bool {
	state := d.start
	if d.accel == nil {
		for _, b := range input {
			state = d.trans[state][b]
			if state == DeadState {
				return false
			}
		}
		return d.accepting[state]
	}

	for pos := 0; pos < len(input); pos++ {
		if escapes := d.accel[state]; escapes != nil {
			next := skipToEscape(input[pos:], escapes)
			if next < 0 {
				// Everything left loops back to this state.
				return d.accepting[state]
			}
			pos += next
		}
		state = d.trans[state][input[pos]]
		if state == DeadState {
			return false
		}
	}
	return d.accepting[state]
}

// MatchString reports whether the DFA accepts the entire string s.
func (d *DFA) MatchString(s string) bool {
	return d.Match([]byte(s))
}

// String returns a multi-line dump of the DFA. Accepting states are marked
// with '*' and runs of bytes sharing a target are printed as ranges.
func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA(start=%d, states=%d)\n", d.start, len(d.trans))
	for id := range d.trans {
		mark := ""
		if d.accepting[id] {
			mark = "*"
		}
		fmt.Fprintf(&b, "  %d%s:", id, mark)

		row := &d.trans[id]
		for lo := 0; lo < 256; {
			hi := lo
			for hi+1 < 256 && row[hi+1] == row[lo] {
				hi++
			}
			if row[lo] != DeadState {
				if lo == hi {
					fmt.Fprintf(&b, " %q->%d", byte(lo), row[lo])
				} else {
					fmt.Fprintf(&b, " %q-%q->%d", byte(lo), byte(hi), row[lo])
				}
			}
			lo = hi + 1
		}
		b.WriteByte('\n')
	}
	return b.String()
}
