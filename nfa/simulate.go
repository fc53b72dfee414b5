package nfa

import (
	"github.com/coregx/tinydfa/internal/conv"
	"github.com/coregx/tinydfa/internal/sparse"
)

// Simulator decides whole-input membership by walking the NFA directly,
// tracking the epsilon-closed set of active states one byte at a time.
//
// It is O(len(input) * states) and exists as an oracle for the compiled DFA;
// production matching goes through the dfa package. A Simulator reuses its
// buffers between calls and is not safe for concurrent use.
type Simulator struct {
	nfa   *NFA
	curr  *sparse.SparseSet
	next  *sparse.SparseSet
	stack []StateID
}

// NewSimulator creates a simulator for n.
func NewSimulator(n *NFA) *Simulator {
	capacity := conv.IntToUint32(n.States())
	return &Simulator{
		nfa:   n,
		curr:  sparse.NewSparseSet(capacity),
		next:  sparse.NewSparseSet(capacity),
		stack: make([]StateID, 0, n.States()),
	}
}

// Match reports whether the entire input is accepted.
func (s *Simulator) Match(input []byte) bool {
	s.curr.Clear()
	s.addClosure(s.curr, s.nfa.start)

	for _, b := range input {
		s.next.Clear()
		for _, id := range s.curr.Values() {
			for _, e := range s.nfa.states[id].edges {
				if e.Label.Matches(b) {
					s.addClosure(s.next, e.To)
				}
			}
		}
		if s.next.IsEmpty() {
			return false
		}
		s.curr, s.next = s.next, s.curr
	}

	return s.curr.Contains(uint32(s.nfa.accept))
}

// addClosure inserts id and every state epsilon-reachable from it.
func (s *Simulator) addClosure(set *sparse.SparseSet, id StateID) {
	if !set.Insert(uint32(id)) {
		return
	}
	stack := append(s.stack[:0], id)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range s.nfa.states[top].edges {
			if e.Label.IsEpsilon() && set.Insert(uint32(e.To)) {
				stack = append(stack, e.To)
			}
		}
	}
	s.stack = stack
}

// Simulate is a one-shot convenience wrapper around NewSimulator(n).Match.
func Simulate(n *NFA, input []byte) bool {
	return NewSimulator(n).Match(input)
}
