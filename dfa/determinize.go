package dfa

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/coregx/tinydfa/internal/conv"
	"github.com/coregx/tinydfa/internal/sparse"
	"github.com/coregx/tinydfa/nfa"
)

// Determinize converts n into an equivalent DFA by subset construction.
//
// Every DFA state stands for the epsilon-closure of a set of NFA states.
// Exploration is breadth-first from closure({start}); state IDs are handed
// out in discovery order, so the result is deterministic for a given NFA.
// Only one representative byte per equivalence class is evaluated; the
// resulting target is written for every byte of the class.
//
// With the default configuration this never fails. A positive
// Config.MaxStates turns exponential blowup into ErrStateLimitExceeded.
func Determinize(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	d, err := newDeterminizer(n, config).run()
	if err != nil {
		return nil, err
	}
	d.computeAccel()
	return d, nil
}

// determinizer holds the scratch state of one subset construction.
type determinizer struct {
	nfa    *nfa.NFA
	config Config
	dfa    *DFA

	// members lists the bytes of each class; reps[i] == members[i][0].
	reps    []byte
	members [][]byte

	// ids maps the canonical key of a closure to its DFA state; sets[id] is
	// the sorted closure of state id.
	ids  map[string]StateID
	sets [][]nfa.StateID

	closure *sparse.SparseSet
	stack   []nfa.StateID
	keyBuf  []byte
}

func newDeterminizer(n *nfa.NFA, config Config) *determinizer {
	classes := n.ByteClasses()
	reps := classes.Representatives()
	members := make([][]byte, len(reps))
	for b := 0; b < 256; b++ {
		class := classes.Get(byte(b))
		members[class] = append(members[class], byte(b))
	}

	return &determinizer{
		nfa:     n,
		config:  config,
		dfa:     newDFA(*classes, config.Accelerate),
		reps:    reps,
		members: members,
		ids:     make(map[string]StateID),
		closure: sparse.NewSparseSet(conv.IntToUint32(n.States())),
	}
}

func (z *determinizer) run() (*DFA, error) {
	z.closure.Clear()
	z.addClosure(z.nfa.Start())
	start, err := z.intern()
	if err != nil {
		return nil, err
	}
	z.dfa.start = start

	// sets grows while it is scanned; the index doubles as the BFS queue.
	for i := 0; i < len(z.sets); i++ {
		from := StateID(i)
		for class, rep := range z.reps {
			if !z.move(z.sets[i], rep) {
				continue
			}
			to, err := z.intern()
			if err != nil {
				return nil, err
			}
			row := &z.dfa.trans[from]
			for _, b := range z.members[class] {
				row[b] = to
			}
		}
	}
	return z.dfa, nil
}

// move fills z.closure with the epsilon-closure of every target reachable
// from set on b. It reports false if no edge consumes b.
func (z *determinizer) move(set []nfa.StateID, b byte) bool {
	z.closure.Clear()
	for _, id := range set {
		for _, e := range z.nfa.State(id).Edges() {
			if e.Label.Matches(b) {
				z.addClosure(e.To)
			}
		}
	}
	return !z.closure.IsEmpty()
}

// addClosure inserts id and every state epsilon-reachable from it into
// z.closure.
func (z *determinizer) addClosure(id nfa.StateID) {
	if !z.closure.Insert(uint32(id)) {
		return
	}
	stack := append(z.stack[:0], id)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range z.nfa.State(top).Edges() {
			if e.Label.IsEpsilon() && z.closure.Insert(uint32(e.To)) {
				stack = append(stack, e.To)
			}
		}
	}
	z.stack = stack
}

// intern returns the DFA state for the set currently held in z.closure,
// creating it if the set has not been seen before.
func (z *determinizer) intern() (StateID, error) {
	values := z.closure.Values()
	set := make([]nfa.StateID, len(values))
	for i, v := range values {
		set[i] = nfa.StateID(v)
	}
	slices.Sort(set)

	z.keyBuf = z.keyBuf[:0]
	for _, id := range set {
		z.keyBuf = binary.LittleEndian.AppendUint32(z.keyBuf, uint32(id))
	}
	if id, ok := z.ids[string(z.keyBuf)]; ok {
		return id, nil
	}

	if z.config.MaxStates > 0 && len(z.sets) >= z.config.MaxStates {
		return DeadState, &DFAError{
			Kind:    StateLimitExceeded,
			Message: fmt.Sprintf("DFA state limit of %d exceeded", z.config.MaxStates),
		}
	}

	_, accepting := slices.BinarySearch(set, z.nfa.Accept())
	id := z.dfa.addState(accepting)
	z.ids[string(z.keyBuf)] = id
	z.sets = append(z.sets, set)
	return id, nil
}
