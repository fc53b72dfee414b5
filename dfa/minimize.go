package dfa

import (
	"github.com/golang/glog"
)

// Minimize returns the coarsest DFA accepting the same language as d.
//
// It refines the partition {accepting, non-accepting} until every block is
// stable: for every block B and byte class c, either all or none of the
// members of any other block move into B on c. Absent transitions behave
// like an implicit dead target that belongs to no block.
//
// The result never has more states than d. Its start state is 0 and the
// remaining states are numbered in breadth-first order, so the output does
// not depend on how d numbered its states. States unreachable from the start
// are dropped. d is not modified.
func Minimize(d *DFA) *DFA {
	p := newPartition(d)
	p.refine()
	return p.build()
}

// partition is the state of one refinement run.
type partition struct {
	dfa *DFA

	// reps holds one byte per class; class k is evaluated through reps[k].
	reps []byte

	blocks  [][]StateID
	blockOf []int

	// inverse[k][t] lists the states moving to t on class k.
	inverse [][][]StateID

	worklist []splitter
	pending  []bool // indexed by block*len(reps)+class

	marked  []bool
	pre     []StateID
	touched []int
	count   []int
}

// splitter is a worklist entry: refine every block against the preimage of
// block on class.
type splitter struct {
	block int
	class int
}

func newPartition(d *DFA) *partition {
	n := d.States()
	reps := d.classes.Representatives()

	inverse := make([][][]StateID, len(reps))
	for k, rep := range reps {
		inv := make([][]StateID, n)
		for s := range d.trans {
			if t := d.trans[s][rep]; t != DeadState {
				inv[t] = append(inv[t], StateID(s))
			}
		}
		inverse[k] = inv
	}

	p := &partition{
		dfa:     d,
		reps:    reps,
		blockOf: make([]int, n),
		inverse: inverse,
		marked:  make([]bool, n),
	}

	var accepting, rejecting []StateID
	for s := range d.trans {
		if d.accepting[s] {
			accepting = append(accepting, StateID(s))
		} else {
			rejecting = append(rejecting, StateID(s))
		}
	}
	for _, members := range [][]StateID{accepting, rejecting} {
		if len(members) > 0 {
			p.addBlock(members)
		}
	}
	for b := range p.blocks {
		p.seed(b)
	}
	return p
}

// addBlock registers members as a new block and returns its index.
func (p *partition) addBlock(members []StateID) int {
	b := len(p.blocks)
	p.blocks = append(p.blocks, members)
	p.count = append(p.count, 0)
	for _, s := range members {
		p.blockOf[s] = b
	}
	for range p.reps {
		p.pending = append(p.pending, false)
	}
	return b
}

// seed queues block b against every class it is not already queued for.
func (p *partition) seed(b int) {
	for k := range p.reps {
		i := b*len(p.reps) + k
		if !p.pending[i] {
			p.pending[i] = true
			p.worklist = append(p.worklist, splitter{block: b, class: k})
		}
	}
}

func (p *partition) refine() {
	for len(p.worklist) > 0 {
		sp := p.worklist[0]
		p.worklist = p.worklist[1:]
		p.pending[sp.block*len(p.reps)+sp.class] = false

		// Preimage of the splitter, grouped by the block each source is in.
		p.pre = p.pre[:0]
		p.touched = p.touched[:0]
		inv := p.inverse[sp.class]
		for _, t := range p.blocks[sp.block] {
			for _, s := range inv[t] {
				if p.marked[s] {
					continue
				}
				p.marked[s] = true
				p.pre = append(p.pre, s)
				b := p.blockOf[s]
				if p.count[b] == 0 {
					p.touched = append(p.touched, b)
				}
				p.count[b]++
			}
		}

		for _, b := range p.touched {
			if p.count[b] < len(p.blocks[b]) {
				p.split(b)
			}
		}

		// The splitter itself may have split, so unmark from the recorded
		// preimage rather than from the block.
		for _, b := range p.touched {
			p.count[b] = 0
		}
		for _, s := range p.pre {
			p.marked[s] = false
		}
	}
}

// split moves the marked members of block b into a new block. The unmarked
// remainder keeps index b. Both halves are queued against every class.
func (p *partition) split(b int) {
	members := p.blocks[b]
	var in, out []StateID
	for _, s := range members {
		if p.marked[s] {
			in = append(in, s)
		} else {
			out = append(out, s)
		}
	}
	p.blocks[b] = out
	nb := p.addBlock(in)

	if glog.V(3) {
		glog.Infof("dfa: minimize split block %d (%d states) into %d+%d", b, len(members), len(out), len(in))
	}

	p.seed(b)
	p.seed(nb)
}

// build constructs the quotient DFA. Blocks are numbered breadth-first from
// the block of the old start state, following each row in byte order.
func (p *partition) build() *DFA {
	d := p.dfa
	out := newDFA(d.classes, d.accelerate)

	newID := make([]StateID, len(p.blocks))
	for i := range newID {
		newID[i] = DeadState
	}

	startBlock := p.blockOf[d.start]
	queue := []int{startBlock}
	newID[startBlock] = 0
	out.addState(p.accepts(startBlock))
	out.start = 0

	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]

		src := &d.trans[p.blocks[b][0]]
		for _, rep := range p.reps {
			t := src[rep]
			if t == DeadState {
				continue
			}
			tb := p.blockOf[t]
			if newID[tb] == DeadState {
				newID[tb] = out.addState(p.accepts(tb))
				queue = append(queue, tb)
			}
		}
	}

	for b, id := range newID {
		if id == DeadState {
			continue
		}
		src := &d.trans[p.blocks[b][0]]
		row := &out.trans[id]
		for c := 0; c < 256; c++ {
			if t := src[c]; t != DeadState {
				row[c] = newID[p.blockOf[t]]
			}
		}
	}

	out.computeAccel()
	return out
}

// accepts reports whether block b holds accepting states. Blocks never mix
// accepting and rejecting states, so any member decides.
func (p *partition) accepts(b int) bool {
	return p.dfa.accepting[p.blocks[b][0]]
}
