package nfa

import (
	"github.com/coregx/tinydfa/internal/conv"
)

// Fragment is a partially built NFA with one start and one accept state.
//
// State IDs inside a fragment are local to its own arena. The accept state
// never has outgoing edges until an enclosing rule splices it.
type Fragment struct {
	states []State
	start  StateID
	accept StateID
}

// Start returns the fragment-local start state
func (f *Fragment) Start() StateID {
	return f.start
}

// Accept returns the fragment-local accept state
func (f *Fragment) Accept() StateID {
	return f.accept
}

// States returns the number of states in the fragment
func (f *Fragment) States() int {
	return len(f.states)
}

func (f *Fragment) addState() StateID {
	id := StateID(conv.IntToUint32(len(f.states)))
	f.states = append(f.states, State{})
	return id
}

func (f *Fragment) addEdge(from, to StateID, label Label) {
	f.states[from].edges = append(f.states[from].edges, Edge{Label: label, To: to})
}

// offset shifts every edge target and the recorded start/accept by delta.
func (f *Fragment) offset(delta StateID) {
	for i := range f.states {
		edges := f.states[i].edges
		for j := range edges {
			edges[j].To += delta
		}
	}
	f.start += delta
	f.accept += delta
}

// absorb appends g's states to f, rebasing g onto f's arena.
// It returns g's start and accept as IDs in f.
func (f *Fragment) absorb(g *Fragment) (start, accept StateID) {
	g.offset(StateID(conv.IntToUint32(len(f.states))))
	f.states = append(f.states, g.states...)
	return g.start, g.accept
}

// clone returns a deep copy so the same sub-automaton can be spliced twice.
func (f *Fragment) clone() *Fragment {
	states := make([]State, len(f.states))
	for i, s := range f.states {
		states[i].edges = append([]Edge(nil), s.edges...)
	}
	return &Fragment{states: states, start: f.start, accept: f.accept}
}

// Builder composes fragments using Thompson's construction rules.
//
// Every method consumes its fragment arguments; callers must not reuse a
// fragment after passing it in. The builder also records which bytes label
// edges so the finished NFA knows its byte equivalence classes.
type Builder struct {
	byteClassSet *ByteClassSet
}

// NewBuilder creates a new NFA builder
func NewBuilder() *Builder {
	return &Builder{byteClassSet: NewByteClassSet()}
}

// Literal builds start -b-> accept.
func (b *Builder) Literal(c byte) *Fragment {
	b.byteClassSet.SetByte(c)
	return b.edge(Byte(c))
}

// AnyByte builds start -any-> accept.
func (b *Builder) AnyByte() *Fragment {
	return b.edge(AnyByte())
}

func (b *Builder) edge(label Label) *Fragment {
	f := &Fragment{}
	f.start = f.addState()
	f.accept = f.addState()
	f.addEdge(f.start, f.accept, label)
	return f
}

// Concat links left.accept to right.start with an epsilon edge.
func (b *Builder) Concat(left, right *Fragment) *Fragment {
	rs, ra := left.absorb(right)
	left.addEdge(left.accept, rs, Epsilon())
	left.accept = ra
	return left
}

// Alternate adds a new start forking into both branches and a new accept
// joining them.
func (b *Builder) Alternate(left, right *Fragment) *Fragment {
	f := &Fragment{}
	start := f.addState()
	ls, la := f.absorb(left)
	rs, ra := f.absorb(right)
	accept := f.addState()

	f.addEdge(start, ls, Epsilon())
	f.addEdge(start, rs, Epsilon())
	f.addEdge(la, accept, Epsilon())
	f.addEdge(ra, accept, Epsilon())

	f.start, f.accept = start, accept
	return f
}

// Star wraps inner in a loop that may be skipped entirely.
func (b *Builder) Star(inner *Fragment) *Fragment {
	f := &Fragment{}
	start := f.addState()
	is, ia := f.absorb(inner)
	accept := f.addState()

	f.addEdge(start, is, Epsilon())     // enter
	f.addEdge(start, accept, Epsilon()) // zero repetitions
	f.addEdge(ia, is, Epsilon())        // repeat
	f.addEdge(ia, accept, Epsilon())    // exit

	f.start, f.accept = start, accept
	return f
}

// Plus is Concat(inner, Star(inner)): one mandatory pass, then the loop.
func (b *Builder) Plus(inner *Fragment) *Fragment {
	first := inner.clone()
	return b.Concat(first, b.Star(inner))
}

// Quest makes inner optional without a loop-back edge.
func (b *Builder) Quest(inner *Fragment) *Fragment {
	f := &Fragment{}
	start := f.addState()
	is, ia := f.absorb(inner)
	accept := f.addState()

	f.addEdge(start, is, Epsilon())
	f.addEdge(start, accept, Epsilon())
	f.addEdge(ia, accept, Epsilon())

	f.start, f.accept = start, accept
	return f
}

// Build finalizes f into an NFA. The fragment must not be used afterwards.
func (b *Builder) Build(f *Fragment) *NFA {
	return &NFA{
		states:      f.states,
		start:       f.start,
		accept:      f.accept,
		byteClasses: b.byteClassSet.ByteClasses(),
	}
}
