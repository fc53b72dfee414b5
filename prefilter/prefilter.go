// Package prefilter provides fast rejection of inputs before running a DFA,
// using literal sets extracted from the pattern.
//
// A prefilter scans the haystack for literals every accepted input must
// contain. If none occurs, the input cannot match and the DFA walk is
// skipped entirely.
//
// The package selects a strategy from the extracted literals:
//   - Up to three single bytes → memchr (SIMD byte search)
//   - One substring → memmem (rare-byte substring search)
//   - Several substrings → Aho-Corasick automaton
//
// Example usage:
//
//	node := syntax.MustParse("(hello|world).*")
//	seq := literal.New(literal.DefaultConfig()).Required(node)
//	pf := prefilter.New(seq, 3)
//
//	pos := pf.Find([]byte("say hello"), 0)
//	// pos == 4
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/tinydfa/literal"
	"github.com/coregx/tinydfa/simd"
)

// Prefilter finds positions where one of a pattern's required literals
// occurs.
type Prefilter interface {
	// Find returns the index of the first literal occurrence starting at or
	// after start, or -1 if there is none.
	//
	// A hit does NOT guarantee a match. A miss from start 0 guarantees the
	// input is rejected.
	Find(haystack []byte, start int) int

	// IsComplete reports whether the literal set is exactly the language of
	// the pattern and all literals have length LiteralLen. A complete
	// prefilter decides whole-input matches on its own: the input matches
	// iff Find returns 0 and len(input) == LiteralLen().
	IsComplete() bool

	// LiteralLen returns the literal length when IsComplete is true, and 0
	// otherwise.
	LiteralLen() int

	// String names the strategy and its literals, for logging.
	String() string
}

// New selects a prefilter for seq, or returns nil when none is worthwhile.
//
// Single-byte sets of at most three bytes always get a memchr prefilter.
// Otherwise every literal must be at least minLen bytes long, since short
// literals match too often to pay for the scan.
func New(seq *literal.Seq, minLen int) Prefilter {
	if seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}

	if seq.Len() <= 3 && seq.MinLen() == 1 && maxLen(seq) == 1 {
		needles := make([]byte, seq.Len())
		for i := range needles {
			needles[i] = seq.Get(i).Bytes[0]
		}
		return newMemchrPrefilter(needles, allComplete(seq))
	}

	if seq.MinLen() < minLen {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	return newAhoCorasickPrefilter(seq)
}

func maxLen(seq *literal.Seq) int {
	longest := 0
	for i := 0; i < seq.Len(); i++ {
		longest = max(longest, seq.Get(i).Len())
	}
	return longest
}

func allComplete(seq *literal.Seq) bool {
	for i := 0; i < seq.Len(); i++ {
		if !seq.Get(i).Complete {
			return false
		}
	}
	return true
}

// memchrPrefilter searches for one of up to three bytes.
//
// Example patterns:
//
//	/.*a.*/       → search for 'a'
//	/(x|y)z*/     → search for 'x' or 'y'
type memchrPrefilter struct {
	needles  []byte
	complete bool
}

func newMemchrPrefilter(needles []byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needles:  needles,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memchr, Memchr2 or Memchr3.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	var idx int
	h := haystack[start:]
	switch len(p.needles) {
	case 1:
		idx = simd.Memchr(h, p.needles[0])
	case 2:
		idx = simd.Memchr2(h, p.needles[0], p.needles[1])
	default:
		idx = simd.Memchr3(h, p.needles[0], p.needles[1], p.needles[2])
	}
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchrPrefilter) String() string {
	lits := make([][]byte, len(p.needles))
	for i := range p.needles {
		lits[i] = p.needles[i : i+1]
	}
	return "memchr" + quoteAll(lits)
}

// memmemPrefilter searches for a single substring using the rare byte
// heuristic of simd.Memmem.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/.*foo.*/     → search for "foo"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle to prevent aliasing.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	return &memmemPrefilter{
		needle:   bytes.Clone(needle),
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmemPrefilter) String() string {
	return "memmem" + quoteAll([][]byte{p.needle})
}

// ahoCorasickPrefilter searches for any of several substrings in one pass.
//
// Example patterns:
//
//	/h(e|a)llo.*/     → search for "hello" or "hallo"
//	/(foo.*|.*bar)/   → search for "foo" or "bar"
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	literals [][]byte
}

// newAhoCorasickPrefilter returns nil if the automaton cannot be built.
func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	literals := make([][]byte, 0, seq.Len())
	for i := 0; i < seq.Len(); i++ {
		lit := bytes.Clone(seq.Get(i).Bytes)
		builder.AddPattern(lit)
		literals = append(literals, lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		literals: literals,
	}
}

// Find implements Prefilter.Find using the Aho-Corasick automaton.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}

	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete. Literals of an alternation
// may differ in length, so a single hit position cannot decide a match.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

func (p *ahoCorasickPrefilter) String() string {
	return "aho-corasick" + quoteAll(p.literals)
}

// quoteAll renders lits like a literal.Seq, e.g. ["foo" "bar"].
func quoteAll(lits [][]byte) string {
	out := make([]literal.Literal, len(lits))
	for i, lit := range lits {
		out[i] = literal.NewLiteral(lit, false)
	}
	return literal.NewSeq(out...).String()
}
