package literal

import (
	"github.com/coregx/tinydfa/syntax"
)

// ExtractorConfig configures literal extraction limits.
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in any intermediate set.
	// Cross products of alternations grow multiplicatively, e.g.
	// (a|b)(c|d)(e|f) has 8 strings; a set that would exceed the limit is
	// abandoned. Default: 16.
	MaxLiterals int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals: 16,
	}
}

// Extractor extracts literal sets from syntax trees.
//
// Example:
//
//	node := syntax.MustParse("x(ab|cd)y*")
//	seq := literal.New(literal.DefaultConfig()).Required(node)
//	// seq = ["xab" "xcd"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = DefaultConfig().MaxLiterals
	}
	return &Extractor{config: config}
}

// Exact returns every string node matches, or nil if that language is
// infinite, contains a '.', or has more than MaxLiterals strings. The
// empty string appears as an empty literal. All literals are complete.
//
// Examples:
//
//	"abc"      → ["abc"]
//	"(a|b)c"   → ["ac" "bc"]
//	"ab?"      → ["ab" "a"]
//	"a*"       → nil
func (e *Extractor) Exact(node *syntax.Node) *Seq {
	if node == nil {
		return nil
	}

	switch node.Op {
	case syntax.OpLiteral:
		return NewSeq(NewLiteral([]byte{node.Byte}, true))

	case syntax.OpConcat:
		left := e.Exact(node.Left())
		if left == nil {
			return nil
		}
		right := e.Exact(node.Right())
		if right == nil {
			return nil
		}
		return e.product(left, right)

	case syntax.OpAlternate:
		left := e.Exact(node.Left())
		if left == nil {
			return nil
		}
		right := e.Exact(node.Right())
		if right == nil {
			return nil
		}
		return e.union(left, right)

	case syntax.OpQuest:
		inner := e.Exact(node.Left())
		if inner == nil {
			return nil
		}
		return e.union(inner, NewSeq(NewLiteral([]byte{}, true)))

	default:
		// '.' is 256 strings; '*' and '+' are infinite.
		return nil
	}
}

// Required returns a set of non-empty literals such that every input node
// matches contains at least one of them, or nil if no such set is known.
// The result is minimized. Literals are complete only if the set is exactly
// the language of node.
//
// Examples:
//
//	"hello"        → ["hello"] (complete)
//	"h(e|a)llo.*"  → ["hello" "hallo"]
//	".*foo.*"      → ["foo"]
//	"(ab)+"        → ["ab"]
//	"a*"           → nil
func (e *Extractor) Required(node *syntax.Node) *Seq {
	seq := e.required(node)
	if seq == nil {
		return nil
	}
	seq = seq.Clone()
	before := seq.Len()
	seq.Minimize()
	if seq.Len() != before {
		for i := range seq.literals {
			seq.literals[i].Complete = false
		}
	}
	return seq
}

func (e *Extractor) required(node *syntax.Node) *Seq {
	if node == nil {
		return nil
	}
	if exact := e.Exact(node); exact != nil && !exact.HasEmpty() {
		return exact
	}

	switch node.Op {
	case syntax.OpConcat:
		return incomplete(e.requiredConcat(node))

	case syntax.OpAlternate:
		left := e.required(node.Left())
		if left == nil {
			return nil
		}
		right := e.required(node.Right())
		if right == nil {
			return nil
		}
		return incomplete(e.union(left, right))

	case syntax.OpPlus:
		// Every string of inner+ starts with a string of inner.
		return incomplete(e.required(node.Left()))

	default:
		// '*' and '?' admit the empty string; '.' has no literal.
		return nil
	}
}

// requiredConcat picks the best required set of a concatenation chain.
// Consecutive parts with finite languages are multiplied out into one run,
// so ".*foo.*" yields "foo" rather than "f". Every other part contributes
// its own required set. The set with the longest shortest literal wins.
func (e *Extractor) requiredConcat(node *syntax.Node) *Seq {
	var best, run *Seq
	consider := func(s *Seq) {
		if s != nil && !s.HasEmpty() && (best == nil || s.MinLen() > best.MinLen()) {
			best = s
		}
	}

	for _, part := range flattenConcat(node, nil) {
		exact := e.Exact(part)
		if exact == nil {
			consider(run)
			run = nil
			consider(e.required(part))
			continue
		}
		if run == nil {
			run = exact
			continue
		}
		if next := e.product(run, exact); next != nil {
			run = next
			continue
		}
		consider(run)
		run = exact
	}
	consider(run)
	return best
}

// flattenConcat appends the operands of a left- or right-nested
// concatenation chain to parts in order.
func flattenConcat(node *syntax.Node, parts []*syntax.Node) []*syntax.Node {
	if node.Op != syntax.OpConcat {
		return append(parts, node)
	}
	parts = flattenConcat(node.Left(), parts)
	return flattenConcat(node.Right(), parts)
}

// product returns every concatenation of a literal of a with a literal of
// b, or nil if there would be more than MaxLiterals of them.
func (e *Extractor) product(a, b *Seq) *Seq {
	if a.Len()*b.Len() > e.config.MaxLiterals {
		return nil
	}
	out := NewSeq()
	for _, l := range a.literals {
		for _, r := range b.literals {
			buf := make([]byte, 0, l.Len()+r.Len())
			buf = append(append(buf, l.Bytes...), r.Bytes...)
			out.add(NewLiteral(buf, true))
		}
	}
	return out
}

// union merges two sets, or returns nil if the result would exceed
// MaxLiterals.
func (e *Extractor) union(a, b *Seq) *Seq {
	out := NewSeq()
	for _, lit := range a.literals {
		out.add(lit)
	}
	for _, lit := range b.literals {
		out.add(lit)
	}
	if out.Len() > e.config.MaxLiterals {
		return nil
	}
	return out
}

// incomplete returns a copy of seq with every literal marked incomplete.
func incomplete(seq *Seq) *Seq {
	if seq == nil {
		return nil
	}
	out := &Seq{literals: make([]Literal, len(seq.literals))}
	for i, lit := range seq.literals {
		out.literals[i] = NewLiteral(lit.Bytes, false)
	}
	return out
}
