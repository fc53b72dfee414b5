// Package tinydfa compiles a small regular-expression language into minimal
// deterministic finite automata and matches whole inputs against them.
//
// Patterns are built from single-byte alphanumeric literals and the
// metacharacters . * + ? | ( ). Compilation runs the classic pipeline:
//   - Lexing and recursive-descent parsing into a syntax tree
//   - Thompson construction of an epsilon-NFA
//   - Subset construction into a dense DFA
//   - Optional partition-refinement minimization
//
// Matching is always anchored at both ends: a pattern matches an input only
// if it accepts the input in its entirety. Matching runs in O(n) time with
// no allocation.
//
// Basic usage:
//
//	p, err := tinydfa.Compile("(ab)*c", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.MatchString("ababc")) // true
//	fmt.Println(p.MatchString("abab"))  // false
//
// Advanced usage:
//
//	config := tinydfa.DefaultConfig().WithMaxStates(10000)
//	p, err := tinydfa.CompileWithConfig(untrusted, config)
//
// Limitations:
//   - No escape syntax, so metacharacters cannot be matched literally
//   - No character classes, anchors, counted repetition or captures
package tinydfa

import (
	"github.com/golang/glog"

	"github.com/coregx/tinydfa/dfa"
	"github.com/coregx/tinydfa/literal"
	"github.com/coregx/tinydfa/nfa"
	"github.com/coregx/tinydfa/prefilter"
	"github.com/coregx/tinydfa/syntax"
)

// Pattern is a compiled pattern.
//
// A Pattern is immutable and safe to use concurrently from multiple
// goroutines.
//
// Example:
//
//	p := tinydfa.MustCompile("a+b")
//	if p.Match([]byte("aaab")) {
//	    println("matched!")
//	}
type Pattern struct {
	pattern   string
	dfa       *dfa.DFA
	prefilter prefilter.Prefilter
}

// Compile compiles pattern with the default configuration, minimizing the
// DFA if minimize is true.
//
// On failure the error is a *CompileError wrapping a *syntax.LexError or
// *syntax.ParseError.
//
// Example:
//
//	p, err := tinydfa.Compile("(a|b)*abb", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, minimize bool) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig().WithMinimize(minimize))
}

// MustCompile compiles a minimized pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var hexPair = tinydfa.MustCompile("(0|1|2|3|4|5|6|7|8|9|a|b|c|d|e|f)+")
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern, true)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// In addition to syntax errors, the error may wrap a *ConfigError or a
// *dfa.DFAError when config.MaxStates is exceeded.
//
// Example:
//
//	config := tinydfa.DefaultConfig()
//	config.MaxStates = 1000 // reject patterns with exponential blowup
//	p, err := tinydfa.CompileWithConfig("(a|b)*a(a|b)(a|b)", config)
func CompileWithConfig(pattern string, config Config) (*Pattern, error) {
	if err := config.Validate(); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	node, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return compile(pattern, node, config)
}

// CompileAST compiles an already parsed syntax tree. The pattern reported
// by String is the canonical rendering of node.
//
// Example:
//
//	node := syntax.Concat(syntax.Star(syntax.AnyByte()), syntax.Literal('z'))
//	p, err := tinydfa.CompileAST(node, tinydfa.DefaultConfig())
func CompileAST(node *syntax.Node, config Config) (*Pattern, error) {
	pattern := ""
	if node != nil {
		pattern = node.String()
	}
	if err := config.Validate(); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return compile(pattern, node, config)
}

func compile(pattern string, node *syntax.Node, config Config) (*Pattern, error) {
	n, err := nfa.Compile(node)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	d, err := dfa.Determinize(n, dfa.Config{
		MaxStates:  config.MaxStates,
		Accelerate: config.Accelerate,
	})
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	if glog.V(2) {
		glog.Infof("tinydfa: %q: %d NFA states, %d DFA states", pattern, n.States(), d.States())
	}

	if config.Minimize {
		before := d.States()
		d = dfa.Minimize(d)
		if glog.V(2) {
			glog.Infof("tinydfa: %q: minimized %d -> %d states", pattern, before, d.States())
		}
	}

	p := &Pattern{
		pattern: pattern,
		dfa:     d,
	}
	if config.UsePrefilter {
		seq := literal.New(literal.DefaultConfig()).Required(node)
		p.prefilter = prefilter.New(seq, config.MinPrefilterLen)
		if p.prefilter != nil && glog.V(2) {
			glog.Infof("tinydfa: %q: prefilter %s", pattern, p.prefilter)
		}
	}
	return p, nil
}

// Match reports whether the pattern accepts input in its entirety.
//
// Example:
//
//	p := tinydfa.MustCompile("a*")
//	p.Match([]byte("aaa")) // true
//	p.Match([]byte("ab"))  // false
func (p *Pattern) Match(input []byte) bool {
	if pf := p.prefilter; pf != nil {
		if pf.IsComplete() {
			return len(input) == pf.LiteralLen() && pf.Find(input, 0) == 0
		}
		if pf.Find(input, 0) < 0 {
			return false
		}
	}
	return p.dfa.Match(input)
}

// MatchString reports whether the pattern accepts s in its entirety.
func (p *Pattern) MatchString(s string) bool {
	return p.Match([]byte(s))
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.pattern
}

// States returns the number of states of the compiled DFA.
func (p *Pattern) States() int {
	return p.dfa.States()
}

// DFA returns the compiled automaton. It must not be modified; it is
// exposed for inspection and code generation.
func (p *Pattern) DFA() *dfa.DFA {
	return p.dfa
}
