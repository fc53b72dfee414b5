package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/tinydfa/syntax"
)

// edges flattens an NFA into per-state edge lists for structural diffs.
func edges(n *NFA) [][]Edge {
	out := make([][]Edge, n.States())
	for i := range out {
		out[i] = append([]Edge{}, n.State(StateID(i)).Edges()...)
	}
	return out
}

func eps(to StateID) Edge         { return Edge{Label: Epsilon(), To: to} }
func lit(c byte, to StateID) Edge { return Edge{Label: Byte(c), To: to} }

func mustCompile(t *testing.T, pattern string) *NFA {
	t.Helper()
	n, err := NewDefaultCompiler().Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", pattern, err)
	}
	if err := n.Validate(); err != nil {
		t.Fatalf("Compile(%q) produced invalid NFA: %v\n%s", pattern, err, n)
	}
	return n
}

func TestCompile_Structure(t *testing.T) {
	tests := []struct {
		pattern string
		start   StateID
		accept  StateID
		want    [][]Edge
	}{
		{
			pattern: "a",
			start:   0, accept: 1,
			want: [][]Edge{{lit('a', 1)}, {}},
		},
		{
			pattern: ".",
			start:   0, accept: 1,
			want: [][]Edge{{{Label: AnyByte(), To: 1}}, {}},
		},
		{
			pattern: "xy",
			start:   0, accept: 3,
			want: [][]Edge{
				{lit('x', 1)},
				{eps(2)},
				{lit('y', 3)},
				{},
			},
		},
		{
			pattern: "a|b",
			start:   0, accept: 5,
			want: [][]Edge{
				{eps(1), eps(3)},
				{lit('a', 2)},
				{eps(5)},
				{lit('b', 4)},
				{eps(5)},
				{},
			},
		},
		{
			pattern: "z*",
			start:   0, accept: 3,
			want: [][]Edge{
				{eps(1), eps(3)},
				{lit('z', 2)},
				{eps(1), eps(3)},
				{},
			},
		},
		{
			pattern: "a?",
			start:   0, accept: 3,
			want: [][]Edge{
				{eps(1), eps(3)},
				{lit('a', 2)},
				{eps(3)},
				{},
			},
		},
		{
			pattern: "a+",
			start:   0, accept: 5,
			want: [][]Edge{
				{lit('a', 1)},
				{eps(2)},
				{eps(3), eps(5)},
				{lit('a', 4)},
				{eps(3), eps(5)},
				{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			if n.Start() != tt.start || n.Accept() != tt.accept {
				t.Errorf("start/accept = %d/%d, want %d/%d", n.Start(), n.Accept(), tt.start, tt.accept)
			}
			if diff := cmp.Diff(tt.want, edges(n)); diff != "" {
				t.Errorf("edges mismatch (-want +got):\n%s\n%s", diff, n)
			}
		})
	}
}

func TestCompile_NestedOffsetsStayInBounds(t *testing.T) {
	patterns := []string{
		"((a|b)*c)+",
		"(a(b(c|d)*)?e)*",
		"(.|a)(b|.)*.?",
		"((((a))))",
		"a**++??",
		"(ab|cd|ef)*(gh)+",
	}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			n := mustCompile(t, p)
			if n.IsAccept(n.Start()) {
				t.Errorf("start and accept coincide")
			}
		})
	}
}

func TestCompile_ByteClasses(t *testing.T) {
	n := mustCompile(t, "(a|b)*c")
	bc := n.ByteClasses()

	// 'a','b','c' are consecutive singletons; everything else splits into
	// the range below 'a' and the range above 'c'.
	if got := bc.AlphabetLen(); got != 5 {
		t.Errorf("AlphabetLen() = %d, want 5", got)
	}
	if bc.Get('a') == bc.Get('b') || bc.Get('b') == bc.Get('c') {
		t.Error("literal bytes share a class")
	}
	if bc.Get(0) != bc.Get('a'-1) {
		t.Error("bytes below 'a' split into several classes")
	}
	if bc.Get('d') != bc.Get(255) {
		t.Error("bytes above 'c' split into several classes")
	}

	dot := mustCompile(t, ".*")
	if !dot.ByteClasses().IsEmpty() {
		t.Errorf("'.*' AlphabetLen() = %d, want 1", dot.ByteClasses().AlphabetLen())
	}
}

func TestCompile_ParseErrorWrapped(t *testing.T) {
	_, err := NewDefaultCompiler().Compile("(ab")
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if ce.Pattern != "(ab" {
		t.Errorf("Pattern = %q", ce.Pattern)
	}
	if !errors.Is(err, syntax.ErrUnterminatedGroup) {
		t.Errorf("error %v does not wrap ErrUnterminatedGroup", err)
	}
}

func TestCompile_MaxRecursionDepth(t *testing.T) {
	node := syntax.MustParse(strings.Repeat("(", 20) + "a" + strings.Repeat(")*", 20))

	_, err := NewCompiler(CompilerConfig{MaxRecursionDepth: 10}).CompileNode(node)
	if !errors.Is(err, ErrTooComplex) {
		t.Errorf("depth 10: error = %v, want ErrTooComplex", err)
	}

	if _, err := NewCompiler(CompilerConfig{MaxRecursionDepth: 64}).CompileNode(node); err != nil {
		t.Errorf("depth 64: error = %v", err)
	}
	if _, err := Compile(node); err != nil {
		t.Errorf("default config: error = %v", err)
	}
}

func TestCompileNode_Nil(t *testing.T) {
	if _, err := Compile(nil); err == nil {
		t.Error("Compile(nil) returned no error")
	}
}

func TestValidate_DetectsDanglingEdge(t *testing.T) {
	n := mustCompile(t, "ab")
	n.states[1].edges[0].To = 99

	var be *BuildError
	if err := n.Validate(); !errors.As(err, &be) {
		t.Fatalf("Validate() = %v, want *BuildError", err)
	}
	if be.StateID != 1 {
		t.Errorf("StateID = %d, want 1", be.StateID)
	}
}

func TestValidate_DetectsNonSinkAccept(t *testing.T) {
	n := mustCompile(t, "a")
	n.states[n.accept].edges = append(n.states[n.accept].edges, eps(0))
	if err := n.Validate(); err == nil {
		t.Error("Validate() accepted an accept state with outgoing edges")
	}
}

func TestErrors_Format(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&CompileError{Pattern: "a+", Err: ErrTooComplex}, `NFA compilation failed for pattern "a+": pattern too complex`},
		{&CompileError{Err: ErrTooComplex}, "NFA compilation failed: pattern too complex"},
		{&BuildError{Message: "boom", StateID: 3}, "NFA build error at state 3: boom"},
		{&BuildError{Message: "boom", StateID: InvalidState}, "NFA build error: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if !AnyByte().Matches(0) || !AnyByte().Matches(255) {
		t.Error("AnyByte does not match every byte")
	}
	if !Byte('q').Matches('q') || Byte('q').Matches('r') {
		t.Error("Byte('q') matches incorrectly")
	}
	if Epsilon().Matches(0) {
		t.Error("Epsilon matched a byte")
	}
	if got := Byte('q').String(); got != `'q'` {
		t.Errorf("String() = %q", got)
	}
}

func TestNFA_StringAndState(t *testing.T) {
	n := mustCompile(t, "a")
	if n.State(InvalidState) != nil || n.State(2) != nil {
		t.Error("State() returned non-nil for out-of-range IDs")
	}
	s := n.String()
	if !strings.Contains(s, "start=0, accept=1") || !strings.Contains(s, "'a'->1") {
		t.Errorf("String() = %q", s)
	}
}
