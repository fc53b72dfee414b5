package dfa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coregx/tinydfa/nfa"
)

func compileNFA(t testing.TB, pattern string) *nfa.NFA {
	t.Helper()
	n, err := nfa.NewDefaultCompiler().Compile(pattern)
	if err != nil {
		t.Fatalf("nfa.Compile(%q) error = %v", pattern, err)
	}
	return n
}

func determinize(t testing.TB, pattern string, config Config) *DFA {
	t.Helper()
	d, err := Determinize(compileNFA(t, pattern), config)
	if err != nil {
		t.Fatalf("Determinize(%q) error = %v", pattern, err)
	}
	return d
}

// grammarCases is shared by the matcher tests of every construction mode.
var grammarCases = []struct {
	pattern string
	accept  []string
	reject  []string
}{
	{"a", []string{"a"}, []string{"", "b", "aa"}},
	{"ab", []string{"ab"}, []string{"", "a", "b", "abc", "ba"}},
	{"a|b", []string{"a", "b"}, []string{"", "ab", "c"}},
	{"a*", []string{"", "a", "aaaaaaaa"}, []string{"b", "ab", "aab"}},
	{"a+", []string{"a", "aaa"}, []string{"", "b", "ab"}},
	{"a?", []string{"", "a"}, []string{"aa", "b"}},
	{"ab*", []string{"a", "ab", "abbbb"}, []string{"", "b", "aba"}},
	{"(ab)*", []string{"", "ab", "abab"}, []string{"a", "aba", "ba"}},
	{"(a|b)*c", []string{"c", "ac", "babac"}, []string{"", "ab", "cc", "acb"}},
	{"a*b*a*", []string{"", "a", "ab", "aaabbbaaa", "ba"}, []string{"aba b", "abab", "c"}},
	{".", []string{"a", "\x00", "\xff", " "}, []string{"", "ab"}},
	{".*", []string{"", "anything at all", "\x00\xff"}, nil},
	{".*a", []string{"a", "xyza", "aaaa"}, []string{"", "ab", "xyz"}},
	{"a.c", []string{"abc", "a.c", "a\nc"}, []string{"ac", "abbc"}},
	{"x**", []string{"", "x", "xxx"}, []string{"y"}},
	{"(a|b|a)", []string{"a", "b"}, []string{"", "aa"}},
	{"((a|b)*)*", []string{"", "ab", "bbba"}, []string{"c", "abc"}},
	{"(ab|ab)", []string{"ab"}, []string{"a", "abab"}},
	{"h(e|a)llo+", []string{"hello", "hallooo"}, []string{"hllo", "hell", "hellox"}},
}

func TestMatch_Grammar(t *testing.T) {
	modes := []struct {
		name     string
		config   Config
		minimize bool
	}{
		{"plain", DefaultConfig().WithAcceleration(false), false},
		{"minimized", DefaultConfig().WithAcceleration(false), true},
		{"accelerated", DefaultConfig(), false},
		{"minimized+accelerated", DefaultConfig(), true},
	}

	for _, mode := range modes {
		for _, tt := range grammarCases {
			t.Run(mode.name+"/"+tt.pattern, func(t *testing.T) {
				d := determinize(t, tt.pattern, mode.config)
				if mode.minimize {
					d = Minimize(d)
				}
				for _, in := range tt.accept {
					if !d.Match([]byte(in)) {
						t.Errorf("Match(%q) = false, want true\n%s", in, d)
					}
					if !d.MatchString(in) {
						t.Errorf("MatchString(%q) = false, want true", in)
					}
				}
				for _, in := range tt.reject {
					if d.Match([]byte(in)) {
						t.Errorf("Match(%q) = true, want false\n%s", in, d)
					}
				}
			})
		}
	}
}

func TestDeterminize_StateCounts(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"a", 2},
		{"ab", 3},
		{"a|b", 3},
		{"(a|b|a)", 3},
		{"(a|a)", 2},
		{"a*", 2},
		{".", 2},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d := determinize(t, tt.pattern, DefaultConfig())
			if got := d.States(); got != tt.want {
				t.Errorf("States() = %d, want %d\n%s", got, tt.want, d)
			}
			if d.Start() != 0 {
				t.Errorf("Start() = %d, want 0", d.Start())
			}
		})
	}
}

func TestDeterminize_Deterministic(t *testing.T) {
	for _, p := range []string{"(a|b)*abb", "h(e|a)llo+", "(.|a)(b|.)*"} {
		first := determinize(t, p, DefaultConfig()).String()
		second := determinize(t, p, DefaultConfig()).String()
		if first != second {
			t.Errorf("%q: two constructions differ:\n%s\n%s", p, first, second)
		}
	}
}

func TestDeterminize_ClassUniformRows(t *testing.T) {
	d := determinize(t, "(a|b)*c", DefaultConfig())
	classes := d.ByteClasses()
	for id := 0; id < d.States(); id++ {
		for b := 0; b < 256; b++ {
			rep := classes.Representatives()[classes.Get(byte(b))]
			if d.Next(StateID(id), byte(b)) != d.Next(StateID(id), rep) {
				t.Fatalf("state %d: byte %q and its class representative %q differ", id, byte(b), rep)
			}
		}
	}
}

func TestDeterminize_StateLimit(t *testing.T) {
	// Distinguishing the 4th symbol from the end needs 2^4 states.
	n := compileNFA(t, "(a|b)*a(a|b)(a|b)(a|b)")

	_, err := Determinize(n, DefaultConfig().WithMaxStates(4))
	if err == nil {
		t.Fatal("Determinize() succeeded with MaxStates=4")
	}
	if !isKind(err, StateLimitExceeded) {
		t.Errorf("error = %v, want StateLimitExceeded", err)
	}

	if _, err := Determinize(n, DefaultConfig().WithMaxStates(1000)); err != nil {
		t.Errorf("MaxStates=1000: error = %v", err)
	}
}

func TestDeterminize_InvalidConfig(t *testing.T) {
	_, err := Determinize(compileNFA(t, "a"), Config{MaxStates: -1})
	if !isKind(err, InvalidConfig) {
		t.Errorf("error = %v, want InvalidConfig", err)
	}
}

func TestAccelerated(t *testing.T) {
	d := Minimize(determinize(t, ".*a", DefaultConfig()))

	escapes, ok := d.Accelerated(d.Start())
	if !ok || !bytes.Equal(escapes, []byte{'a'}) {
		t.Errorf("Accelerated(start) = %q, %v; want \"a\", true", escapes, ok)
	}

	all := Minimize(determinize(t, ".*", DefaultConfig()))
	if escapes, ok := all.Accelerated(all.Start()); !ok || len(escapes) != 0 {
		t.Errorf("'.*' Accelerated(start) = %q, %v; want empty, true", escapes, ok)
	}

	off := Minimize(determinize(t, ".*a", DefaultConfig().WithAcceleration(false)))
	if _, ok := off.Accelerated(off.Start()); ok {
		t.Error("acceleration disabled but start state is accelerated")
	}
}

func TestAccelerated_EscapeIncludesDeadBytes(t *testing.T) {
	// The loop state of x* leaves itself on every byte but 'x'.
	d := Minimize(determinize(t, "x*", DefaultConfig()))
	if _, ok := d.Accelerated(d.Start()); ok {
		t.Errorf("x* start state accelerated with 255 escape bytes")
	}
}

func TestMatch_AcceleratedLongInput(t *testing.T) {
	on := Minimize(determinize(t, ".*ab", DefaultConfig()))
	off := Minimize(determinize(t, ".*ab", DefaultConfig().WithAcceleration(false)))

	inputs := [][]byte{
		append(bytes.Repeat([]byte("x"), 10_000), "ab"...),
		append(bytes.Repeat([]byte("xa"), 5_000), 'b'),
		append(bytes.Repeat([]byte("ab"), 4_000), 'x'),
		bytes.Repeat([]byte("y"), 70_000),
	}
	want := []bool{true, true, false, false}
	for i, in := range inputs {
		if got := on.Match(in); got != want[i] {
			t.Errorf("input %d: accelerated Match = %v, want %v", i, got, want[i])
		}
		if got := off.Match(in); got != want[i] {
			t.Errorf("input %d: plain Match = %v, want %v", i, got, want[i])
		}
	}
}

func TestString(t *testing.T) {
	d := Minimize(determinize(t, "a(b|c)", DefaultConfig()))
	s := d.String()
	for _, want := range []string{"DFA(start=0, states=3)", "0: 'a'->1", "1: 'b'-'c'->2", "2*:"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestErrors(t *testing.T) {
	if StateLimitExceeded.String() != "StateLimitExceeded" || InvalidConfig.String() != "InvalidConfig" {
		t.Error("ErrorKind.String() mismatch")
	}
	if got := ErrorKind(9).String(); got != "UnknownErrorKind(9)" {
		t.Errorf("ErrorKind(9).String() = %q", got)
	}

	cause := &DFAError{Kind: InvalidConfig, Message: "inner"}
	err := &DFAError{Kind: StateLimitExceeded, Message: "outer", Cause: cause}
	if err.Error() != "outer: inner" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !err.Is(ErrStateLimitExceeded) || err.Is(ErrInvalidConfig) {
		t.Error("Is() does not compare by kind")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap() did not return the cause")
	}
}

func isKind(err error, kind ErrorKind) bool {
	de, ok := err.(*DFAError)
	return ok && de.Kind == kind
}

func BenchmarkMatch(b *testing.B) {
	input := append(bytes.Repeat([]byte("abcdefgh"), 1024), "needle"...)
	for _, accel := range []bool{false, true} {
		name := "plain"
		if accel {
			name = "accelerated"
		}
		b.Run(name, func(b *testing.B) {
			d := Minimize(determinize(b, ".*needle", DefaultConfig().WithAcceleration(accel)))
			b.SetBytes(int64(len(input)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !d.Match(input) {
					b.Fatal("no match")
				}
			}
		})
	}
}

func BenchmarkDeterminize(b *testing.B) {
	n := compileNFA(b, "(a|b)*a(a|b)(a|b)(a|b)(a|b)")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Determinize(n, DefaultConfig()); err != nil {
			b.Fatal(err)
		}
	}
}
