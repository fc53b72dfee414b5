package tinydfa

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/coregx/tinydfa/dfa"
	"github.com/coregx/tinydfa/syntax"
)

// grammarCases lists whole-input acceptance for each pattern.
var grammarCases = []struct {
	pattern string
	accept  []string
	reject  []string
}{
	{"a", []string{"a"}, []string{"", "b", "aa"}},
	{"a*", []string{"", "a", "aaaa"}, []string{"ab", "b"}},
	{"a|b", []string{"a", "b"}, []string{"", "ab", "c"}},
	{"(ab)*", []string{"", "ab", "abab"}, []string{"a", "aba", "ba"}},
	{"a+", []string{"a", "aaaa"}, []string{"", "b", "aab"}},
	{"a?", []string{"", "a"}, []string{"aa", "b"}},
	{".", []string{"a", "\x00", "\xff", "."}, []string{"", "ab"}},
	{"ab|c", []string{"ab", "c"}, []string{"ac", "abc", "b"}},
	{"a*|b", []string{"", "aaa", "b"}, []string{"ab", "bb"}},
	{"(a|b)*abb", []string{"abb", "aabb", "babb", "ababb"}, []string{"", "ab", "abba"}},
	{"hello", []string{"hello"}, []string{"hell", "hello!", "ahello", ""}},
	{".*hello.*", []string{"hello", "say hello there"}, []string{"hell o", "", "help"}},
	{"h(e|a)llo", []string{"hello", "hallo"}, []string{"hullo", "hello "}},
	{"(foo.*|.*bar)", []string{"foo", "foox", "bar", "xbar"}, []string{"fo", "ba", "xfoo"}},
	{"(a|b)", []string{"a", "b"}, []string{"", "ab"}},
	{"x(ab|cd)y*", []string{"xab", "xcdyyy"}, []string{"xabcd", "xy", "x"}},
	{"1(0|1)*0", []string{"10", "1100", "10110"}, []string{"1", "01", "101"}},
}

func TestMatch_Grammar(t *testing.T) {
	configs := map[string]Config{
		"default":      DefaultConfig(),
		"unminimized":  DefaultConfig().WithMinimize(false),
		"no_prefilter": DefaultConfig().WithPrefilter(false),
		"no_accel":     DefaultConfig().WithAcceleration(false),
		"bare":         DefaultConfig().WithMinimize(false).WithPrefilter(false).WithAcceleration(false),
	}

	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			for _, tt := range grammarCases {
				p, err := CompileWithConfig(tt.pattern, config)
				if err != nil {
					t.Fatalf("CompileWithConfig(%q) error: %v", tt.pattern, err)
				}
				for _, in := range tt.accept {
					if !p.MatchString(in) {
						t.Errorf("%q should match %q", tt.pattern, in)
					}
				}
				for _, in := range tt.reject {
					if p.MatchString(in) {
						t.Errorf("%q should not match %q", tt.pattern, in)
					}
				}
			}
		})
	}
}

func TestCompile_Minimize(t *testing.T) {
	tests := []struct {
		pattern string
		shrinks bool
	}{
		{"(a|b|a)", true},
		{"a*", true},
		{"(a|b)*", true},
		{"((a|b)*)*", true},
		{"(a|a)", false},
		{"(ab|ab)", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			full, err := Compile(tt.pattern, false)
			if err != nil {
				t.Fatal(err)
			}
			min, err := Compile(tt.pattern, true)
			if err != nil {
				t.Fatal(err)
			}
			if min.States() > full.States() {
				t.Errorf("minimized %d states > unminimized %d", min.States(), full.States())
			}
			if shrunk := min.States() < full.States(); shrunk != tt.shrinks {
				t.Errorf("states %d -> %d, want shrink=%v", full.States(), min.States(), tt.shrinks)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		check   func(error) bool
	}{
		{"(ab", func(err error) bool { return errors.Is(err, syntax.ErrUnterminatedGroup) }},
		{"*a", func(err error) bool { return errors.Is(err, syntax.ErrUnexpectedToken) }},
		{"a)", func(err error) bool { return errors.Is(err, syntax.ErrUnexpectedToken) }},
		{"", func(err error) bool { return errors.Is(err, syntax.ErrUnexpectedToken) }},
		{"a&", func(err error) bool {
			var lexErr *syntax.LexError
			return errors.As(err, &lexErr) && lexErr.Char == '&' && lexErr.Pos == 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			for _, minimize := range []bool{false, true} {
				p, err := Compile(tt.pattern, minimize)
				if err == nil {
					t.Fatalf("Compile(%q) = %v, want error", tt.pattern, p)
				}
				if p != nil {
					t.Errorf("Compile(%q) returned a pattern with its error", tt.pattern)
				}
				var compileErr *CompileError
				if !errors.As(err, &compileErr) || compileErr.Pattern != tt.pattern {
					t.Errorf("error %v is not a *CompileError for %q", err, tt.pattern)
				}
				if !tt.check(err) {
					t.Errorf("unexpected error kind: %v", err)
				}
			}
		})
	}
}

func TestCompileWithConfig_StateLimit(t *testing.T) {
	pattern := "(a|b)*a(a|b)(a|b)(a|b)"

	_, err := CompileWithConfig(pattern, DefaultConfig().WithMaxStates(4))
	if !errors.Is(err, dfa.ErrStateLimitExceeded) {
		t.Fatalf("expected ErrStateLimitExceeded, got %v", err)
	}

	p, err := CompileWithConfig(pattern, DefaultConfig().WithMaxStates(1000))
	if err != nil {
		t.Fatal(err)
	}
	if !p.MatchString("bbabab") || p.MatchString("bbbbab") {
		t.Error("fourth-from-last 'a' pattern matched incorrectly")
	}
}

func TestCompileWithConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		field  string
	}{
		{"negative_states", DefaultConfig().WithMaxStates(-1), "MaxStates"},
		{"zero_prefilter_len", DefaultConfig().WithMinPrefilterLen(0), "MinPrefilterLen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileWithConfig("a", tt.config)
			var configErr *ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if configErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", configErr.Field, tt.field)
			}
		})
	}

	if err := DefaultConfig().WithPrefilter(false).WithMinPrefilterLen(0).Validate(); err != nil {
		t.Errorf("MinPrefilterLen is irrelevant without a prefilter, got %v", err)
	}
}

func TestCompileAST(t *testing.T) {
	node := syntax.Concat(syntax.Star(syntax.AnyByte()), syntax.Literal('z'))
	p, err := CompileAST(node, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != node.String() {
		t.Errorf("String() = %q, want %q", p.String(), node.String())
	}
	if !p.MatchString("xyz") || p.MatchString("zy") {
		t.Error("CompileAST pattern matched incorrectly")
	}

	// Bytes the lexer rejects are fine in a constructed tree.
	p, err = CompileAST(syntax.Plus(syntax.Literal('-')), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !p.MatchString("---") || p.MatchString("") {
		t.Error("'-'+ matched incorrectly")
	}

	if _, err := CompileAST(nil, DefaultConfig()); err == nil {
		t.Error("CompileAST(nil) should fail")
	}
}

func TestMustCompile(t *testing.T) {
	p := MustCompile("(a|b)*")
	if p.String() != "(a|b)*" || p.States() != 1 {
		t.Errorf("MustCompile = %q with %d states", p, p.States())
	}
	if p.DFA() == nil || p.DFA().States() != p.States() {
		t.Error("DFA() does not describe the pattern")
	}

	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "tinydfa: Compile(`(ab`): ") {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	MustCompile("(ab")
}

// TestPrefilter_Agrees checks that prefiltering never changes results.
func TestPrefilter_Agrees(t *testing.T) {
	patterns := []string{"hello", "(a|a)", "(a|b)", ".*abc.*", "abc?", "h(e|a)llo.*", "x.*y"}
	inputs := []string{"", "a", "b", "ab", "abc", "hello", "hallo", "xabcx", "xy", "xzzy", "hello!"}

	for _, pattern := range patterns {
		with := MustCompile(pattern)
		without, err := CompileWithConfig(pattern, DefaultConfig().WithPrefilter(false))
		if err != nil {
			t.Fatal(err)
		}
		for _, in := range inputs {
			if with.MatchString(in) != without.MatchString(in) {
				t.Errorf("%q on %q: prefilter %v, plain %v",
					pattern, in, with.MatchString(in), without.MatchString(in))
			}
		}
	}
}

func TestConcurrentMatch(t *testing.T) {
	p := MustCompile("(a|b)*abb")
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if !p.MatchString("ababb") || p.MatchString("abab") {
					t.Error("concurrent match disagreed")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCompileError_Format(t *testing.T) {
	err := &CompileError{Pattern: "a&", Err: &syntax.LexError{Char: '&', Pos: 1}}
	want := "tinydfa: Compile(`a&`): invalid character '&' at position 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cfg := &ConfigError{Field: "MaxStates", Message: "must be >= 0"}
	if got := cfg.Error(); got != "invalid config: MaxStates: must be >= 0" {
		t.Errorf("ConfigError.Error() = %q", got)
	}
}

func BenchmarkMatch(b *testing.B) {
	input := []byte(strings.Repeat("ab", 4096) + "abb")
	cases := map[string]Config{
		"default":     DefaultConfig(),
		"unminimized": DefaultConfig().WithMinimize(false),
		"bare":        DefaultConfig().WithPrefilter(false).WithAcceleration(false),
	}
	for name, config := range cases {
		p, err := CompileWithConfig("(a|b)*abb", config)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(input)))
			for i := 0; i < b.N; i++ {
				p.Match(input)
			}
		})
	}
}

func BenchmarkMatch_Prefilter(b *testing.B) {
	input := []byte(strings.Repeat("the quick brown fox ", 512))
	p := MustCompile(".*needle.*")
	b.SetBytes(int64(len(input)))
	for i := 0; i < b.N; i++ {
		p.Match(input)
	}
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Compile("(a|b)*a(a|b)(a|b)(a|b)", true); err != nil {
			b.Fatal(err)
		}
	}
}
