package osc

import (
	"reflect"
	"strings"
	"testing"
)

func TestComponent_Match(t *testing.T) {
	tests := []struct {
		pattern string
		segment string
		want    bool
	}{
		{"123", "123", true},
		{"123", "12", false},
		{"1234", "123", false},
		{"", "", true},
		{"", "a", false},

		{"*", "", true},
		{"*", "anything", true},
		{"**", "", true},
		{"*abc", "xyabc", true},
		{"*abc", "abc", true},
		{"*abc", "abc1", false},
		{"a*", "a", true},
		{"a*c", "abbbc", true},
		{"a*c", "abbbd", false},
		{"*a*b", "xaxb", true},
		{"*a*b", "xaxa", false},
		{"*ab", "aab", true},
		{"*?", "", false},
		{"*?", "a", true},
		{"?*?", "ab", true},
		{"*[0-9]", "track7", true},
		{"*{x,y}", "prefix_y", true},

		{"?", "a", true},
		{"?", "", false},
		{"???", "abc", true},
		{"???", "ab", false},
		{"???", "abcd", false},

		{"[a-z0-9]", "a", true},
		{"[a-z0-9]", "5", true},
		{"[a-z0-9]", "A", false},
		{"[!a-z]", "Z", true},
		{"[!a-z]", "a", false},
		{"[z-a]", "m", true},
		{"[-a]", "-", true},
		{"[a-]", "-", true},
		{"[a-]", "b", false},
		{"[]", "a", false},
		{"[!]", "a", true},
		{"[!]", "", false},
		{"[abc]", "ab", false},

		{"{abc,def}", "def", true},
		{"{abc,def}", "xyz", false},
		{"{abc,def}", "abcdef", false},
		{"{,abc}", "abc", true},
		{"{abc,}", "", false},
		{"{}", "", true},
		{"{,}", "", true},
		{"{}x", "x", true},
		{"{a,ab}c", "abc", false},
		{"{ab,a}c", "abc", true},
		{"{ab,a}bc", "abc", false},
		{"{a,ab}bc", "abc", true},
		{"*{a,ab}c", "xabc", false},
		{"{x,y}*{a,b}", "yzzb", true},
		{"x{1,2}y{3,4}", "x2y3", true},

		{"ab{cd", "ab{cd", true},
		{"ab{cd", "abcd", false},
		{"[ab", "[ab", true},
		{"[ab", "a", false},
		{"{{a}", "{a", true},
		{"[[a]", "[a", true},
		{"a}b", "a}b", true},
	}
	for _, tt := range tests {
		if got := ParseComponent(tt.pattern).Match(tt.segment); got != tt.want {
			t.Errorf("ParseComponent(%q).Match(%q) = %t, want %t", tt.pattern, tt.segment, got, tt.want)
		}
	}
}

func TestComponent_ZeroValue(t *testing.T) {
	var c Component
	if !c.Match("") {
		t.Error("zero Component should match the empty segment")
	}
	if c.Match("a") {
		t.Error("zero Component should only match the empty segment")
	}
}

func TestParseComponent(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Token
	}{
		{"", nil},
		{"abc", []Token{Literal("abc")}},
		{"???", []Token{AnyChar{}, AnyChar{}, AnyChar{}}},
		{"a**b", []Token{Literal("a"), Wildcard{}, Literal("b")}},
		{"*?*", []Token{Wildcard{}, AnyChar{}, Wildcard{}}},
		{"[!a-z0]", []Token{CharClass{Negate: true, Ranges: []CharRange{{'a', 'z'}, {'0', '0'}}}}},
		{"[z-a]", []Token{CharClass{Ranges: []CharRange{{'a', 'z'}}}}},
		{"[-a-]", []Token{CharClass{Ranges: []CharRange{{'-', '-'}, {'a', 'a'}, {'-', '-'}}}}},
		{"[]", []Token{CharClass{}}},
		{"{,abc}", []Token{Alternation{"abc"}}},
		{"{abc,}", []Token{Alternation{"abc"}}},
		{"{}", []Token{Alternation{}}},
		{"{,}", []Token{Alternation{}}},
		{"x{a,b}y", []Token{Literal("x"), Alternation{"a", "b"}, Literal("y")}},
		{"ab{cd", []Token{Literal("ab{cd")}},
		{"{{a}", []Token{Literal("{"), Alternation{"a"}}},
		{"[x{a}", []Token{Literal("[x"), Alternation{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			c := ParseComponent(tt.pattern)
			if got := c.Tokens(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens() = %#v, want %#v", got, tt.want)
			}
			if c.String() != tt.pattern {
				t.Errorf("String() = %q, want %q", c.String(), tt.pattern)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	tokens := ParseComponent("a*?[!b-d]{e,f}").Tokens()
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
	}
	if got, want := sb.String(), "a*?[!b-d]{e,f}"; got != want {
		t.Errorf("tokens print as %q, want %q", got, want)
	}
}

// addressSpace weighs every address so one sum tells which ones a pattern
// selected.
var addressSpace = map[string]int{
	"/osc":     1,
	"/os":      2,
	"/osv":     4,
	"/osabc":   8,
	"/osc123":  16,
	"/osc1b3":  32,
	"/oscz":    64,
	"/osc/z":   128,
	"/osc/23f": 256,
}

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		expect  int
	}{
		{"single", "/osc", 1},
		{"empty_alternative_dropped", "/os{c,}", 1},
		{"question_mark_in_braces_is_literal", "/os{?,}", 0},
		{"single_must", "/os{c,v}", 5},
		{"match_in_part", "/osc{?,}z", 0},
		{"match_multiple_parts", "/osc/?", 128},
		{"prefix", "/osc*", 113},
		{"class_then_any", "/osc[0-9]?3", 48},
		{"second_part", "/osc/*", 384},
		{"one_part", "/*", 127},
		{"negated", "/os[!c]*", 12},
		{"two_parts_only", "/*/*", 384},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustCompilePattern(tt.pattern)
			got := 0
			for addr, weight := range addressSpace {
				if p.Match(addr) {
					got += weight
				}
			}
			if got != tt.expect {
				t.Errorf("Match() got = %v, expect %v", got, tt.expect)
			}
		})
	}
}

func TestCompilePattern(t *testing.T) {
	for _, bad := range []string{"", "osc", "*"} {
		if _, err := CompilePattern(bad); err == nil {
			t.Errorf("CompilePattern(%q) should fail", bad)
		}
	}

	p, err := CompilePattern("/a/{b,c}/")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(p.Components()); got != 3 {
		t.Errorf("Components() has %d parts, want 3", got)
	}
	if !p.Match("/a/c/") {
		t.Error(`Match("/a/c/") = false`)
	}
	if p.Match("/a/c") {
		t.Error(`Match("/a/c") = true`)
	}
	if p.String() != "/a/{b,c}/" {
		t.Errorf("String() = %q", p.String())
	}

	var zero Pattern
	if zero.Match("/") {
		t.Error("zero Pattern should match nothing")
	}
}

func TestMustCompilePattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompilePattern() should panic on an invalid pattern")
		}
	}()
	MustCompilePattern("no/slash")
}

func BenchmarkComponentMatch(b *testing.B) {
	c := ParseComponent("*layer*[0-9]{clip,deck}?*position")
	b.ReportAllocs()
	b.ResetTimer()
	var ok bool
	for n := 0; n < b.N; n++ {
		ok = c.Match("composition_layer_7clipXtransport_position")
	}
	result = ok
}

func FuzzParseComponent(f *testing.F) {
	for _, s := range []string{"*", "???", "[!a-z]", "{a,b}", "ab{cd", "*a*b", "[]", "{}"} {
		f.Add(s, "ab")
	}
	f.Fuzz(func(t *testing.T, pattern, segment string) {
		c := ParseComponent(pattern)
		if c.String() != pattern {
			t.Fatalf("String() = %q, want %q", c.String(), pattern)
		}
		c.Match(segment)

		// Without special characters a pattern is its own literal.
		if !strings.ContainsAny(pattern, "*?[]{}") && !c.Match(pattern) {
			t.Fatalf("ParseComponent(%q) doesn't match itself", pattern)
		}
	})
}
