package osc

import (
	"strings"
)

// Token is one element of a parsed address pattern component: a Literal,
// Wildcard, AnyChar, CharClass or Alternation.
type Token interface {
	// minLen is the fewest input bytes the token can match.
	minLen() int
	String() string
}

// Literal matches its text exactly.
type Literal string

// Wildcard is '*' (or a run of them): zero or more characters.
type Wildcard struct{}

// AnyChar is '?': exactly one character.
type AnyChar struct{}

// CharRange is an inclusive ASCII range of a CharClass. A single character has
// Lo == Hi.
type CharRange struct {
	Lo, Hi byte
}

// CharClass is a bracket expression like [a-z0-9] or [!abc]. It matches one
// character that is (or with Negate, is not) in one of the ranges.
type CharClass struct {
	Negate bool
	Ranges []CharRange
}

// Alternation is a brace expression like {foo,bar}. It matches any one of the
// alternatives; with none it matches the empty string.
type Alternation []string

func (l Literal) minLen() int     { return len(l) }
func (Wildcard) minLen() int      { return 0 }
func (AnyChar) minLen() int       { return 1 }
func (CharClass) minLen() int     { return 1 }
func (a Alternation) minLen() int { return a.shortest() }

func (l Literal) String() string { return string(l) }
func (Wildcard) String() string  { return "*" }
func (AnyChar) String() string   { return "?" }

func (c CharClass) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.Negate {
		sb.WriteByte('!')
	}
	for _, r := range c.Ranges {
		sb.WriteByte(r.Lo)
		if r.Hi != r.Lo {
			sb.WriteByte('-')
			sb.WriteByte(r.Hi)
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a Alternation) String() string {
	return "{" + strings.Join(a, ",") + "}"
}

// contains reports whether c falls in one of the ranges.
func (cc CharClass) contains(c byte) bool {
	for _, r := range cc.Ranges {
		if r.Lo <= c && c <= r.Hi {
			return true
		}
	}
	return false
}

func (a Alternation) shortest() int {
	if len(a) == 0 {
		return 0
	}
	n := len(a[0])
	for _, s := range a[1:] {
		if len(s) < n {
			n = len(s)
		}
	}
	return n
}

// Component is one '/' separated part of an address pattern, parsed into
// tokens. Components are immutable and safe for concurrent use.
type Component struct {
	pattern string
	tokens  []Token
	// rest[i] is the fewest bytes tokens[i:] can match.
	rest []int
}

// ParseComponent parses one path segment of an address pattern. Malformed
// bracket or brace expressions, ones that are never closed or that nest, are
// kept as literal text.
func ParseComponent(segment string) Component {
	var (
		tokens []Token
		lit    []byte
	)
	flush := func() {
		if len(lit) > 0 {
			tokens = append(tokens, Literal(lit))
			lit = nil
		}
	}

	for i := 0; i < len(segment); {
		switch c := segment[i]; c {
		case '*':
			flush()
			for i < len(segment) && segment[i] == '*' {
				i++
			}
			tokens = append(tokens, Wildcard{})

		case '?':
			flush()
			tokens = append(tokens, AnyChar{})
			i++

		case '[', '{':
			closer := byte(']')
			if c == '{' {
				closer = '}'
			}
			end, ok := scanGroup(segment, i, closer)
			if !ok {
				// Not a group: the opener is plain text and scanning
				// resumes right after it.
				lit = append(lit, c)
				i++
				continue
			}
			flush()
			body := segment[i+1 : end]
			if c == '[' {
				tokens = append(tokens, parseClass(body))
			} else {
				tokens = append(tokens, parseAlternation(body))
			}
			i = end + 1

		default:
			lit = append(lit, c)
			i++
		}
	}
	flush()

	rest := make([]int, len(tokens)+1)
	for i := len(tokens) - 1; i >= 0; i-- {
		rest[i] = rest[i+1] + tokens[i].minLen()
	}
	return Component{pattern: segment, tokens: tokens, rest: rest}
}

// scanGroup returns the index of the closer matching the opener at s[start].
// A second opener before the closer means the first one doesn't start a group.
func scanGroup(s string, start int, closer byte) (int, bool) {
	opener := s[start]
	for j := start + 1; j < len(s); j++ {
		switch s[j] {
		case closer:
			return j, true
		case opener:
			return 0, false
		}
	}
	return 0, false
}

func parseClass(body string) CharClass {
	var cc CharClass
	if len(body) > 0 && body[0] == '!' {
		cc.Negate = true
		body = body[1:]
	}
	for i := 0; i < len(body); {
		if i+2 < len(body) && body[i+1] == '-' {
			lo, hi := body[i], body[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			cc.Ranges = append(cc.Ranges, CharRange{Lo: lo, Hi: hi})
			i += 3
			continue
		}
		cc.Ranges = append(cc.Ranges, CharRange{Lo: body[i], Hi: body[i]})
		i++
	}
	return cc
}

func parseAlternation(body string) Alternation {
	alts := Alternation{}
	for _, s := range strings.Split(body, ",") {
		if s != "" {
			alts = append(alts, s)
		}
	}
	return alts
}

// Tokens returns a copy of the parsed tokens.
func (c Component) Tokens() []Token {
	return append([]Token(nil), c.tokens...)
}

// String returns the segment c was parsed from.
func (c Component) String() string {
	return c.pattern
}
