package osc

import (
	"fmt"
	"strings"
)

// Match reports whether the whole of segment matches the component.
func (c Component) Match(segment string) bool {
	if len(c.rest) == 0 {
		// Zero value Component: no tokens.
		return segment == ""
	}
	return matchTokens(c.tokens, c.rest, segment)
}

// matchTokens matches s against tokens, backtracking over wildcard lengths. rest[i] is the minimum length tokens[i:] needs, so no branch
// is tried that can't leave enough input for the tokens after it.
func matchTokens(tokens []Token, rest []int, s string) bool {
	if len(s) < rest[0] {
		return false
	}
	if len(tokens) == 0 {
		return s == ""
	}

	switch t := tokens[0].(type) {
	case Literal:
		return strings.HasPrefix(s, string(t)) && matchTokens(tokens[1:], rest[1:], s[len(t):])

	case AnyChar:
		return matchTokens(tokens[1:], rest[1:], s[1:])

	case CharClass:
		return t.contains(s[0]) != t.Negate && matchTokens(tokens[1:], rest[1:], s[1:])

	case Alternation:
		if len(t) == 0 {
			return matchTokens(tokens[1:], rest[1:], s)
		}
		// The first alternative that is a prefix is taken; later ones aren't retried.
		for _, alt := range t {
			if strings.HasPrefix(s, alt) {
				return matchTokens(tokens[1:], rest[1:], s[len(alt):])
			}
		}
		return false

	case Wildcard:
		if len(tokens) == 1 {
			return true
		}
		bound := len(s) - rest[1]
		// A literal right after the wildcard can only start where it occurs.
		if lit, ok := tokens[1].(Literal); ok {
			for n := 0; n <= bound; {
				i := strings.Index(s[n:], string(lit))
				if i < 0 || n+i > bound {
					return false
				}
				n += i
				if matchTokens(tokens[1:], rest[1:], s[n:]) {
					return true
				}
				n++
			}
			return false
		}
		for n := 0; n <= bound; n++ {
			if matchTokens(tokens[1:], rest[1:], s[n:]) {
				return true
			}
		}
		return false
	}
	return false
}

// Pattern is a parsed OSC address pattern such as "/synth/{1,2}/freq*".
type Pattern struct {
	address string
	parts   []Component
}

// CompilePattern splits an address pattern on '/' and parses every part.
func CompilePattern(address string) (Pattern, error) {
	if len(address) == 0 || address[0] != '/' {
		return Pattern{}, fmt.Errorf("CompilePattern: %q must begin with '/'", address)
	}
	segments := strings.Split(address[1:], "/")
	p := Pattern{address: address, parts: make([]Component, len(segments))}
	for i, s := range segments {
		p.parts[i] = ParseComponent(s)
	}
	return p, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(address string) Pattern {
	p, err := CompilePattern(address)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the concrete address addr matches p, part by part.
func (p Pattern) Match(addr string) bool {
	if len(p.parts) == 0 || len(addr) == 0 || addr[0] != '/' {
		return false
	}
	rest := addr[1:]
	for i, c := range p.parts {
		seg := rest
		if i < len(p.parts)-1 {
			j := strings.IndexByte(rest, '/')
			if j < 0 {
				return false
			}
			seg, rest = rest[:j], rest[j+1:]
		} else if strings.IndexByte(rest, '/') >= 0 {
			return false
		}
		if !c.Match(seg) {
			return false
		}
	}
	return true
}

// Components returns the parsed parts of p.
func (p Pattern) Components() []Component {
	return append([]Component(nil), p.parts...)
}

// String returns the address pattern p was compiled from.
func (p Pattern) String() string {
	return p.address
}
