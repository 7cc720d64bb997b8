package ignore

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Markers records where a marker ("/" or "**") appears in a pattern.
// Markers are derived from the pattern when the Rule is compiled and never
// change afterwards.
type Markers struct {
	Present      bool // marker occurs anywhere
	Leading      bool // pattern starts with the marker
	Trailing     bool // pattern ends with the marker
	Intermediate bool // marker occurs with at least one character on each side
}

// Rule is one compiled ignore pattern. Rules are immutable values: every
// "setter" returns a new Rule with recomputed markers.
type Rule struct {
	pattern  string // pattern text, without "!" or escapes
	glob     string // pattern with literal braces escaped for doublestar
	slash    Markers
	globstar Markers
	err      error // wraps ErrMalformedGlob when the glob cannot compile
	line     int   // 1-indexed source line, 0 when not loaded from lines
	negated  bool  // "!pattern": a match re-includes the entry
	hidden   bool  // synthesized by propagation rather than user-authored
}

// NewRule compiles a user-authored pattern. Any string is accepted; a glob
// that cannot be compiled yields a Rule whose Err is non-nil and which never
// matches.
func NewRule(pattern string) Rule {
	return compileRule(pattern, false, false, 0)
}

// NewNegatedRule compiles pattern as a re-inclusion rule, the equivalent of
// the line "!pattern".
func NewNegatedRule(pattern string) Rule {
	return compileRule(pattern, true, false, 0)
}

// NewHiddenRule compiles an internally synthesized rule.
func NewHiddenRule(pattern string) Rule {
	return compileRule(pattern, false, true, 0)
}

func compileRule(pattern string, negated, hidden bool, line int) Rule {
	r := Rule{
		pattern:  pattern,
		glob:     escapeBraces(pattern),
		slash:    computeMarkers(pattern, "/", "/", "/", "/"),
		globstar: computeMarkers(pattern, "**", "**/", "/**", "/**/"),
		line:     line,
		negated:  negated,
		hidden:   hidden,
	}

	body := strings.TrimSuffix(strings.TrimPrefix(r.glob, "/"), "/")
	if !doublestar.ValidatePattern(body) {
		r.err = fmt.Errorf("%w: %q", ErrMalformedGlob, pattern)
	}
	return r
}

// computeMarkers evaluates the four marker predicates for one marker kind.
func computeMarkers(p, present, lead, trail, inter string) Markers {
	return Markers{
		Present:      strings.Contains(p, present),
		Leading:      strings.HasPrefix(p, lead),
		Trailing:     strings.HasSuffix(p, trail),
		Intermediate: hasInterior(p, inter),
	}
}

// hasInterior reports whether sep occurs in p with at least one byte before
// and one byte after it.
func hasInterior(p, sep string) bool {
	for i := 1; i+len(sep) < len(p); i++ {
		if strings.HasPrefix(p[i:], sep) {
			return true
		}
	}
	return false
}

// escapeBraces escapes unescaped "{" and "}" so doublestar does not treat
// them as alternation, which gitignore does not have.
func escapeBraces(p string) string {
	if !strings.ContainsAny(p, "{}") {
		return p
	}

	var b strings.Builder
	b.Grow(len(p) + 4)
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '\\' && i+1 < len(p) {
			b.WriteByte(c)
			i++
			b.WriteByte(p[i])
			continue
		}
		if c == '{' || c == '}' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Pattern returns the pattern text without negation or escapes.
func (r Rule) Pattern() string { return r.pattern }

// Negated reports whether the rule re-includes what it matches.
func (r Rule) Negated() bool { return r.negated }

// Hidden reports whether the rule was synthesized internally.
func (r Rule) Hidden() bool { return r.hidden }

// Line returns the 1-indexed source line, or 0.
func (r Rule) Line() int { return r.line }

// Slash returns the "/" markers.
func (r Rule) Slash() Markers { return r.slash }

// Globstar returns the "**" markers.
func (r Rule) Globstar() Markers { return r.globstar }

// Err returns a non-nil error wrapping ErrMalformedGlob when the pattern
// cannot be compiled.
func (r Rule) Err() error { return r.err }

// IsZero reports whether r is the zero Rule (empty pattern).
func (r Rule) IsZero() bool { return r.pattern == "" }

// WithPattern returns a copy of r compiled from a different pattern,
// keeping the negated, hidden and line attributes.
func (r Rule) WithPattern(pattern string) Rule {
	return compileRule(pattern, r.negated, r.hidden, r.line)
}

// WithHidden returns a copy of r with the hidden flag set to hidden.
func (r Rule) WithHidden(hidden bool) Rule {
	r.hidden = hidden
	return r
}

// sameKey reports whether two rules occupy the same RuleSet slot. Negation
// is not part of the key: "!abc" replaces "abc" and vice versa.
func (r Rule) sameKey(o Rule) bool {
	return r.pattern == o.pattern
}

// String returns a debug representation: 'pat' for user rules, ('pat') for
// hidden ones, with a leading ! for negated rules.
func (r Rule) String() string {
	s := "'" + r.pattern + "'"
	if r.negated {
		s = "!" + s
	}
	if r.hidden {
		s = "(" + s + ")"
	}
	return s
}

// source returns the pattern as it would be written in an ignore file.
func (r Rule) source() string {
	if r.negated {
		return "!" + r.pattern
	}
	if strings.HasPrefix(r.pattern, "!") || strings.HasPrefix(r.pattern, "#") {
		return `\` + r.pattern
	}
	return r.pattern
}
