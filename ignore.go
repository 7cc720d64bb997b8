package ignore

import (
	"github.com/rs/zerolog"
)

// MatchResult provides detailed information about a match decision.
type MatchResult struct {
	// Rule is the decisive rule as written in an ignore file ("!" kept for
	// negated rules). Empty if Matched == false.
	Rule string

	// Index is the decisive rule's position in the RuleSet that was
	// consulted for the entry's own name, -1 if nothing matched. For a
	// relative path that RuleSet is the one derived for the path's parent.
	Index int

	// Line is the decisive rule's source line (1-indexed), 0 if unknown.
	Line int

	// Matched indicates whether any rule gave a verdict.
	Matched bool

	// Ignored is the verdict of the last rule that gave one: true unless
	// that rule was negated. A directory that only matches the first
	// segment of a longer pattern counts as ignored here.
	Ignored bool

	// Excluded is the verdict of the last rule that matched the entry
	// itself, ignoring partial directory matches. This is what decides
	// whether an entry is left out of a tree.
	Excluded bool

	// Partial indicates that the decisive rule only matched the first
	// segment of a longer pattern; the rest applies below the directory.
	Partial bool

	// Negated indicates that the decisive rule was a negation.
	Negated bool

	// Hidden indicates that the decisive rule was synthesized by
	// propagation rather than written by the user.
	Hidden bool
}

// MatcherOptions configures Matcher behavior.
type MatcherOptions struct {
	// CaseInsensitive enables case-insensitive matching.
	// Default: false (case-sensitive, matching Git's default behavior).
	CaseInsensitive bool

	// Logger receives per-rule trace events. Nil disables logging.
	Logger *zerolog.Logger
}

// Matcher evaluates entries against rule sets. It holds no per-call state,
// so one Matcher may be shared by any number of goroutines.
type Matcher struct {
	opts MatcherOptions
	log  zerolog.Logger
}

var defaultMatcher = New()

// New creates a Matcher with default options.
func New() *Matcher {
	return NewWithOptions(MatcherOptions{})
}

// NewWithOptions creates a Matcher with custom options.
func NewWithOptions(opts MatcherOptions) *Matcher {
	m := &Matcher{opts: opts, log: zerolog.Nop()}
	if opts.Logger != nil {
		m.log = opts.Logger.With().Str("component", "matcher").Logger()
	}
	return m
}

// Options returns the options the Matcher was created with.
func (m *Matcher) Options() MatcherOptions {
	return m.opts
}

// Match reports whether path matches rs: the last rule that gives a verdict
// decides, and a negated rule's verdict is "not matched".
//
// path is either a single entry name or a slash-separated path relative to
// the directory rs belongs to. For a relative path every ancestor is
// descended into exactly as a tree traversal would (see Descend) and the
// final name is matched against the derived RuleSet.
func (m *Matcher) Match(path string, isDir bool, rs *RuleSet) bool {
	return m.Evaluate(path, isDir, rs).Ignored
}

// Excluded reports whether path is left out by rs: like Match, but partial
// directory matches do not count, and an excluded ancestor excludes
// everything below it.
func (m *Matcher) Excluded(path string, isDir bool, rs *RuleSet) bool {
	return m.Evaluate(path, isDir, rs).Excluded
}

// Evaluate returns detailed information about why path matches rs.
//
// Result interpretation:
//   - Matched == false: No rule gave a verdict; path is not ignored
//   - Matched == true, Ignored == true: the decisive rule matched
//   - Matched == true, Ignored == false: the decisive rule was a negation
func (m *Matcher) Evaluate(path string, isDir bool, rs *RuleSet) MatchResult {
	path = normalizePath(path)
	if path == "" || rs.Len() == 0 {
		return MatchResult{Index: -1}
	}

	segments := splitPath(path)
	if len(segments) == 0 {
		return MatchResult{Index: -1}
	}

	current := rs
	for _, dir := range segments[:len(segments)-1] {
		current = m.Descend(dir, current)
		if current.Len() == 0 {
			return MatchResult{Index: -1}
		}
	}
	return m.evaluateName(segments[len(segments)-1], isDir, current)
}

// evaluateName scans rs in order for a single entry name; later verdicts
// override earlier ones.
func (m *Matcher) evaluateName(name string, isDir bool, rs *RuleSet) MatchResult {
	result := MatchResult{Index: -1}

	for i, r := range rs.All() {
		v, step := m.verdict(r, name, isDir)
		// A negation that continues below a directory re-includes something
		// inside it, never the directory itself.
		if v == noVerdict || (v == partialVerdict && r.negated) {
			continue
		}

		m.log.Trace().
			Str("name", name).
			Bool("dir", isDir).
			Int("rule", i).
			Stringer("pattern", r).
			Str("step", step).
			Stringer("verdict", v).
			Msg("rule matched")

		result.Matched = true
		result.Index = i
		result.Rule = r.source()
		result.Line = r.line
		result.Negated = r.negated
		result.Hidden = r.hidden
		result.Partial = v == partialVerdict
		result.Ignored = !r.negated
		if v == fullVerdict {
			result.Excluded = !r.negated
		}
	}

	return result
}

// Match reports whether path matches rs using a default Matcher.
func Match(path string, isDir bool, rs *RuleSet) bool {
	return defaultMatcher.Match(path, isDir, rs)
}

// Evaluate is Matcher.Evaluate with a default Matcher.
func Evaluate(path string, isDir bool, rs *RuleSet) MatchResult {
	return defaultMatcher.Evaluate(path, isDir, rs)
}
