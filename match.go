package ignore

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// verdict is what a single rule says about a single entry.
type verdict uint8

const (
	// noVerdict: the rule does not apply to the entry.
	noVerdict verdict = iota
	// partialVerdict: a directory matched the first segment of a pattern
	// that continues below it.
	partialVerdict
	// fullVerdict: the entry itself matched.
	fullVerdict
)

func (v verdict) String() string {
	switch v {
	case partialVerdict:
		return "partial"
	case fullVerdict:
		return "full"
	default:
		return "none"
	}
}

// verdict applies one rule to one entry name. step names the branch that
// decided, for tracing.
//
// Multi-segment patterns never match a single name outright: a directory
// matching their first segment gets a partial verdict and the remaining
// segments are handed down by Descend.
func (m *Matcher) verdict(r Rule, name string, isDir bool) (verdict, string) {
	if r.err != nil {
		return noVerdict, "malformed"
	}

	p := r.glob

	// A trailing slash restricts the rule to directories and is then dropped.
	if r.slash.Trailing {
		if !isDir {
			return noVerdict, "dir-only"
		}
		p = p[:len(p)-1]
	}

	// No slash: shell glob against the entry's own name.
	if !strings.Contains(p, "/") {
		return m.whole(p, name), "basename"
	}

	// A leading slash anchors the rule to this level; it does not change
	// matching here.
	p = strings.TrimPrefix(p, "/")
	if !strings.Contains(p, "/") {
		return m.whole(p, name), "anchored"
	}

	if !strings.Contains(p, "**") {
		if !isDir {
			return noVerdict, "descent-only"
		}
		return m.firstSegment(p, name), "first-segment"
	}

	if rest, ok := strings.CutPrefix(p, "**/"); ok {
		if !isDir {
			// "**" may match zero segments, so "**/foo" matches "foo".
			return m.whole(p, name), "leading-globstar"
		}
		p = rest
	}

	if !isDir {
		return noVerdict, "descent-only"
	}
	return m.firstSegment(p, name), "globstar-segment"
}

// whole matches a glob against a single entry name.
func (m *Matcher) whole(pattern, name string) verdict {
	if m.glob(pattern, name) {
		return fullVerdict
	}
	return noVerdict
}

// firstSegment matches the first segment of a multi-segment pattern against
// a directory name. A bare "**" segment matches any directory.
func (m *Matcher) firstSegment(pattern, name string) verdict {
	first, rest, more := strings.Cut(pattern, "/")
	if first != "**" && !m.glob(first, name) {
		return noVerdict
	}
	if more && rest != "" {
		return partialVerdict
	}
	return fullVerdict
}

// glob matches a shell glob against name. "*" and "?" never cross "/".
func (m *Matcher) glob(pattern, name string) bool {
	if m.opts.CaseInsensitive {
		pattern = strings.ToLower(pattern)
		name = strings.ToLower(name)
	}

	// Fast path: no glob meta characters
	if !strings.ContainsAny(pattern, `*?[\`) {
		return pattern == name
	}

	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// splitPath splits a normalized path into segments.
// Empty segments (from leading/trailing/double slashes) are filtered out.
func splitPath(path string) []string {
	if path == "" {
		return []string{}
	}

	parts := strings.Split(path, "/")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
