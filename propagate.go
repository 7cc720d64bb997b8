package ignore

import (
	"strings"
)

// everything is the rule appended to an excluded directory's inherited
// rules so its whole subtree is excluded too.
var everything = NewHiddenRule("**/*")

// floats reports whether r applies at every depth below the directory it was
// written in: a slash-free pattern, or one that starts with "**/".
func (r Rule) floats() bool {
	body := strings.TrimSuffix(r.pattern, "/")
	if !strings.Contains(body, "/") {
		return true
	}
	return strings.HasPrefix(strings.TrimPrefix(body, "/"), "**/")
}

// derive returns the rules that r hands down to a subdirectory whose name r
// matched, in order.
//
//	/name          ->  (nothing, anchored here)
//	name           ->  name
//	**/a/b         ->  **/a/b, /b
//	abc/**         ->  (**/*)
//	abc/**/        ->  (**/*/)
//	/a/b/c         ->  /b/c
//	a/**/b         ->  **/b
//
// A trailing "/" is kept on whatever remains.
func derive(r Rule) []Rule {
	body, dirOnly := strings.CutSuffix(r.pattern, "/")
	suffix := ""
	if dirOnly {
		suffix = "/"
	}
	anchored := strings.HasPrefix(body, "/")
	body = strings.TrimPrefix(body, "/")

	switch {
	case !strings.Contains(body, "/"):
		if anchored {
			return nil
		}
		return []Rule{r}

	case strings.HasPrefix(body, "**/"):
		out := []Rule{r}
		if _, tail, ok := strings.Cut(body[len("**/"):], "/"); ok && tail != "" {
			out = append(out, r.WithPattern(anchorTail(tail)+suffix))
		}
		return out

	case strings.HasSuffix(body, "/**") && strings.Count(body, "/") == 1:
		all := everything
		if dirOnly {
			all = NewHiddenRule(everything.pattern + suffix)
		}
		all.negated = r.negated
		all.line = r.line
		return []Rule{all}
	}

	_, tail, _ := strings.Cut(body, "/")
	if tail == "" {
		return nil
	}
	return []Rule{r.WithPattern(anchorTail(tail) + suffix)}
}

// anchorTail anchors the remainder of a consumed pattern to the directory it
// is handed to. A remainder starting with "**" keeps floating.
func anchorTail(tail string) string {
	if strings.HasPrefix(tail, "**") {
		return tail
	}
	return "/" + tail
}

// Propagate returns the rules a subdirectory inherits from rs, assuming every
// rule in rs matched that subdirectory's name. Each rule is rewritten so it
// means, relative to the subdirectory, what it meant relative to the parent;
// rules that cannot apply below are dropped. Duplicate results collapse with
// RuleSet's replace-in-place semantics.
//
// Use Matcher.Descend to propagate into a concrete directory.
func Propagate(rs *RuleSet) *RuleSet {
	out := &RuleSet{}
	for _, r := range rs.All() {
		for _, d := range derive(r) {
			out.put(d)
		}
	}
	return out
}

// Descend returns the rules that apply inside the directory dirName, given
// the rules rs that apply in its parent:
//   - a rule that matched dirName is propagated (see Propagate)
//   - a rule that did not match but floats is inherited unchanged
//   - any other rule is dropped
//
// When the last rule to match dirName itself excluded it, a hidden "**/*" is
// appended last so the whole subtree is excluded.
func (m *Matcher) Descend(dirName string, rs *RuleSet) *RuleSet {
	out := &RuleSet{}
	if rs.Len() == 0 {
		return out
	}

	excluded := false
	for _, r := range rs.All() {
		v, _ := m.verdict(r, dirName, true)
		switch {
		case v != noVerdict:
			for _, d := range derive(r) {
				out.put(d)
			}
			if v == fullVerdict {
				excluded = !r.negated
			}
		case r.floats():
			out.put(r)
		}
	}

	if excluded {
		out.moveToEnd(everything)
	}

	m.log.Trace().
		Str("dir", dirName).
		Bool("excluded", excluded).
		Stringer("inherited", out).
		Msg("descend")

	return out
}
