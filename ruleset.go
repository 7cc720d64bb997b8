package ignore

import (
	"fmt"
	"iter"
	"strings"
)

// RuleSet is an ordered collection of rules, unique by pattern. A negated
// rule shares its slot with the plain rule of the same pattern.
//
// Appending a rule whose pattern is already present replaces the existing
// entry at its original position, modeling Git's "last definition of an
// identical pattern wins".
//
// A RuleSet is not safe for concurrent mutation.
type RuleSet struct {
	rules    []Rule
	warnings []ParseWarning
}

// NewRuleSet returns a RuleSet holding rules in order, with the usual
// replace-in-place semantics for duplicates.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if err := rs.Append(r); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// FromLines builds a RuleSet from raw ignore-file lines. Parse warnings are
// available through Warnings.
func FromLines(lines ...string) *RuleSet {
	rs := &RuleSet{}
	rs.LoadFromLines(lines)
	return rs
}

// Append adds r at the end, or replaces the entry with the same pattern in
// place. It fails with ErrInvalidArgument for a nil RuleSet or a zero Rule.
func (rs *RuleSet) Append(r Rule) error {
	if rs == nil {
		return fmt.Errorf("%w: nil RuleSet", ErrInvalidArgument)
	}
	if r.IsZero() {
		return fmt.Errorf("%w: rule has an empty pattern", ErrInvalidArgument)
	}
	rs.put(r)
	return nil
}

// put is Append without validation, for rules known to be valid.
func (rs *RuleSet) put(r Rule) {
	for i := range rs.rules {
		if rs.rules[i].sameKey(r) {
			rs.rules[i] = r
			return
		}
	}
	rs.rules = append(rs.rules, r)
}

// moveToEnd removes any entry with r's key and appends r last.
func (rs *RuleSet) moveToEnd(r Rule) {
	rs.removeFunc(func(o Rule) bool { return o.sameKey(r) })
	rs.rules = append(rs.rules, r)
}

// Remove deletes every rule whose pattern equals pattern, negated or not.
// Removing a pattern that is not present is a no-op.
func (rs *RuleSet) Remove(pattern string) error {
	if rs == nil {
		return fmt.Errorf("%w: nil RuleSet", ErrInvalidArgument)
	}
	rs.removeFunc(func(o Rule) bool { return o.pattern == pattern })
	return nil
}

// RemoveRule deletes every rule sharing r's pattern.
func (rs *RuleSet) RemoveRule(r Rule) error {
	if r.IsZero() {
		return fmt.Errorf("%w: rule has an empty pattern", ErrInvalidArgument)
	}
	return rs.Remove(r.pattern)
}

func (rs *RuleSet) removeFunc(drop func(Rule) bool) {
	kept := rs.rules[:0]
	for _, r := range rs.rules {
		if !drop(r) {
			kept = append(kept, r)
		}
	}
	clear(rs.rules[len(kept):])
	rs.rules = kept
}

// Extend appends every rule of other after the rules of rs. A rule already
// present in rs is moved to the end, so other's rules take precedence over
// rs's rules when both match.
func (rs *RuleSet) Extend(other *RuleSet) error {
	if rs == nil || other == nil {
		return fmt.Errorf("%w: nil RuleSet", ErrInvalidArgument)
	}
	for _, r := range other.rules {
		rs.moveToEnd(r)
	}
	return nil
}

// LoadFromLines resets the RuleSet and loads rules from raw lines: trailing
// whitespace is stripped, blank lines and comments are skipped, and a leading
// \# or \! is unescaped. Lines starting with "!" compile to negated rules.
//
// Lines that cannot match anything produce warnings, which are returned and
// also kept for Warnings.
func (rs *RuleSet) LoadFromLines(lines []string) []ParseWarning {
	rs.rules = rs.rules[:0]
	rs.warnings = nil

	for i, line := range lines {
		r, ok, w := ParseLine(line, i+1)
		if w != nil {
			rs.warnings = append(rs.warnings, *w)
		}
		if ok {
			rs.put(r)
		}
	}
	return rs.Warnings()
}

// LoadFromContent is LoadFromLines over raw ignore-file bytes.
//
// Input normalization (applied automatically):
//   - UTF-8 BOM is stripped if present
//   - CRLF and CR line endings are normalized to LF
func (rs *RuleSet) LoadFromContent(content []byte) []ParseWarning {
	return rs.LoadFromLines(SplitLines(content))
}

// Warnings returns a copy of the warnings from the last load.
func (rs *RuleSet) Warnings() []ParseWarning {
	if rs == nil || len(rs.warnings) == 0 {
		return nil
	}
	out := make([]ParseWarning, len(rs.warnings))
	copy(out, rs.warnings)
	return out
}

// Len returns the number of rules. A nil RuleSet is empty.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// At returns the rule at index i. It panics if i is out of range.
func (rs *RuleSet) At(i int) Rule {
	return rs.rules[i]
}

// Set replaces the rule at index i. It fails if i is out of range, r is the
// zero Rule, or another slot already holds r's pattern.
func (rs *RuleSet) Set(i int, r Rule) error {
	if rs == nil || i < 0 || i >= len(rs.rules) {
		return fmt.Errorf("%w: index %d out of range", ErrInvalidArgument, i)
	}
	if r.IsZero() {
		return fmt.Errorf("%w: rule has an empty pattern", ErrInvalidArgument)
	}
	for j := range rs.rules {
		if j != i && rs.rules[j].sameKey(r) {
			return fmt.Errorf("%w: pattern %s already at index %d", ErrInvalidArgument, r, j)
		}
	}
	rs.rules[i] = r
	return nil
}

// Rules returns a copy of the rules in order.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// All iterates over the rules in order.
func (rs *RuleSet) All() iter.Seq2[int, Rule] {
	return func(yield func(int, Rule) bool) {
		if rs == nil {
			return
		}
		for i, r := range rs.rules {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Patterns returns the rules as ignore-file lines ("!" kept for negated
// rules).
func (rs *RuleSet) Patterns() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.source()
	}
	return out
}

// Clone returns an independent copy. Warnings are not copied.
func (rs *RuleSet) Clone() *RuleSet {
	return &RuleSet{rules: rs.Rules()}
}

// String returns the debug form, e.g. ['*.log', ('**/*')].
func (rs *RuleSet) String() string {
	if rs == nil {
		return "[]"
	}
	parts := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
