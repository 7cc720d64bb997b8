package tree

import (
	"fmt"

	"github.com/rs/zerolog"

	ignore "github.com/Sriram-PR/go-ignoretree"
)

// Applier runs rule sets over a tree and records, on every entry, the names
// of the rule sources that exclude it.
type Applier struct {
	// Matcher evaluates entries. Nil means ignore.New().
	Matcher *ignore.Matcher

	// Logger receives folder visits at Debug and recorded matches at Trace.
	// Nil disables logging.
	Logger *zerolog.Logger
}

// activeSet is a rule source in effect at some folder level. excluded is set
// when that source excluded the folder itself.
type activeSet struct {
	name     string
	rs       *ignore.RuleSet
	excluded bool
}

// Apply runs a default Applier over root.
func Apply(root *Folder) error {
	return Applier{}.Apply(root)
}

// Apply walks root depth-first. At each folder the rule sets inherited from
// the parent are combined with the ones attached at that folder; every child
// is evaluated against each of them and, for folders, each rule set is
// descended into before recursing.
//
// Each visited entry's previous matches are cleared first, so running Apply
// again gives the same result.
func (a Applier) Apply(root *Folder) error {
	if root == nil {
		return fmt.Errorf("%w: nil root folder", ignore.ErrInvalidArgument)
	}

	m := a.Matcher
	if m == nil {
		m = ignore.New()
	}
	log := zerolog.Nop()
	if a.Logger != nil {
		log = a.Logger.With().Str("component", "applier").Logger()
	}

	root.reset()
	visit(m, &log, root, "", nil)
	return nil
}

// visit evaluates the children of f. path is f's path relative to the root,
// empty for the root itself.
func visit(m *ignore.Matcher, log *zerolog.Logger, f *Folder, path string, inherited []activeSet) {
	active := combine(inherited, f)

	folder := path
	if folder == "" {
		folder = "."
	}
	log.Debug().
		Str("folder", folder).
		Int("children", len(f.children)).
		Int("rulesets", len(active)).
		Msg("visiting folder")

	for _, child := range f.children {
		n := child.base()
		n.reset()

		childPath := joinPath(path, n.name)
		sub, isDir := child.(*Folder)

		var next []activeSet
		for _, set := range active {
			excluded := m.Excluded(n.name, isDir, set.rs)
			if excluded {
				n.record(set.name)
				log.Trace().
					Str("path", childPath).
					Str("source", set.name).
					Msg("entry matched")
			}
			if isDir {
				if derived := m.Descend(n.name, set.rs); derived.Len() > 0 {
					next = append(next, activeSet{name: set.name, rs: derived, excluded: excluded})
				}
			}
		}

		if isDir {
			visit(m, log, sub, childPath, next)
		}
	}
}

// combine returns the rule sets in effect inside f: the inherited ones in
// order, then the ones attached at f sorted by name. A rule set attached
// under an inherited name is evaluated after the inherited rules, so the
// deeper file wins, unless f is already excluded by that source: Git does
// not read ignore files inside an excluded directory.
func combine(inherited []activeSet, f *Folder) []activeSet {
	if len(f.rulesets) == 0 {
		return inherited
	}

	out := make([]activeSet, 0, len(inherited)+len(f.rulesets))
	merged := make(map[string]bool, len(f.rulesets))
	for _, set := range inherited {
		own, ok := f.rulesets[set.name]
		if !ok || set.excluded {
			out = append(out, set)
			merged[set.name] = ok
			continue
		}
		rs := set.rs.Clone()
		// Extend only fails on nil arguments, which cannot occur here.
		_ = rs.Extend(own)
		out = append(out, activeSet{name: set.name, rs: rs})
		merged[set.name] = true
	}
	for _, name := range f.RuleSets() {
		if !merged[name] {
			out = append(out, activeSet{name: name, rs: f.rulesets[name]})
		}
	}
	return out
}
