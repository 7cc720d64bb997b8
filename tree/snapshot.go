package tree

// Node is a serialisable view of an entry and its subtree.
type Node struct {
	Name      string              `json:"name" yaml:"name"`
	Kind      string              `json:"kind" yaml:"kind"`
	MatchedBy []string            `json:"matched_by,omitempty" yaml:"matched_by,omitempty"`
	RuleSets  map[string][]string `json:"rulesets,omitempty" yaml:"rulesets,omitempty"`
	Children  []Node              `json:"children,omitempty" yaml:"children,omitempty"`
}

// Snapshot returns the current state of e and everything below it. Rule sets
// are listed as ignore-file lines.
func Snapshot(e Entry) Node {
	n := Node{
		Name: e.Name(),
		Kind: e.Kind().String(),
	}
	if matched := e.MatchedBy(); len(matched) > 0 {
		n.MatchedBy = matched
	}

	f, ok := e.(*Folder)
	if !ok {
		return n
	}
	if len(f.rulesets) > 0 {
		n.RuleSets = make(map[string][]string, len(f.rulesets))
		for name, rs := range f.rulesets {
			n.RuleSets[name] = rs.Patterns()
		}
	}
	for _, child := range f.children {
		n.Children = append(n.Children, Snapshot(child))
	}
	return n
}
