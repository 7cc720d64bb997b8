package tree

import (
	"io/fs"
	"strings"
)

// List returns the relative paths of the entries below root, depth-first,
// folders included. Each filter names a rule source: "name" keeps only
// entries it matched, "!name" keeps only entries it did not match. An entry
// rejected by a filter is left out together with everything below it.
// Empty filters are ignored.
func List(root *Folder, filters ...string) []string {
	if root == nil {
		return nil
	}

	var out []string
	_ = root.Walk(func(path string, e Entry) error {
		if !accepts(e, filters) {
			if e.Kind() == KindFolder {
				return fs.SkipDir
			}
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out
}

func accepts(e Entry, filters []string) bool {
	for _, filter := range filters {
		if filter == "" {
			continue
		}
		if name, negated := strings.CutPrefix(filter, "!"); negated {
			if e.IsMatchedBy(name) {
				return false
			}
			continue
		}
		if !e.IsMatchedBy(filter) {
			return false
		}
	}
	return true
}
