// Package gitparity cross-checks tree results against go-git's gitignore
// matcher.
package gitparity

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/Sriram-PR/go-ignoretree/tree"
)

// Mismatch is an entry on which the two matchers disagree.
type Mismatch struct {
	Path  string `json:"path" yaml:"path"`
	IsDir bool   `json:"is_dir" yaml:"is_dir"`
	Ours  bool   `json:"ours" yaml:"ours"`
	Git   bool   `json:"git" yaml:"git"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: ignoretree=%t go-git=%t", m.Path, m.Ours, m.Git)
}

// Compare reads the .gitignore files of fsys with go-git and reports every
// entry of root whose go-git verdict differs from whether source matched it.
// root must already have been applied and must mirror fsys.
//
// go-git reports descendants of an ignored folder as not ignored unless a
// pattern names them, while the tree marks them matched. Both mean the entry
// is excluded, so an entry below a folder go-git ignores counts as ignored.
func Compare(fsys billy.Filesystem, root *tree.Folder, source string) ([]Mismatch, error) {
	patterns, err := gitignore.ReadPatterns(fsys, nil)
	if err != nil {
		return nil, fmt.Errorf("reading gitignore patterns: %w", err)
	}
	m := gitignore.NewMatcher(patterns)

	var out []Mismatch
	ignoredDirs := map[string]bool{}
	err = root.Walk(func(path string, e tree.Entry) error {
		isDir := e.Kind() == tree.KindFolder

		git := ignoredDirs[parent(path)]
		if !git {
			git = m.Match(strings.Split(path, "/"), isDir)
		}
		if isDir && git {
			ignoredDirs[path] = true
		}

		if ours := e.IsMatchedBy(source); ours != git {
			out = append(out, Mismatch{Path: path, IsDir: isDir, Ours: ours, Git: git})
		}
		return nil
	})
	return out, err
}

func parent(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ""
	}
	return path[:i]
}
