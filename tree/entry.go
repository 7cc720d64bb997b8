// Package tree holds an in-memory directory tree, applies per-folder rule
// sets over it and records which rule sources matched each entry.
package tree

import (
	"fmt"
	"slices"
	"strings"

	ignore "github.com/Sriram-PR/go-ignoretree"
)

// Kind distinguishes files from folders.
type Kind uint8

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// Entry is a node of the tree: either a *File or a *Folder.
type Entry interface {
	Kind() Kind
	Name() string
	// MatchedBy returns the names of the rule sources that excluded the
	// entry during the last Apply, sorted.
	MatchedBy() []string
	IsMatchedBy(source string) bool

	base() *node
}

type node struct {
	name      string
	parent    *Folder
	matchedBy map[string]struct{}
}

func (n *node) Name() string { return n.name }

func (n *node) MatchedBy() []string {
	out := make([]string, 0, len(n.matchedBy))
	for name := range n.matchedBy {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func (n *node) IsMatchedBy(source string) bool {
	_, ok := n.matchedBy[source]
	return ok
}

func (n *node) base() *node { return n }

func (n *node) record(source string) {
	if n.matchedBy == nil {
		n.matchedBy = make(map[string]struct{})
	}
	n.matchedBy[source] = struct{}{}
}

func (n *node) reset() {
	clear(n.matchedBy)
}

// File is a leaf entry.
type File struct {
	node
}

// NewFile returns a detached file entry.
func NewFile(name string) *File {
	return &File{node: node{name: name}}
}

func (*File) Kind() Kind { return KindFile }

// Folder owns an ordered list of children and the rule sets attached at its
// level, keyed by rule-source name.
type Folder struct {
	node
	children []Entry
	index    map[string]int
	rulesets map[string]*ignore.RuleSet
}

// NewFolder returns a detached, empty folder.
func NewFolder(name string) *Folder {
	return &Folder{node: node{name: name}}
}

func (*Folder) Kind() Kind { return KindFolder }

// Add appends e to f's children. It fails with ignore.ErrInvalidArgument if e
// is nil, has an empty name or a name containing "/", collides with an
// existing child, already belongs to a folder, or is f or one of its
// ancestors.
func (f *Folder) Add(e Entry) error {
	if e == nil {
		return fmt.Errorf("%w: nil entry", ignore.ErrInvalidArgument)
	}
	n := e.base()
	switch {
	case n.name == "" || strings.Contains(n.name, "/"):
		return fmt.Errorf("%w: invalid entry name %q", ignore.ErrInvalidArgument, n.name)
	case n.parent != nil:
		return fmt.Errorf("%w: %q already belongs to folder %q", ignore.ErrInvalidArgument, n.name, n.parent.name)
	}
	if _, dup := f.index[n.name]; dup {
		return fmt.Errorf("%w: %q already exists in %q", ignore.ErrInvalidArgument, n.name, f.name)
	}
	if sub, ok := e.(*Folder); ok {
		for p := f; p != nil; p = p.parent {
			if p == sub {
				return fmt.Errorf("%w: adding %q to %q would create a cycle", ignore.ErrInvalidArgument, n.name, f.name)
			}
		}
	}

	if f.index == nil {
		f.index = make(map[string]int)
	}
	f.index[n.name] = len(f.children)
	f.children = append(f.children, e)
	n.parent = f
	return nil
}

// Child returns the child named name.
func (f *Folder) Child(name string) (Entry, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.children[i], true
}

// Children returns the children in insertion order.
func (f *Folder) Children() []Entry {
	return slices.Clone(f.children)
}

// Len returns the number of direct children.
func (f *Folder) Len() int { return len(f.children) }

// AttachRuleSet attaches rs at this folder under the rule-source name. An
// empty RuleSet is not attached. Attaching under an existing name replaces
// the previous RuleSet.
func (f *Folder) AttachRuleSet(name string, rs *ignore.RuleSet) error {
	if name == "" {
		return fmt.Errorf("%w: empty rule-source name", ignore.ErrInvalidArgument)
	}
	if rs == nil {
		return fmt.Errorf("%w: nil RuleSet for %q", ignore.ErrInvalidArgument, name)
	}
	if rs.Len() == 0 {
		return nil
	}
	if f.rulesets == nil {
		f.rulesets = make(map[string]*ignore.RuleSet)
	}
	f.rulesets[name] = rs
	return nil
}

// DetachRuleSet removes the RuleSet attached under name, if any.
func (f *Folder) DetachRuleSet(name string) {
	delete(f.rulesets, name)
}

// RuleSets returns the names of the rule sets attached at this folder,
// sorted.
func (f *Folder) RuleSets() []string {
	out := make([]string, 0, len(f.rulesets))
	for name := range f.rulesets {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// RuleSet returns the RuleSet attached under name.
func (f *Folder) RuleSet(name string) (*ignore.RuleSet, bool) {
	rs, ok := f.rulesets[name]
	return rs, ok
}
