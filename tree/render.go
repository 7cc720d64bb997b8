package tree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"
)

// RenderOptions controls Render output.
type RenderOptions struct {
	// Styled colours matched entries and rule-source annotations.
	Styled bool
}

var (
	folderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1F5FAF", Dark: "#7AA2F7"})
	matchedStyle = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8A6D00", Dark: "#E0AF68"})
	treeStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#565F89"})
)

// Render draws root as a tree. Folders end in "/", entries matched by a rule
// source carry "[name, ...]" and folders with attached rule sets carry
// "{name: N rules}".
func Render(root *Folder, opts RenderOptions) string {
	if root == nil {
		return ""
	}
	t := build(root, opts)
	if opts.Styled {
		t = t.EnumeratorStyle(treeStyle)
	}
	return t.String()
}

func build(f *Folder, opts RenderOptions) *ltree.Tree {
	t := ltree.Root(label(f, opts))
	for _, child := range f.children {
		if sub, ok := child.(*Folder); ok {
			t.Child(build(sub, opts))
			continue
		}
		t.Child(label(child, opts))
	}
	return t
}

func label(e Entry, opts RenderOptions) string {
	matched := e.MatchedBy()

	text := displayName(e)
	if opts.Styled {
		switch {
		case len(matched) > 0:
			text = matchedStyle.Render(text)
		case e.Kind() == KindFolder:
			text = folderStyle.Render(text)
		}
	}

	var sb strings.Builder
	sb.WriteString(text)
	if len(matched) > 0 {
		sb.WriteString(" " + annotate("["+strings.Join(matched, ", ")+"]", opts))
	}
	if f, ok := e.(*Folder); ok && len(f.rulesets) > 0 {
		parts := make([]string, 0, len(f.rulesets))
		for _, rsName := range f.RuleSets() {
			parts = append(parts, fmt.Sprintf("%s: %d rules", rsName, f.rulesets[rsName].Len()))
		}
		sb.WriteString(" " + annotate("{"+strings.Join(parts, ", ")+"}", opts))
	}
	return sb.String()
}

func displayName(e Entry) string {
	if e.Kind() == KindFolder {
		return e.Name() + "/"
	}
	return e.Name()
}

func annotate(s string, opts RenderOptions) string {
	if !opts.Styled {
		return s
	}
	return sourceStyle.Render(s)
}
