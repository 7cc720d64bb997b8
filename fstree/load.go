// Package fstree materialises a tree.Folder from a billy filesystem and
// attaches the rule-source files found in each folder.
package fstree

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"

	ignore "github.com/Sriram-PR/go-ignoretree"
	"github.com/Sriram-PR/go-ignoretree/tree"
)

// DefaultSourceNames is used when Options.SourceNames is empty.
var DefaultSourceNames = []string{".gitignore"}

// Options controls Load.
type Options struct {
	// SourceNames lists the file names read as rule sources in every folder.
	// Each one is attached under its own name.
	SourceNames []string

	// IncludeGlobal attaches the user's global excludes file to the root under
	// ignore.GlobalRuleSetName.
	IncludeGlobal bool

	// Skip lists entry names that are not loaded at all, e.g. ".git".
	Skip []string

	// Logger receives parse warnings at Warn and folder reads at Debug.
	// Nil disables logging.
	Logger *zerolog.Logger
}

// Warning is a parse warning from a rule-source file.
type Warning struct {
	Path string // slash-separated path of the file, relative to the loaded root
	ignore.ParseWarning
}

func (w Warning) Error() string {
	return w.Path + ": " + w.ParseWarning.Error()
}

type loader struct {
	fs       billy.Filesystem
	opts     Options
	log      zerolog.Logger
	warnings []Warning
}

// Load reads the directory root of fsys into a tree. Directory listings are
// sorted by name. Symlinks are listed as files and never followed. Rule-source
// files stay in the tree as ordinary files.
func Load(fsys billy.Filesystem, root string, opts Options) (*tree.Folder, []Warning, error) {
	if fsys == nil {
		return nil, nil, fmt.Errorf("%w: nil filesystem", ignore.ErrInvalidArgument)
	}
	if len(opts.SourceNames) == 0 {
		opts.SourceNames = DefaultSourceNames
	}
	if root == "" {
		root = "."
	}

	l := &loader{fs: fsys, opts: opts, log: zerolog.Nop()}
	if opts.Logger != nil {
		l.log = opts.Logger.With().Str("component", "fstree").Logger()
	}

	folder := tree.NewFolder(".")
	if err := l.load(folder, root, ""); err != nil {
		return nil, nil, err
	}

	if opts.IncludeGlobal {
		rs, path, err := ignore.LoadGlobalRuleSet()
		if err != nil {
			return nil, nil, err
		}
		l.collect(path, rs.Warnings())
		if err := folder.AttachRuleSet(ignore.GlobalRuleSetName, rs); err != nil {
			return nil, nil, err
		}
		l.log.Debug().Str("path", path).Int("rules", rs.Len()).Msg("global excludes loaded")
	}

	return folder, l.warnings, nil
}

// load fills f from the directory dir. rel is dir's slash path relative to
// the loaded root, used for warnings.
func (l *loader) load(f *tree.Folder, dir, rel string) error {
	infos, err := l.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	slices.SortFunc(infos, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	l.log.Debug().Str("dir", dir).Int("entries", len(infos)).Msg("reading folder")

	for _, fi := range infos {
		name := fi.Name()
		if slices.Contains(l.opts.Skip, name) {
			continue
		}
		path := l.fs.Join(dir, name)
		relPath := name
		if rel != "" {
			relPath = rel + "/" + name
		}

		if !fi.IsDir() || fi.Mode()&os.ModeSymlink != 0 {
			if err := f.Add(tree.NewFile(name)); err != nil {
				return err
			}
			if slices.Contains(l.opts.SourceNames, name) {
				if err := l.attach(f, name, path, relPath); err != nil {
					return err
				}
			}
			continue
		}

		sub := tree.NewFolder(name)
		if err := f.Add(sub); err != nil {
			return err
		}
		if err := l.load(sub, path, relPath); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) attach(f *tree.Folder, name, path, relPath string) error {
	content, err := util.ReadFile(l.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	rs := &ignore.RuleSet{}
	l.collect(relPath, rs.LoadFromContent(content))
	return f.AttachRuleSet(name, rs)
}

func (l *loader) collect(path string, warnings []ignore.ParseWarning) {
	for _, w := range warnings {
		l.log.Warn().
			Str("file", path).
			Int("line", w.Line).
			Str("pattern", w.Pattern).
			Msg(w.Message)
		l.warnings = append(l.warnings, Warning{Path: path, ParseWarning: w})
	}
}
