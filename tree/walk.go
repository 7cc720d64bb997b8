package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	ignore "github.com/Sriram-PR/go-ignoretree"
)

// WalkFunc is called for every entry below the walked folder with its path
// relative to that folder. Returning fs.SkipDir from a folder skips its
// contents; returning fs.SkipDir from a file skips its remaining siblings.
// Any other error stops the walk and is returned by Walk.
type WalkFunc func(path string, e Entry) error

// Walk visits every descendant of f depth-first, in insertion order.
// f itself is not visited.
func (f *Folder) Walk(fn WalkFunc) error {
	err := f.walk("", fn)
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (f *Folder) walk(prefix string, fn WalkFunc) error {
	for _, e := range f.children {
		p := joinPath(prefix, e.Name())
		err := fn(p, e)
		switch {
		case err == nil:
		case errors.Is(err, fs.SkipDir):
			if e.Kind() == KindFolder {
				continue
			}
			return nil
		default:
			return err
		}

		if sub, ok := e.(*Folder); ok {
			if err := sub.walk(p, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// FromPaths builds a tree rooted at a folder named "." from slash-separated
// relative paths. A trailing "/" marks a folder; intermediate folders are
// created as needed. A path that needs a file to be a folder fails with
// ignore.ErrInvalidArgument.
func FromPaths(paths ...string) (*Folder, error) {
	root := NewFolder(".")
	for _, raw := range paths {
		isDir := strings.HasSuffix(raw, "/")
		p := ignore.NormalizePath(raw)
		if p == "" || p == "." {
			continue
		}

		segments := strings.Split(strings.TrimPrefix(p, "/"), "/")
		current := root
		for i, seg := range segments {
			last := i == len(segments)-1
			if existing, ok := current.Child(seg); ok {
				sub, isFolder := existing.(*Folder)
				if last && !isDir {
					if isFolder {
						return nil, fmt.Errorf("%w: %q is a folder", ignore.ErrInvalidArgument, raw)
					}
					break
				}
				if !isFolder {
					return nil, fmt.Errorf("%w: %q is below file %q", ignore.ErrInvalidArgument, raw, seg)
				}
				current = sub
				continue
			}

			if last && !isDir {
				if err := current.Add(NewFile(seg)); err != nil {
					return nil, err
				}
				break
			}
			sub := NewFolder(seg)
			if err := current.Add(sub); err != nil {
				return nil, err
			}
			current = sub
		}
	}
	return root, nil
}
