package logging

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is a terminal, so colour codes are safe to
// write to it.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
