package ignore

import (
	"bytes"
	"runtime"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// normalizePath puts an entry path into the form the matcher walks:
//  1. backslashes become slashes (Windows only; elsewhere \ is a valid name byte)
//  2. runs of slashes collapse to one
//  3. every leading "./" is removed
//  4. a trailing slash is removed
//
// Patterns are never passed through here; their escapes stay intact.
func normalizePath(p string) string {
	if runtime.GOOS == "windows" {
		p = strings.ReplaceAll(p, `\`, "/")
	}

	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}

	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}

	return strings.TrimSuffix(p, "/")
}

// NormalizePath returns p in the form the matcher expects: forward slashes,
// no "./" prefix, no repeated or trailing slashes.
func NormalizePath(p string) string {
	return normalizePath(p)
}

// normalizeContent strips any leading UTF-8 BOMs and turns CRLF and lone CR
// line endings into LF.
func normalizeContent(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	for bytes.HasPrefix(content, utf8BOM) {
		content = content[len(utf8BOM):]
	}

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}

// trimTrailingWhitespace drops trailing spaces and tabs. A space escaped by
// an odd run of backslashes survives, without its backslash:
//
//	"foo "    -> "foo"
//	"foo\ "   -> "foo "
//	"foo\\ "  -> "foo\\"
//	"foo\\\ " -> "foo\\ "
func trimTrailingWhitespace(line string) string {
	trimmed := strings.TrimRight(line, " \t")
	if len(trimmed) == len(line) {
		return line
	}

	escapes := len(trimmed) - len(strings.TrimRight(trimmed, `\`))
	if escapes%2 == 1 && line[len(trimmed)] == ' ' {
		return trimmed[:len(trimmed)-1] + " "
	}
	return trimmed
}
