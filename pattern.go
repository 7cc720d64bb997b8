package ignore

import (
	"fmt"
	"strings"
)

// ParseWarning describes a line that was skipped or compiled into a rule
// that can never match.
type ParseWarning struct {
	Pattern string // The problematic line, after trailing whitespace trimming
	Message string // Human-readable warning message
	Line    int    // Line number (1-indexed)
	Err     error  // Wraps ErrMalformedGlob for uncompilable globs, nil otherwise
}

// Error implements error so warnings can be logged or wrapped directly.
func (w ParseWarning) Error() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Message, w.Pattern)
}

// Unwrap exposes the underlying error, if any.
func (w ParseWarning) Unwrap() error { return w.Err }

// SplitLines normalizes ignore-file content (BOM, CRLF, CR) and splits it
// into raw lines.
func SplitLines(content []byte) []string {
	content = normalizeContent(content)
	if len(content) == 0 {
		return nil
	}
	return strings.Split(string(content), "\n")
}

// ParseLine compiles a single ignore-file line. ok is false for blank lines,
// comments and lines that reduce to nothing; in the last case a warning is
// returned as well. A rule with an uncompilable glob is returned with ok set
// and a warning.
func ParseLine(line string, lineNum int) (r Rule, ok bool, warning *ParseWarning) {
	// Step 1: Trim trailing whitespace (Git behavior)
	line = trimTrailingWhitespace(line)

	// Step 2: Skip empty lines (no warning)
	if line == "" {
		return Rule{}, false, nil
	}

	// Step 3: Skip comments
	if strings.HasPrefix(line, "#") {
		return Rule{}, false, nil
	}

	original := line

	// Step 4: Handle negation and \! escape.
	// \! must be checked before ! so an escaped bang stays literal.
	negate := false
	if strings.HasPrefix(line, `\!`) {
		line = line[1:]
	} else if strings.HasPrefix(line, "!") {
		negate = true
		line = line[1:]
	}

	// Step 5: Handle \# escape (after negation to support !\#foo)
	if strings.HasPrefix(line, `\#`) {
		line = line[1:]
	}

	// Step 6: Reject patterns with nothing left to match
	if line == "" {
		return Rule{}, false, &ParseWarning{
			Line:    lineNum,
			Pattern: original,
			Message: "pattern is empty after removing negation",
		}
	}
	if strings.Trim(line, "/") == "" {
		return Rule{}, false, &ParseWarning{
			Line:    lineNum,
			Pattern: original,
			Message: "pattern is empty after removing slashes",
		}
	}

	// Step 7: Compile
	r = compileRule(line, negate, false, lineNum)
	if r.err != nil {
		return r, true, &ParseWarning{
			Line:    lineNum,
			Pattern: original,
			Message: "glob cannot be compiled (pattern never matches)",
			Err:     r.err,
		}
	}
	return r, true, nil
}
