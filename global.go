package ignore

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// GlobalRuleSetName is the rule-source name under which the global excludes
// file is attached to a tree.
const GlobalRuleSetName = "core.excludesFile"

// GlobalExcludesPath resolves the user's global excludes file, in order:
//
//  1. git config --global core.excludesFile (if git is available)
//  2. $XDG_CONFIG_HOME/git/ignore, falling back to ~/.config/git/ignore
//
// The file need not exist.
func GlobalExcludesPath() (string, error) {
	path, err := gitConfigExcludesFile()
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	return xdgGlobalIgnorePath(), nil
}

// LoadGlobalRuleSet reads the global excludes file into a RuleSet and
// returns it with the path it was read from. A missing file yields an empty
// RuleSet and no error; only real read failures are returned.
func LoadGlobalRuleSet() (*RuleSet, string, error) {
	path, err := GlobalExcludesPath()
	if err != nil {
		return nil, "", fmt.Errorf("resolving global excludes path: %w", err)
	}

	rs := &RuleSet{}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rs, path, nil
		}
		return nil, path, fmt.Errorf("reading global excludes %s: %w", path, err)
	}

	rs.LoadFromContent(content)
	return rs, path, nil
}

// gitConfigExcludesFile reads the global core.excludesFile from git config.
// Returns empty string if git is not available or the key is not set.
func gitConfigExcludesFile() (string, error) {
	out, err := exec.Command("git", "config", "--global", "core.excludesFile").Output()
	if err != nil {
		// git missing or key unset: fall through to the XDG location
		return "", nil
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", nil
	}
	return expandTilde(path)
}

// xdgGlobalIgnorePath returns <config home>/git/ignore.
func xdgGlobalIgnorePath() string {
	return filepath.Join(xdg.ConfigHome, "git", "ignore")
}

// expandTilde expands ~ and ~user prefixes in a path.
func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	userPart, rest := path, ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		userPart, rest = path[:i], path[i:]
	}

	if userPart == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~: %w", err)
		}
		return home + rest, nil
	}

	u, err := user.Lookup(userPart[1:])
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", userPart, err)
	}
	return u.HomeDir + rest, nil
}
