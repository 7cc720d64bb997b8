package ignore

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gitAvailable checks if git is installed and accessible
func gitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

type parityCase struct {
	name       string
	gitignore  string
	paths      []string
	createDirs []string // directories to create (for dir-only patterns)
}

func runParity(t *testing.T, tests []parityCase) {
	t.Helper()
	if !gitAvailable() {
		t.Skip("git not available")
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compareWithGit(t, tt.gitignore, tt.paths, tt.createDirs)
		})
	}
}

func TestGitParity_Basic(t *testing.T) {
	runParity(t, []parityCase{
		{
			name:      "simple wildcards",
			gitignore: "*.log\n*.tmp\n",
			paths:     []string{"test.log", "debug.log", "test.tmp", "main.go", "readme.md"},
		},
		{
			name:       "directory patterns",
			gitignore:  "build/\nnode_modules/\n",
			paths:      []string{"build/output.js", "node_modules/lodash/index.js", "src/main.go"},
			createDirs: []string{"build", "node_modules/lodash"},
		},
		{
			name:      "negation",
			gitignore: "*.log\n!important.log\n",
			paths:     []string{"test.log", "important.log", "debug.log"},
		},
		{
			name:       "pattern re-added after its negation",
			gitignore:  "abc\n!abc\nabc\n",
			paths:      []string{"abc", "x/abc"},
			createDirs: []string{"x"},
		},
		{
			name:       "anchored patterns",
			gitignore:  "/root.txt\nsrc/temp\n",
			paths:      []string{"root.txt", "sub/root.txt", "src/temp", "lib/src/temp"},
			createDirs: []string{"sub", "src", "lib/src"},
		},
		{
			name:       "double star prefix",
			gitignore:  "**/logs\n**/temp\n",
			paths:      []string{"logs", "src/logs", "a/b/c/logs", "temp", "x/temp"},
			createDirs: []string{"src", "a/b/c", "x"},
		},
		{
			name:       "double star suffix",
			gitignore:  "build/**\nlogs/**\n",
			paths:      []string{"build/out.js", "build/sub/deep.js", "logs/error.log", "src/build"},
			createDirs: []string{"build/sub", "logs", "src"},
		},
		{
			name:       "double star suffix directories only",
			gitignore:  "foo/**/\n",
			paths:      []string{"foo/file.txt", "foo/sub/x.txt", "foo/sub/deeper/y.txt"},
			createDirs: []string{"foo/sub/deeper"},
		},
		{
			name:       "double star middle",
			gitignore:  "a/**/b\nsrc/**/test\n",
			paths:      []string{"a/b", "a/x/b", "a/x/y/z/b", "src/test", "src/lib/test"},
			createDirs: []string{"a/x/y/z", "src/lib"},
		},
		{
			name:       "hidden files",
			gitignore:  ".env\n.env.*\n.cache/\n",
			paths:      []string{".env", ".env.local", ".env.production", ".cache/data", "env"},
			createDirs: []string{".cache"},
		},
	})
}

func TestGitParity_EdgeCases(t *testing.T) {
	runParity(t, []parityCase{
		{
			name:       "trailing slash normalization",
			gitignore:  "foo/\n",
			paths:      []string{"foo/bar.txt", "foo/sub/deep.txt", "foobar.txt"},
			createDirs: []string{"foo/sub"},
		},
		{
			name:       "complex negation",
			gitignore:  "logs/**\n!logs/keep/\n!logs/keep/**\n",
			paths:      []string{"logs/error.log", "logs/keep/important.log", "logs/other/file.log"},
			createDirs: []string{"logs/keep", "logs/other"},
		},
		{
			name:       "excluded parent wins over negation",
			gitignore:  "build/\n!build/keep.txt\n",
			paths:      []string{"build/keep.txt", "build/other.txt"},
			createDirs: []string{"build"},
		},
		{
			name:       "re-include below partially matched dir",
			gitignore:  "build/*\n!build/keep.txt\n",
			paths:      []string{"build/keep.txt", "build/other.txt"},
			createDirs: []string{"build"},
		},
		{
			name:      "multiple wildcards",
			gitignore: "*.min.js\n*.test.go\ntest_*.py\n",
			paths:     []string{"app.min.js", "lib.min.js", "foo_test.go", "test_bar.py", "main.go"},
		},
		{
			name:       "spaces in names",
			gitignore:  "my file.txt\nmy dir/\n",
			paths:      []string{"my file.txt", "myfile.txt", "my dir/content.txt"},
			createDirs: []string{"my dir"},
		},
		{
			name:      "character classes",
			gitignore: "[abc].txt\nfile[0-9].log\n",
			paths:     []string{"a.txt", "d.txt", "file1.log", "filex.log"},
		},
		{
			name:      "escaped leading characters",
			gitignore: "\\!important.txt\n\\#hash.txt\n",
			paths:     []string{"!important.txt", "important.txt", "#hash.txt"},
		},
		{
			name:       "directory-scoped glob",
			gitignore:  "doc/*.txt\n",
			paths:      []string{"doc/notes.txt", "doc/server/arch.txt", "notes.txt"},
			createDirs: []string{"doc/server"},
		},
	})
}

// compareWithGit creates a temporary git repo and compares our results with git check-ignore
func compareWithGit(t *testing.T, gitignoreContent string, paths []string, createDirs []string) {
	tmpDir := t.TempDir()

	cmd := exec.Command("git", "init")
	cmd.Dir = tmpDir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git init failed:\n%s", out)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte(gitignoreContent), 0o644))

	for _, dir := range createDirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, dir), 0o755))
	}

	// Files need to exist for git check-ignore to work properly
	for _, path := range paths {
		fullPath := filepath.Join(tmpDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte("test"), 0o644))
	}

	rs := &RuleSet{}
	rs.LoadFromContent([]byte(gitignoreContent))

	for _, path := range paths {
		info, err := os.Stat(filepath.Join(tmpDir, path))
		isDir := err == nil && info.IsDir()

		assert.Equal(t, gitCheckIgnore(t, tmpDir, path), Match(path, isDir, rs),
			"path %q\ngitignore:\n%s", path, gitignoreContent)
	}
}

// gitCheckIgnore runs git check-ignore and returns true if path is ignored
func gitCheckIgnore(t *testing.T, repoDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = repoDir

	err := cmd.Run()
	if err == nil {
		return true // Exit 0 = ignored
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false
	}

	t.Logf("git check-ignore warning for %q: %v", path, err)
	return false
}
