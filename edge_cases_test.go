package ignore

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeCases_Unicode(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
	}{
		{"japanese filename", "日本語.txt", "日本語.txt"},
		{"japanese wildcard", "*.日本語", "test.日本語"},
		{"japanese directory", "日本語/", "日本語/file.txt"},
		{"emoji wildcard", "*.🎉", "party.🎉"},
		{"accents", "café.txt", "src/café.txt"},
		{"single rune wildcard", "?.txt", "é.txt"},
		{"unicode dir pattern", "données/", "données/file.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, Match(tt.path, false, FromLines(tt.pattern)))
		})
	}
}

func TestEdgeCases_SpecialPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		isDir   bool
		want    bool
	}{
		{"hidden file", ".hidden", ".hidden", false, true},
		{"hidden file nested", ".hidden", "src/.hidden", false, true},
		{"hidden directory", ".cache/", ".cache", true, true},
		{"hidden directory contents", ".cache/", ".cache/data.bin", false, true},
		{"single char nested", "a", "dir/a", false, true},
		{"star only", "*", "anything", false, true},
		{"star does not need a dot", "*", ".env", false, true},
		{"double star only", "**", "a/b/c", false, true},
		{"extension dots", "*.tar.gz", "archive.tar.gz", true, true},
		{"wildcard both", "*test*", "mytestfile", false, true},
		{"wildcard middle", "a*b", "aXXXb", false, true},
		{"question mark", "file?.txt", "file1.txt", false, true},
		{"question mark needs one", "file?.txt", "file.txt", false, false},
		{"negated class", "[!a]*.txt", "b.txt", false, true},
		{"negated class miss", "[!a]*.txt", "a.txt", false, false},
		{"escaped star", `\*.txt`, "*.txt", false, true},
		{"escaped star literal", `\*.txt`, "a.txt", false, false},
		{"leading space kept", " leading.txt", " leading.txt", false, true},
		{"space in directory", "my dir/", "my dir/file.txt", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.path, tt.isDir, FromLines(tt.pattern))
			assert.Equal(t, tt.want, got, "pattern %q, path %q", tt.pattern, tt.path)
		})
	}
}

func TestEdgeCases_Negation(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		isDir    bool
		want     bool
	}{
		{"re-ignore after negation", []string{"*.log", "!important.log", "important.*"}, "important.log", false, true},
		{"negated dir", []string{"logs/", "!logs/"}, "logs/a.txt", false, false},
		{"negation does not reach below excluded dir", []string{"logs/", "!a.txt"}, "logs/a.txt", false, true},
		{"negated glob", []string{"*", "!*.go"}, "main.go", false, false},
		{"negated glob other", []string{"*", "!*.go"}, "main.rs", false, true},
		{"keep dir contents", []string{"logs/**", "!logs/keep/", "!logs/keep/**"}, "logs/keep/a.log", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.path, tt.isDir, FromLines(tt.patterns...)))
		})
	}
}

// A repeated pattern replaces its first definition in place, so it does not
// move after rules that were defined between the two copies.
func TestEdgeCases_DuplicateKeepsPosition(t *testing.T) {
	rs := FromLines("*.log", "!important.log", "*.log")
	assert.Equal(t, []string{"*.log", "!important.log"}, rs.Patterns())
	assert.Equal(t, 3, rs.At(0).Line())

	r := Evaluate("important.log", false, rs)
	assert.False(t, r.Ignored)
	assert.Equal(t, 2, r.Line)
}

func TestEdgeCases_VeryLongPaths(t *testing.T) {
	rs := FromLines("**/deep.txt", "*.log")

	deepPath := strings.Repeat("dir/", 50) + "deep.txt"
	assert.True(t, Match(deepPath, false, rs))

	longName := strings.Repeat("a", 200) + ".log"
	assert.True(t, Match(longName, false, rs))
}

func TestEdgeCases_ManyPatterns(t *testing.T) {
	lines := make([]string, 0, 1001)
	for i := 0; i < 1000; i++ {
		lines = append(lines, "*.ext"+strconv.Itoa(i))
	}
	lines = append(lines, "target.txt")

	rs := FromLines(lines...)
	assert.Equal(t, 1001, rs.Len())
	assert.True(t, Match("target.txt", false, rs))
	assert.True(t, Match("a/b.ext999", false, rs))
	assert.False(t, Match("b.ext1000", false, rs))
}

func TestEdgeCases_LineEndings(t *testing.T) {
	for name, content := range map[string]string{
		"lf":     "*.log\nbuild/\n",
		"crlf":   "*.log\r\nbuild/\r\n",
		"cr":     "*.log\rbuild/\r",
		"no eol": "*.log\nbuild/",
	} {
		t.Run(name, func(t *testing.T) {
			rs := &RuleSet{}
			rs.LoadFromContent([]byte(content))
			assert.Equal(t, []string{"*.log", "build/"}, rs.Patterns())
		})
	}
}
