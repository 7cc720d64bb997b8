package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSet_AppendReplacesInPlace(t *testing.T) {
	rs := &RuleSet{}
	require.NoError(t, rs.Append(NewRule("*")))
	require.NoError(t, rs.Append(NewRule("abc")))
	require.NoError(t, rs.Append(NewHiddenRule("abc")))

	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "*", rs.At(0).Pattern())
	assert.Equal(t, "abc", rs.At(1).Pattern())
	assert.True(t, rs.At(1).Hidden(), "latest definition should survive")
}

func TestRuleSet_ReplaceKeepsPosition(t *testing.T) {
	rs := FromLines("a", "b", "c")
	require.NoError(t, rs.Append(NewRule("a").WithHidden(true)))
	assert.Equal(t, []string{"a", "b", "c"}, rs.Patterns())
	assert.True(t, rs.At(0).Hidden())
}

func TestRuleSet_NegationSharesSlot(t *testing.T) {
	rs := FromLines("abc", "!abc", `\!abc`)
	assert.Equal(t, 2, rs.Len())
	assert.Equal(t, []string{"!abc", `\!abc`}, rs.Patterns())
	assert.True(t, rs.At(0).Negated())
	assert.Equal(t, "!abc", rs.At(1).Pattern(), "escaped bang is a literal pattern")
}

func TestRuleSet_NegationReplacedAgain(t *testing.T) {
	rs := FromLines("abc", "!abc", "abc")
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, "['abc']", rs.String())
	assert.True(t, Match("abc", false, rs))

	rs = FromLines("*", "abc", "!abc")
	assert.Equal(t, "['*', !'abc']", rs.String())
	assert.False(t, Match("abc", false, rs))
}

func TestRuleSet_AppendInvalid(t *testing.T) {
	rs := &RuleSet{}
	assert.ErrorIs(t, rs.Append(Rule{}), ErrInvalidArgument)

	var nilSet *RuleSet
	assert.ErrorIs(t, nilSet.Append(NewRule("a")), ErrInvalidArgument)
	assert.ErrorIs(t, nilSet.Remove("a"), ErrInvalidArgument)
	assert.ErrorIs(t, rs.Extend(nil), ErrInvalidArgument)

	_, err := NewRuleSet(NewRule("a"), Rule{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRuleSet_Remove(t *testing.T) {
	rs := FromLines("*.log", "abc", "!abc", "build/")

	require.NoError(t, rs.Remove("abc"))
	assert.Equal(t, []string{"*.log", "build/"}, rs.Patterns())

	// removing something absent is a no-op
	require.NoError(t, rs.Remove("nope"))
	assert.Equal(t, 2, rs.Len())

	require.NoError(t, rs.RemoveRule(NewRule("build/")))
	assert.Equal(t, []string{"*.log"}, rs.Patterns())

	assert.ErrorIs(t, rs.RemoveRule(Rule{}), ErrInvalidArgument)
}

func TestRuleSet_LoadFromLines(t *testing.T) {
	rs := &RuleSet{}
	warnings := rs.LoadFromLines([]string{
		"# comment",
		"",
		"*.log   ",
		`\#hash`,
		`\!bang`,
		"!keep.log",
		"build/",
		"   ",
	})
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"*.log", `\#hash`, `\!bang`, "!keep.log", "build/"}, rs.Patterns())
	assert.Equal(t, "#hash", rs.At(1).Pattern())
	assert.Equal(t, "!bang", rs.At(2).Pattern())
	assert.False(t, rs.At(2).Negated())
	assert.Equal(t, "keep.log", rs.At(3).Pattern())
	assert.True(t, rs.At(3).Negated())
	assert.Equal(t, 7, rs.At(4).Line())

	// a second load starts over
	rs.LoadFromLines([]string{"other"})
	assert.Equal(t, []string{"other"}, rs.Patterns())
}

func TestRuleSet_LoadWarnings(t *testing.T) {
	rs := FromLines("*.log", "!", "/", "[abc", "build/")

	assert.Equal(t, []string{"*.log", "[abc", "build/"}, rs.Patterns(), "malformed globs are kept")

	warnings := rs.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, 2, warnings[0].Line)
	assert.Equal(t, 3, warnings[1].Line)
	assert.Equal(t, 4, warnings[2].Line)
	assert.NoError(t, warnings[0].Err)
	assert.ErrorIs(t, warnings[2], ErrMalformedGlob)

	// Warnings returns a copy
	warnings[0].Line = 99
	assert.Equal(t, 2, rs.Warnings()[0].Line)
}

func TestRuleSet_LoadFromContent(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, "*.log\r\nbuild/\r\n!keep.log"...)
	rs := &RuleSet{}
	rs.LoadFromContent(content)
	assert.Equal(t, []string{"*.log", "build/", "!keep.log"}, rs.Patterns())

	rs.LoadFromContent(nil)
	assert.Zero(t, rs.Len())
}

func TestRuleSet_Set(t *testing.T) {
	rs := FromLines("*.log", "build/", "**/*")

	require.NoError(t, rs.Set(2, NewHiddenRule("**/*")))
	assert.Equal(t, "['*.log', 'build/', ('**/*')]", rs.String())

	assert.ErrorIs(t, rs.Set(3, NewRule("x")), ErrInvalidArgument)
	assert.ErrorIs(t, rs.Set(-1, NewRule("x")), ErrInvalidArgument)
	assert.ErrorIs(t, rs.Set(0, Rule{}), ErrInvalidArgument)
	assert.ErrorIs(t, rs.Set(0, NewRule("build/")), ErrInvalidArgument, "duplicate pattern")
	assert.ErrorIs(t, rs.Set(0, NewNegatedRule("build/")), ErrInvalidArgument, "negation shares the slot")
}

func TestRuleSet_Extend(t *testing.T) {
	rs := FromLines("a", "b")
	require.NoError(t, rs.Extend(FromLines("a", "c")))
	assert.Equal(t, []string{"b", "a", "c"}, rs.Patterns())
}

func TestRuleSet_CloneIsIndependent(t *testing.T) {
	rs := FromLines("a", "b")
	c := rs.Clone()
	require.NoError(t, c.Append(NewRule("c")))
	require.NoError(t, c.Remove("a"))

	assert.Equal(t, []string{"a", "b"}, rs.Patterns())
	assert.Equal(t, []string{"b", "c"}, c.Patterns())
}

func TestRuleSet_NilIsEmpty(t *testing.T) {
	var rs *RuleSet
	assert.Zero(t, rs.Len())
	assert.Nil(t, rs.Rules())
	assert.Equal(t, "[]", rs.String())
	for range rs.All() {
		t.Fatal("nil RuleSet should not yield")
	}
}

func TestRuleSet_AllStopsEarly(t *testing.T) {
	rs := FromLines("a", "b", "c")
	var seen []string
	for i, r := range rs.All() {
		seen = append(seen, r.Pattern())
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}
