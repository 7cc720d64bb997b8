// Package ignore compiles gitignore patterns into rules and matches
// directory entries against them level by level.
//
// The engine is built around four pieces:
//
//   - Rule: one compiled pattern with precomputed slash and globstar markers.
//   - RuleSet: an ordered collection of rules, unique by pattern, where
//     re-appending an identical pattern replaces the earlier definition in
//     place.
//   - Matcher: decides whether an entry name (or a relative path) matches a
//     RuleSet. The last rule that gives a verdict wins; negated rules
//     ("!pattern") give an "included" verdict.
//   - Propagation: derives the RuleSet that applies inside a directory from
//     the RuleSet that applied to the directory itself.
//
// # Basic Usage
//
//	rs := ignore.FromLines("*.log", "build/", "!keep.log")
//
//	ignore.Match("debug.log", false, rs) // true
//	ignore.Match("keep.log", false, rs)  // false (re-included)
//	ignore.Match("build", true, rs)      // true
//
//	inside := ignore.New().Descend("build", rs)
//	ignore.Match("out.txt", false, inside) // true (parent excluded)
//
// # Pattern Semantics
//
//   - Trailing /: "build/" only matches directories.
//   - No slash: "*.log" is a shell glob on the entry's own name, at any depth.
//   - Leading /: "/*.c" only matches at the level the RuleSet is attached to.
//   - Interior /: "docs/*.md" is anchored; a directory matching "docs" hands
//     "/*.md" down to its contents.
//   - Leading **/: "**/logs" matches at any depth.
//   - Trailing /**: "abc/**" matches everything below "abc".
//   - Interior /**/: "a/**/b" hands "**/b" down once "a" has matched.
//
// Glob syntax inside a segment is "*", "?" and "[...]"; "*" and "?" never
// match "/". Globs that cannot be compiled (for example an unbalanced "[")
// produce a warning and match nothing.
//
// # Thread Safety
//
// Matching and propagation are pure and may run concurrently. RuleSet
// mutation is not synchronized; build rule sets before sharing them.
//
// The tree subpackage applies rule sets over a whole directory tree and
// records which rule sources matched each entry.
package ignore
