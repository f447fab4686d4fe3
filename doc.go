// Package gitglob matches paths against gitignore/exclude patterns with
// git's own semantics, down to the quirks: the wildmatch glob dialect,
// basename matching for slash-free patterns, anchoring, directory-only
// patterns, negation, and last-match-wins composition across rule stacks.
// Decisions are validated against transcripts captured from git itself.
//
// # Two Levels of API
//
// The low level works on one pattern at a time. Parse compiles a single
// pattern line into a Pattern; Pattern.MatchesPath decides one candidate:
//
//	p, err := gitglob.Parse("doc/*.txt")
//	if err != nil {
//	    // the line could never match anything; git silently skips these
//	}
//	p.MatchesPath("doc/notes.txt", gitglob.BasenameStart("doc/notes.txt"), false, gitglob.CaseSensitive)
//
// MatchesPath is structural: it never applies negation, which only means
// something inside an ordered rule list.
//
// The high level is Matcher, which composes whole ignore files:
//
//	m := gitglob.New()
//	m.AddPatterns("", rootContent)    // .gitignore at the root
//	m.AddPatterns("src", srcContent)  // nested src/.gitignore
//	if m.Match("src/out/main.o", false) {
//	    // excluded
//	}
//
// Matcher applies git's composition rules: later rules override earlier
// ones, "!" re-includes, and nothing inside an excluded directory can be
// re-included.
//
// # Pattern Syntax
//
//   - "name" matches a basename at any depth
//   - "/name" matches only at the root of the scope
//   - "dir/" matches directories only
//   - "a/b" (interior slash) anchors the whole path to the scope root
//   - "*" and "?" stay inside one path segment; "**" crosses segments
//   - "[a-z]", "[!x]" character classes, one byte, never '/'
//   - "\*", "\ ", "\#" escape a special character
//   - "!pattern" re-includes, "#" starts a comment
//
// # Concurrency and Pathological Patterns
//
// Compiled Pattern values are immutable and safe to share. Matcher is safe
// for concurrent use. Wildcard backtracking is capped (DefaultMaxMatchSteps
// per match call) so adversarial patterns degrade to a non-match instead of
// burning CPU; the cap is adjustable through MatcherOptions.
package gitglob
