package gitglob

import "strings"

// BasenameStart returns the index one past the last '/' in path, or -1 when
// the path contains no separator and the whole path is its own basename. The
// offset feeds MatchesPath, so a caller evaluating many patterns against one
// path computes it once per path instead of once per pattern.
func BasenameStart(path string) int {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return i + 1
	}
	return -1
}

// MatchesPath reports whether the pattern matches the candidate path.
//
// path is relative to the matching root, '/'-separated, with no leading
// slash. basenameStart is the offset from BasenameStart (values outside the
// path are treated like -1). isDir states whether the candidate names a
// directory; patterns with ModeMustBeDir reject non-directories before any
// glob comparison happens.
//
// The decision is structural only. ModeNegative never flips the result here;
// composing negations across an ordered rule list is Matcher's job. Wildcard
// backtracking is bounded by DefaultMaxMatchSteps, with exhaustion reported
// as a non-match.
func (p Pattern) MatchesPath(path string, basenameStart int, isDir bool, c Case) bool {
	return p.matchesPath(path, basenameStart, isDir, c, newMatchContext(0))
}

// matchesPath is MatchesPath with the step budget supplied by the caller, so
// Matcher can hold every rule it evaluates for one path to a single bound.
func (p Pattern) matchesPath(path string, basenameStart int, isDir bool, c Case, ctx *matchContext) bool {
	// The directory gate comes first: a directory-only pattern never
	// examines a non-directory, whatever its text says.
	if p.Mode.Has(ModeMustBeDir) && !isDir {
		return false
	}

	// An unanchored basename pattern targets the final segment; everything
	// else is matched against the whole path from byte 0. "Any depth" for
	// basename patterns falls out of slicing, not of retrying at each
	// position: the glob runs exactly once per candidate.
	target := path
	if p.Mode.Has(ModeNoSubDir) && !p.Mode.Has(ModeAbsolute) {
		if basenameStart > 0 && basenameStart <= len(path) {
			target = path[basenameStart:]
		}
	}

	return matchGlob(p.Text, target, c == CaseFold, ctx)
}
