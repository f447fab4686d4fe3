package gitglob

import "strings"

// Case selects how ASCII letters compare during glob matching.
type Case uint8

const (
	// CaseSensitive compares bytes exactly.
	CaseSensitive Case = iota

	// CaseFold compares ASCII letters case-insensitively. All other bytes,
	// multibyte UTF-8 sequences included, still compare exactly.
	CaseFold
)

// DefaultMaxMatchSteps bounds the number of comparison steps a single match
// may take before it is abandoned. Wildcard backtracking is exponential in the
// worst case ("a*a*a*a*b" against a long run of 'a's), and pattern files are
// user-authored input, so the engine refuses to loop forever. An exhausted
// budget reports a non-match. Real-world patterns stay far below this ceiling.
const DefaultMaxMatchSteps = 10000

// matchContext carries the step budget through one match evaluation. A single
// context is shared across every wildcard retry, and by Matcher across every
// rule it evaluates for one path, so the bound covers the whole call.
type matchContext struct {
	steps    int
	maxSteps int
}

// newMatchContext returns a context with the given budget. Zero selects
// DefaultMaxMatchSteps; a negative budget disables the bound entirely.
func newMatchContext(maxSteps int) *matchContext {
	if maxSteps == 0 {
		maxSteps = DefaultMaxMatchSteps
	}
	return &matchContext{maxSteps: maxSteps}
}

// tick consumes one step and reports whether the budget still holds.
func (ctx *matchContext) tick() bool {
	if ctx.maxSteps < 0 {
		return true
	}
	ctx.steps++
	return ctx.steps <= ctx.maxSteps
}

// Match reports whether pattern matches candidate under the wildmatch glob
// dialect. Matching is anchored at both ends: the whole candidate must be
// consumed by the whole pattern, with no implicit substring search.
//
// The dialect:
//
//	?    one byte that is not '/'
//	*    zero or more bytes, never crossing '/'
//	**   a run of two or more stars; crosses '/', and "a/**/b" also
//	     matches "a/b" with no intermediate directory at all
//	[..] one byte from the class; '!' or '^' first negates, ranges like
//	     "a-z" are supported, a literal ']' comes first or escaped, and
//	     the class never matches '/'
//	\x   the literal byte x
//
// Match evaluates raw pattern text; it knows nothing of the marker characters
// Parse strips. Use Pattern.MatchesPath for full path semantics.
func Match(pattern, candidate string, c Case) bool {
	return matchGlob(pattern, candidate, c == CaseFold, newMatchContext(0))
}

// matchGlob answers simple shapes without entering the backtracking engine.
// Literal patterns and single leading/trailing stars cover the bulk of real
// ignore files, so they get the cheap path.
func matchGlob(pattern, s string, fold bool, ctx *matchContext) bool {
	if !fold && !strings.ContainsAny(pattern, "?[\\") {
		switch strings.Count(pattern, "*") {
		case 0:
			return pattern == s
		case 1:
			if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
				// "name*": fixed prefix, the star stays inside one segment.
				return strings.HasPrefix(s, prefix) &&
					strings.IndexByte(s[len(prefix):], '/') < 0
			}
			if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
				// "*.ext": fixed suffix, the star stays inside one segment.
				return strings.HasSuffix(s, suffix) &&
					strings.IndexByte(s[:len(s)-len(suffix)], '/') < 0
			}
		}
	}
	return wildmatch(pattern, s, fold, ctx)
}

// wildmatch is the greedy-with-backtrack core. Wildcards concede one byte at
// a time when the remainder fails; every attempt costs one budget tick, and
// an exhausted budget aborts the whole evaluation as a non-match.
func wildmatch(p, t string, fold bool, ctx *matchContext) bool {
	pi, ti := 0, 0
	for pi < len(p) {
		if !ctx.tick() {
			return false
		}
		switch c := p[pi]; c {
		case '?':
			if ti >= len(t) || t[ti] == '/' {
				return false
			}
			pi++
			ti++

		case '*':
			run := pi
			for run < len(p) && p[run] == '*' {
				run++
			}
			crossSlash := run-pi >= 2
			pi = run

			if pi == len(p) {
				if crossSlash {
					// Trailing "**" swallows everything that is left.
					return true
				}
				// A trailing single star stops at the next separator.
				return strings.IndexByte(t[ti:], '/') < 0
			}

			if crossSlash {
				// "**/" also covers the zero-directory case: the star run
				// and its adjoining separator vanish together.
				if p[pi] == '/' && wildmatch(p[pi+1:], t[ti:], fold, ctx) {
					return true
				}
				for i := ti; i <= len(t); i++ {
					if !ctx.tick() {
						return false
					}
					if wildmatch(p[pi:], t[i:], fold, ctx) {
						return true
					}
				}
				return false
			}

			for i := ti; ; i++ {
				if !ctx.tick() {
					return false
				}
				if wildmatch(p[pi:], t[i:], fold, ctx) {
					return true
				}
				if i >= len(t) || t[i] == '/' {
					return false
				}
			}

		case '[':
			if ti >= len(t) || t[ti] == '/' {
				return false
			}
			next, ok := matchClass(p, pi, t[ti], fold)
			if !ok {
				return false
			}
			pi = next
			ti++

		case '\\':
			// Parse rejects dangling escapes, but Match accepts raw text.
			if pi+1 >= len(p) {
				return false
			}
			pi++
			if ti >= len(t) || !eqByte(p[pi], t[ti], fold) {
				return false
			}
			pi++
			ti++

		default:
			if ti >= len(t) || !eqByte(c, t[ti], fold) {
				return false
			}
			pi++
			ti++
		}
	}
	return ti == len(t)
}

// matchClass evaluates the character class opening at p[open] against one
// candidate byte. It returns the index just past the closing ']' and whether
// the byte belongs to the class. A malformed class never matches anything,
// mirroring the reference matcher's abort.
func matchClass(p string, open int, tc byte, fold bool) (int, bool) {
	i := open + 1
	negate := false
	if i < len(p) && (p[i] == '!' || p[i] == '^') {
		negate = true
		i++
	}

	cand := tc
	if fold {
		cand = asciiLower(cand)
	}

	matched := false
	first := true
	var prev byte
	hasPrev := false

	for i < len(p) {
		c := p[i]
		if c == ']' && !first {
			return i + 1, matched != negate
		}

		escapedMember := false
		if c == '\\' {
			if i+1 >= len(p) {
				return 0, false
			}
			i++
			c = p[i]
			escapedMember = true
		}

		if !escapedMember && c == '-' && hasPrev && i+1 < len(p) && p[i+1] != ']' {
			i++
			hi := p[i]
			if hi == '\\' {
				if i+1 >= len(p) {
					return 0, false
				}
				i++
				hi = p[i]
			}
			if inRange(prev, hi, cand, fold) {
				matched = true
			}
			// A range end never doubles as the start of the next range.
			hasPrev = false
			first = false
			i++
			continue
		}

		if eqByte(c, tc, fold) {
			matched = true
		}
		prev = c
		hasPrev = true
		first = false
		i++
	}
	return 0, false // no closing ']'
}

// inRange reports whether the candidate byte falls between lo and hi. The
// bounds are taken as written; under fold a lowercase candidate is also tried
// uppercased, which is how "[A-Z]" admits 'q' without "[?-Z]" admitting every
// byte between the folded bounds.
func inRange(lo, hi, cand byte, fold bool) bool {
	if lo <= cand && cand <= hi {
		return true
	}
	if fold && cand >= 'a' && cand <= 'z' {
		u := cand - 'a' + 'A'
		return lo <= u && u <= hi
	}
	return false
}

func eqByte(a, b byte, fold bool) bool {
	if a == b {
		return true
	}
	if !fold {
		return false
	}
	return asciiLower(a) == asciiLower(b)
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
