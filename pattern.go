package gitglob

import "strings"

// Mode is the bit set of structural properties extracted from a pattern line.
// The bits record what the marker characters said; the markers themselves are
// stripped from Pattern.Text during Parse.
type Mode uint8

const (
	// ModeNoSubDir is set when the pattern contains no unescaped '/' after
	// marker stripping. Such patterns match against the basename of a
	// candidate path at any depth instead of the whole path.
	ModeNoSubDir Mode = 1 << iota

	// ModeAbsolute is set by a leading '/'. The pattern is anchored to the
	// root of its scope even when ModeNoSubDir is also set.
	ModeAbsolute

	// ModeMustBeDir is set by a trailing unescaped '/'. The pattern matches
	// directories only.
	ModeMustBeDir

	// ModeNegative is set by a leading '!'. MatchesPath ignores this bit;
	// list composition in Matcher applies it by flipping the verdict of the
	// last matching rule.
	ModeNegative
)

// Has reports whether all bits in flag are set.
func (m Mode) Has(flag Mode) bool { return m&flag == flag }

// String renders the set bits in a fixed order, "-" when none are set.
func (m Mode) String() string {
	if m == 0 {
		return "-"
	}
	names := make([]string, 0, 4)
	if m.Has(ModeNegative) {
		names = append(names, "negative")
	}
	if m.Has(ModeAbsolute) {
		names = append(names, "absolute")
	}
	if m.Has(ModeMustBeDir) {
		names = append(names, "must-be-dir")
	}
	if m.Has(ModeNoSubDir) {
		names = append(names, "no-sub-dir")
	}
	return strings.Join(names, "|")
}

// Pattern is one compiled exclude pattern. Text holds the matchable body with
// backslash escapes still in place; escapes are resolved during glob matching
// so that "\*" stays distinguishable from "*" until the comparison happens.
type Pattern struct {
	Text string
	Mode Mode
}

// String renders the pattern back into line form, reattaching the marker
// characters that Parse stripped.
func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(len(p.Text) + 3)
	if p.Mode.Has(ModeNegative) {
		b.WriteByte('!')
	}
	if p.Mode.Has(ModeAbsolute) {
		b.WriteByte('/')
	}
	b.WriteString(p.Text)
	if p.Mode.Has(ModeMustBeDir) {
		b.WriteByte('/')
	}
	return b.String()
}

// Parse compiles a single exclude pattern line into a Pattern.
//
// The line is read the way git reads one line of .gitignore: a leading '!'
// negates, a leading '/' anchors, trailing unescaped spaces are dropped, a
// trailing unescaped '/' restricts the pattern to directories, and the
// absence of any remaining unescaped '/' switches matching to basenames.
// Marker characters are consumed; everything else, backslash escapes
// included, is kept verbatim in Text.
//
// Lines that git could never match — empty after marker stripping, a '['
// class with no closing ']', or a dangling trailing '\' — are rejected with a
// *ParseError wrapping ErrEmptyPattern, ErrUnterminatedClass, or
// ErrTrailingEscape. Comment and blank line filtering is the caller's job;
// Parse sees exactly one candidate pattern.
func Parse(line string) (Pattern, error) {
	original := line
	var mode Mode

	if line == "" {
		return Pattern{}, &ParseError{Line: original, Err: ErrEmptyPattern}
	}

	// Step 1: a single leading '!' flips the sense of the pattern. Only the
	// first one is a marker; "!!foo" matches files named "!foo".
	if line[0] == '!' {
		mode |= ModeNegative
		line = line[1:]
	}

	// Step 2: a single leading '/' anchors the pattern to the scope root.
	if len(line) > 0 && line[0] == '/' {
		mode |= ModeAbsolute
		line = line[1:]
	}

	// Step 3: trailing unescaped spaces never count; "\ " keeps its space.
	line = trimTrailingSpaces(line)

	// Step 4: a single trailing unescaped '/' restricts the pattern to
	// directories. The slash itself takes no part in matching.
	if n := len(line); n > 0 && line[n-1] == '/' && !escapedAt(line, n-1) {
		mode |= ModeMustBeDir
		line = line[:n-1]
	}

	if line == "" {
		return Pattern{}, &ParseError{Line: original, Err: ErrEmptyPattern}
	}

	// Step 5: with no unescaped '/' left, the pattern names a basename that
	// can sit at any depth, unless a leading '/' anchored it to the root.
	if !containsUnescapedSlash(line) {
		mode |= ModeNoSubDir
	}

	// Step 6: reject structures that abort matching in git, so a broken line
	// surfaces once at parse time instead of silently never matching.
	if err := validateText(line); err != nil {
		return Pattern{}, &ParseError{Line: original, Err: err}
	}

	return Pattern{Text: line, Mode: mode}, nil
}

// escapedAt reports whether the byte at index i sits behind an odd run of
// backslashes and is therefore escaped.
func escapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// containsUnescapedSlash scans for a '/' not hidden behind a backslash.
// Bytes inside character classes count: "[a/b]" anchors the pattern even
// though the class itself can never match a separator.
func containsUnescapedSlash(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // the escaped byte cannot be a marker
		case '/':
			return true
		}
	}
	return false
}

// validateText walks the pattern body and rejects the two shapes that make
// git's matcher abort: an unterminated character class and a trailing escape.
func validateText(text string) error {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if i == len(text)-1 {
				return ErrTrailingEscape
			}
			i++
		case '[':
			end, ok := classEnd(text, i)
			if !ok {
				return ErrUnterminatedClass
			}
			i = end
		}
	}
	return nil
}

// classEnd locates the ']' closing the class that opens at s[open]. The first
// position after an optional '!' or '^' may hold a literal ']'; a '\' escapes
// the byte after it. Returns the index of the closing bracket and whether one
// was found before the end of the string.
func classEnd(s string, open int) (int, bool) {
	i := open + 1
	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		i++
	}
	if i < len(s) && s[i] == ']' {
		i++ // literal ']' as the first member
	}
	for ; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i == len(s)-1 {
				return 0, false
			}
			i++
		case ']':
			return i, true
		}
	}
	return 0, false
}
