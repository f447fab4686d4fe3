package gitglob

import (
	"fmt"
	"strings"
	"sync"
)

// rule is one compiled pattern with its provenance: the line as written, the
// directory scope it came from, and its position in that file. Rules are
// evaluated in order; the last one to match decides.
type rule struct {
	pattern  Pattern
	source   string // the line as it appeared, markers included
	basePath string // directory scope, "" for the matching root
	line     int    // 1-based line number in its source file
}

// ParseWarning records a pattern line that could not be compiled and was
// skipped. Skipping mirrors how git treats such lines: they never match, so
// dropping them keeps decisions identical while leaving a trace for tooling.
type ParseWarning struct {
	Pattern  string // the rejected line, as written
	BasePath string // directory scope of its source file, "" for root
	Line     int    // 1-based line number
	Err      error  // *ParseError describing the rejection
}

func (w ParseWarning) String() string {
	if w.BasePath != "" {
		return fmt.Sprintf("%s: line %d: %q: %v", w.BasePath, w.Line, w.Pattern, w.Err)
	}
	return fmt.Sprintf("line %d: %q: %v", w.Line, w.Pattern, w.Err)
}

// WarningHandler receives parse warnings as they happen instead of letting
// them accumulate on the Matcher.
type WarningHandler func(warning ParseWarning)

// MatchResult explains a Match decision.
type MatchResult struct {
	// Rule is the deciding pattern line as written, empty when nothing
	// matched. With several matching rules this is the last one.
	Rule string

	// BasePath is the directory scope of the deciding rule's source file.
	// Empty means the root file.
	BasePath string

	// Line is the deciding rule's 1-based line number, zero when nothing
	// matched.
	Line int

	// Ignored is the final verdict after negation is applied.
	Ignored bool

	// Matched reports whether any rule matched at all. When false the path
	// fell through every rule and Ignored is false by default.
	Matched bool

	// Negated reports that the deciding rule was a "!" re-include.
	Negated bool
}

// MatcherOptions configures a Matcher.
type MatcherOptions struct {
	// MaxMatchSteps bounds wildcard backtracking across all rules evaluated
	// for a single Match call. Zero selects DefaultMaxMatchSteps; a negative
	// value removes the bound. An exhausted budget reports a non-match for
	// the rules that were cut off.
	MaxMatchSteps int

	// Case selects byte comparison during matching. The zero value is
	// CaseSensitive, which is what git does on case-sensitive filesystems.
	Case Case
}

// Matcher evaluates an ordered stack of exclude rules the way git composes
// .gitignore files: rules are checked in the order they were added, the last
// matching rule decides, a "!" rule flips the decision to "keep", and a path
// inside an ignored directory stays ignored no matter what later rules say.
//
// Matcher is safe for concurrent use. AddPatterns and Match may interleave
// freely without data races, though batching all AddPatterns calls up front
// avoids write-lock contention on hot match paths.
type Matcher struct {
	mu       sync.RWMutex
	rules    []rule
	warnings []ParseWarning
	handler  WarningHandler
	opts     MatcherOptions
}

// New creates an empty Matcher with default options.
func New() *Matcher {
	return NewWithOptions(MatcherOptions{})
}

// NewWithOptions creates an empty Matcher with the given options.
func NewWithOptions(opts MatcherOptions) *Matcher {
	if opts.MaxMatchSteps == 0 {
		opts.MaxMatchSteps = DefaultMaxMatchSteps
	}
	return &Matcher{opts: opts}
}

// SetWarningHandler routes future parse warnings to fn instead of collecting
// them on the Matcher. Set it before AddPatterns; warnings already collected
// stay where they are.
func (m *Matcher) SetWarningHandler(fn WarningHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = fn
}

// AddPatterns compiles ignore-file content and appends its rules.
//
// basePath scopes the rules to a directory, the way rules from a nested
// .gitignore apply only beneath that directory; pass "" for the matching
// root. The content is normalized first (BOM stripped, CRLF and CR line
// endings folded to LF), then read line by line: blank lines, lines holding
// only spaces, and lines starting with '#' are skipped, everything else is
// compiled with Parse. Lines Parse rejects are skipped with a ParseWarning.
//
// The returned warnings are nil when a WarningHandler is set; the handler
// receives them instead.
func (m *Matcher) AddPatterns(basePath string, content []byte) []ParseWarning {
	if content == nil {
		return nil
	}

	rules, warnings := parseRules(basePath, content)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules = append(m.rules, rules...)

	if m.handler != nil {
		for _, w := range warnings {
			m.handler(w)
		}
		return nil
	}
	m.warnings = append(m.warnings, warnings...)
	return warnings
}

// parseRules turns ignore-file content into compiled rules plus warnings for
// the lines that would never match anything.
func parseRules(basePath string, content []byte) ([]rule, []ParseWarning) {
	content = normalizeContent(content)
	basePath = normalizeBasePath(basePath)

	var rules []rule
	var warnings []ParseWarning

	for i, line := range strings.Split(string(content), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		// A line of nothing but spaces is blank too. An escaped "\#" is not
		// a comment; the escape reaches Parse and matches a literal '#'.
		if trimTrailingSpaces(line) == "" {
			continue
		}
		p, err := Parse(line)
		if err != nil {
			warnings = append(warnings, ParseWarning{
				Pattern:  line,
				BasePath: basePath,
				Line:     i + 1,
				Err:      err,
			})
			continue
		}
		rules = append(rules, rule{
			pattern:  p,
			source:   line,
			basePath: basePath,
			line:     i + 1,
		})
	}

	return rules, warnings
}

// Warnings returns a copy of the collected parse warnings. Empty when a
// WarningHandler consumed them instead.
func (m *Matcher) Warnings() []ParseWarning {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.warnings) == 0 {
		return nil
	}
	out := make([]ParseWarning, len(m.warnings))
	copy(out, m.warnings)
	return out
}

// RuleCount returns the number of rules currently loaded.
func (m *Matcher) RuleCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rules)
}

// Match reports whether the path is excluded by the loaded rules.
//
// path is relative to the matching root. Forward slashes are expected;
// normalization collapses duplicate slashes, strips "./" prefixes and a
// trailing slash, and converts backslashes on Windows. isDir states whether
// the path names a directory.
func (m *Matcher) Match(path string, isDir bool) bool {
	return m.MatchWithReason(path, isDir).Ignored
}

// MatchWithReason is Match with the deciding rule attached, for tooling that
// explains why a path is excluded.
//
// Interpretation:
//   - Matched false: no rule matched; the path is kept.
//   - Matched true, Ignored true: the path is excluded by Rule.
//   - Matched true, Ignored false: a "!" rule re-included the path.
func (m *Matcher) MatchWithReason(path string, isDir bool) MatchResult {
	path = normalizePath(path)
	if path == "" {
		return MatchResult{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ctx := newMatchContext(m.opts.MaxMatchSteps)

	// Once a directory is excluded nothing beneath it can be re-included,
	// so ancestors are decided first, nearest the root outward. The first
	// excluded ancestor settles every deeper path, which is also what lets
	// a directory walker skip such trees wholesale.
	for i := 0; i < len(path); i++ {
		if path[i] != '/' {
			continue
		}
		if res := m.decide(path[:i], true, ctx); res.Ignored {
			return res
		}
	}
	return m.decide(path, isDir, ctx)
}

// decide runs the full rule stack against one path, last match winning.
func (m *Matcher) decide(path string, isDir bool, ctx *matchContext) MatchResult {
	var result MatchResult
	basenameStart := BasenameStart(path)

	for i := range m.rules {
		r := &m.rules[i]
		target, targetStart, ok := r.scoped(path, basenameStart)
		if !ok {
			continue
		}
		if !ctx.tick() {
			return result
		}
		if r.pattern.matchesPath(target, targetStart, isDir, m.opts.Case, ctx) {
			result.Matched = true
			result.Rule = r.source
			result.BasePath = r.basePath
			result.Line = r.line
			result.Negated = r.pattern.Mode.Has(ModeNegative)
			result.Ignored = !result.Negated
		}
	}
	return result
}

// scoped rebases path into the rule's directory scope. Rules never apply to
// their own directory, only to entries beneath it.
func (r *rule) scoped(path string, basenameStart int) (string, int, bool) {
	if r.basePath == "" {
		return path, basenameStart, true
	}
	rest, ok := strings.CutPrefix(path, r.basePath+"/")
	if !ok || rest == "" {
		return "", 0, false
	}
	return rest, BasenameStart(rest), true
}
