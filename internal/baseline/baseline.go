// Package baseline replays captured reference-tool decisions against a
// matching function and reports how often the two agree.
//
// A transcript is a sequence of two-line records. The first line holds the
// query as "<pattern> <path>" (leading spaces before the path are trimmed);
// the second holds the reference tool's verbose answer, where a line starting
// with "::\t" means "no match" and anything else names the rule that matched.
// git check-ignore --verbose --non-matching emits exactly this shape.
//
// The package knows nothing about any particular matcher: Replay is driven by
// a plain function, so a transcript can score any engine without the
// reference tool being installed.
package baseline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Record is one replayable decision from a transcript.
type Record struct {
	Pattern string
	Path    string
	IsMatch bool // the reference tool's verdict
}

// ParseTranscript reads two-line records until EOF. Blank lines between
// records are skipped; a dangling query line with no answer is an error, as
// is a query line without a space separating pattern from path. Patterns
// containing spaces cannot be represented in this format.
func ParseTranscript(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	lineNo := 0
	for sc.Scan() {
		lineNo++
		query := sc.Text()
		if query == "" {
			continue
		}

		pattern, rest, ok := strings.Cut(query, " ")
		if !ok || pattern == "" {
			return nil, fmt.Errorf("baseline: line %d: query %q is not \"<pattern> <path>\"", lineNo, query)
		}
		path := strings.TrimLeft(rest, " ")
		if path == "" {
			return nil, fmt.Errorf("baseline: line %d: query %q has no path", lineNo, query)
		}

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("baseline: read: %w", err)
			}
			return nil, fmt.Errorf("baseline: line %d: query %q has no answer line", lineNo, query)
		}
		lineNo++

		records = append(records, Record{
			Pattern: pattern,
			Path:    path,
			IsMatch: !strings.HasPrefix(sc.Text(), "::\t"),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("baseline: read: %w", err)
	}
	return records, nil
}

// ReplayFunc evaluates one pattern against one path. A non-nil error means
// the pattern could not be compiled at all; Replay counts it and scores the
// record as predicting "no match", which is how the reference tool treats
// patterns its matcher aborts on.
type ReplayFunc func(pattern, path string) (bool, error)

// Mismatch is one record where the engine and the transcript disagreed.
type Mismatch struct {
	Record Record
	Got    bool
	Err    error // non-nil when the pattern failed to compile
}

// Stats aggregates one replay run.
type Stats struct {
	Total           int
	Agreements      int
	CompileFailures int
	Mismatches      []Mismatch
}

// AgreementRate returns the fraction of records where the engine agreed with
// the transcript. An empty replay agrees vacuously.
func (s Stats) AgreementRate() float64 {
	if s.Total == 0 {
		return 1
	}
	return float64(s.Agreements) / float64(s.Total)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d records, %d agree (%.2f%%), %d mismatches, %d compile failures",
		s.Total, s.Agreements, 100*s.AgreementRate(), len(s.Mismatches), s.CompileFailures)
}

// Replay runs every record through fn and scores the outcomes.
func Replay(records []Record, fn ReplayFunc) Stats {
	stats := Stats{Total: len(records)}

	for _, rec := range records {
		got, err := fn(rec.Pattern, rec.Path)
		if err != nil {
			stats.CompileFailures++
			got = false
		}
		if got == rec.IsMatch {
			stats.Agreements++
			continue
		}
		stats.Mismatches = append(stats.Mismatches, Mismatch{Record: rec, Got: got, Err: err})
	}
	return stats
}
