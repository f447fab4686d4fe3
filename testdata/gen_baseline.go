//go:build ignore

// Regenerates the baseline transcripts in testdata/baseline by querying a
// real git binary:
//
//	cd testdata && go run gen_baseline.go
//
// For every (pattern, path) pair in the grid the tool creates a scratch
// repository whose .gitignore holds just that pattern, creates the path as a
// regular file, and captures the git check-ignore --verbose --non-matching
// answer. Records land in git-baseline.match or git-baseline.nmatch by
// verdict, in the transcript format internal/baseline reads: a
// "<pattern> <path>" query line followed by the answer line, where a
// "::\t" prefix means no match.
//
// Patterns containing spaces cannot be represented on the query line and are
// rejected. Paths are created as regular files, so every answer reflects
// isDir=false semantics.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type query struct {
	pattern string
	path    string
}

var grid = []query{
	// Basename globs.
	{"*.log", "debug.log"},
	{"*.log", "logs/debug.log"},
	{"*.log", "notes.txt"},
	{"*.log", "build/log"},
	{"foo", "foo"},
	{"foo", "FOO"},
	{"*foo", "barfoo"},
	{"*foo", "barfooo"},
	{"foo*", "foobar"},
	{"*a*b*", "xaXbY"},
	{"hello.*", "hi.txt"},
	{"réadme.md", "réadme.md"},

	// Anchoring.
	{"/foo", "foo"},
	{"/foo", "bar/foo"},
	{"foo/bar", "foo/bar"},
	{"doc/*.txt", "doc/notes.txt"},
	{"doc/*.txt", "doc/sub/notes.txt"},
	{"a/*/c", "a/b/c"},
	{"a/*", "a"},

	// Double star.
	{"**/logs", "logs"},
	{"**/logs", "a/b/logs"},
	{"a/**/b", "a/b"},
	{"a/**/b", "a/x/y/b"},
	{"a/**/b", "a/x/c"},
	{"build/**", "build/out.js"},
	{"a/**", "a"},
	{"**/node_modules/**", "a/node_modules/b/c.js"},
	{"**/*.log", "deep/nested/x.log"},
	{"src/**/test", "src/test"},
	{"src/**/test", "src/lib/test"},
	{"src/**/test", "src/testx"},

	// Single-character wildcard.
	{"?.md", "a.md"},
	{"?.md", "ab.md"},
	{"?.md", ".md"},
	{"x?z", "x_z"},
	{"x?z", "x/z"},

	// Character classes.
	{"[abc].txt", "b.txt"},
	{"[abc].txt", "d.txt"},
	{"[0-9][0-9]", "42"},
	{"[a-c]1", "d1"},
	{"[!x]y.go", "zy.go"},
	{"[!x]y.go", "xy.go"},
	{"[!a]x", "ax"},
	{"[a-cx-z]*.go", "zfoo.go"},
	{"*.[ch]", "main.c"},
	{"*.[ch]", "main.o"},
	{"[]]x", "]x"},
	{"a[-z]c", "a-c"},
	{"a[z-]c", "azc"},
	{"[z-]c", "ac"},

	// Escapes.
	{`\!bang`, "!bang"},
	{`\#hash`, "#hash"},
	{`fo\*o`, "fo*o"},
	{`fo\*o`, "fooo"},
	{`a\?b`, "a?b"},
	{`a\?b`, "axb"},
	{`\[x`, "[x"},

	// Directory-only patterns against plain files.
	{"build/", "build"},
	{"!important.log", "important.log"},
}

func main() {
	if _, err := exec.LookPath("git"); err != nil {
		fmt.Fprintln(os.Stderr, "git not found in PATH")
		os.Exit(1)
	}

	var match, nmatch strings.Builder
	for _, q := range grid {
		if strings.Contains(q.pattern, " ") {
			fmt.Fprintf(os.Stderr, "skipping %q: patterns with spaces cannot be recorded\n", q.pattern)
			continue
		}
		answer, err := checkIgnore(q.pattern, q.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %q vs %q: %v\n", q.pattern, q.path, err)
			continue
		}
		out := &match
		if strings.HasPrefix(answer, "::\t") {
			out = &nmatch
		}
		fmt.Fprintf(out, "%s %s\n%s\n", q.pattern, q.path, answer)
	}

	outputs := []struct {
		name string
		data string
	}{
		{"git-baseline.match", match.String()},
		{"git-baseline.nmatch", nmatch.String()},
	}
	for _, o := range outputs {
		path := filepath.Join("baseline", o.name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", filepath.Dir(path), err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, []byte(o.data), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Generated: %s (%d bytes)\n", path, len(o.data))
	}
}

// checkIgnore asks one throwaway repository for its verdict on path under a
// .gitignore holding just pattern. It returns the raw answer line.
func checkIgnore(pattern, path string) (string, error) {
	dir, err := os.MkdirTemp("", "baseline-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(dir)

	run := func(args ...string) error {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s: %v: %s", strings.Join(args, " "), err, out)
		}
		return nil
	}
	if err := run("init", "-q"); err != nil {
		return "", err
	}
	if err := run("config", "core.ignorecase", "false"); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(pattern+"\n"), 0o644); err != nil {
		return "", err
	}
	target := filepath.Join(dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		return "", err
	}

	cmd := exec.Command("git", "-c", "core.excludesFile=/dev/null",
		"check-ignore", "--verbose", "--non-matching", "--", path)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		// Exit status 1 means "not ignored"; the answer line still
		// arrives on stdout.
		if ee, ok := err.(*exec.ExitError); !ok || ee.ExitCode() != 1 {
			return "", fmt.Errorf("git check-ignore: %v", err)
		}
	}
	line := strings.TrimRight(string(out), "\n")
	if line == "" {
		return "", fmt.Errorf("git check-ignore produced no output")
	}
	if strings.Contains(line, "\n") {
		return "", fmt.Errorf("git check-ignore produced multiple lines: %q", line)
	}
	return line, nil
}
