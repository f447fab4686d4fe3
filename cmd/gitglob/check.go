package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	gitglob "github.com/Sriram-PR/go-gitglob"
)

var (
	checkExcludeFrom []string
	checkExcludes    []string
	checkGlobal      bool
	checkVerbose     bool
	checkNonMatching bool
	checkStdin       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Report which paths the loaded patterns ignore",
	Long: `Check paths against a stack of gitignore-style patterns.

Ignored paths print one per line. With --verbose every decided path is
explained as "source:line:pattern<TAB>path"; adding --non-matching also
prints undecided paths as "::<TAB>path", matching git check-ignore's output.

Paths are matched as given, relative to the pattern root. When a path exists
on disk its file type decides directory-only patterns; otherwise a trailing
slash marks it as a directory.

Exit status is 0 when at least one path is ignored, 1 when none are.

Examples:
  # Check two paths against an ignore file
  gitglob check --exclude-from .gitignore build/main.o src/main.go

  # Inline patterns with a verbose explanation
  gitglob check -e '*.log' -e '!keep.log' -v debug.log keep.log

  # Paths from stdin
  find . -type f | gitglob check --exclude-from .gitignore --stdin`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVar(&checkExcludeFrom, "exclude-from", nil, "read patterns from `file` (repeatable)")
	checkCmd.Flags().StringArrayVarP(&checkExcludes, "exclude", "e", nil, "add one `pattern` (repeatable)")
	checkCmd.Flags().BoolVar(&checkGlobal, "global", false, "also load the global excludes file")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "explain every decided path with its rule")
	checkCmd.Flags().BoolVarP(&checkNonMatching, "non-matching", "n", false, "with --verbose, also print undecided paths")
	checkCmd.Flags().BoolVar(&checkStdin, "stdin", false, "read paths from standard input, one per line")
}

// patternOrigin remembers where one batch of patterns came from so verbose
// output can name the deciding rule's source.
type patternOrigin struct {
	name  string
	lines []string
}

func (o *patternOrigin) has(line int, text string) bool {
	return line >= 1 && line <= len(o.lines) && o.lines[line-1] == text
}

// splitPatternLines numbers lines the way the matcher does: UTF-8 BOM
// stripped, CRLF and lone CR folded to LF.
func splitPatternLines(content []byte) []string {
	s := strings.TrimPrefix(string(content), "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkNonMatching && !checkVerbose {
		return errors.New("--non-matching requires --verbose")
	}

	paths := args
	if checkStdin {
		if len(paths) > 0 {
			return errors.New("--stdin cannot be combined with path arguments")
		}
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				paths = append(paths, line)
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading paths: %w", err)
		}
	}
	if len(paths) == 0 {
		return errors.New("no paths to check (pass them as arguments or use --stdin)")
	}

	m := gitglob.NewWithOptions(cfg.MatcherOptions())
	m.SetWarningHandler(func(w gitglob.ParseWarning) {
		fmt.Fprintf(cmd.ErrOrStderr(), "gitglob: skipped pattern: %s\n", w)
	})

	// Lowest precedence first: global excludes, then files, then inline
	// patterns, so later sources win under last-match-wins.
	var origins []patternOrigin
	if checkGlobal {
		if err := m.AddGlobalPatterns(); err != nil {
			return err
		}
	}
	for _, file := range checkExcludeFrom {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading patterns: %w", err)
		}
		m.AddPatterns("", content)
		origins = append(origins, patternOrigin{name: file, lines: splitPatternLines(content)})
	}
	if len(checkExcludes) > 0 {
		joined := strings.Join(checkExcludes, "\n")
		m.AddPatterns("", []byte(joined))
		origins = append(origins, patternOrigin{name: "cmdline", lines: strings.Split(joined, "\n")})
	}
	if m.RuleCount() == 0 {
		return errors.New("no patterns loaded (use --exclude, --exclude-from or --global)")
	}

	out := cmd.OutOrStdout()
	ruleColor := color.New(color.FgCyan)

	anyIgnored := false
	for _, path := range paths {
		res := m.MatchWithReason(path, statIsDir(path))
		if res.Ignored {
			anyIgnored = true
		}

		switch {
		case checkVerbose && res.Matched:
			fmt.Fprintf(out, "%s:%d:%s\t%s\n",
				originName(origins, res.Line, res.Rule), res.Line, ruleColor.Sprint(res.Rule), path)
		case checkVerbose && checkNonMatching:
			fmt.Fprintf(out, "::\t%s\n", path)
		case !checkVerbose && res.Ignored:
			fmt.Fprintln(out, path)
		}
	}

	if !anyIgnored {
		return errQuiet
	}
	return nil
}

// originName attributes a deciding rule to the source that carries the same
// text at the same line. Later sources are preferred, which is also the
// order last-match-wins resolves identical rules in. Global excludes are the
// only untracked source left.
func originName(origins []patternOrigin, line int, text string) string {
	for i := len(origins) - 1; i >= 0; i-- {
		if origins[i].has(line, text) {
			return origins[i].name
		}
	}
	return "global"
}

// statIsDir decides the isDir flag for a checked path: the filesystem
// answers when the path exists, a trailing slash decides otherwise.
func statIsDir(path string) bool {
	if info, err := os.Stat(path); err == nil {
		return info.IsDir()
	}
	return strings.HasSuffix(path, "/")
}
