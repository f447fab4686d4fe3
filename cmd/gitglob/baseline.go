package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	gitglob "github.com/Sriram-PR/go-gitglob"
	"github.com/Sriram-PR/go-gitglob/internal/baseline"
)

var baselineFloor float64

var baselineCmd = &cobra.Command{
	Use:   "baseline [flags] <transcript>...",
	Short: "Replay reference transcripts against the engine",
	Long: `Replay recorded reference-tool transcripts and report how often the
engine agrees. A transcript record is a "<pattern> <path>" query line
followed by the reference answer line, where a "::<TAB>" prefix means no
match; git check-ignore --verbose --non-matching emits this format.

Replay is structural: one pattern against one path, case-sensitive, the path
treated as a regular file. Patterns that fail to compile predict "no match".

Exit status is 1 when the aggregate agreement rate falls below --floor.

Examples:
  gitglob baseline testdata/baseline/git-baseline.match
  gitglob baseline --floor 0.99 transcripts/*.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBaseline,
}

func init() {
	baselineCmd.Flags().Float64Var(&baselineFloor, "floor", 0, "fail when aggregate agreement is below this `fraction`")
}

func runBaseline(cmd *cobra.Command, args []string) error {
	replay := func(pattern, path string) (bool, error) {
		p, err := gitglob.Parse(pattern)
		if err != nil {
			return false, err
		}
		return p.MatchesPath(path, gitglob.BasenameStart(path), false, gitglob.CaseSensitive), nil
	}

	out := cmd.OutOrStdout()

	var total baseline.Stats
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		records, err := baseline.ParseTranscript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		stats := baseline.Replay(records, replay)
		fmt.Fprintf(out, "%s: %s\n", name, stats)
		for _, mm := range stats.Mismatches {
			fmt.Fprintf(out, "  disagree: pattern %q path %q: reference=%v engine=%v\n",
				mm.Record.Pattern, mm.Record.Path, mm.Record.IsMatch, mm.Got)
		}

		total.Total += stats.Total
		total.Agreements += stats.Agreements
		total.CompileFailures += stats.CompileFailures
		total.Mismatches = append(total.Mismatches, stats.Mismatches...)
	}

	if len(args) > 1 {
		fmt.Fprintf(out, "aggregate: %s\n", total)
	}
	if rate := total.AgreementRate(); rate < baselineFloor {
		fmt.Fprintf(out, "%s: agreement %.4f below floor %.4f\n",
			color.New(color.FgRed).Sprint("FAIL"), rate, baselineFloor)
		return errQuiet
	}
	fmt.Fprintln(out, color.New(color.FgGreen).Sprint("PASS"))
	return nil
}
