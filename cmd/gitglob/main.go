// Package main implements the gitglob CLI: check paths against ignore
// patterns, walk directory trees with ignored subtrees pruned, and replay
// reference-tool transcripts against the engine.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sriram-PR/go-gitglob/internal/config"
)

var (
	flagConfig string
	flagColor  string
	flagDebug  bool

	cfg    *config.Config
	logger *zap.Logger

	version = "dev"
)

// errQuiet signals exit status 1 after a command already printed its result,
// mirroring git check-ignore's "nothing ignored" exit code.
var errQuiet = errors.New("quiet failure")

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, errQuiet) {
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "gitglob:", err)
	os.Exit(2)
}

var rootCmd = &cobra.Command{
	Use:   "gitglob",
	Short: "gitignore pattern matching, tree walking and conformance tooling",
	Long: `gitglob evaluates gitignore-style patterns outside of a repository.

It answers which paths a pattern stack ignores (check), enumerates a
directory tree while honoring nested ignore files (walk), and replays
recorded reference-tool transcripts against the engine (baseline).`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/gitglob/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "", `color output: "auto", "always" or "never"`)
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(baselineCmd)
}

// setup loads the config, applies flag overrides, and prepares color output
// and logging for whichever command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDebug {
		cfg.Debug = true
	}
	if flagColor != "" {
		cfg.Color = flagColor
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	switch cfg.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
	}

	if cfg.Debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
	} else {
		logger = zap.NewNop()
	}
	return nil
}
