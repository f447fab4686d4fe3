// Package config loads gitglob CLI configuration.
//
// Precedence, highest to lowest:
//  1. GITGLOB_* environment variables (GITGLOB_WORKERS, GITGLOB_MAX_STEPS, ...)
//  2. YAML config file (~/.config/gitglob/config.yaml by default)
//  3. Built-in defaults
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	gitglob "github.com/Sriram-PR/go-gitglob"
)

const envPrefix = "GITGLOB_"

// Config holds every tunable the CLI reads.
type Config struct {
	Case       string `koanf:"case"`        // "sensitive" or "fold"
	MaxSteps   int    `koanf:"max_steps"`   // match step budget; 0 = engine default, <0 = unlimited
	Workers    int    `koanf:"workers"`     // walker callback workers
	IgnoreFile string `koanf:"ignore_file"` // per-directory ignore file name
	Color      string `koanf:"color"`       // "auto", "always" or "never"
	Debug      bool   `koanf:"debug"`
}

// DefaultPath returns the default config file location, honoring
// XDG_CONFIG_HOME. It returns "" when no home directory can be determined.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitglob", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gitglob", "config.yaml")
}

// Load reads the config file at path, then applies GITGLOB_* environment
// overrides. An empty path means the default location, where a missing file
// is fine; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// No config file at the default location; defaults apply.
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	// GITGLOB_MAX_STEPS -> max_steps, GITGLOB_IGNORE_FILE -> ignore_file.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Case == "" {
		cfg.Case = "sensitive"
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.IgnoreFile == "" {
		cfg.IgnoreFile = ".gitignore"
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
}

// Validate rejects values no command can act on.
func (c *Config) Validate() error {
	switch c.Case {
	case "sensitive", "fold":
	default:
		return fmt.Errorf("config: invalid case %q (want \"sensitive\" or \"fold\")", c.Case)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: invalid color %q (want \"auto\", \"always\" or \"never\")", c.Color)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// MatcherOptions translates the config into engine options.
func (c *Config) MatcherOptions() gitglob.MatcherOptions {
	opts := gitglob.MatcherOptions{MaxMatchSteps: c.MaxSteps}
	if c.Case == "fold" {
		opts.Case = gitglob.CaseFold
	}
	return opts
}
