package gitglob

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

// AddGlobalPatterns loads the user's global exclude file into the matcher at
// root scope, which is where git layers it: below command-line patterns,
// above per-directory files.
//
// The file is resolved the way git resolves core.excludesFile:
//
//  1. git config --global core.excludesFile, when git is on PATH
//  2. $XDG_CONFIG_HOME/git/ignore, when XDG_CONFIG_HOME is set
//  3. ~/.config/git/ignore
//
// A missing file is not an error; only real read failures are reported.
// Unparseable lines surface through the usual warning path.
func (m *Matcher) AddGlobalPatterns() error {
	path, err := globalExcludesFile()
	if err != nil {
		return fmt.Errorf("resolving global excludes file: %w", err)
	}
	if path == "" {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading global excludes file %s: %w", path, err)
	}

	m.AddPatterns("", content)
	return nil
}

// globalExcludesFile resolves the global exclude file location, or "" when
// none can be determined.
func globalExcludesFile() (string, error) {
	// git config wins when it answers; a missing git binary or an unset key
	// both fall through to the XDG default.
	if out, err := exec.Command("git", "config", "--global", "core.excludesFile").Output(); err == nil {
		if path := strings.TrimSpace(string(out)); path != "" {
			return expandTilde(path)
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".config", "git", "ignore"), nil
}

// expandTilde resolves "~" and "~user" prefixes, which git accepts in
// core.excludesFile values.
func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	head, rest, _ := strings.Cut(path, "/")
	if rest != "" {
		rest = "/" + rest
	}

	if head == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~: %w", err)
		}
		return home + rest, nil
	}

	u, err := user.Lookup(head[1:])
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", head, err)
	}
	return u.HomeDir + rest, nil
}
