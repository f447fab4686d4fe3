// Package walker traverses a directory tree under the control of a
// gitglob.Matcher, pruning ignored directories instead of descending into
// them. Matching and per-directory ignore-file loading happen on the
// traversal goroutine; only the callback is fanned out to workers.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	gitglob "github.com/Sriram-PR/go-gitglob"
)

// WalkFunc receives one selected path, slash-separated and relative to the
// walk root. When Walk runs with more than one worker it is called from
// multiple goroutines. A non-nil return is counted and logged; it does not
// stop the walk.
type WalkFunc func(path string, isDir bool) error

// Stats summarizes one walk.
type Stats struct {
	FilesSeen  int64 // non-directory entries visited
	DirsSeen   int64 // directories visited, the root excluded
	Ignored    int64 // entries the matcher ignored
	DirsPruned int64 // ignored directories whose subtrees were skipped
	Filtered   int64 // files dropped by include/exclude globs
	Emitted    int64 // paths handed to the callback
	Errors     int64 // traversal and callback failures
}

type counters struct {
	filesSeen  atomic.Int64
	dirsSeen   atomic.Int64
	ignored    atomic.Int64
	dirsPruned atomic.Int64
	filtered   atomic.Int64
	emitted    atomic.Int64
	errors     atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		FilesSeen:  c.filesSeen.Load(),
		DirsSeen:   c.dirsSeen.Load(),
		Ignored:    c.ignored.Load(),
		DirsPruned: c.dirsPruned.Load(),
		Filtered:   c.filtered.Load(),
		Emitted:    c.emitted.Load(),
		Errors:     c.errors.Load(),
	}
}

type task struct {
	path  string
	isDir bool
}

// Walk traverses root and hands every selected path to fn. The matcher
// decides selection: by default paths it ignores are dropped and ignored
// directories are pruned whole; WithIgnored inverts the selection. A nil
// matcher selects everything.
//
// Walk mutates m when WithIgnoreFile is set, so the matcher should not be
// shared with concurrent users while a walk is running.
func Walk(root string, m *gitglob.Matcher, fn WalkFunc, opts ...Option) (Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	for _, g := range append(append([]string{}, o.includes...), o.excludes...) {
		if !doublestar.ValidatePattern(g) {
			return Stats{}, fmt.Errorf("walker: invalid filter glob %q", g)
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Stats{}, fmt.Errorf("walker: resolve root %q: %w", root, err)
	}

	var c counters

	// Callback dispatch: inline when sequential, channel + pool otherwise.
	emit := func(path string, isDir bool) {
		c.emitted.Add(1)
		if err := fn(path, isDir); err != nil {
			c.errors.Add(1)
			o.logger.Warn("walk callback failed", zap.String("path", path), zap.Error(err))
		}
	}
	var (
		tasks chan task
		wg    sync.WaitGroup
	)
	if o.workers > 1 {
		tasks = make(chan task, o.workers*2)
		for i := 0; i < o.workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for t := range tasks {
					if o.ctx.Err() != nil {
						continue // drain without calling fn
					}
					if err := fn(t.path, t.isDir); err != nil {
						c.errors.Add(1)
						o.logger.Warn("walk callback failed", zap.String("path", t.path), zap.Error(err))
					}
				}
			}()
		}
		emit = func(path string, isDir bool) {
			c.emitted.Add(1)
			select {
			case <-o.ctx.Done():
			case tasks <- task{path: path, isDir: isDir}:
			}
		}
	}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if cerr := o.ctx.Err(); cerr != nil {
			return cerr
		}
		if err != nil {
			if d == nil {
				return err // the root itself is unreadable
			}
			c.errors.Add(1)
			o.logger.Warn("walk error", zap.String("path", path), zap.Error(err))
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			c.errors.Add(1)
			o.logger.Warn("relative path failed", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)
		isDir := d.IsDir()

		if rel == "." {
			if o.ignoreFile != "" {
				loadIgnoreFile(m, absRoot, "", o, &c)
			}
			return nil
		}

		if isDir {
			c.dirsSeen.Add(1)
		} else {
			c.filesSeen.Add(1)
		}

		if m != nil && m.Match(rel, isDir) {
			c.ignored.Add(1)
			if isDir {
				c.dirsPruned.Add(1)
				if o.emitIgnored {
					emit(rel, true)
				}
				return fs.SkipDir
			}
			if o.emitIgnored && passesFilters(rel, o) {
				emit(rel, false)
			}
			return nil
		}

		if isDir {
			if o.ignoreFile != "" {
				loadIgnoreFile(m, path, rel, o, &c)
			}
			return nil
		}

		if !passesFilters(rel, o) {
			c.filtered.Add(1)
			return nil
		}
		if !o.emitIgnored {
			emit(rel, false)
		}
		return nil
	})

	if tasks != nil {
		close(tasks)
		wg.Wait()
	}

	return c.snapshot(), walkErr
}

// loadIgnoreFile feeds dir's ignore file into the matcher, scoped to base
// (the directory's slash-relative path, "" for the root). A missing file is
// not an error.
func loadIgnoreFile(m *gitglob.Matcher, dir, base string, o options, c *counters) {
	if m == nil {
		return
	}
	content, err := os.ReadFile(filepath.Join(dir, o.ignoreFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.errors.Add(1)
			o.logger.Warn("ignore file unreadable", zap.String("dir", dir), zap.Error(err))
		}
		return
	}
	for _, w := range m.AddPatterns(base, content) {
		o.logger.Warn("ignore pattern skipped",
			zap.String("dir", dir), zap.String("warning", w.String()))
	}
}

// passesFilters applies the include/exclude globs to a file path. Patterns
// are validated up front in Walk, so match errors cannot occur here.
func passesFilters(path string, o options) bool {
	if len(o.includes) > 0 {
		ok := false
		for _, g := range o.includes {
			if match, _ := doublestar.Match(g, path); match {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, g := range o.excludes {
		if match, _ := doublestar.Match(g, path); match {
			return false
		}
	}
	return true
}
