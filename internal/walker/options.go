package walker

import (
	"context"

	"go.uber.org/zap"
)

type options struct {
	ctx         context.Context
	logger      *zap.Logger
	workers     int
	ignoreFile  string
	includes    []string
	excludes    []string
	emitIgnored bool
}

func defaultOptions() options {
	return options{
		ctx:     context.Background(),
		logger:  zap.NewNop(),
		workers: 1,
	}
}

// Option configures a Walk call.
type Option func(*options)

// WithContext sets the context used to cancel the walk.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger sets the logger for traversal diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets how many goroutines run the callback. Values below two
// keep the walk fully sequential.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithIgnoreFile names a per-directory ignore file (".gitignore" in git's
// layout). Each directory's file is loaded into the matcher, scoped to that
// directory, before the directory's entries are evaluated.
func WithIgnoreFile(name string) Option {
	return func(o *options) {
		o.ignoreFile = name
	}
}

// WithIncludeGlobs keeps only files matching at least one of the given
// doublestar globs. Directories are not affected.
func WithIncludeGlobs(globs []string) Option {
	return func(o *options) {
		o.includes = globs
	}
}

// WithExcludeGlobs drops files matching any of the given doublestar globs.
func WithExcludeGlobs(globs []string) Option {
	return func(o *options) {
		o.excludes = globs
	}
}

// WithIgnored inverts the selection: the callback receives the paths the
// matcher ignores instead of the ones it keeps. Ignored directories are
// reported once and still pruned, so their contents are not enumerated.
func WithIgnored() Option {
	return func(o *options) {
		o.emitIgnored = true
	}
}
