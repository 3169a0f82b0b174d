// Package loader ties discovery output to the parsing core: check the cache,
// on miss read the file, parse, store. Each Load is one non-reentrant unit
// per path; a reload racing a previous load is last-writer-wins in the cache.
package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/planscope/planscope/internal/cache"
	"github.com/planscope/planscope/internal/log"
	"github.com/planscope/planscope/internal/plan"
)

// ReadFunc reads a file's content. Failures surface as load errors, never
// panics.
type ReadFunc func(path string) ([]byte, error)

// Option configures a Loader.
type Option func(*Loader)

// WithReadFile replaces the file reader.
func WithReadFile(fn ReadFunc) Option {
	return func(l *Loader) { l.read = fn }
}

// Loader loads plans through the cache.
type Loader struct {
	cache *cache.Cache
	log   *log.Logger
	read  ReadFunc
}

// New constructs a Loader over the given cache.
func New(c *cache.Cache, lg *log.Logger, opts ...Option) *Loader {
	l := &Loader{
		cache: c,
		log:   lg,
		read:  os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the plan for path, reparsing only when the cached entry is
// missing or stale. A cache store failure is non-fatal: the parsed plan is
// still returned and the next call reparses.
func (l *Loader) Load(ctx context.Context, path string) (*plan.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p, ok := l.cache.Lookup(path); ok {
		l.log.Debugf("loader: cache hit for %s", path)
		return p, nil
	}

	data, err := l.read(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", path, err)
	}

	p := plan.Parse(data, path)
	l.cache.Store(path, p)
	return p, nil
}

// Reload invalidates the cache entry for path and loads it fresh.
func (l *Loader) Reload(ctx context.Context, path string) (*plan.Plan, error) {
	l.cache.Invalidate(path)
	return l.Load(ctx, path)
}

// LoadAll loads every path, skipping unreadable files with a warning. The
// returned slice preserves input order for the paths that loaded.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*plan.Plan, error) {
	plans := make([]*plan.Plan, 0, len(paths))
	for _, path := range paths {
		p, err := l.Load(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			l.log.Warnf("loader: skipping %s: %v", path, err)
			continue
		}
		plans = append(plans, p)
	}
	return plans, nil
}
