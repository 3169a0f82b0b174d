// Package cache memoizes parsed plans per source file, keyed by path and
// guarded by the file's modification timestamp. Entries are owned exclusively
// by the cache; callers never retain a parsed result across loads.
package cache

import (
	"os"
	"sync"
	"time"

	"github.com/planscope/planscope/internal/log"
	"github.com/planscope/planscope/internal/plan"
)

// StatFunc reports a file's modification timestamp. Failures degrade to cache
// misses, never crashes.
type StatFunc func(path string) (time.Time, error)

func defaultStat(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Option configures a Cache.
type Option func(*Cache)

// WithStat replaces the filesystem stat used for freshness checks.
func WithStat(fn StatFunc) Option {
	return func(c *Cache) { c.stat = fn }
}

// WithLogger sets the logger for non-fatal cache failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) { c.log = l }
}

type entry struct {
	modTime time.Time
	plan    *plan.Plan
}

// Cache is an mtime-keyed plan cache. Callers serialize load-or-parse
// sequences per path; the map itself is mutex-guarded so host goroutines may
// touch independent paths concurrently.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	stat    StatFunc
	log     *log.Logger
}

// New constructs an empty cache. Lifecycle belongs to the host: construct at
// startup, Clear or drop at shutdown.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		stat:    defaultStat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the cached plan for path if its stored timestamp matches the
// file's current one exactly. A stat failure is a miss.
func (c *Cache) Lookup(path string) (*plan.Plan, bool) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	mtime, err := c.stat(path)
	if err != nil {
		c.log.Debugf("cache: stat %s: %v", path, err)
		return nil, false
	}
	if !e.modTime.Equal(mtime) {
		return nil, false
	}
	return e.plan, true
}

// Store records the plan for path at the file's current timestamp, replacing
// any prior entry. When the timestamp cannot be read the store is a logged
// no-op; the caller still has the plan and the next load reparses.
func (c *Cache) Store(path string, p *plan.Plan) {
	mtime, err := c.stat(path)
	if err != nil {
		c.log.Warnf("cache: cannot stat %s, plan not cached: %v", path, err)
		return
	}

	c.mu.Lock()
	c.entries[path] = entry{modTime: mtime, plan: p}
	c.mu.Unlock()
}

// Invalidate removes the entry for path if present.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
