// Package discovery finds checklist files beneath a project root, matching
// base-name patterns and honoring exclusion globs. It produces inputs for the
// parsing core and knows nothing about markdown.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Options control a discovery walk.
type Options struct {
	// Patterns are base-name globs, e.g. "PLAN.md" or "*.plan.md".
	Patterns []string

	// Exclude lists directory names and path globs to skip. A pattern
	// matches either a single path segment or the whole root-relative
	// path (with basic "**/" support).
	Exclude []string

	// MaxDepth limits recursion below root; 0 means unlimited.
	MaxDepth int
}

// Discover walks root and returns the sorted paths of matching files.
func Discover(ctx context.Context, root string, opts Options) ([]string, error) {
	root = filepath.Clean(root)

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtrees degrade to "not found" rather than
			// aborting the whole walk.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("discover: make relative %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if isExcluded(rel, opts.Exclude) {
				return fs.SkipDir
			}
			if opts.MaxDepth > 0 && strings.Count(rel, "/")+1 >= opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if isExcluded(rel, opts.Exclude) {
			return nil
		}
		if matchesAny(filepath.Base(path), opts.Patterns) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// matchesAny reports whether base matches one of the base-name patterns.
func matchesAny(base string, patterns []string) bool {
	for _, p := range patterns {
		if match, err := filepath.Match(p, base); err == nil && match {
			return true
		}
	}
	return false
}

// isExcluded reports whether a root-relative slash path is covered by an
// exclusion pattern. Bare names match any single segment; patterns with
// separators match the whole path, with "**/" prefixes stripped to basic
// glob form.
func isExcluded(rel string, patterns []string) bool {
	segments := strings.Split(rel, "/")
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if strings.Contains(p, "**") {
			p = strings.ReplaceAll(p, "**/", "")
		}
		if strings.Contains(p, "/") {
			if match, err := filepath.Match(p, rel); err == nil && match {
				return true
			}
			continue
		}
		for _, seg := range segments {
			if match, err := filepath.Match(p, seg); err == nil && match {
				return true
			}
		}
	}
	return false
}
