package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// makeTree writes empty files at the given root-relative paths.
func makeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("# x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_MatchesPatterns(t *testing.T) {
	root := makeTree(t,
		"PLAN.md",
		"docs/TODO.md",
		"docs/notes.md",
		"sub/feature.plan.md",
	)

	found, err := Discover(context.Background(), root, Options{
		Patterns: []string{"PLAN.md", "TODO.md", "*.plan.md"},
	})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	got := relAll(t, root, found)
	want := []string{"PLAN.md", "docs/TODO.md", "sub/feature.plan.md"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d files, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %s at index %d, got %s", want[i], i, got[i])
		}
	}
}

func TestDiscover_ExcludesDirectoriesByName(t *testing.T) {
	root := makeTree(t,
		"PLAN.md",
		"node_modules/pkg/PLAN.md",
		"deep/node_modules/PLAN.md",
		".git/PLAN.md",
	)

	found, err := Discover(context.Background(), root, Options{
		Patterns: []string{"PLAN.md"},
		Exclude:  []string{"node_modules", ".git"},
	})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if len(found) != 1 {
		t.Fatalf("Expected only the root PLAN.md, got %v", relAll(t, root, found))
	}
}

func TestDiscover_ExcludesByPathGlob(t *testing.T) {
	root := makeTree(t,
		"PLAN.md",
		"build/out/PLAN.md",
	)

	found, err := Discover(context.Background(), root, Options{
		Patterns: []string{"PLAN.md"},
		Exclude:  []string{"build/*"},
	})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	got := relAll(t, root, found)
	if len(got) != 1 || got[0] != "PLAN.md" {
		t.Errorf("Expected only root PLAN.md, got %v", got)
	}
}

func TestDiscover_MaxDepth(t *testing.T) {
	root := makeTree(t,
		"PLAN.md",
		"a/PLAN.md",
		"a/b/PLAN.md",
	)

	found, err := Discover(context.Background(), root, Options{
		Patterns: []string{"PLAN.md"},
		MaxDepth: 2,
	})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	got := relAll(t, root, found)
	if len(got) != 2 {
		t.Fatalf("Expected 2 files within depth 2, got %v", got)
	}
	for _, p := range got {
		if p == "a/b/PLAN.md" {
			t.Error("Expected a/b/PLAN.md to be beyond max depth")
		}
	}
}

func TestDiscover_CanceledContext(t *testing.T) {
	root := makeTree(t, "PLAN.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Discover(ctx, root, Options{Patterns: []string{"PLAN.md"}}); err == nil {
		t.Error("Expected error from canceled context")
	}
}

func TestDiscover_EmptyTree(t *testing.T) {
	found, err := Discover(context.Background(), t.TempDir(), Options{
		Patterns: []string{"PLAN.md"},
	})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(found) != 0 {
		t.Errorf("Expected no files, got %v", found)
	}
}
