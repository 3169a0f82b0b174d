package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planscope/planscope/internal/cache"
	"github.com/planscope/planscope/internal/loader"
	"github.com/planscope/planscope/internal/plan"
)

func testModel(t *testing.T, paths []string) Model {
	t.Helper()
	c := cache.New()
	ld := loader.New(c, nil)
	m := NewModel(paths, ld, c, make(chan string))

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func TestModel_Navigation(t *testing.T) {
	m := testModel(t, []string{"a.md", "b.md", "c.md"})

	if m.selectedPath() != "a.md" {
		t.Fatalf("Expected initial selection a.md, got %s", m.selectedPath())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = next.(Model)
	if m.selectedPath() != "b.md" {
		t.Errorf("Expected b.md after j, got %s", m.selectedPath())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.selectedPath() != "a.md" {
		t.Errorf("Expected a.md after up, got %s", m.selectedPath())
	}

	// Cursor clamps at the top.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.selectedPath() != "a.md" {
		t.Errorf("Expected cursor to clamp at a.md, got %s", m.selectedPath())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := testModel(t, []string{"a.md"})

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Errorf("Expected quit command for %s", key.String())
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("Expected QuitMsg for %s", key.String())
		}
	}
}

func TestModel_PlanLoadedShowsTree(t *testing.T) {
	m := testModel(t, []string{"a.md"})

	p := plan.Parse([]byte("# Rollout\n## Phase 1\n- [x] flag on\n- [ ] monitor\n"), "a.md")
	next, _ := m.Update(planLoadedMsg{path: "a.md", plan: p})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "Rollout") {
		t.Errorf("Expected view to contain the plan title, got:\n%s", view)
	}
	if !strings.Contains(view, "flag on") {
		t.Errorf("Expected view to contain task text, got:\n%s", view)
	}
}

func TestModel_LoadErrorShownAndCleared(t *testing.T) {
	m := testModel(t, []string{"a.md"})

	next, _ := m.Update(planLoadedMsg{path: "a.md", err: errors.New("no such file")})
	m = next.(Model)
	if !strings.Contains(m.View(), "no such file") {
		t.Error("Expected load error in view")
	}

	p := plan.Parse([]byte("# Fine now\n- [ ] t\n"), "a.md")
	next, _ = m.Update(planLoadedMsg{path: "a.md", plan: p})
	m = next.(Model)
	if strings.Contains(m.View(), "no such file") {
		t.Error("Expected error to clear after successful load")
	}
}

func TestModel_FileChangedTriggersReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PLAN.md")
	if err := os.WriteFile(path, []byte("# V1\n- [ ] t\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := cache.New()
	ld := loader.New(c, nil)
	changes := make(chan string, 1)
	m := NewModel([]string{path}, ld, c, changes)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	// Prime the cache, rewrite the file, then deliver the change message.
	if _, err := ld.Load(t.Context(), path); err != nil {
		t.Fatalf("prime load: %v", err)
	}
	if err := os.WriteFile(path, []byte("# V2\n- [x] t\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	_, cmd := m.Update(fileChangedMsg(path))
	if cmd == nil {
		t.Fatal("Expected a reload command")
	}

	// The batched command includes the load; run messages until one lands.
	msg := cmd()
	loaded := findPlanLoaded(t, msg)
	if loaded.err != nil {
		t.Fatalf("Expected reload to succeed, got %v", loaded.err)
	}
	if loaded.plan.Title != "V2" {
		t.Errorf("Expected reparsed plan V2, got %s", loaded.plan.Title)
	}
}

// findPlanLoaded digs a planLoadedMsg out of a possibly-batched message.
func findPlanLoaded(t *testing.T, msg tea.Msg) planLoadedMsg {
	t.Helper()
	switch msg := msg.(type) {
	case planLoadedMsg:
		return msg
	case tea.BatchMsg:
		for _, cmd := range msg {
			if loaded, ok := cmd().(planLoadedMsg); ok {
				return loaded
			}
		}
	}
	t.Fatalf("Expected planLoadedMsg, got %T", msg)
	return planLoadedMsg{}
}
