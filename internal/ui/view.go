package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/planscope/planscope/internal/style"
)

const listPaneWidth = 34

var (
	paneBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("8"))
	selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errText  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// viewportSize returns the tree pane dimensions for the current window.
func (m Model) viewportSize() (w, h int) {
	w = m.width - listPaneWidth - 3
	if w < 20 {
		w = 20
	}
	h = m.height - 3
	if h < 3 {
		h = 3
	}
	return w, h
}

// refreshViewport re-renders the selected plan into the tree pane.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.treeContent())
}

func (m Model) treeContent() string {
	path := m.selectedPath()
	if path == "" {
		return style.Dim.Render("No plan selected.")
	}
	if err, ok := m.loadErr[path]; ok {
		return errText.Render(fmt.Sprintf("Cannot load %s: %v", path, err))
	}
	p, ok := m.plans[path]
	if !ok {
		return style.Dim.Render("Loading…")
	}

	done, total := p.Progress()
	header := fmt.Sprintf("%s %s %s",
		style.Title.Render(p.Title),
		style.Progress(done, total),
		style.StatusBadge(p.OverallStatus()))

	lines := style.TreeLines(p.Items)
	if len(lines) == 0 {
		return header + "\n\n" + style.Dim.Render("(no checklist items)")
	}
	return header + "\n\n" + strings.Join(lines, "\n")
}

// View renders the header, the plan list pane, and the tree viewport.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	header := style.Bold.Render("planscope") +
		style.Dim.Render(fmt.Sprintf("  %d plan(s) watched", len(m.paths)))

	list := m.listPane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, paneBorder.Render(list), " "+m.viewport.View())
	footer := style.Dim.Render("↑/↓ select · r reload · q quit")

	return header + "\n" + body + "\n" + footer
}

func (m Model) listPane() string {
	_, h := m.viewportSize()
	rows := make([]string, 0, len(m.paths))

	for i, path := range m.paths {
		marker := "  "
		if i == m.cursor {
			marker = selected.Render("▸ ")
		}

		// Truncate before styling so escape codes don't count as width.
		label := path
		styleRow := style.Dim
		if p, ok := m.plans[path]; ok {
			done, total := p.Progress()
			label = fmt.Sprintf("%d/%d %s", done, total, p.Title)
			styleRow = lipgloss.NewStyle()
		} else if _, ok := m.loadErr[path]; ok {
			label = "! " + path
			styleRow = errText
		}
		label = runewidth.Truncate(label, listPaneWidth-3, "…")

		rows = append(rows, marker+styleRow.Render(label))
	}

	for len(rows) < h {
		rows = append(rows, "")
	}
	return lipgloss.NewStyle().Width(listPaneWidth).Render(strings.Join(rows, "\n"))
}
