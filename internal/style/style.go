// Package style centralizes terminal styling: lipgloss styles, task state
// glyphs, and tree rendering shared by the CLI and the watch UI.
package style

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/planscope/planscope/internal/plan"
)

var (
	Bold  = lipgloss.NewStyle().Bold(true)
	Dim   = lipgloss.NewStyle().Faint(true)
	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	heading    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	done       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pending    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	inProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	blocked    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// AutoProfile downgrades to plain output when stdout is not a terminal or
// NO_COLOR is set.
func AutoProfile() {
	if os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		DisableColors()
	}
}

// DisableColors forces an uncolored profile.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StateGlyph returns the styled glyph for a task state.
func StateGlyph(s plan.State) string {
	switch s {
	case plan.StateDone:
		return done.Render("✓")
	case plan.StateInProgress:
		return inProgress.Render("◐")
	case plan.StateBlocked:
		return blocked.Render("✗")
	default:
		return pending.Render("○")
	}
}

// StatusBadge returns a short styled badge for an aggregated status.
func StatusBadge(s plan.Status) string {
	switch s {
	case plan.StatusDone:
		return done.Render("[done]")
	case plan.StatusPartial:
		return inProgress.Render("[partial]")
	case plan.StatusInProgress:
		return inProgress.Render("[in progress]")
	case plan.StatusPending:
		return pending.Render("[pending]")
	default:
		return ""
	}
}

// TreeLines renders a forest as indented lines with state glyphs and status
// badges.
func TreeLines(items []*plan.Item) []string {
	var lines []string
	for _, it := range items {
		appendTreeLines(&lines, it, 0)
	}
	return lines
}

func appendTreeLines(lines *[]string, item *plan.Item, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	var line string
	switch item.Kind {
	case plan.KindHeading:
		line = fmt.Sprintf("%s%s", indent, heading.Render(item.Text))
	default:
		line = fmt.Sprintf("%s%s %s", indent, StateGlyph(item.State), item.Text)
	}
	if item.Status != "" {
		line += " " + Dim.Render(string(item.Status))
	}
	*lines = append(*lines, line)

	for _, c := range item.Children {
		appendTreeLines(lines, c, depth+1)
	}
}

// Progress formats "done/total" with a completion-aware color.
func Progress(doneCount, total int) string {
	s := fmt.Sprintf("%d/%d", doneCount, total)
	if total > 0 && doneCount == total {
		return done.Render(s)
	}
	return Bold.Render(s)
}
