package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/planscope/planscope/internal/cache"
	"github.com/planscope/planscope/internal/loader"
	"github.com/planscope/planscope/internal/plan"
)

// fileChangedMsg reports a watched file changing on disk.
type fileChangedMsg string

// planLoadedMsg carries a finished load.
type planLoadedMsg struct {
	path string
	plan *plan.Plan
	err  error
}

// Model is the watch-mode UI state.
type Model struct {
	paths   []string
	plans   map[string]*plan.Plan
	loadErr map[string]error

	ld      *loader.Loader
	cache   *cache.Cache
	changes <-chan string

	cursor   int
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// NewModel builds the initial UI state for the given plan paths.
func NewModel(paths []string, ld *loader.Loader, c *cache.Cache, changes <-chan string) Model {
	return Model{
		paths:   paths,
		plans:   make(map[string]*plan.Plan, len(paths)),
		loadErr: make(map[string]error),
		ld:      ld,
		cache:   c,
		changes: changes,
	}
}

// Init kicks off the initial loads and the change listener.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.paths)+1)
	for _, p := range m.paths {
		cmds = append(cmds, m.loadCmd(p))
	}
	cmds = append(cmds, m.waitForChange())
	return tea.Batch(cmds...)
}

// Update handles key, resize, watch, and load messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshViewport()
			}
		case "down", "j":
			if m.cursor < len(m.paths)-1 {
				m.cursor++
				m.refreshViewport()
			}
		case "r":
			path := m.selectedPath()
			if path != "" {
				m.cache.Invalidate(path)
				return m, m.loadCmd(path)
			}
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vw, vh := m.viewportSize()
		if !m.ready {
			m.viewport = viewport.New(vw, vh)
			m.ready = true
		} else {
			m.viewport.Width = vw
			m.viewport.Height = vh
		}
		m.refreshViewport()

	case fileChangedMsg:
		path := string(msg)
		m.cache.Invalidate(path)
		return m, tea.Batch(m.loadCmd(path), m.waitForChange())

	case planLoadedMsg:
		if msg.err != nil {
			m.loadErr[msg.path] = msg.err
			delete(m.plans, msg.path)
		} else {
			m.plans[msg.path] = msg.plan
			delete(m.loadErr, msg.path)
		}
		m.refreshViewport()
	}

	return m, nil
}

func (m Model) selectedPath() string {
	if m.cursor < 0 || m.cursor >= len(m.paths) {
		return ""
	}
	return m.paths[m.cursor]
}

func (m Model) loadCmd(path string) tea.Cmd {
	ld := m.ld
	return func() tea.Msg {
		p, err := ld.Load(context.Background(), path)
		return planLoadedMsg{path: path, plan: p, err: err}
	}
}

// waitForChange blocks on the watcher channel until the next edit.
func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg(path)
	}
}
