// Package ui implements the watch-mode terminal view: a plan list beside a
// scrollable task tree, re-parsed whenever a watched file changes on disk.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planscope/planscope/internal/cache"
	"github.com/planscope/planscope/internal/loader"
	"github.com/planscope/planscope/internal/log"
	"github.com/planscope/planscope/internal/watch"
)

// Run starts the watcher and blocks in the terminal UI until the user quits.
func Run(paths []string, ld *loader.Loader, c *cache.Cache, debounce time.Duration, lg *log.Logger) error {
	changes := make(chan string, 16)

	w, err := watch.New(paths,
		watch.WithDebounce(debounce),
		watch.WithLogger(lg),
		watch.WithOnChange(func(path string) {
			select {
			case changes <- path:
			default:
			}
		}),
		watch.WithOnError(func(err error) {
			lg.Warnf("watch: %v", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()

	m := NewModel(paths, ld, c, changes)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
