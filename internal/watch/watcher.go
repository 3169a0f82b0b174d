// Package watch reports on-disk edits to checklist files so the host can
// invalidate cache entries and reload. Events are debounced per path to
// absorb editor write bursts.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/planscope/planscope/internal/log"
)

// DefaultDebounce collapses rapid successive writes into one change event.
const DefaultDebounce = 250 * time.Millisecond

// Common errors.
var (
	ErrAlreadyStarted = errors.New("watcher already started")
	ErrFileRemoved    = errors.New("watched file was removed")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the per-path debounce duration.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnChange sets the callback invoked with the path of a changed file.
func WithOnChange(fn func(path string)) Option {
	return func(w *Watcher) { w.onChange = fn }
}

// WithOnError sets the callback invoked on watch errors.
func WithOnError(fn func(err error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// WithLogger sets the logger for watch diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Watcher monitors a fixed set of files using fsnotify. Parent directories
// are watched rather than the files themselves, which survives atomic
// replace-on-save.
type Watcher struct {
	// paths maps absolute paths back to the paths as given, so callbacks
	// report the same strings the caller keys its state by.
	paths    map[string]string
	debounce time.Duration
	onChange func(path string)
	onError  func(err error)
	log      *log.Logger

	fsw    *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timers  map[string]*time.Timer
	started bool
}

// New creates a watcher for the given file paths.
func New(paths []string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		paths:    make(map[string]string, len(paths)),
		debounce: DefaultDebounce,
		onChange: func(string) {},
		onError:  func(error) {},
		timers:   make(map[string]*time.Timer),
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		w.paths[abs] = p
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It is an error to start a running watcher.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dirs := make(map[string]struct{})
	for p := range w.paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return err
		}
	}

	w.fsw = fsw
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.started = true
	go w.loop(fsw)
	return nil
}

// Stop stops watching and cancels pending debounce timers. Stopping a
// stopped watcher is a no-op.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	w.cancel()
	w.fsw.Close()
	w.fsw = nil
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.started = false
}

// IsStarted reports whether the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

func (w *Watcher) loop(fsw *fsnotify.Watcher) {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			orig, watched := w.paths[abs]
			if !watched {
				continue
			}

			switch {
			case event.Op&fsnotify.Remove != 0:
				w.log.Debugf("watch: %s removed", orig)
				w.onError(ErrFileRemoved)

			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.trigger(orig)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

// trigger schedules the change callback for path, resetting any pending
// timer so bursts fire once.
func (w *Watcher) trigger(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		started := w.started
		w.mu.Unlock()
		if started {
			w.log.Debugf("watch: %s changed", path)
			w.onChange(path)
		}
	})
}
