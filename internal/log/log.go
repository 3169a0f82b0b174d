// Package log provides a small leveled logger for planscope. Components
// receive a *Logger explicitly; a nil logger is valid and discards output, so
// parsing code never depends on logging for correctness.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level controls which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var tags = map[Level]string{
	LevelDebug: lipgloss.NewStyle().Faint(true).Render("[DEBUG]"),
	LevelInfo:  lipgloss.NewStyle().Bold(true).Render("[INFO]"),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("[WARN]"),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("[ERROR]"),
}

// Logger writes leveled, printf-style messages to a single writer.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// New returns a Logger writing to w at the given minimum level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{w: w, level: level}
}

// Default returns a stderr logger at Info level.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, format, args...) }

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, args ...any) { l.logf(LevelWarn, format, args...) }

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *Logger) logf(level Level, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s\n", tags[level], fmt.Sprintf(format, args...))
}
