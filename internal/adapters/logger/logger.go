// Package logger implements a logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/firedrake-install/internal/ui/output"
)

// Logger implements ports.Logger using log/slog.
// Terminal output goes through PrettyHandler; an optional log file receives
// every record, debug included, as plain text.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
	file     io.Writer
	level    *slog.LevelVar
	profile  func() termenv.Profile
}

// New creates a new Logger instance.
func New() ports.Logger {
	l := &Logger{
		output:  os.Stderr,
		level:   &slog.LevelVar{},
		profile: output.ColorProfile,
	}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// SetOutput updates the logger's terminal output destination.
// If w is nil, os.Stderr is used as the default.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty terminal logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetLinear selects plain ANSI colors for non-interactive logs such as CI.
func (l *Logger) SetLinear(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.profile = output.ColorProfile
	if enable {
		l.profile = output.ColorProfileANSI
	}
	l.rebuild()
}

// SetVerbose lowers the terminal level to debug so tool output is shown.
func (l *Logger) SetVerbose(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// SetLogFile mirrors every record into w. A nil writer disables the mirror.
func (l *Logger) SetLogFile(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.file = w
	l.rebuild()
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(l.output, &slog.HandlerOptions{Level: l.level})
	} else {
		handler = NewPrettyHandlerWithProfile(l.output, &slog.HandlerOptions{Level: l.level}, l.profile)
	}

	if l.file != nil {
		handler = teeHandler{
			handler,
			slog.NewTextHandler(l.file, &slog.HandlerOptions{Level: slog.LevelDebug}),
		}
	}
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Debug logs a message shown only in verbose mode and in the log file.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Error logs an error with its full cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
