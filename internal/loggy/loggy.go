// Package loggy wraps log/slog with a process-wide logger and source annotations
package loggy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Config configures the logger
type Config struct {
	Level      slog.Level
	Format     string // "json" or "text"
	Output     string // "stdout", "stderr", or a file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// DefaultConfig returns a default configuration for the logger
func DefaultConfig() Config {
	return Config{
		Level:      slog.LevelInfo,
		Format:     "text",
		Output:     "stderr",
		AddSource:  false,
		TimeFormat: time.RFC3339,
	}
}

// Logger wraps slog.Logger with additional context
type Logger struct {
	slogger   *slog.Logger
	addSource bool
}

// Init initializes the global logger. Only the first call has any effect.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		var output io.Writer
		output, err = openOutput(cfg.Output)
		if err != nil {
			return
		}
		globalLogger = New(output, cfg)
	})

	// If there was an error initializing, create a noop logger as fallback
	if err != nil {
		NewNoopLogger()
	}

	return err
}

func openOutput(target string) (io.Writer, error) {
	switch target {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(target, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// New builds a logger writing to w without touching the global logger
func New(w io.Writer, cfg Config) *Logger {
	handlerOpts := &slog.HandlerOptions{Level: cfg.Level}

	if cfg.TimeFormat != "" {
		handlerOpts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(a.Key, t.Format(cfg.TimeFormat))
				}
			}
			return a
		}
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{slogger: slog.New(handler), addSource: cfg.AddSource}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// NewNoopLogger creates and sets a logger that discards all output, useful for testing
func NewNoopLogger() *Logger {
	noopLogger := New(io.Discard, Config{Level: slog.LevelError})
	SetGlobalLogger(noopLogger)
	return noopLogger
}

// getCaller returns the source file and line number of the caller,
// skipping a specified number of frames to identify the actual calling code
func getCaller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "unknown", 0
	}
	return file, line
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	if globalLogger != nil {
		file, line := getCaller(2)
		globalLogger.logWithSource(slog.LevelDebug, file, line, msg, args...)
	}
}

// Info logs at info level
func Info(msg string, args ...any) {
	if globalLogger != nil {
		file, line := getCaller(2)
		globalLogger.logWithSource(slog.LevelInfo, file, line, msg, args...)
	}
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	if globalLogger != nil {
		file, line := getCaller(2)
		globalLogger.logWithSource(slog.LevelWarn, file, line, msg, args...)
	}
}

// Error logs at error level
func Error(msg string, args ...any) {
	if globalLogger != nil {
		file, line := getCaller(2)
		globalLogger.logWithSource(slog.LevelError, file, line, msg, args...)
	}
}

// With returns a new Logger with the given attributes
func With(args ...any) *Logger {
	if globalLogger == nil {
		return nil
	}
	return globalLogger.With(args...)
}

func (l *Logger) logWithSource(level slog.Level, file string, line int, msg string, args ...any) {
	if l == nil || l.slogger == nil {
		return
	}

	ctx := context.Background()
	if !l.slogger.Enabled(ctx, level) {
		return
	}

	r := slog.NewRecord(time.Now(), level, msg, 0)
	if l.addSource {
		r.AddAttrs(slog.String("source", fmt.Sprintf("%s:%d", file, line)))
	}
	r.Add(args...)

	_ = l.slogger.Handler().Handle(ctx, r)
}

func (l *Logger) Debug(msg string, args ...any) {
	file, line := getCaller(2)
	l.logWithSource(slog.LevelDebug, file, line, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	file, line := getCaller(2)
	l.logWithSource(slog.LevelInfo, file, line, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	file, line := getCaller(2)
	l.logWithSource(slog.LevelWarn, file, line, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	file, line := getCaller(2)
	l.logWithSource(slog.LevelError, file, line, msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.slogger == nil {
		return l
	}
	return &Logger{
		slogger:   l.slogger.With(args...),
		addSource: l.addSource,
	}
}

// WithError adds error details to a logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	return l.With(
		"error", err.Error(),
		"error_type", fmt.Sprintf("%T", err),
	)
}
