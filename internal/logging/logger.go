// Package logging is the console's structured logger: log/slog written to a
// rotated file, or discarded when no file is configured. The terminal is owned
// by the UI, so nothing is ever logged to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFormat is the on-disk encoding of log lines
type LogFormat string

const (
	FormatText LogFormat = "text"
	FormatJSON LogFormat = "json"
)

// Config controls where and how the console logs
type Config struct {
	// FilePath is the log file; empty disables logging
	FilePath   string
	Level      slog.Level
	Format     LogFormat
	MaxSizeMB  int
	MaxBackups int
}

// Logger wraps slog.Logger and owns the rotating writer behind it
type Logger struct {
	logger *slog.Logger
	closer io.Closer
	noop   bool
}

var (
	mu      sync.RWMutex
	current *Logger

	discard = &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil)), noop: true}
)

// New builds a logger for cfg. An empty FilePath returns the discarding logger.
func New(cfg Config) (*Logger, error) {
	if cfg.FilePath == "" {
		return discard, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	return &Logger{logger: slog.New(handler), closer: writer}, nil
}

// Init builds the process logger from cfg and installs it
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	current = l
	mu.Unlock()
	return nil
}

// Get returns the process logger, discarding until Init succeeds
func Get() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return discard
	}
	return current
}

// Shutdown closes the log file of the process logger
func Shutdown() error {
	mu.Lock()
	l := current
	current = nil
	mu.Unlock()
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Component returns a child logger tagged with a component name
func Component(name string) *Logger {
	return Get().With("component", name)
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a child logger carrying args on every line
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), closer: l.closer, noop: l.noop}
}

// Slog exposes the underlying logger for libraries that accept one
func (l *Logger) Slog() *slog.Logger { return l.logger }

// IsEnabled is false for the discarding logger
func (l *Logger) IsEnabled() bool {
	return !l.noop
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// IsEnabled reports whether the process logger writes anywhere
func IsEnabled() bool {
	return Get().IsEnabled()
}

// ParseLevel converts debug/info/warn/error into a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// ParseFormat converts text/json into a LogFormat
func ParseFormat(format string) (LogFormat, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", format)
}
