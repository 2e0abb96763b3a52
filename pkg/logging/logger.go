package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level is a log severity level.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the level name used in log output.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to a Level. Unknown names map to LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger is the logging interface used across the server.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
}

// DefaultLogger writes leveled lines to a single writer.
type DefaultLogger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
}

// NewDefaultLogger creates a logger writing to stderr.
//
// Stderr rather than stdout: when the MCP transport is stdio, stdout
// carries the protocol stream and must stay clean.
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		output: os.Stderr,
	}
}

// NewDefaultLoggerWithOutput creates a logger writing to the given writer.
func NewDefaultLoggerWithOutput(level Level, output io.Writer) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		output: output,
	}
}

// SetLevel changes the minimum emitted level.
func (l *DefaultLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

func (l *DefaultLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

func (l *DefaultLogger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > l.level {
		return
	}
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.output, "[%s] %s\n", level.String(), message)
}

// NoOpLogger discards everything. Used in tests.
type NoOpLogger struct{}

func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (*NoOpLogger) Debug(string, ...interface{}) {}
func (*NoOpLogger) Info(string, ...interface{})  {}
func (*NoOpLogger) Warn(string, ...interface{})  {}
func (*NoOpLogger) Error(string, ...interface{}) {}
func (*NoOpLogger) SetLevel(Level)               {}
