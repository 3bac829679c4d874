// Package logger provides levelled stderr logging for pagesplit.
// Warnings and errors are always printed; info and debug messages
// appear once verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level orders log messages by severity.
type Level int

// Log levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed before each message.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu        sync.RWMutex
	threshold           = LevelWarn
	output    io.Writer = os.Stderr
)

// SetLevel sets the minimum level that is printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	threshold = l
}

// CurrentLevel returns the minimum level that is printed.
func CurrentLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return threshold
}

// SetVerbose lowers the threshold to debug, or restores the default.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelWarn)
}

// IsVerbose returns true if info messages are printed.
func IsVerbose() bool {
	return CurrentLevel() <= LevelInfo
}

// SetOutput sets the output writer.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < threshold {
		return
	}
	fmt.Fprintf(output, "["+l.String()+"] "+format+"\n", args...)
}

// Debug prints a message at debug level.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info prints a message at info level.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn prints a message at warn level.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error prints a message at error level.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a section header when verbose.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if threshold <= LevelInfo {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
