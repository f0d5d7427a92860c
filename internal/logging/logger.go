// Package logging provides the leveled key/value logger used across the
// platform simulator. One line per entry:
//
//	15:04:05.000 INFO  ethernet: remote link restored backlog_bytes=51
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

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
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel maps a configuration string ("debug", "info", "warn",
// "error") to a Level. Unknown strings map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config controls a logger's threshold and destination.
type Config struct {
	Level  Level
	Output io.Writer
}

// DefaultConfig logs at info level to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// core is the output state shared by a logger and all loggers derived
// from it with WithComponent.
type core struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// Logger writes timestamped, level-tagged lines with trailing key=value
// pairs. Derive per-subsystem loggers with WithComponent; they share one
// writer and threshold.
type Logger struct {
	core      *core
	component string
}

// NewLogger creates a logger from config. A nil config means defaults.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{core: &core{out: out, level: config.Level}}
}

// WithComponent returns a logger that prefixes every line with name,
// sharing the parent's writer and level threshold.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{core: l.core, component: name}
}

func (l *Logger) write(level Level, msg string, args []any) {
	if level < l.core.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05.000"))
	fmt.Fprintf(&b, " %-5s ", level)
	if l.component != "" {
		b.WriteString(l.component)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	// Trailing key=value pairs; a dangling key without a value is dropped.
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	b.WriteByte('\n')

	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	io.WriteString(l.core.out, b.String())
}

func (l *Logger) Debug(msg string, args ...any) {
	l.write(LevelDebug, msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	l.write(LevelInfo, msg, args)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.write(LevelWarn, msg, args)
}

func (l *Logger) Error(msg string, args ...any) {
	l.write(LevelError, msg, args)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.write(LevelDebug, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Infof(format string, args ...any) {
	l.write(LevelInfo, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.write(LevelWarn, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.write(LevelError, fmt.Sprintf(format, args...), nil)
}
