package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel is the minimum severity a Logger writes.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	// LogLevelOff writes nothing.
	LogLevelOff
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "OFF"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a logging.level value to a LogLevel. Unknown names
// are info; the config layer rejects them before they get here.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	case "off":
		return LogLevelOff
	}
	return LogLevelInfo
}

// field is one key=value pair appended to every line.
type field struct {
	key   string
	value any
}

// Logger writes one timestamped line per message:
//
//	2026-01-02T03:04:05.006 [WARN] termpaint: flush failed {component=renderer}
//
// Loggers derived with WithComponent or WithField share the parent's
// writer and lock, so lines from the renderer, style scripts and the
// event loop never interleave.
type Logger struct {
	mu     *sync.Mutex
	out    io.Writer
	level  LogLevel
	prefix string
	fields []field
	now    func() time.Time
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level LogLevel
	// Output defaults to os.Stderr.
	Output io.Writer
	Prefix string
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: LogLevelInfo, Output: os.Stderr, Prefix: "termpaint"}
}

// NewLogger creates a Logger.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		mu:     &sync.Mutex{},
		out:    cfg.Output,
		level:  cfg.Level,
		prefix: cfg.Prefix,
		now:    time.Now,
	}
}

// NullLogger discards everything.
var NullLogger = NewLogger(LoggerConfig{Level: LogLevelOff, Output: io.Discard})

// WithField returns a child logger that appends key=value to its lines.
// Fields print in the order they were added.
func (l *Logger) WithField(key string, value any) *Logger {
	child := *l
	child.fields = append(l.fields[:len(l.fields):len(l.fields)], field{key, value})
	return &child
}

// WithComponent tags lines with the subsystem that wrote them.
func (l *Logger) WithComponent(name string) *Logger {
	return l.WithField("component", name)
}

// Level returns the minimum level written.
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) Debug(msg string, args ...any) { l.write(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(LogLevelError, msg, args) }

func (l *Logger) write(level LogLevel, msg string, args []any) {
	if level < l.level || l.level == LogLevelOff {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(l.now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&b, " [%s] ", level)
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	for i, f := range l.fields {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		fmt.Fprintf(&b, "%s%s=%v", sep, f.key, f.value)
	}
	if len(l.fields) > 0 {
		b.WriteByte('}')
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, b.String())
}
