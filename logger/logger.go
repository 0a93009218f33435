package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel defines the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelNone  LogLevel = "none"
)

// tagKey is the record attribute carrying a per-logger tag
const tagKey = "tag"

var (
	currentLogTag string
	logTagMutex   sync.RWMutex
)

// Logger is the interface for logging during scanning and generation
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	// SetTag sets the tag printed in front of this logger's messages
	SetTag(tag string)
}

// ParseLogLevel converts a string into a LogLevel, defaulting to info
func ParseLogLevel(s string) LogLevel {
	switch l := LogLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelNone:
		return l
	}
	return LogLevelInfo
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelNone:
		// Set to a very high level to suppress all logs
		return slog.Level(1000)
	}
	return slog.LevelInfo
}

// simpleHandler is a simple log handler that outputs standard log format
type simpleHandler struct {
	level slog.Level
	w     io.Writer
	mu    *sync.Mutex
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *simpleHandler) Handle(ctx context.Context, r slog.Record) error {
	timeStr := r.Time.Format("2006/01/02 15:04:05")
	level := r.Level.String()

	tag := ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = a.Value.String()
			return false
		}
		return true
	})
	if tag == "" {
		tag = GetLogTag()
	}
	if tag == "" {
		tag = "CORE"
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.w, "%s [%s] %s %s\n", timeStr, tag, level, r.Message)
	return err
}

func (h *simpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(name string) slog.Handler {
	return h
}

// SetupLogger configures the global logger based on the log level
func SetupLogger(level LogLevel) {
	SetupLoggerWithWriter(level, os.Stderr)
}

// SetupLoggerWithWriter is SetupLogger writing to w
func SetupLoggerWithWriter(level LogLevel, w io.Writer) {
	handler := &simpleHandler{
		level: level.slogLevel(),
		w:     w,
		mu:    &sync.Mutex{},
	}
	slog.SetDefault(slog.New(handler))

	// Also set the standard log package to use the same output
	log.SetOutput(w)
	log.SetFlags(0)
}

// SetLogTag sets the tag used by loggers without their own tag
func SetLogTag(tag string) {
	logTagMutex.Lock()
	currentLogTag = tag
	logTagMutex.Unlock()
}

// GetLogTag returns the current global log tag
func GetLogTag() string {
	logTagMutex.RLock()
	defer logTagMutex.RUnlock()
	return currentLogTag
}

// DefaultLogger implements Logger using slog
type DefaultLogger struct {
	tag string
}

func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// NewTaggedLogger returns a logger printing tag in front of its messages
func NewTaggedLogger(tag string) Logger {
	return &DefaultLogger{tag: tag}
}

func (l *DefaultLogger) SetTag(tag string) {
	l.tag = tag
}

func (l *DefaultLogger) log(level slog.Level, msg string) {
	if l.tag == "" {
		slog.Log(context.Background(), level, msg)
		return
	}
	slog.Log(context.Background(), level, msg, tagKey, l.tag)
}

func (l *DefaultLogger) Debug(msg string) {
	l.log(slog.LevelDebug, msg)
}

func (l *DefaultLogger) Info(msg string) {
	l.log(slog.LevelInfo, msg)
}

func (l *DefaultLogger) Warn(msg string) {
	l.log(slog.LevelWarn, msg)
}

func (l *DefaultLogger) Error(msg string) {
	l.log(slog.LevelError, msg)
}

// NopLogger discards every message
type NopLogger struct{}

func (NopLogger) Debug(string)  {}
func (NopLogger) Info(string)   {}
func (NopLogger) Warn(string)   {}
func (NopLogger) Error(string)  {}
func (NopLogger) SetTag(string) {}
