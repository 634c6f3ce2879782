// Package logging provides a level-gated logger. The threshold is fixed when
// the logger is built: methods below it are bound to a no-op at construction
// instead of being checked on every call.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level orders severities from least to most verbose.
type Level int

const (
	LevelError Level = iota + 2
	LevelWarn
	LevelInfo
	LevelDebug
	LevelVerbose
)

// slogVerbose sits below slog's debug level so handlers keep it distinct.
const slogVerbose = slog.LevelDebug - 4

var levelNames = map[string]Level{
	"error":   LevelError,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"info":    LevelInfo,
	"debug":   LevelDebug,
	"verbose": LevelVerbose,
}

// ParseLevel maps a config/flag value onto a Level.
func ParseLevel(s string) (Level, error) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}

// Logger is the logging surface every component receives explicitly.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Verbose(msg string, args ...any)
	With(args ...any) Logger
}

type logFunc func(msg string, args ...any)

func noop(string, ...any) {}

type logger struct {
	base  *slog.Logger
	level Level

	errorFn   logFunc
	warnFn    logFunc
	infoFn    logFunc
	debugFn   logFunc
	verboseFn logFunc
}

// New builds a logger writing to w (os.Stderr when nil) in "text" or "json".
func New(w io.Writer, level Level, format string) Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level: slogVerbose,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slogVerbose {
					a.Value = slog.StringValue("VERBOSE")
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return bind(slog.New(handler), level)
}

// Discard returns a logger that drops everything.
func Discard() Logger {
	return bind(slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
}

func bind(base *slog.Logger, level Level) *logger {
	l := &logger{base: base, level: level}
	l.errorFn = l.at(LevelError, slog.LevelError)
	l.warnFn = l.at(LevelWarn, slog.LevelWarn)
	l.infoFn = l.at(LevelInfo, slog.LevelInfo)
	l.debugFn = l.at(LevelDebug, slog.LevelDebug)
	l.verboseFn = l.at(LevelVerbose, slogVerbose)
	return l
}

func (l *logger) at(threshold Level, sl slog.Level) logFunc {
	if l.level < threshold {
		return noop
	}
	base := l.base
	return func(msg string, args ...any) {
		base.Log(context.Background(), sl, msg, args...)
	}
}

func (l *logger) Error(msg string, args ...any)   { l.errorFn(msg, args...) }
func (l *logger) Warn(msg string, args ...any)    { l.warnFn(msg, args...) }
func (l *logger) Info(msg string, args ...any)    { l.infoFn(msg, args...) }
func (l *logger) Debug(msg string, args ...any)   { l.debugFn(msg, args...) }
func (l *logger) Verbose(msg string, args ...any) { l.verboseFn(msg, args...) }

// With returns a child logger carrying extra attributes at the same level.
func (l *logger) With(args ...any) Logger {
	return bind(l.base.With(args...), l.level)
}

// Component tags a logger with the emitting component.
func Component(l Logger, name string) Logger {
	return l.With(slog.String("component", name))
}
