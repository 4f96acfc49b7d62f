// Package logging builds the structured logger used by the command-line
// driver.
package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with key/value convenience methods.
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// NewWithWriter creates a logger with custom writer
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &Logger{zl: zl}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// applyFields adds key/value pairs to an event. Error values are rendered
// with their message.
func applyFields(e *zerolog.Event, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		if err, ok := fields[i+1].(error); ok {
			e.AnErr(key, err)
			continue
		}
		e.Interface(key, fields[i+1])
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...any) {
	e := l.zl.Debug()
	applyFields(e, fields)
	e.Msg(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...any) {
	e := l.zl.Info()
	applyFields(e, fields)
	e.Msg(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...any) {
	e := l.zl.Warn()
	applyFields(e, fields)
	e.Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...any) {
	e := l.zl.Error()
	applyFields(e, fields)
	e.Msg(msg)
}

// With creates a child logger with additional fields
func (l *Logger) With(fields ...any) *Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(fields[i]), fields[i+1])
	}
	return &Logger{zl: ctx.Logger(), closer: l.closer}
}

// Zerolog exposes the underlying logger for libraries that take one directly.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Close releases the log file, if the logger writes to one.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
