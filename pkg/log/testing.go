package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// TestLogger captures log output in memory for inspection in tests.
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields []any
}

// NewTestLogger creates a TestLogger with the given minimum level and
// returns it together with the buffer holding captured output.
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{buffer: buffer, level: level}, buffer
}

func (l *TestLogger) log(level Level, msg string, fields []any) {
	if level < l.level {
		return
	}
	var sb strings.Builder
	sb.WriteString(level.String())
	sb.WriteString(" ")
	sb.WriteString(msg)
	all := append(append([]any{}, l.fields...), fields...)
	for i := 0; i+1 < len(all); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", all[i], all[i+1])
	}
	sb.WriteString("\n")
	l.buffer.WriteString(sb.String())
}

// Debug logs a debug-level message.
func (l *TestLogger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields) }

// Info logs an info-level message.
func (l *TestLogger) Info(msg string, fields ...any) { l.log(LevelInfo, msg, fields) }

// Warn logs a warning-level message.
func (l *TestLogger) Warn(msg string, fields ...any) { l.log(LevelWarn, msg, fields) }

// Error logs an error-level message.
func (l *TestLogger) Error(msg string, fields ...any) { l.log(LevelError, msg, fields) }

// With returns a logger sharing the same buffer with extra fields attached.
func (l *TestLogger) With(fields ...any) Logger {
	return &TestLogger{
		buffer: l.buffer,
		level:  l.level,
		fields: append(append([]any{}, l.fields...), fields...),
	}
}

// Enabled reports whether the logger emits records at the given level.
func (l *TestLogger) Enabled(_ context.Context, level Level) bool {
	return level >= l.level
}

// Contains reports whether the captured output contains the substring.
func (l *TestLogger) Contains(s string) bool {
	return strings.Contains(l.buffer.String(), s)
}

// NopLogger discards everything. Useful as a default in constructors.
type NopLogger struct{}

// Debug discards the message.
func (NopLogger) Debug(string, ...any) {}

// Info discards the message.
func (NopLogger) Info(string, ...any) {}

// Warn discards the message.
func (NopLogger) Warn(string, ...any) {}

// Error discards the message.
func (NopLogger) Error(string, ...any) {}

// With returns the logger unchanged.
func (n NopLogger) With(...any) Logger { return n }

// Enabled always reports false.
func (NopLogger) Enabled(context.Context, Level) bool { return false }
