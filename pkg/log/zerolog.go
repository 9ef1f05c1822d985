package log

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ZerologProvider is a LoggerProvider backed by zerolog.
type ZerologProvider struct {
	root  zerolog.Logger
	level zerolog.Level
}

// NewZerologProvider creates a provider writing console output to stderr.
func NewZerologProvider(level Level) *ZerologProvider {
	return NewZerologProviderTo(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

// NewZerologProviderTo creates a provider writing to w. Pass a plain
// writer for JSON output.
func NewZerologProviderTo(w io.Writer, level Level) *ZerologProvider {
	zl := toZerologLevel(level)
	root := zerolog.New(w).Level(zl).With().Timestamp().Logger()
	return &ZerologProvider{root: root, level: zl}
}

// GetLogger returns the default logger instance.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{zl: p.root}
}

// GetLoggerWithName returns a logger tagged with a component name.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{zl: p.root.With().Str(ComponentKey, name).Logger()}
}

// SetLevel sets the minimum level for loggers created by this provider.
func (p *ZerologProvider) SetLevel(level Level) {
	p.level = toZerologLevel(level)
	p.root = p.root.Level(p.level)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	event := l.zl.Error()
	// A leading error value gets special treatment: attach it and any
	// stack trace recorded by cockroachdb/errors.
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			if st := stacktrace(err); st != "" {
				event = event.Str(StacktraceKey, st)
			}
			fields = fields[1:]
		}
	}
	emit(event, msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

func emit(event *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			event = event.Object(key, v)
		case error:
			event = event.AnErr(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}

// stacktrace extracts the stack trace recorded by cockroachdb/errors,
// if any.
func stacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
