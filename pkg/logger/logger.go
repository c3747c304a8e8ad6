package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	LevelCritical = slog.Level(12)
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	// BusinessError records an expected denial (validation, permissions,
	// missing rows) at warn level.
	BusinessError(message string, err error, args ...any)
	// InternalError records a failure the caller cannot fix at error level.
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

// Options select the output and verbosity. Empty fields fall back to JSON at
// info level, or debug level when Env is "development".
type Options struct {
	Output io.Writer
	Env    string
	Level  string
	Format string
}

type slogLogger struct {
	base *slog.Logger
}

func New(opts Options) Logger {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	handlerOptions := &slog.HandlerOptions{
		Level:       parseLevel(opts.Level, normalize(opts.Env)),
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler = slog.NewJSONHandler(output, handlerOptions)
	if normalize(opts.Format) == "text" {
		handler = slog.NewTextHandler(output, handlerOptions)
	}
	return &slogLogger{base: slog.New(handler)}
}

// NewFromEnv is used before configuration is loaded.
func NewFromEnv() Logger {
	return New(Options{
		Env:    os.Getenv("ENV"),
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

func NewNop() Logger {
	return &slogLogger{base: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelCritical + 1}))}
}

func (l *slogLogger) Debug(message string, args ...any) {
	l.log(slog.LevelDebug, message, args)
}

func (l *slogLogger) Info(message string, args ...any) {
	l.log(slog.LevelInfo, message, args)
}

func (l *slogLogger) Warn(message string, args ...any) {
	l.log(slog.LevelWarn, message, args)
}

func (l *slogLogger) Error(message string, args ...any) {
	l.log(slog.LevelError, message, args)
}

func (l *slogLogger) Critical(message string, args ...any) {
	l.log(LevelCritical, message, args)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

func (l *slogLogger) log(level slog.Level, message string, args []any) {
	l.base.Log(context.Background(), level, message, args...)
}

func (l *slogLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.log(level, message, append([]any{"err", err.Error()}, args...))
}

var levels = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

func parseLevel(value, env string) slog.Level {
	value = normalize(value)
	if level, ok := levels[value]; ok && value != "info" {
		return level
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
