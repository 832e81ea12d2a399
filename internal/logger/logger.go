package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey struct{}

var (
	//nolint:gochecknoglobals // Shared by every command.
	global *zap.SugaredLogger
	//nolint:gochecknoglobals // Adjusted by --verbose and the config file.
	defaultLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() { //nolint:gochecknoinits // Logging must work before flags are parsed.
	SetLogger(New(defaultLevel, os.Stderr))
}

// New creates a console *zap.SugaredLogger writing to w.
// A nil level uses the shared default level; a nil writer uses os.Stderr.
func New(level zapcore.LevelEnabler, w io.Writer, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = defaultLevel
	}
	if w == nil {
		w = os.Stderr
	}

	//nolint:exhaustruct // Default encoder values are fine.
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)

	return zap.New(core, options...).Sugar()
}

// ParseLogLevel converts string input to a zap log level.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// Level returns the current level of the global logger.
func Level() zapcore.Level {
	return defaultLevel.Level()
}

// SetLevel sets the level of the global logger.
func SetLevel(level zapcore.Level) {
	defaultLevel.SetLevel(level)
}

// Logger returns the global logger.
func Logger() *zap.SugaredLogger {
	return global
}

// SetLogger replaces the global logger. Not safe for concurrent use.
func SetLogger(l *zap.SugaredLogger) {
	global = l
}

// ToContext returns a copy of ctx carrying l.
func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or the global logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*zap.SugaredLogger); ok && l != nil {
			return l
		}
	}
	return global
}

// Sync flushes the logger stored in ctx, or the global logger.
func Sync(ctx context.Context) {
	// Sync on a terminal stderr returns EINVAL on some platforms.
	_ = FromContext(ctx).Sync()
}

// Debugf writes a formatted debug message using the logger from ctx.
func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Debugf(format, args...)
}

// DebugKV writes a debug message with key-value pairs using the logger from ctx.
func DebugKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Debugw(message, kvs...)
}

// Warnf writes a formatted warning message using the logger from ctx.
func Warnf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Warnf(format, args...)
}

// WarnKV writes a warning with key-value pairs using the logger from ctx.
func WarnKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Warnw(message, kvs...)
}

// Error writes an error message using the logger from ctx.
func Error(ctx context.Context, args ...any) {
	FromContext(ctx).Error(args...)
}

// ErrorKV writes an error with key-value pairs using the logger from ctx.
func ErrorKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Errorw(message, kvs...)
}
