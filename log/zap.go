package log

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type (
	Level  = zapcore.Level
	Field  = zap.Field
	Option = zap.Option
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

var (
	WithCaller    = zap.WithCaller
	AddCallerSkip = zap.AddCallerSkip

	Any        = zap.Any
	Bool       = zap.Bool
	String     = zap.String
	Strings    = zap.Strings
	Int        = zap.Int
	Int32      = zap.Int32
	Float32    = zap.Float32
	Float64    = zap.Float64
	Float64s   = zap.Float64s
	Duration   = zap.Duration
	ErrorField = zap.Error
)

type Logger struct {
	l     *zap.Logger
	level Level
}

// New creates a json logger writing to w
func New(w io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return newLogger(zapcore.NewJSONEncoder(cfg), w, level, opts...)
}

// DevLogger creates a console logger writing to w
func DevLogger(w io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return newLogger(zapcore.NewConsoleEncoder(cfg), w, level, opts...)
}

func newLogger(enc zapcore.Encoder, w io.Writer, level Level, opts ...Option) *Logger {
	if w == nil {
		w = os.Stderr
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return &Logger{l: zap.New(core, opts...), level: level}
}

// WithFilter returns a logger which only emits entries matching the zapfilter
// rules (for example "*:* -debug:racestints*").
func (l *Logger) WithFilter(rules string) (*Logger, error) {
	if rules == "" {
		return l, nil
	}
	filter, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, err
	}
	wrapped := l.l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(c, filter)
	}))
	return &Logger{l: wrapped, level: l.level}, nil
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{l: l.l.With(fields...), level: l.level}
}

func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) Debug(msg string, fields ...Field) {
	l.l.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...Field) {
	l.l.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	l.l.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...Field) {
	l.l.Error(msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...Field) {
	l.l.Fatal(msg, fields...)
}

func (l *Logger) Sync() error {
	return l.l.Sync()
}

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

var std = New(os.Stderr, InfoLevel)

func Default() *Logger {
	return std
}

// ResetDefault replaces the logger used by the package level functions.
// not safe for concurrent use
func ResetDefault(l *Logger) {
	std = l
}

func Debug(msg string, fields ...Field) { std.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { std.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { std.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { std.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { std.Fatal(msg, fields...) }

type ctxLoggerKey struct{}

func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}

// GetFromContext returns the logger stored in ctx or the default logger
func GetFromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLoggerKey{}).(*Logger); ok {
			return l
		}
	}
	return Default()
}
