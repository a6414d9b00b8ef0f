// Package logger owns the process wide zap logger of the api, the worker and the migrations.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is stamped at build time with -ldflags "-X github.com/iac-studio/converge/pkg/logger.Version=...".
var Version = "dev"

var global *zap.Logger

type options struct {
	service string
	version string
	out     zapcore.WriteSyncer
}

type Option func(*options)

// WithService adds the service and version fields to every entry.
func WithService(name string) Option {
	return func(o *options) { o.service = name }
}

// WithVersion overrides the build version reported in the version field.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithOutput writes entries to w instead of stdout.
func WithOutput(w zapcore.WriteSyncer) Option {
	return func(o *options) { o.out = w }
}

// Init builds the global logger.
// level: debug, info, warn, error, dpanic, panic, fatal
// format: json, console
func Init(level, format string, opts ...Option) (*zap.Logger, error) {
	o := options{version: Version, out: zapcore.AddSync(os.Stdout)}
	for _, opt := range opts {
		opt(&o)
	}

	lvl := zap.InfoLevel
	if err := lvl.Set(strings.ToLower(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	enc, err := encoder(format)
	if err != nil {
		return nil, err
	}

	l := zap.New(zapcore.NewCore(enc, o.out, lvl), zap.AddCaller(), zap.AddCallerSkip(1))
	if o.service != "" {
		l = l.With(zap.String("service", o.service), zap.String("version", o.version))
	}
	global = l
	return l, nil
}

func encoder(format string) (zapcore.Encoder, error) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder

	switch strings.ToLower(format) {
	case "json":
		return zapcore.NewJSONEncoder(cfg), nil
	case "console":
		return zapcore.NewConsoleEncoder(cfg), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

// L returns the global logger. Panics if Init was never called.
func L() *zap.Logger {
	if global == nil {
		panic("logger not initialized: call logger.Init first")
	}
	return global
}

// Sync flushes any buffered log entries.
func Sync() {
	if global != nil {
		_ = global.Sync()
	}
}
