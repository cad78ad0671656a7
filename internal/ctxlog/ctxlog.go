// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type loggerKey struct{}

const (
	// WorkerKey is the attribute naming the worker that emitted a log line.
	WorkerKey = "worker"
	// NameKey is the attribute naming the process logger.
	NameKey = "logger"
	// LogLevelEnvSuffix is appended to the upper-cased executable name to form the log level variable.
	LogLevelEnvSuffix = "_LOG_LEVEL"
)

// LevelVar is the level shared by every logger built by this package.
var LevelVar = &slog.LevelVar{}

// Format selects the output format of the process logger.
type Format int

const (
	// FormatPretty is a human readable, optionally coloured, console format.
	FormatPretty Format = iota
	// FormatJSON is one JSON object per line.
	FormatJSON
)

// ErrUnknownFormat is returned by ParseFormat for names other than pretty and json.
var ErrUnknownFormat = errors.New("unknown log format")

// String returns the name accepted by ParseFormat.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "pretty"
}

// ParseFormat maps "pretty" and "json", in any case, to a Format. Empty is FormatPretty.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatPretty, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Option configures the process logger built by Initializer.Init.
type Option func(*options)

type options struct {
	name   string
	format Format
	writer io.Writer
	colour bool
}

// WithName sets the logger name, recorded on every line under NameKey.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithFormat selects the output format.
func WithFormat(f Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithWriter sets the destination of log output. The default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.writer = w
	}
}

// WithoutColour disables ANSI colours in the pretty format.
func WithoutColour() Option {
	return func(o *options) {
		o.colour = false
	}
}

// Initializer builds a logger at most once. Later calls to Init return the first logger and
// ignore their options, so a sink is never registered twice.
type Initializer struct {
	once   sync.Once
	logger *slog.Logger
}

// Init builds the logger on first call and returns it on every call.
func (i *Initializer) Init(opts ...Option) *slog.Logger {
	i.once.Do(func() {
		o := &options{
			name:   executableName(),
			writer: os.Stdout,
			colour: true,
		}
		for _, opt := range opts {
			opt(o)
		}

		var h slog.Handler

		switch o.format {
		case FormatJSON:
			h = slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: LevelVar})
		default:
			popts := []PrettyOption{WithDestinationWriter(o.writer)}
			if o.colour {
				popts = append(popts, WithAutoColour())
			}

			h = NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar}, popts...)
		}

		i.logger = slog.New(h).With(NameKey, o.name)
	})

	return i.logger
}

var process Initializer

// Init builds the process-wide logger exactly once and returns it.
// The level is read from the environment variable <EXECUTABLE>_LOG_LEVEL.
func Init(opts ...Option) *slog.Logger {
	return process.Init(opts...)
}

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New creates a new context with the given logger.
// If logger is nil, it uses the process logger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = Init()
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the process logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return Init()
	}

	return logger
}

// WithWorker returns a context whose logger tags every line with the worker name.
func WithWorker(ctx context.Context, name string) context.Context {
	return New(ctx, Logger(ctx).With(WorkerKey, name))
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

func executableName() string {
	exec, _ := os.Executable()
	exec = filepath.Base(exec)

	return strings.TrimSuffix(exec, ".exe")
}

// LogLevelEnvVar returns the name of the variable holding the log level for the named executable.
func LogLevelEnvVar(executable string) string {
	return strings.ToUpper(executable) + LogLevelEnvSuffix
}

func logLevelFromEnv() slog.Level {
	return parseLevel(os.Getenv(LogLevelEnvVar(executableName())))
}

// parseLevel maps DEBUG, INFO, WARN and ERROR to slog levels; anything else is INFO.
func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
