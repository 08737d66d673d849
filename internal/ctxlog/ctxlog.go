// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type loggerKey struct{}

const levelEnvSuffix = "_LOG_LEVEL"

// LevelVar is the level shared by every logger built by this package.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is used when the context carries no logger.
var DefaultLogger = NewPrettyLogger(os.Stderr, WithAutoColour())

func init() {
	LevelVar.Set(levelFromString(os.Getenv(LevelEnvVar())))
}

// NewPrettyLogger returns a logger that writes human readable records to w.
func NewPrettyLogger(w io.Writer, options ...Option) *slog.Logger {
	options = append([]Option{WithDestinationWriter(w)}, options...)

	return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar}, options...))
}

// NewJSONLogger returns a logger that writes one JSON object per record to w.
func NewJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelVar}))
}

// New returns a copy of ctx carrying logger, or DefaultLogger if logger is nil.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
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

// LevelEnvVar returns the name of the variable that sets the log level for the
// running executable.
func LevelEnvVar() string {
	exe, _ := os.Executable()

	return envVarFor(exe)
}

func envVarFor(exe string) string {
	exe = filepath.Base(exe)
	if ext := filepath.Ext(exe); strings.EqualFold(ext, ".exe") {
		exe = strings.TrimSuffix(exe, ext)
	}

	return strings.ToUpper(exe) + levelEnvSuffix
}

func levelFromString(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
