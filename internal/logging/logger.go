// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zap logger used as careerdesk's diagnostic
// channel. The TUI owns stdout, so interactive commands log to a file;
// the stub server logs to stdout.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stdout is the Output value that sends log lines to standard output.
const Stdout = "stdout"

// Level is the process-wide log level. It can be changed at runtime,
// e.g. after a config reload.
var Level = zap.NewAtomicLevel()

// Options selects level and destination.
type Options struct {
	// Level is a zap level name (debug, info, warn, error).
	Level string
	// Output is Stdout or a file path. Parent directories are created.
	Output string
}

// New builds a JSON logger, installs it as the zap global and returns it.
func New(opts Options) (*zap.Logger, error) {
	if err := SetLevel(opts.Level); err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = Stdout
	}
	if output != Stdout && output != "stderr" {
		if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = Level
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}
	cfg.EncoderConfig = zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		TimeKey:        "time",
		NameKey:        "logger",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// SetLevel changes the shared level. An empty name means info.
func SetLevel(name string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	Level.SetLevel(lvl)
	return nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
