// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger shared by
// every inventory-sync component.
//
// The Logger type embeds zerolog.Logger so all zerolog methods are
// available directly on *Logger. Components obtain a named child logger via
// Component and request-scoped loggers via FromContext.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

func configureGlobals() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// NewLogger constructs a JSON logger writing to stdout. Every entry carries
// the role, a timestamp and the calling function name.
func NewLogger(role string) *Logger {
	configureGlobals()
	return newWithWriter(os.Stdout, role)
}

// Rotation limits of the client log file.
const (
	clientLogMaxSizeMB  = 20
	clientLogMaxBackups = 3
	clientLogMaxAgeDays = 14
)

// NewClientLogger writes to a rotated "logs" file next to the executable,
// falling back to stdout if the executable path cannot be resolved.
func NewClientLogger(role string) *Logger {
	configureGlobals()

	var out io.Writer = os.Stdout
	if execPath, err := os.Executable(); err == nil {
		out = &lumberjack.Logger{
			Filename:   filepath.Join(filepath.Dir(execPath), "logs"),
			MaxSize:    clientLogMaxSizeMB,
			MaxBackups: clientLogMaxBackups,
			MaxAge:     clientLogMaxAgeDays,
		}
	}

	return newWithWriter(out, role)
}

func newWithWriter(w io.Writer, role string) *Logger {
	logger := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all output. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger inheriting all fields of the receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// Component returns a child logger tagged with the component name, e.g.
// "fetch_scheduler" or "ais_client".
func (l *Logger) Component(name string) *Logger {
	return &Logger{l.With().Str("component", name).Logger()}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's
// WithContext. If none was attached, zerolog's default logger is returned,
// so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
