// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hoplite

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Env is the process the engine talks to: where help and error reports
// are written, and how it terminates.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	// Exit terminates the process. It is expected not to return; when it
	// does (tests), Parse returns the corresponding error.
	Exit func(code int)
}

// DefaultEnv writes to the process' stdout and stderr and exits with
// os.Exit.
func DefaultEnv() Env {
	return Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Exit:   os.Exit,
	}
}

func (e Env) withDefaults() Env {
	d := DefaultEnv()
	if e.Stdout == nil {
		e.Stdout = d.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = d.Stderr
	}
	if e.Exit == nil {
		e.Exit = d.Exit
	}
	return e
}

type loggerKey struct{}

// WithLogger returns a context carrying logger. Parsing logs token
// resolution and validator faults to it at debug level.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the logger stored by WithLogger, or a logger that
// discards everything.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.DiscardHandler)
