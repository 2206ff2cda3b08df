// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides package scoped loggers on top of go-ethereum's slog based logger.
//
// Loggers created with WithContext resolve the root handler at every call,
// so package level loggers pick up the handler installed by Init.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Legacy verbosity levels accepted by Init.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Logger writes key/value pairs to the root handler.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Enabled(level slog.Level) bool
}

type contextLogger struct {
	ctx []any
}

// WithContext returns a logger that prepends ctx to every record.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

func (l *contextLogger) With(ctx ...any) Logger {
	return &contextLogger{ctx: slices.Concat(l.ctx, ctx)}
}

func (l *contextLogger) Trace(msg string, ctx ...any) {
	ethlog.Root().Trace(msg, slices.Concat(l.ctx, ctx)...)
}

func (l *contextLogger) Debug(msg string, ctx ...any) {
	ethlog.Root().Debug(msg, slices.Concat(l.ctx, ctx)...)
}

func (l *contextLogger) Info(msg string, ctx ...any) {
	ethlog.Root().Info(msg, slices.Concat(l.ctx, ctx)...)
}

func (l *contextLogger) Warn(msg string, ctx ...any) {
	ethlog.Root().Warn(msg, slices.Concat(l.ctx, ctx)...)
}

func (l *contextLogger) Error(msg string, ctx ...any) {
	ethlog.Root().Error(msg, slices.Concat(l.ctx, ctx)...)
}

func (l *contextLogger) Enabled(level slog.Level) bool {
	return ethlog.Root().Enabled(context.Background(), level)
}

// Info logs to the root logger.
func Info(msg string, ctx ...any) {
	ethlog.Root().Info(msg, ctx...)
}

// Warn logs to the root logger.
func Warn(msg string, ctx ...any) {
	ethlog.Root().Warn(msg, ctx...)
}

// Error logs to the root logger.
func Error(msg string, ctx ...any) {
	ethlog.Root().Error(msg, ctx...)
}

// Init installs the root handler. Terminal output is coloured when w is a tty.
func Init(w io.Writer, verbosity int, json bool) {
	lvl := ethlog.FromLegacyLevel(verbosity)

	var handler slog.Handler
	if json {
		handler = ethlog.JSONHandlerWithLevel(w, lvl)
	} else {
		useColor := false
		if f, ok := w.(*os.File); ok {
			useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		handler = ethlog.NewTerminalHandlerWithLevel(w, lvl, useColor)
	}
	ethlog.SetDefault(ethlog.NewLogger(handler))
}
