// Package chainlog sets up structured logging for the bot. It wraps
// github.com/luxfi/geth/log, the exact package the teacher's own
// entrypoint (cmd/evm-node/main.go) uses for terminal-handler setup:
//
//	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, true)))
package chainlog

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/luxfi/geth/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a structured, key-value logger. Alias of luxfi/geth/log's
// slog-backed Logger so call sites read exactly like the teacher's own
// log.Info("msg", "k", v) idiom.
type Logger = log.Logger

// Level re-exports the slog levels luxfi/geth/log uses.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Setup installs the process-wide default logger at the given level,
// writing colorized output to stderr when it is a terminal.
func Setup(level Level) Logger {
	var w io.Writer = os.Stderr
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	if useColor {
		w = colorable.NewColorableStderr()
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(w, level, useColor))
	log.SetDefault(logger)
	return logger
}

// New returns a child logger with the given static key-values, mirroring
// log.Root().New(...).
func New(ctx ...interface{}) Logger {
	return log.Root().New(ctx...)
}

// SetupWithFile behaves like Setup, additionally teeing every record to
// a rotating file (SPEC_FULL.md §4.H operations logging). The file
// stream is always plain JSON lines regardless of terminal detection,
// since log rotation and tailing tools expect one record per line. An
// empty logFilePath is equivalent to calling Setup.
func SetupWithFile(level Level, logFilePath string, maxMegabytes, maxAgeDays int) Logger {
	if logFilePath == "" {
		return Setup(level)
	}

	var w io.Writer = os.Stderr
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	if useColor {
		w = colorable.NewColorableStderr()
	}

	rotator := &lumberjack.Logger{
		Filename: logFilePath,
		MaxSize:  maxMegabytes,
		MaxAge:   maxAgeDays,
		Compress: true,
	}

	var stderrHandler slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	if useColor {
		stderrHandler = log.NewTerminalHandlerWithLevel(w, level, useColor)
	}
	fileHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level})

	logger := log.NewLogger(fanoutHandler{stderrHandler, fileHandler})
	log.SetDefault(logger)
	return logger
}

// fanoutHandler duplicates every record to each wrapped handler.
// luxfi/geth/log's NewLogger takes a single slog.Handler; this is the
// smallest shim that lets Setup's terminal handler and a rotating file
// handler both see every record without reimplementing either.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
