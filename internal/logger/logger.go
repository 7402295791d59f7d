// Package logger holds the process-wide structured logger. The debug block
// engine reports corruption through it, so the default handler writes to
// standard error rather than discarding output.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// L is the global logger instance. It writes text records at LevelWarn and
// above to os.Stderr until Init replaces it.
var L = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// Options configures the logger initialization.
type Options struct {
	Output io.Writer    // Destination for records. Default: os.Stderr
	Level  slog.Leveler // Minimum log level. Default: LevelWarn
	JSON   bool         // Emit JSON records instead of text
}

// Init replaces the global logger. Call from main() before any log calls.
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	var level slog.Leveler = slog.LevelWarn
	if opts.Level != nil {
		level = opts.Level
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(out, handlerOpts))
		return
	}
	L = slog.New(slog.NewTextHandler(out, handlerOpts))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
