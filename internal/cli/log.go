// Package cli implements the ripplegrid command-line interface.
//
// This package provides commands for rendering the ripple reveal to files,
// playing it in the terminal, and inspecting the computed delays. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, WebP, WebP frame sequences, or JSON
//   - play: Play the reveal in the terminal
//   - inspect: Print each box's offset, distance and delay
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a single command stage.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time appended,
// e.g. "Rendered formats=svg,json elapsed=12ms".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
