package logger

import (
	"context"
	"io"
	"log/slog"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return ansiRed
	case l >= slog.LevelWarn:
		return ansiYellow
	case l >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiCyan
	}
}

// ColorTextHandler is a slog.TextHandler that prefixes each message with
// the record's level, colored with ANSI escapes when colorize is set.
// With colorize off the prefix stays plain, which keeps piped or
// redirected output free of escape sequences.
type ColorTextHandler struct {
	*slog.TextHandler
	colorize bool
}

func NewColorTextHandler(w io.Writer, opts *slog.HandlerOptions, colorize bool) *ColorTextHandler {
	return &ColorTextHandler{
		TextHandler: slog.NewTextHandler(w, opts),
		colorize:    colorize,
	}
}

// Handle implements slog.Handler.
func (h *ColorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	prefix := r.Level.String()
	if h.colorize {
		prefix = levelColor(r.Level) + prefix + ansiReset
	}
	r.Message = prefix + "  " + r.Message
	return h.TextHandler.Handle(ctx, r)
}
