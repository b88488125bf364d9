package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New constructs a logger writing to w at the provided level. Terminals get
// human-readable text; anything else gets JSON
func New(w io.Writer, lvl slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lvl}
	if isTerminal(w) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Discard is a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
