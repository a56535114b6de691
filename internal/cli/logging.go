package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/leapstack-labs/leadsunifier/internal/cli/config"
	sharedcfg "github.com/leapstack-labs/leadsunifier/internal/config"
)

// fanoutHandler sends every record to all handlers that accept its level.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, hh := range h {
		if hh.Enabled(ctx, r.Level) {
			errs = append(errs, hh.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, hh := range h {
		out[i] = hh.WithGroup(name)
	}
	return out
}

// NewLogger builds the logger of one invocation. Warnings go to stderr (all
// levels with verbose). When cfg.LogDir is set, records at cfg.LogLevel and
// above are also written to a processing log file in that directory. The
// returned close function flushes and closes the file.
func NewLogger(cfg *config.Config, stderr io.Writer, now time.Time) (*slog.Logger, string, func() error, error) {
	consoleLevel := slog.LevelWarn
	if cfg.Verbose {
		consoleLevel = slog.LevelDebug
	}
	handlers := fanoutHandler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: consoleLevel}),
	}

	noop := func() error { return nil }
	if cfg.LogDir == "" {
		return slog.New(handlers), "", noop, nil
	}

	if err := os.MkdirAll(cfg.LogDir, 0o750); err != nil {
		return nil, "", noop, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(cfg.LogDir, sharedcfg.LogFileName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // G304: path is built from the configured log dir
	if err != nil {
		return nil, "", noop, fmt.Errorf("failed to open log file: %w", err)
	}
	handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))

	return slog.New(handlers), path, f.Close, nil
}
