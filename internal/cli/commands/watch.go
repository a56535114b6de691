package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leadsunifier/internal/cli/config"
	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
	"github.com/leapstack-labs/leadsunifier/internal/discover"
	"github.com/leapstack-labs/leadsunifier/internal/unify"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the unification whenever an input file changes",
		Long: `Run once, then watch the input directory and run again whenever a
matching file is created, written, renamed or removed. Bursts of changes
are collapsed into one run. Press Ctrl+C to stop.`,
		Example: `  # Watch input/ and rewrite output/combined_contacts.csv on changes
  leadsunifier watch

  # Wait two seconds of quiet before re-running
  leadsunifier watch --debounce 2s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}

	cmd.Flags().Duration("debounce", config.DefaultDebounce, "Quiet period after the last change before re-running")

	return cmd
}

func runWatch(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	ctx := cmd.Context()

	if _, err := discover.EnsureDir(cc.Cfg.InputDir); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(cc.Cfg.InputDir); err != nil {
		return fmt.Errorf("failed to watch input dir: %w", err)
	}

	rerun := func(ctx context.Context) {
		watchRun(ctx, cc)
	}

	rerun(ctx)
	if cc.Renderer.EffectiveMode() != output.ModeJSON {
		cc.Renderer.Muted(fmt.Sprintf("Watching %s for changes. Press Ctrl+C to stop.",
			filepath.Join(cc.Cfg.InputDir, cc.Cfg.Pattern)))
	}

	w := newDirWatcher(cc.Cfg, cc.Logger)
	return w.Run(ctx, fsw, rerun)
}

// watchRun performs one run and renders its result. Failures are reported
// and do not stop the watch.
func watchRun(ctx context.Context, cc *CommandContext) {
	result, format, err := unifyOnce(ctx, cc, false)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		cc.Logger.Warn("run failed", "error", err)
		if errors.Is(err, unify.ErrNoInputFiles) {
			cc.Renderer.Warning(err.Error())
			return
		}
		cc.Renderer.Error(err.Error())
		return
	}

	switch cc.Renderer.EffectiveMode() {
	case output.ModeJSON:
		if err := cc.Renderer.JSON(buildRunOutput(cc, result, format, false)); err != nil {
			cc.Logger.Error("failed to render result", "error", err)
		}
	case output.ModeMarkdown:
		renderRunMarkdown(cc, result, false)
	default:
		renderRunText(cc, result, false)
	}
}

// dirWatcher turns file system events on the input directory into debounced
// run requests.
type dirWatcher struct {
	dir      string
	pattern  string
	exclude  []string
	output   string
	debounce time.Duration
	logger   *slog.Logger

	trigger chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

func newDirWatcher(cfg *config.Config, logger *slog.Logger) *dirWatcher {
	return &dirWatcher{
		dir:      cfg.InputDir,
		pattern:  cfg.Pattern,
		exclude:  cfg.Exclude,
		output:   filepath.Clean(cfg.OutputFile),
		debounce: cfg.Watch.Debounce,
		logger:   logger,
		trigger:  make(chan struct{}, 1),
	}
}

// relevant reports whether event touches an input file.
func (w *dirWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	if filepath.Clean(event.Name) == w.output {
		return false
	}
	if !discover.Matches(w.dir, w.pattern, event.Name) {
		return false
	}
	return !excluded(filepath.Base(event.Name), w.exclude)
}

// handle schedules a run for a relevant event and reports whether it did.
// Each new event restarts the debounce period.
func (w *dirWatcher) handle(event fsnotify.Event) bool {
	if !w.relevant(event) {
		return false
	}
	w.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
	return true
}

func (w *dirWatcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Run forwards events from fsw and calls rerun for every debounced change
// until ctx is cancelled. Runs never overlap.
func (w *dirWatcher) Run(ctx context.Context, fsw *fsnotify.Watcher, rerun func(context.Context)) error {
	defer w.stop()

	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case event, ok := <-fsw.Events:
				if !ok {
					return nil
				}
				w.handle(event)
			case err, ok := <-fsw.Errors:
				if !ok {
					return nil
				}
				w.logger.Warn("watcher error", "error", err)
			}
		}
	})

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case <-w.trigger:
				rerun(egctx)
			}
		}
	})

	return eg.Wait()
}
