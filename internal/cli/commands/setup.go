// Package commands implements the leadsunifier subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leadsunifier/internal/cli/config"
	"github.com/leapstack-labs/leadsunifier/internal/cli/output"
	"github.com/leapstack-labs/leadsunifier/internal/discover"
	"github.com/leapstack-labs/leadsunifier/internal/recognize"
	"github.com/leapstack-labs/leadsunifier/internal/unify"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewEngine creates a unification engine from the configuration. The
// dictionaries file, when set, is laid over the embedded defaults.
func (cc *CommandContext) NewEngine(reporter unify.Reporter) (*unify.Engine, error) {
	var dict *recognize.Dictionary
	if cc.Cfg.Dictionaries != "" {
		d, err := recognize.LoadDictionary(cc.Cfg.Dictionaries)
		if err != nil {
			return nil, err
		}
		dict = d
		cc.Logger.Info("loaded dictionaries", "path", cc.Cfg.Dictionaries)
	}

	return unify.New(unify.Config{
		SampleSize:     cc.Cfg.SampleSize,
		Dictionary:     dict,
		FoldDiacritics: cc.Cfg.FoldDiacritics,
		Logger:         cc.Logger,
		Reporter:       reporter,
	}), nil
}

// ResolveInputs lists the input files to process. A missing input directory
// is created so the user knows where to put files; the run then fails with
// unify.ErrNoInputFiles like any other empty input.
func (cc *CommandContext) ResolveInputs() ([]string, error) {
	dir, pattern := cc.Cfg.InputDir, cc.Cfg.Pattern

	created, err := discover.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	if created {
		cc.Logger.Warn("created input directory", "dir", dir)
		if cc.Renderer.EffectiveMode() != output.ModeJSON {
			cc.Renderer.Warning(fmt.Sprintf("Created input directory %s. Place your CSV files there and run again.", dir))
		}
	}

	files, err := discover.Files(dir, pattern)
	if err != nil {
		return nil, err
	}
	files = excludeFiles(files, cc.Cfg.Exclude)

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", unify.ErrNoInputFiles, filepath.Join(dir, pattern))
	}
	cc.Logger.Info("found input files", "dir", dir, "pattern", pattern, "count", len(files))
	return files, nil
}

// excludeFiles drops files whose base name matches any of the patterns.
// Invalid patterns match nothing.
func excludeFiles(files, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}
	kept := files[:0:0]
	for _, f := range files {
		if !excluded(filepath.Base(f), patterns) {
			kept = append(kept, f)
		}
	}
	return kept
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
