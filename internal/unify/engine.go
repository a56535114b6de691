// Package unify turns a set of heterogeneous contact tables into one
// deduplicated contact list.
//
// For each file the engine loads a table, selects the name, email and phone
// columns, and extracts one normalized contact per row. After the last file
// the contacts are ordered by completeness and deduplicated by email, then
// by phone.
package unify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leadsunifier/internal/recognize"
	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/internal/table"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// ErrNoInputFiles is returned by Run when there is nothing to process.
var ErrNoInputFiles = errors.New("no input files found")

// Config holds engine configuration.
type Config struct {
	// SampleSize caps the values sampled per column (default 100)
	SampleSize int
	// Dictionary holds the column label tables (optional, embedded defaults if nil)
	Dictionary *recognize.Dictionary
	// FoldDiacritics measures names on their ASCII-folded form
	FoldDiacritics bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Reporter receives progress events (optional)
	Reporter Reporter
}

// Engine runs contact unification.
type Engine struct {
	selector *selector.Selector
	logger   *slog.Logger
	reporter Reporter
	now      func() time.Time
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	rec := recognize.New(recognize.Options{
		Dictionary:     cfg.Dictionary,
		FoldDiacritics: cfg.FoldDiacritics,
	})

	return &Engine{
		selector: selector.New(rec, selector.Options{SampleSize: cfg.SampleSize, Logger: logger}),
		logger:   logger,
		reporter: reporter,
		now:      time.Now,
	}
}

// Selector returns the column selector the engine uses.
func (e *Engine) Selector() *selector.Selector {
	return e.selector
}

// FileResult describes the outcome of one input file.
type FileResult struct {
	Path      string
	Rows      int
	Contacts  int
	Selection selector.Selection
	Err       error
}

// Result is the outcome of a run.
type Result struct {
	Summary  core.RunSummary
	Contacts []core.Contact
	Files    []FileResult
}

// Run processes paths in order and returns the deduplicated contacts.
//
// A file that cannot be read or parsed contributes no records and does not
// stop the run. The context is checked before each file; a cancelled run
// returns the context error and no result.
func (e *Engine) Run(ctx context.Context, paths []string) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputFiles
	}

	summary := core.RunSummary{
		ID:        uuid.NewString(),
		StartedAt: e.now(),
	}
	e.logger.Debug("starting run", "run_id", summary.ID, "files", len(paths))

	var all []core.Contact
	files := make([]FileResult, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("run interrupted", "run_id", summary.ID, "remaining", len(paths)-i)
			return nil, err
		}

		e.reporter.FileStarted(i, len(paths), path)
		fr, contacts := e.processFile(path)
		files = append(files, fr)
		summary.FilesProcessed++

		if fr.Err != nil {
			summary.FilesFailed++
			e.reporter.FileFailed(path, fr.Err)
			continue
		}
		e.reporter.FileDone(path, fr.Rows, fr.Contacts)
		all = append(all, contacts...)
	}

	unique, stats := Deduplicate(all)

	summary.TotalContacts = len(all)
	summary.DuplicatesRemoved = stats.Removed()
	summary.UniqueContacts = len(unique)
	summary.Fields = core.ComputeFieldStats(unique)
	summary.CompletedAt = e.now()

	e.logger.Debug("deduplicated contacts",
		"run_id", summary.ID, "by_email", stats.ByEmail, "by_phone", stats.ByPhone)
	e.reporter.RunCompleted(summary)

	return &Result{Summary: summary, Contacts: unique, Files: files}, nil
}

// processFile loads and extracts one file. Panics are contained here.
func (e *Engine) processFile(path string) (fr FileResult, contacts []core.Contact) {
	fr.Path = path
	defer func() {
		if r := recover(); r != nil {
			fr.Err = fmt.Errorf("panic while processing %s: %v", path, r)
			contacts = nil
		}
	}()

	t, err := table.ReadFile(path, e.logger)
	if err != nil {
		fr.Err = err
		return fr, nil
	}

	fr.Rows = t.NumRows()
	fr.Selection = e.selector.Select(t)
	e.reporter.ColumnsSelected(path, fr.Selection)

	contacts = Extract(t, fr.Selection)
	fr.Contacts = len(contacts)
	return fr, contacts
}
