package unify

import (
	"log/slog"

	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// Reporter receives progress events from a run. Reporters observe only;
// nothing they do changes the result.
type Reporter interface {
	// FileStarted is called before a file is loaded. index is zero-based.
	FileStarted(index, total int, path string)
	// ColumnsSelected is called once the source columns of a file are known.
	ColumnsSelected(path string, sel selector.Selection)
	// FileFailed is called when a file contributes no records because of an
	// error.
	FileFailed(path string, err error)
	// FileDone is called after a file's records have been extracted.
	FileDone(path string, rows, contacts int)
	// RunCompleted is called once, after deduplication.
	RunCompleted(summary core.RunSummary)
}

// NopReporter discards every event.
type NopReporter struct{}

func (NopReporter) FileStarted(int, int, string) {}
func (NopReporter) ColumnsSelected(string, selector.Selection) {}
func (NopReporter) FileFailed(string, error) {}
func (NopReporter) FileDone(string, int, int) {}
func (NopReporter) RunCompleted(core.RunSummary) {}

// MultiReporter fans events out to every reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) FileStarted(index, total int, path string) {
	for _, r := range m {
		r.FileStarted(index, total, path)
	}
}

func (m MultiReporter) ColumnsSelected(path string, sel selector.Selection) {
	for _, r := range m {
		r.ColumnsSelected(path, sel)
	}
}

func (m MultiReporter) FileFailed(path string, err error) {
	for _, r := range m {
		r.FileFailed(path, err)
	}
}

func (m MultiReporter) FileDone(path string, rows, contacts int) {
	for _, r := range m {
		r.FileDone(path, rows, contacts)
	}
}

func (m MultiReporter) RunCompleted(summary core.RunSummary) {
	for _, r := range m {
		r.RunCompleted(summary)
	}
}

// LogReporter writes events to a structured logger.
type LogReporter struct {
	Logger *slog.Logger
}

// NewLogReporter creates a LogReporter; a nil logger discards.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogReporter{Logger: logger}
}

func (r *LogReporter) FileStarted(index, total int, path string) {
	r.Logger.Info("processing file", "file", path, "index", index+1, "total", total)
}

func (r *LogReporter) ColumnsSelected(path string, sel selector.Selection) {
	if sel.Name != nil {
		r.Logger.Info("found name column", "file", path, "column", sel.Name.Column, "score", sel.Name.Score)
	}
	if sel.Email != nil {
		r.Logger.Info("found email column", "file", path, "column", sel.Email.Column)
	}
	if len(sel.Phones) > 0 {
		columns := make([]string, len(sel.Phones))
		for i, c := range sel.Phones {
			columns[i] = c.Column
		}
		r.Logger.Info("found phone columns", "file", path, "columns", columns)
	}
}

func (r *LogReporter) FileFailed(path string, err error) {
	r.Logger.Error("failed to process file", "file", path, "error", err)
}

func (r *LogReporter) FileDone(path string, rows, contacts int) {
	r.Logger.Info("extracted contacts", "file", path, "rows", rows, "contacts", contacts)
}

func (r *LogReporter) RunCompleted(s core.RunSummary) {
	r.Logger.Info("run completed",
		"run_id", s.ID,
		"files", s.FilesProcessed,
		"failed", s.FilesFailed,
		"total_contacts", s.TotalContacts,
		"duplicates_removed", s.DuplicatesRemoved,
		"unique_contacts", s.UniqueContacts,
	)
	for _, f := range s.Fields {
		r.Logger.Info("field coverage", "field", f.Field, "filled", f.Filled, "percent", f.Percent)
	}
}
