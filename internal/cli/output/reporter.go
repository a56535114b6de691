package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leadsunifier/internal/selector"
	"github.com/leapstack-labs/leadsunifier/pkg/core"
)

// ConsoleReporter prints per-file progress. It is silent in JSON mode so
// stdout stays machine-readable.
type ConsoleReporter struct {
	r        *Renderer
	progress *Progress
	total    int
}

// NewConsoleReporter creates a reporter writing through r.
func NewConsoleReporter(r *Renderer) *ConsoleReporter {
	return &ConsoleReporter{r: r}
}

func (c *ConsoleReporter) quiet() bool {
	return c.r.EffectiveMode() == ModeJSON
}

// FileStarted prints the progress bar and the file being processed.
func (c *ConsoleReporter) FileStarted(index, total int, path string) {
	if c.quiet() {
		return
	}
	if c.progress == nil || c.total != total {
		c.progress = NewProgress(total, c.r.IsTTY())
		c.total = total
	}
	name := filepath.Base(path)
	if c.r.EffectiveMode() == ModeMarkdown {
		c.r.Printf("- [%d/%d] %s\n", index+1, total, name)
		return
	}
	c.r.Printf("%s %s %s\n",
		c.progress.View(index),
		c.r.Styles().Muted.Render(fmt.Sprintf("[%d/%d]", index+1, total)),
		c.r.Styles().File.Render(name))
}

// ColumnsSelected prints the chosen columns and warns about missing ones.
func (c *ConsoleReporter) ColumnsSelected(path string, sel selector.Selection) {
	if c.quiet() {
		return
	}
	var found []string
	if sel.Name != nil {
		found = append(found, "name="+sel.Name.Column)
	}
	if sel.Email != nil {
		found = append(found, "email="+sel.Email.Column)
	}
	if len(sel.Phones) > 0 {
		columns := make([]string, len(sel.Phones))
		for i, p := range sel.Phones {
			columns[i] = p.Column
		}
		found = append(found, "phone="+strings.Join(columns, "|"))
	}
	if len(found) > 0 {
		c.line("  " + c.r.Styles().Column.Render(strings.Join(found, " ")))
	}
	for _, f := range sel.Missing() {
		c.line("  " + c.r.Styles().Warning.Render(fmt.Sprintf("%s no %s column found", SymbolWarning, f)))
	}
}

// FileFailed prints the error.
func (c *ConsoleReporter) FileFailed(path string, err error) {
	if c.quiet() {
		return
	}
	c.line("  " + c.r.Styles().Error.Render(fmt.Sprintf("%s %s: %v", SymbolError, filepath.Base(path), err)))
}

// FileDone prints the number of contacts extracted.
func (c *ConsoleReporter) FileDone(_ string, rows, contacts int) {
	if c.quiet() {
		return
	}
	c.line("  " + c.r.Styles().Success.Render(fmt.Sprintf("%s %d contacts from %d rows", SymbolSuccess, contacts, rows)))
}

// RunCompleted draws the finished bar.
func (c *ConsoleReporter) RunCompleted(core.RunSummary) {
	if c.quiet() || c.progress == nil || c.r.EffectiveMode() == ModeMarkdown {
		return
	}
	c.r.Println(c.progress.View(c.total))
}

func (c *ConsoleReporter) line(s string) {
	if c.r.EffectiveMode() == ModeMarkdown {
		c.r.Println("  -" + strings.TrimPrefix(s, " "))
		return
	}
	c.r.Println(s)
}
