package output

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"
)

const progressWidth = 30

// Progress draws a static progress bar for a known number of steps.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a bar for total steps. Without a terminal the bar is
// drawn without colour.
func NewProgress(total int, tty bool) *Progress {
	profile := termenv.Ascii
	if tty {
		profile = termenv.ANSI256
	}
	return &Progress{
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(progressWidth),
			progress.WithColorProfile(profile),
		),
		total: total,
	}
}

// View renders the bar after done steps.
func (p *Progress) View(done int) string {
	if p.total <= 0 {
		return p.bar.ViewAs(0)
	}
	return p.bar.ViewAs(float64(done) / float64(p.total))
}
