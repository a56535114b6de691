package output

import "github.com/charmbracelet/lipgloss"

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolWarning = "!"
	SymbolError   = "✗"
	SymbolPending = "•"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	File    lipgloss.Style
	Column  lipgloss.Style
	Value   lipgloss.Style
}

// NewStyles builds the styles for one lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Header2: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		File:    r.NewStyle().Bold(true),
		Column:  r.NewStyle().Foreground(lipgloss.Color("13")),
		Value:   r.NewStyle().Foreground(lipgloss.Color("15")),
	}
}
