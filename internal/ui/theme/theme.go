package theme

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
)

// Color palette — muted terminal defaults that read well on dark and light.
var (
	Primary = lipgloss.Color("#8B5CF6") // Purple
	Success = lipgloss.Color("#22C55E") // Green
	Warning = lipgloss.Color("#F97316") // Orange
	Error   = lipgloss.Color("#F43F5E") // Rose
	TextDim = lipgloss.Color("#94A3B8") // Slate
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	successStyle = lipgloss.NewStyle().Foreground(Success)
	warnStyle    = lipgloss.NewStyle().Foreground(Warning)
	errorStyle   = lipgloss.NewStyle().Foreground(Error)
	dimStyle     = lipgloss.NewStyle().Foreground(TextDim)
)

// Printer writes color-coded status lines for the CLI steps.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints a bold section header.
func (p *Printer) Header(format string, args ...any) {
	fmt.Fprintln(p.w, headerStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a green check line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warn prints an orange marker line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, warnStyle.Render("! ")+fmt.Sprintf(format, args...))
}

// Fail prints a red cross line.
func (p *Printer) Fail(format string, args ...any) {
	fmt.Fprintln(p.w, errorStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

// Info prints a dimmed detail line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.w, dimStyle.Render(fmt.Sprintf(format, args...)))
}
