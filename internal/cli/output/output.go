// Package output provides styled terminal output for the diagnostic
// commands. Report output is handled by internal/report.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by all styles.
var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#0077AA", Dark: "#00D9FF"}
	successColor = lipgloss.AdaptiveColor{Light: "#008844", Dark: "#00FF88"}
	warningColor = lipgloss.AdaptiveColor{Light: "#AA7700", Dark: "#FFB800"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF4444"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#8A8F98"}
)

// Styles holds the lipgloss styles bound to one output stream.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles for r. Colors are dropped automatically when the
// renderer's writer is not a terminal.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Foreground(primaryColor).Bold(true),
		Header2: r.NewStyle().Foreground(primaryColor),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(mutedColor),
		Success: r.NewStyle().Foreground(successColor),
		Warning: r.NewStyle().Foreground(warningColor),
		Error:   r.NewStyle().Foreground(errorColor).Bold(true),
	}
}

// Renderer writes styled lines to w.
type Renderer struct {
	w      io.Writer
	styles *Styles
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w)),
	}
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// Pass writes a passed check.
func (r *Renderer) Pass(msg string) {
	r.Println(r.styles.Success.Render("  ✓ " + msg))
}

// Fail writes a failed check.
func (r *Renderer) Fail(msg string) {
	r.Println(r.styles.Error.Render("  ✗ " + msg))
}

// Warn writes a warning.
func (r *Renderer) Warn(msg string) {
	r.Println(r.styles.Warning.Render("  ! " + msg))
}
