// Package console prints the user-facing status lines of the CLI.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled status lines to an output stream. Styles are
// resolved against the stream, so non-terminal writers get plain text.
type Printer struct {
	out io.Writer

	success lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	hint    lipgloss.Style
	code    lipgloss.Style
	heading lipgloss.Style
}

// NewPrinter creates a printer for out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("6")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		hint:    r.NewStyle().Foreground(lipgloss.Color("5")),
		code:    r.NewStyle().Foreground(lipgloss.Color("4")),
		heading: r.NewStyle().Bold(true).Underline(true),
	}
}

// Writer returns the underlying stream.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) line(style lipgloss.Style, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(p.out, style.Render(prefix+msg))
}

// Success prints a completed step.
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(p.success, "✓ ", format, args...)
}

// Info prints a progress message.
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(p.info, "→ ", format, args...)
}

// Warn prints a non-fatal problem.
func (p *Printer) Warn(format string, args ...interface{}) {
	p.line(p.warn, "! ", format, args...)
}

// Error prints a failure.
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.err, "✗ ", format, args...)
}

// Hint prints a follow-up suggestion.
func (p *Printer) Hint(format string, args ...interface{}) {
	p.line(p.hint, "Hint: ", format, args...)
}

// Heading prints a section title preceded by a blank line.
func (p *Printer) Heading(format string, args ...interface{}) {
	fmt.Fprintln(p.out)
	p.line(p.heading, "", format, args...)
}

// Code prints an indented snippet, one styled line per source line.
func (p *Printer) Code(snippet string) {
	for _, l := range strings.Split(strings.TrimRight(snippet, "\n"), "\n") {
		fmt.Fprintln(p.out, "  "+p.code.Render(l))
	}
}
