// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package display styles CLI output. Color is used only when stdout is a
// terminal that supports it.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// SupportsColor checks if the terminal supports ANSI color codes
func SupportsColor(f *os.File) bool {
	if !term.IsTerminal(int(f.Fd())) { // #nosec G115 - file descriptors are small integers
		return false
	}
	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return false
	}
	return os.Getenv("NO_COLOR") == ""
}

// Printer writes labelled lines, styled or plain.
type Printer struct {
	w     io.Writer
	color bool

	ok    lipgloss.Style
	bad   lipgloss.Style
	warn  lipgloss.Style
	label lipgloss.Style
	dim   lipgloss.Style
}

// NewPrinter returns a Printer for w. color forces styling on or off.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{
		w:     w,
		color: color,
		ok:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		bad:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		dim:   lipgloss.NewStyle().Faint(true),
	}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Field prints "name:  value" with the name padded to a fixed column.
func (p *Printer) Field(name, value string) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.render(p.label, fmt.Sprintf("%-10s", name+":")), value)
}

// OK prints a success line.
func (p *Printer) OK(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.render(p.ok, "✓"), fmt.Sprintf(format, args...))
}

// Fail prints a failure line.
func (p *Printer) Fail(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.render(p.bad, "✗"), fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", p.render(p.warn, "!"), fmt.Sprintf(format, args...))
}

// Dim prints secondary detail.
func (p *Printer) Dim(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.render(p.dim, fmt.Sprintf(format, args...)))
}

// Heading prints a title underlined with '='.
func (p *Printer) Heading(title string) {
	_, _ = fmt.Fprintln(p.w, title)
	_, _ = fmt.Fprintln(p.w, strings.Repeat("=", len(title)))
}

// Writer exposes the destination for plain output.
func (p *Printer) Writer() io.Writer { return p.w }
