// Package ui holds the terminal-facing pieces: prompts and status lines.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by NewPrinter
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Printer writes informational lines to out and warnings to err. Each
// warning is preceded by a blank line and prefixed with the program name.
type Printer struct {
	name string
	out  io.Writer
	err  io.Writer
	warn *color.Color
	fail *color.Color
}

// NewPrinter returns a Printer. mode is one of ColorAuto, ColorAlways or
// ColorNever; auto colours only when err is a terminal.
func NewPrinter(name string, out, err io.Writer, mode string) *Printer {
	p := &Printer{
		name: name,
		out:  out,
		err:  err,
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
	}
	if useColor(err, mode) {
		p.warn.EnableColor()
		p.fail.EnableColor()
	} else {
		p.warn.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Info writes a line to standard output.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Warn writes a skip warning to standard error.
func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.err)
	p.warn.Fprintf(p.err, "%s: %s\n", p.name, msg)
}

// Fail writes a failure warning to standard error.
func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.err)
	p.fail.Fprintf(p.err, "%s: %s\n", p.name, msg)
}
