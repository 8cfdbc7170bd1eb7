// Package diagfmt renders diagnostics for the CLI: a human-readable pretty
// form with source context, and JSON for tooling.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"weft/internal/diag"
	"weft/internal/source"
)

// PrettyOpts configures the pretty renderer.
type PrettyOpts struct {
	// Color enables ANSI colors.
	Color bool
	// Context enables the source excerpt when positive. The excerpt is the
	// first line of the span with its underline; no surrounding lines are
	// shown, whatever the value.
	Context int
}

// Pretty formats diagnostics in a human-readable form. The bag is expected
// to be sorted (bag.Sort()) beforehand. For each diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending source line with a ^~~~ underline, then notes
// in the same format.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan),
	}
	for _, c := range sevColor {
		if !opts.Color {
			c.DisableColor()
		}
	}

	for _, d := range bag.Items() {
		printHeader(w, fs, d.Primary, sevColor[d.Severity].Sprint(d.Severity.String()), d.Code.ID(), d.Message)
		printContext(w, fs, d.Primary, opts)
		for _, n := range d.Notes {
			printHeader(w, fs, n.Span, "NOTE", d.Code.ID(), n.Msg)
			printContext(w, fs, n.Span, opts)
		}
	}
}

func printHeader(w io.Writer, fs *source.FileSet, sp source.Span, sev, code, msg string) {
	if fs == nil || int(sp.File) >= fs.Len() {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, msg)
		return
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", f.Path, start.Line, start.Col, sev, code, msg)
}

func printContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	if fs == nil || opts.Context <= 0 || int(sp.File) >= fs.Len() || sp.Empty() {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)

	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %4d | %s\n", start.Line, line)

	// Underline the span on its first line.
	underlineLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlineLen = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		underlineLen = len(line) - int(start.Col) + 1
	}
	if underlineLen < 1 {
		underlineLen = 1
	}
	fmt.Fprintf(w, "       | %s^%s\n",
		strings.Repeat(" ", int(start.Col)-1),
		strings.Repeat("~", underlineLen-1))
}
