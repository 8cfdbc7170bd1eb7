package diag

import (
	"fmt"
	"sort"
	"strings"

	"weft/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics into a stable single-line-per-entry
// representation, one `path:line:col: SEV CODE: message` per line. Tests assert
// against it; the CLI uses it for --quiet output.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	locate := func(sp source.Span) (string, uint32, uint32) {
		// Spans with no backing file (an entry that never resolved) keep a
		// zero location.
		if int(sp.File) >= fs.Len() {
			return "", 0, 0
		}
		start, _ := fs.Resolve(sp)
		return fs.Get(sp.File).Path, start.Line, start.Col
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		path, line, col := locate(d.Primary)
		rendered = append(rendered, goldenDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     path,
			Line:     line,
			Column:   col,
			Message:  d.Message,
		})
		if includeNotes {
			for _, n := range d.Notes {
				npath, nline, ncol := locate(n.Span)
				rendered = append(rendered, goldenDiagnostic{
					Severity: "NOTE",
					Code:     d.Code.ID(),
					Path:     npath,
					Line:     nline,
					Column:   ncol,
					Message:  n.Msg,
				})
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		return di.Code < dj.Code
	})

	var sb strings.Builder
	for _, r := range rendered {
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", r.Path, r.Line, r.Column, r.Severity, r.Code, r.Message)
	}
	return sb.String()
}
