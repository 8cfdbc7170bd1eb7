package lexer

import (
	"weft/internal/diag"
	"weft/internal/source"
)

// DiagReporter adapts the lexer's thin Reporter onto diag codes.
type DiagReporter struct {
	R diag.Reporter
}

func (a DiagReporter) Report(kind string, span source.Span, msg string) {
	if a.R == nil {
		return
	}
	code := diag.LexInfo
	switch kind {
	case ErrUnknownChar:
		code = diag.LexUnknownChar
	case ErrUnterminatedString:
		code = diag.LexUnterminatedString
	case ErrUnterminatedComment:
		code = diag.LexUnterminatedComment
	case ErrUnterminatedExpr:
		code = diag.LexUnterminatedExpr
	case ErrBadTagName:
		code = diag.LexBadTagName
	}
	a.R.Report(code, diag.SevError, span, msg, nil)
}
