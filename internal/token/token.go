package token

import (
	"weft/internal/source"
)

// Token is a single markup token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsTagDelimiter reports whether the token ends an opening tag.
func (t Token) IsTagDelimiter() bool {
	return t.Kind == TagClose || t.Kind == TagSelfClose
}
