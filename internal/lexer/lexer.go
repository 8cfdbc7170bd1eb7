package lexer

import (
	"weft/internal/source"
	"weft/internal/token"
)

type mode uint8

const (
	modeText mode = iota
	modeTag
)

// Lexer tokenizes one page source file. It is modal: outside of tags it
// produces Text / ExprIsland / Comment runs, inside an opening tag it
// produces attribute tokens until the tag delimiter switches it back.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	mode   mode
	look   *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		mode:   modeText,
		look:   nil,
	}
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.mode == modeTag {
		return lx.nextInTag()
	}
	return lx.nextInText()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) eofToken() token.Token {
	return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
}

func (lx *Lexer) nextInText() token.Token {
	if lx.cursor.EOF() {
		return lx.eofToken()
	}

	switch {
	case lx.cursor.HasPrefix("<!--"):
		return lx.scanComment()

	case lx.cursor.HasPrefix("</"):
		return lx.scanEndTagOpen()

	case lx.cursor.Peek() == '<' && lx.tagFollows():
		return lx.scanTagOpen()

	case lx.cursor.Peek() == '{':
		return lx.scanExprIsland()

	default:
		return lx.scanText()
	}
}

// tagFollows reports whether the `<` at the cursor starts a real tag.
// A stray `<` not followed by a name byte lexes as text, like browsers do.
func (lx *Lexer) tagFollows() bool {
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	return isNameStartByte(b1)
}

func (lx *Lexer) scanText() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '{' {
			break
		}
		if ch == '<' && (lx.cursor.HasPrefix("<!--") || lx.cursor.HasPrefix("</") || lx.tagFollows()) {
			break
		}
		lx.cursor.Bump()
	}
	return token.Token{
		Kind: token.Text,
		Span: lx.cursor.Span(start),
		Text: lx.cursor.Slice(start, lx.cursor.Off),
	}
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Off
	lx.cursor.Off += 4 // "<!--"
	bodyStart := lx.cursor.Off
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("-->") {
			body := lx.cursor.Slice(bodyStart, lx.cursor.Off)
			lx.cursor.Off += 3
			return token.Token{Kind: token.Comment, Span: lx.cursor.Span(start), Text: body}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.Span(start)
	lx.report(ErrUnterminatedComment, sp, "comment is never closed")
	return token.Token{Kind: token.Comment, Span: sp, Text: lx.cursor.Slice(bodyStart, lx.cursor.Off)}
}

// scanExprIsland consumes a `{ ... }` run, tracking brace depth so nested
// object literals survive. The interior is opaque to the loader.
func (lx *Lexer) scanExprIsland() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // '{'
	bodyStart := lx.cursor.Off
	depth := 1
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		if ch == '{' {
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 {
				body := lx.cursor.Slice(bodyStart, lx.cursor.Off)
				lx.cursor.Bump()
				return token.Token{Kind: token.ExprIsland, Span: lx.cursor.Span(start), Text: body}
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.Span(start)
	lx.report(ErrUnterminatedExpr, sp, "expression island is never closed")
	return token.Token{Kind: token.ExprIsland, Span: sp, Text: lx.cursor.Slice(bodyStart, lx.cursor.Off)}
}

func (lx *Lexer) scanTagOpen() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // '<'
	name := lx.scanName()
	lx.mode = modeTag
	return token.Token{Kind: token.TagOpen, Span: lx.cursor.Span(start), Text: name}
}

func (lx *Lexer) scanEndTagOpen() token.Token {
	start := lx.cursor.Off
	lx.cursor.Off += 2 // "</"
	name := lx.scanName()
	if name == "" {
		lx.report(ErrBadTagName, lx.cursor.Span(start), "closing tag has no name")
	}
	lx.mode = modeTag
	return token.Token{Kind: token.EndTagOpen, Span: lx.cursor.Span(start), Text: name}
}

func (lx *Lexer) scanName() string {
	start := lx.cursor.Off
	if !lx.cursor.EOF() && isNameStartByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isNameByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.cursor.Slice(start, lx.cursor.Off)
}

func (lx *Lexer) nextInTag() token.Token {
	lx.skipTagWhitespace()
	if lx.cursor.EOF() {
		return lx.eofToken()
	}

	start := lx.cursor.Off
	ch := lx.cursor.Peek()

	switch {
	case ch == '>':
		lx.cursor.Bump()
		lx.mode = modeText
		return token.Token{Kind: token.TagClose, Span: lx.cursor.Span(start)}

	case lx.cursor.HasPrefix("/>"):
		lx.cursor.Off += 2
		lx.mode = modeText
		return token.Token{Kind: token.TagSelfClose, Span: lx.cursor.Span(start)}

	case ch == '=':
		lx.cursor.Bump()
		return token.Token{Kind: token.Eq, Span: lx.cursor.Span(start)}

	case ch == '"' || ch == '\'':
		return lx.scanQuotedValue(ch)

	case ch == '{':
		island := lx.scanExprIsland()
		return token.Token{Kind: token.AttrExpr, Span: island.Span, Text: island.Text}

	case isNameStartByte(ch):
		name := lx.scanName()
		return token.Token{Kind: token.AttrName, Span: lx.cursor.Span(start), Text: name}

	default:
		lx.report(ErrUnknownChar, lx.cursor.Span(start), "unexpected character in tag")
		lx.cursor.Bump()
		return lx.nextInTag()
	}
}

func (lx *Lexer) scanQuotedValue(quote byte) token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	bodyStart := lx.cursor.Off
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == quote {
			body := lx.cursor.Slice(bodyStart, lx.cursor.Off)
			lx.cursor.Bump()
			return token.Token{Kind: token.AttrValue, Span: lx.cursor.Span(start), Text: body}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.Span(start)
	lx.report(ErrUnterminatedString, sp, "attribute value is never closed")
	return token.Token{Kind: token.AttrValue, Span: sp, Text: lx.cursor.Slice(bodyStart, lx.cursor.Off)}
}

func (lx *Lexer) skipTagWhitespace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		default:
			return
		}
	}
}
