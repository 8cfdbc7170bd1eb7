package parser

import (
	"fmt"

	"weft/internal/diag"
	"weft/internal/lexer"
	"weft/internal/source"
	"weft/internal/token"
	"weft/internal/tree"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	// Nodes holds every top-level statement in document order. The loader's
	// bridge requires the first one to be a markup element.
	Nodes []tree.Node
	Bag   *diag.Bag
}

// Root returns the first top-level element, or nil when the page does not
// start with one.
func (r Result) Root() *tree.Element {
	if len(r.Nodes) == 0 {
		return nil
	}
	el, _ := r.Nodes[0].(*tree.Element)
	return el
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx   *lexer.Lexer
	opts Options
}

// Parse is the entry point for one file. The lexer must be constructed over
// the same source.File the spans should point at.
func Parse(file *source.File, opts Options) Result {
	lx := lexer.New(file, lexer.Options{
		Reporter: lexer.DiagReporter{R: opts.Reporter},
	})
	p := Parser{lx: lx, opts: opts}

	nodes := p.parseNodes("")

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{Nodes: nodes, Bag: bag}
}

func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

// parseNodes consumes nodes until EOF or until an EndTagOpen is seen. The
// closing tag itself is left for the caller; closeTag is only used to decide
// whether a stray closing tag at the top level should be eaten and reported.
func (p *Parser) parseNodes(closeTag string) []tree.Node {
	var nodes []tree.Node
	for {
		if p.opts.Enough() {
			return nodes
		}
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return nodes

		case token.Text:
			p.lx.Next()
			if tok.Text != "" {
				nodes = append(nodes, &tree.Text{Value: tok.Text, Loc: tok.Span})
			}

		case token.ExprIsland:
			p.lx.Next()
			nodes = append(nodes, &tree.Expr{Src: tok.Text, Loc: tok.Span})

		case token.Comment:
			// Comments carry no semantics for the loader; dropped here.
			p.lx.Next()

		case token.TagOpen:
			if el := p.parseElement(); el != nil {
				nodes = append(nodes, el)
			}

		case token.EndTagOpen:
			if closeTag != "" {
				return nodes
			}
			// Top level: nothing to close.
			p.lx.Next()
			p.errorAt(diag.SynStrayEndTag, tok.Span,
				fmt.Sprintf("closing tag </%s> matches no open tag", tok.Text))
			p.eatTagRemainder()

		default:
			p.lx.Next()
			p.errorAt(diag.SynUnexpectedToken, tok.Span,
				fmt.Sprintf("unexpected %s", tok.Kind))
		}
	}
}

// parseElement consumes a TagOpen, its attributes, and (unless self-closing)
// its children up to the matching closing tag.
func (p *Parser) parseElement() *tree.Element {
	open := p.lx.Next() // TagOpen
	el := &tree.Element{
		Tag: open.Text,
		Loc: open.Span,
	}

	closed, delimSpan := p.parseAttrs(el)
	if !closed {
		p.errorAt(diag.SynUnclosedTag, open.Span,
			fmt.Sprintf("tag <%s> is never closed", el.Tag))
		el.SelfClosing = true
		return el
	}
	el.Loc = el.Loc.Cover(delimSpan)
	if el.SelfClosing {
		return el
	}

	el.Children = p.parseNodes(el.Tag)

	end := p.lx.Peek()
	if end.Kind != token.EndTagOpen {
		// EOF (or spent error budget) before the closing tag.
		p.errorAt(diag.SynUnclosedTag, open.Span,
			fmt.Sprintf("tag <%s> is never closed", el.Tag))
		return el
	}
	p.lx.Next()
	if end.Text != el.Tag {
		p.errorAt(diag.SynMismatchedTag, end.Span,
			fmt.Sprintf("closing tag </%s> does not match <%s>", end.Text, el.Tag))
	}
	closeSpan := p.eatTagRemainder()
	el.Loc = el.Loc.Cover(end.Span).Cover(closeSpan)
	return el
}

// parseAttrs consumes attribute tokens until the tag delimiter. Returns
// whether a delimiter was found and its span; sets el.SelfClosing.
func (p *Parser) parseAttrs(el *tree.Element) (bool, source.Span) {
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.TagClose:
			p.lx.Next()
			return true, tok.Span

		case token.TagSelfClose:
			p.lx.Next()
			el.SelfClosing = true
			return true, tok.Span

		case token.AttrName:
			p.lx.Next()
			p.parseAttr(el, tok)

		case token.EOF:
			return false, tok.Span

		default:
			p.lx.Next()
			p.errorAt(diag.SynBadAttribute, tok.Span,
				fmt.Sprintf("unexpected %s in tag <%s>", tok.Kind, el.Tag))
		}
	}
}

func (p *Parser) parseAttr(el *tree.Element, name token.Token) {
	attr := tree.Attr{
		Name: name.Text,
		Kind: tree.AttrBare,
		Loc:  name.Span,
	}
	if p.lx.Peek().Kind == token.Eq {
		p.lx.Next()
		val := p.lx.Peek()
		switch val.Kind {
		case token.AttrValue:
			p.lx.Next()
			attr.Kind = tree.AttrLiteral
			attr.Value = val.Text
			attr.Loc = attr.Loc.Cover(val.Span)
		case token.AttrExpr:
			p.lx.Next()
			attr.Kind = tree.AttrExpr
			attr.Value = val.Text
			attr.Loc = attr.Loc.Cover(val.Span)
		default:
			p.errorAt(diag.SynBadAttribute, val.Span,
				fmt.Sprintf("attribute %q has no value after =", name.Text))
		}
	}
	// Attribute names stay unique on one tag; the last write wins.
	el.SetAttr(attr)
}

// eatTagRemainder consumes tokens through the next TagClose/TagSelfClose.
// Used to recover after a stray or mismatched closing tag.
func (p *Parser) eatTagRemainder() source.Span {
	for {
		tok := p.lx.Next()
		if tok.IsTagDelimiter() || tok.Kind == token.EOF {
			return tok.Span
		}
	}
}
