// Package treefmt renders loader trees for the CLI and for tests:
// a structural dump (Pretty), a source-shaped rendering (Markup), and a
// machine-readable form (JSON).
package treefmt

import (
	"fmt"
	"io"
	"strings"

	"weft/internal/tree"
)

// Pretty writes an indented structural dump of the tree.
func Pretty(w io.Writer, root tree.Node) {
	prettyNode(w, root, 0)
}

func prettyNode(w io.Writer, n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *tree.Element:
		fmt.Fprintf(w, "%selement %s", indent, n.Tag)
		for _, a := range n.Attrs {
			switch a.Kind {
			case tree.AttrBare:
				fmt.Fprintf(w, " %s", a.Name)
			case tree.AttrExpr:
				fmt.Fprintf(w, " %s={%s}", a.Name, a.Value)
			default:
				fmt.Fprintf(w, " %s=%q", a.Name, a.Value)
			}
		}
		if n.SelfClosing {
			fmt.Fprint(w, " self-closing")
		}
		fmt.Fprintln(w)
		for _, c := range n.Children {
			prettyNode(w, c, depth+1)
		}
	case *tree.Text:
		fmt.Fprintf(w, "%stext %q\n", indent, n.Value)
	case *tree.Expr:
		fmt.Fprintf(w, "%sexpr {%s}\n", indent, n.Src)
	}
}

// Markup renders the tree back into page syntax. Used by tests to state
// expectations compactly and by the CLI for eyeballing expansions; it is
// not a code generator.
func Markup(root tree.Node) string {
	var sb strings.Builder
	markupNode(&sb, root)
	return sb.String()
}

func markupNode(sb *strings.Builder, n tree.Node) {
	switch n := n.(type) {
	case *tree.Element:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		for _, a := range n.Attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			switch a.Kind {
			case tree.AttrBare:
			case tree.AttrExpr:
				sb.WriteString("={")
				sb.WriteString(a.Value)
				sb.WriteByte('}')
			default:
				sb.WriteString("=\"")
				sb.WriteString(a.Value)
				sb.WriteByte('"')
			}
		}
		if n.SelfClosing {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for _, c := range n.Children {
			markupNode(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	case *tree.Text:
		sb.WriteString(n.Value)
	case *tree.Expr:
		sb.WriteByte('{')
		sb.WriteString(n.Src)
		sb.WriteByte('}')
	}
}
