package treefmt

import (
	"encoding/json"
	"io"

	"weft/internal/tree"
)

// NodeJSON is the JSON shape of one tree node.
type NodeJSON struct {
	Kind        string     `json:"kind"`
	Tag         string     `json:"tag,omitempty"`
	Text        string     `json:"text,omitempty"`
	Expr        string     `json:"expr,omitempty"`
	Attrs       []AttrJSON `json:"attrs,omitempty"`
	SelfClosing bool       `json:"self_closing,omitempty"`
	Children    []NodeJSON `json:"children,omitempty"`
	StartByte   uint32     `json:"start_byte"`
	EndByte     uint32     `json:"end_byte"`
}

// AttrJSON is the JSON shape of one attribute entry.
type AttrJSON struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// JSON writes the tree as indented JSON.
func JSON(w io.Writer, root tree.Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(root))
}

func toJSON(n tree.Node) NodeJSON {
	switch n := n.(type) {
	case *tree.Element:
		out := NodeJSON{
			Kind:        "element",
			Tag:         n.Tag,
			SelfClosing: n.SelfClosing,
			StartByte:   n.Loc.Start,
			EndByte:     n.Loc.End,
		}
		for _, a := range n.Attrs {
			out.Attrs = append(out.Attrs, AttrJSON{Name: a.Name, Kind: attrKind(a.Kind), Value: a.Value})
		}
		for _, c := range n.Children {
			out.Children = append(out.Children, toJSON(c))
		}
		return out
	case *tree.Text:
		return NodeJSON{Kind: "text", Text: n.Value, StartByte: n.Loc.Start, EndByte: n.Loc.End}
	case *tree.Expr:
		return NodeJSON{Kind: "expr", Expr: n.Src, StartByte: n.Loc.Start, EndByte: n.Loc.End}
	}
	return NodeJSON{Kind: "unknown"}
}

func attrKind(k tree.AttrValueKind) string {
	switch k {
	case tree.AttrExpr:
		return "expr"
	case tree.AttrBare:
		return "bare"
	default:
		return "literal"
	}
}
