package tree

// Clone deep-copies a node. The copy shares no structure with the original:
// attribute slices and child lists are fresh allocations all the way down.
func Clone(n Node) Node {
	switch n := n.(type) {
	case *Element:
		return n.Clone()
	case *Text:
		cp := *n
		return &cp
	case *Expr:
		cp := *n
		return &cp
	}
	return nil
}

// Clone deep-copies an element.
func (e *Element) Clone() *Element {
	cp := &Element{
		Tag:         e.Tag,
		SelfClosing: e.SelfClosing,
		Loc:         e.Loc,
	}
	if len(e.Attrs) > 0 {
		cp.Attrs = make([]Attr, len(e.Attrs))
		copy(cp.Attrs, e.Attrs)
	}
	if len(e.Children) > 0 {
		cp.Children = make([]Node, len(e.Children))
		for i, c := range e.Children {
			cp.Children[i] = Clone(c)
		}
	}
	return cp
}
