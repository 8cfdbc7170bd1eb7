package tree

// Lookup returns the attribute with the given name and whether it exists.
func (e *Element) Lookup(name string) (Attr, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// AttrValue returns the literal value of the named attribute, or "" when the
// attribute is absent, bare, or an expression.
func (e *Element) AttrValue(name string) string {
	a, ok := e.Lookup(name)
	if !ok || a.Kind != AttrLiteral {
		return ""
	}
	return a.Value
}

// HasAttr reports whether the named attribute appears on the opening tag.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// SetAttr overwrites the value of an existing attribute with the same name,
// or appends the attribute. Attribute names stay unique within one element;
// the last write wins.
func (e *Element) SetAttr(a Attr) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == a.Name {
			e.Attrs[i] = a
			return
		}
	}
	e.Attrs = append(e.Attrs, a)
}

// RemoveAttr deletes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// MergeAttrsFrom appends every attribute of src whose name is not already
// present on e. Existing attributes on e win; this is the inclusion
// propagation rule.
func (e *Element) MergeAttrsFrom(src *Element) {
	for _, a := range src.Attrs {
		if !e.HasAttr(a.Name) {
			e.Attrs = append(e.Attrs, a)
		}
	}
}

// OverlayAttrsFrom applies every attribute of src onto e: same-named
// attributes are overwritten, new ones appended. This is the macro use-site
// merge rule (the use-site wins).
func (e *Element) OverlayAttrsFrom(src *Element) {
	for _, a := range src.Attrs {
		e.SetAttr(a)
	}
}
