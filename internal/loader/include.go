package loader

import (
	"fmt"
	"strings"

	"weft/internal/diag"
	"weft/internal/tree"
)

// processDirectives resolves every directive of one parsed page, in
// document order. Directives are collected first and rewritten after; the
// splice positions are found again by node identity at rewrite time.
func (st *state) processDirectives(root *tree.Element, cur string, depth int) {
	for _, ref := range collectDirectives(root) {
		switch ref.el.DirectiveName() {
		case dirInclude:
			st.processInclude(ref, cur, depth, false)
		case dirImport:
			st.processInclude(ref, cur, depth, true)
		case dirDefine:
			st.collectMacro(ref)
			removeFromParent(ref)
		case dirSlot:
			// Retained; the macro expander consumes slots.
		default:
			diag.ReportWarning(st.session.reporter(), diag.LoadUnknownDirective, ref.el.Loc,
				fmt.Sprintf("unknown directive %s", ref.el.DirectiveName())).Emit()
			removeFromParent(ref)
		}
	}
}

// processInclude splices the referenced page in place of an :include or
// :import directive. The referenced page is fully processed (its own
// directives resolved) before splicing. An :import of a page this session
// has already visited contributes nothing, silently.
func (st *state) processInclude(ref directiveRef, cur string, depth int, once bool) {
	src, ok := ref.el.Lookup("src")
	if !ok || src.Kind != tree.AttrLiteral || strings.TrimSpace(src.Value) == "" {
		diag.ReportError(st.session.reporter(), diag.LoadMissingSrc, ref.el.Loc,
			"missing src attribute").Emit()
		removeFromParent(ref)
		return
	}

	sub := st.loadFile(src.Value, cur, depth+1, once, ref.el.Loc)

	idx := tree.IndexOfChild(ref.parent, ref.el)
	if idx < 0 {
		return
	}
	if sub == nil {
		// Fatal subtree failure or deduplicated import: no insertion.
		tree.ReplaceChild(ref.parent, idx)
		return
	}

	tree.ReplaceChild(ref.parent, idx, trimEdgeWhitespace(sub.Children)...)

	// Attribute propagation onto the referring parent's opening tag, in
	// precedence order: the parent's own attributes, then the directive's
	// (src is consumed), then the included root's.
	for _, a := range ref.el.Attrs {
		if a.Name == "src" {
			continue
		}
		if !ref.parent.HasAttr(a.Name) {
			ref.parent.Attrs = append(ref.parent.Attrs, a)
		}
	}
	ref.parent.MergeAttrsFrom(sub)
}

// trimEdgeWhitespace drops a single leading and a single trailing
// all-whitespace text child — exactly one each, matching how page authors
// indent an included file's root.
func trimEdgeWhitespace(children []tree.Node) []tree.Node {
	if len(children) > 0 {
		if t, ok := children[0].(*tree.Text); ok && t.Blank() {
			children = children[1:]
		}
	}
	if len(children) > 0 {
		if t, ok := children[len(children)-1].(*tree.Text); ok && t.Blank() {
			children = children[:len(children)-1]
		}
	}
	return children
}
