package loader

import (
	"weft/internal/tree"
)

// Directive tags understood by the loader.
const (
	dirInclude = "include"
	dirImport  = "import"
	dirDefine  = "define"
	dirSlot    = "slot"
)

// directiveRef is a collected directive element together with the element
// that holds it. Directives at the root of a tree are never collected: an
// included page's root is spliced away, so a root directive would have no
// parent to splice into.
type directiveRef struct {
	el     *tree.Element
	parent *tree.Element
}

// collectDirectives walks a parsed tree and gathers every directive element
// that has an element parent, in document order. The walk does not descend
// into a directive's children looking for the directive itself — nested
// directives are still collected (a :define body carries its :slot markers,
// and stray directives under any ancestor must be reported).
func collectDirectives(root *tree.Element) []directiveRef {
	var out []directiveRef
	tree.Walk(root, func(el *tree.Element, ancestors []*tree.Element) bool {
		if el.IsDirective() && len(ancestors) > 0 {
			out = append(out, directiveRef{el: el, parent: ancestors[len(ancestors)-1]})
		}
		return true
	})
	return out
}

// removeFromParent deletes the directive element from its parent's child
// list, leaving no replacement.
func removeFromParent(ref directiveRef) {
	if idx := tree.IndexOfChild(ref.parent, ref.el); idx >= 0 {
		tree.ReplaceChild(ref.parent, idx)
	}
}
