package loader

import (
	"fmt"

	"weft/internal/diag"
	"weft/internal/tree"
)

// macroUse is a collected use-site together with the element holding it.
// A nil parent means the use-site is the tree root itself.
type macroUse struct {
	el     *tree.Element
	parent *tree.Element
}

// expandMacros runs the post-inclusion expansion pass over root and returns
// the (possibly replaced) root. Use-sites are collected first and rewritten
// after — rewriting mid-walk would corrupt the ancestor context. Each
// stamped sub-tree is expanded again with the nesting counter incremented,
// so macros used inside macro bodies resolve too, up to the depth bound.
func (st *state) expandMacros(root *tree.Element, depth int) *tree.Element {
	var uses []macroUse
	tree.Walk(root, func(el *tree.Element, ancestors []*tree.Element) bool {
		if _, ok := st.session.Macros[el.Tag]; ok {
			var parent *tree.Element
			if len(ancestors) > 0 {
				parent = ancestors[len(ancestors)-1]
			}
			uses = append(uses, macroUse{el: el, parent: parent})
			// Children of a use-site are routed into the stamped body and
			// revisited by the recursive pass; do not descend here.
			return false
		}
		return true
	})

	for _, use := range uses {
		if depth >= st.opts.maxNesting() {
			diag.ReportError(st.session.reporter(), diag.LoadTooManyMacros, use.el.Loc,
				fmt.Sprintf("too many nested macros %q", use.el.Tag)).Emit()
			continue
		}

		dst := st.stamp(st.session.Macros[use.el.Tag], use.el, false)
		if use.parent == nil {
			root = dst
		} else {
			tree.ReplaceChild(use.parent, tree.IndexOfChild(use.parent, use.el), dst)
		}

		expanded := st.expandMacros(dst, depth+1)
		if expanded != dst {
			if use.parent == nil {
				root = expanded
			} else {
				tree.ReplaceChild(use.parent, tree.IndexOfChild(use.parent, dst), expanded)
			}
		}
	}
	return root
}

// slotRef is a discovered :slot element with its holding parent.
type slotRef struct {
	el     *tree.Element
	parent *tree.Element
}

// discoverSlots collects every :slot element under root (root itself is
// never a slot), keyed by its name attribute. A slot without a name is
// reported and excluded. Duplicate names keep the first occurrence: the
// routing target is the earliest slot in document order.
func (st *state) discoverSlots(root *tree.Element) map[string]slotRef {
	slots := make(map[string]slotRef)
	tree.Walk(root, func(el *tree.Element, ancestors []*tree.Element) bool {
		if !el.IsDirective() || el.DirectiveName() != dirSlot || len(ancestors) == 0 {
			return true
		}
		name := el.AttrValue("name")
		if name == "" {
			diag.ReportError(st.session.reporter(), diag.LoadMissingSlotName, el.Loc,
				"missing name attribute").Emit()
			return true
		}
		if _, dup := slots[name]; !dup {
			slots[name] = slotRef{el: el, parent: ancestors[len(ancestors)-1]}
		}
		return true
	})
	return slots
}

// stamp produces the replacement sub-tree for one macro use.
//
// In final mode (inherit == false, the post-inclusion pass) every slot is
// replaced by its own children: no :slot element survives. In inheritance
// mode (a macro being built from its parent macro) slots stay intact, except
// parent slots overridden by a same-named slot the child defines.
func (st *state) stamp(m *Macro, use *tree.Element, inherit bool) *tree.Element {
	dst := m.Body.Clone()

	// Use-site attributes win over the body's.
	dst.OverlayAttrsFrom(use)

	slots := st.discoverSlots(dst)

	var oldSlots map[string]*tree.Element
	if inherit {
		// Remember which slot nodes came from the parent body so that
		// same-named slots routed in from the child can displace them.
		oldSlots = make(map[string]*tree.Element, len(slots))
		for name, ref := range slots {
			oldSlots[name] = ref.el
		}
	}

	if _, ok := slots[defaultSlotName]; !ok {
		slots[defaultSlotName] = st.synthesizeDefaultSlot(dst, use)
	}

	// Route every use-site child to its slot, preserving relative order
	// among children that share a target.
	for _, child := range use.Children {
		target := defaultSlotName
		if el, ok := child.(*tree.Element); ok {
			if a, named := el.Lookup("name"); named && a.Kind == tree.AttrLiteral && a.Value != "" {
				target = a.Value
				if !el.IsDirective() {
					// The name attribute only routes; it does not survive
					// into the output.
					el.RemoveAttr("name")
				}
			}
		}
		slot, ok := slots[target]
		if !ok {
			// TODO: report a diagnostic for children aimed at a slot the
			// body never defines; today they vanish silently.
			continue
		}
		tree.InsertBefore(slot.parent, tree.IndexOfChild(slot.parent, slot.el), child)
	}

	if inherit {
		st.dropOverriddenSlots(dst, oldSlots)
	} else {
		eliminateSlots(dst)
	}
	return dst
}

// synthesizeDefaultSlot appends an implicit default slot as the last child
// of the body root. The synthesized node inherits the use-site's location.
func (st *state) synthesizeDefaultSlot(dst, use *tree.Element) slotRef {
	slot := &tree.Element{
		Tag: tree.DirectivePrefix + dirSlot,
		Attrs: []tree.Attr{{
			Name:  "name",
			Kind:  tree.AttrLiteral,
			Value: defaultSlotName,
			Loc:   use.Loc,
		}},
		SelfClosing: true,
		Loc:         use.Loc,
	}
	dst.Children = append(dst.Children, slot)
	return slotRef{el: slot, parent: dst}
}

// dropOverriddenSlots rediscovers slots after routing and removes every
// parent slot whose name has been taken over by a different node — the
// child macro redefined it. Unredefined parent slots stay available to
// downstream users.
func (st *state) dropOverriddenSlots(dst *tree.Element, oldSlots map[string]*tree.Element) {
	var removals []*tree.Element
	tree.Walk(dst, func(el *tree.Element, ancestors []*tree.Element) bool {
		if !el.IsDirective() || el.DirectiveName() != dirSlot || len(ancestors) == 0 {
			return true
		}
		name := el.AttrValue("name")
		old, existed := oldSlots[name]
		if existed && old != el {
			removals = append(removals, old)
		}
		return true
	})
	for _, old := range removals {
		removeByIdentity(dst, old)
	}
}

// removeByIdentity deletes the first occurrence of node (by identity) from
// anywhere under root.
func removeByIdentity(root *tree.Element, node *tree.Element) {
	tree.Walk(root, func(el *tree.Element, ancestors []*tree.Element) bool {
		if idx := tree.IndexOfChild(el, node); idx >= 0 {
			tree.ReplaceChild(el, idx)
			return false
		}
		return true
	})
}

// eliminateSlots replaces every :slot element under root with its own
// children, bottom-up so nested slots (a routed slot wrapper, say) are
// flattened in one pass.
func eliminateSlots(root *tree.Element) {
	for _, child := range root.Children {
		if el, ok := child.(*tree.Element); ok {
			eliminateSlots(el)
		}
	}
	out := make([]tree.Node, 0, len(root.Children))
	for _, child := range root.Children {
		if el, ok := child.(*tree.Element); ok && el.IsDirective() && el.DirectiveName() == dirSlot {
			out = append(out, el.Children...)
			continue
		}
		out = append(out, child)
	}
	root.Children = out
}
