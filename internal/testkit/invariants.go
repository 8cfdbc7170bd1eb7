// Package testkit holds invariant checkers shared by tests.
package testkit

import (
	"fmt"
	"strings"

	"weft/internal/tree"
)

// CheckTreeInvariants runs the structural invariants every loader-produced
// tree must satisfy:
//  1. a self-closing element has no children
//  2. attribute names are unique within one element
//  3. no element keeps a directive tag — except :slot when allowSlots is
//     set (partially built macro bodies)
func CheckTreeInvariants(root *tree.Element, allowSlots bool) error {
	var fail error
	tree.Walk(root, func(el *tree.Element, ancestors []*tree.Element) bool {
		if fail != nil {
			return false
		}
		if el.SelfClosing && len(el.Children) > 0 {
			fail = fmt.Errorf("self-closing <%s> has %d children", el.Tag, len(el.Children))
			return false
		}
		seen := make(map[string]bool, len(el.Attrs))
		for _, a := range el.Attrs {
			if seen[a.Name] {
				fail = fmt.Errorf("<%s> has duplicate attribute %q", el.Tag, a.Name)
				return false
			}
			seen[a.Name] = true
		}
		if strings.HasPrefix(el.Tag, tree.DirectivePrefix) {
			if !(allowSlots && el.DirectiveName() == "slot") {
				fail = fmt.Errorf("directive <%s> survived into the tree", el.Tag)
				return false
			}
		}
		return true
	})
	return fail
}
