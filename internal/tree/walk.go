package tree

// Visitor receives every element in document order together with its
// ancestor chain (root first, immediate parent last). Returning false stops
// descent into the element's children.
type Visitor func(el *Element, ancestors []*Element) bool

// Walk traverses the element and its descendants in document order,
// maintaining an explicit ancestor stack instead of parent pointers.
// The visitor must not mutate the child list of any element on the stack;
// collect first, rewrite after.
func Walk(root *Element, visit Visitor) {
	var walk func(el *Element, ancestors []*Element)
	walk = func(el *Element, ancestors []*Element) {
		if !visit(el, ancestors) {
			return
		}
		ancestors = append(ancestors, el)
		for _, child := range el.Children {
			if childEl, ok := child.(*Element); ok {
				walk(childEl, ancestors)
			}
		}
	}
	walk(root, nil)
}

// IndexOfChild returns the position of child in parent's child list, or -1.
// Identity comparison: nodes are never structurally deduplicated.
func IndexOfChild(parent *Element, child Node) int {
	for i, c := range parent.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// ReplaceChild substitutes the child at the given index with the replacement
// nodes, in order. An empty replacement removes the child.
func ReplaceChild(parent *Element, index int, replacement ...Node) {
	rest := parent.Children[index+1:]
	out := make([]Node, 0, len(parent.Children)-1+len(replacement))
	out = append(out, parent.Children[:index]...)
	out = append(out, replacement...)
	out = append(out, rest...)
	parent.Children = out
}

// InsertBefore inserts nodes immediately before the child at index.
func InsertBefore(parent *Element, index int, nodes ...Node) {
	if len(nodes) == 0 {
		return
	}
	out := make([]Node, 0, len(parent.Children)+len(nodes))
	out = append(out, parent.Children[:index]...)
	out = append(out, nodes...)
	out = append(out, parent.Children[index:]...)
	parent.Children = out
}
