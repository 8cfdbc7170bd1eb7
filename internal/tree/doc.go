// Package tree models the markup syntax tree the loader rewrites.
//
// A node is one of three variants: Element (a tag with attributes and
// children), Text (a literal run), or Expr (an expression island carried
// verbatim — the loader never looks inside). Every node keeps the byte span
// it was parsed from; rewrites preserve spans, and synthesized nodes inherit
// the span of the element that triggered them.
//
// Trees are owned by a single load session and mutated in place. Deep clones
// (Clone) share no structure with their origin.
package tree
