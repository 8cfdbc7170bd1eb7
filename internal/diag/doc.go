// Package diag defines the diagnostic model shared by all loader phases.
//
// The loader never fails by throwing: the lexer, parser, and every loader
// phase (path resolution, inclusion, macro collection, macro expansion)
// report findings through a diag.Reporter into a diag.Bag owned by the load
// session. Callers inspect the bag to decide success.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// human message, a primary source.Span, and optional Notes pointing at
// secondary locations. Rendering lives in internal/diagfmt; this package is
// data only and performs no IO.
package diag
