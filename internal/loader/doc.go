// Package loader implements the front-end of the page templating pipeline.
//
// A Loader is constructed over a fixed document root. Load reads the entry
// page, recursively resolves :include / :import directives (splicing the
// referenced pages into the tree), registers :define macros, and finally
// expands every macro use with named-slot composition. The result is a
// single consolidated tree ready for downstream compilation stages.
//
// Nothing here throws: every finding — forbidden paths, read failures,
// parse errors, malformed directives, depth overflows — is recorded as a
// diagnostic on the returned Session. A failure that is fatal to a subtree
// (an unreadable include, say) resolves to no insertion; the outer tree
// still loads.
package loader
