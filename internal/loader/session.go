package loader

import (
	"weft/internal/diag"
	"weft/internal/source"
	"weft/internal/tree"
)

// Session is the per-Load accumulator: the consolidated tree, the pages
// visited (in visitation order, as root-relative paths), every diagnostic,
// and the macro registry. Sessions are independent of each other and own
// all trees they produce.
type Session struct {
	// Tree is the fully processed entry tree. Nil only when the entry page
	// itself failed fatally (forbidden path, unreadable, unparseable, or no
	// root element).
	Tree *tree.Element

	// Files lists every page visited, in visitation order. Entries are
	// rooted at the document root ("/index.html").
	Files []string

	// Bag collects every diagnostic of the load.
	Bag *diag.Bag

	// Macros maps a macro name to its descriptor.
	Macros map[string]*Macro

	// FileSet owns the bytes and line indexes behind every span in Bag.
	FileSet *source.FileSet
}

func newSession(maxDiagnostics int) *Session {
	return &Session{
		Bag:     diag.NewBag(maxDiagnostics),
		Macros:  make(map[string]*Macro),
		FileSet: source.NewFileSet(),
	}
}

func (s *Session) reporter() diag.Reporter {
	return &diag.BagReporter{Bag: s.Bag}
}

func (s *Session) visited(sessionPath string) bool {
	for _, f := range s.Files {
		if f == sessionPath {
			return true
		}
	}
	return false
}

// OK reports whether the load produced a tree without errors.
func (s *Session) OK() bool {
	return s.Tree != nil && !s.Bag.HasErrors()
}
